package identity

import (
	"strings"
	"sync"
	"unicode"
)

// FallbackVersion 未探测到真实客户端版本时使用的 Antigravity 版本号
const FallbackVersion = "1.19.6"

// AntigravityVersion 旧版导出的版本常量，始终等于 FallbackVersion
// Deprecated: 使用 CurrentVersion 获取运行时版本
const AntigravityVersion = FallbackVersion

// VersionRegistry 当前客户端版本的登记表
// 首次成功写入后锁定，之后的写入全部忽略
type VersionRegistry struct {
	mu      sync.RWMutex
	current string
	locked  bool
}

// DefaultVersions 进程级默认登记表
var DefaultVersions = NewVersionRegistry()

// NewVersionRegistry 创建以 FallbackVersion 为初始值的登记表
func NewVersionRegistry() *VersionRegistry {
	return &VersionRegistry{current: FallbackVersion}
}

// Current 返回当前版本，永不为空
func (r *VersionRegistry) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Set 写入版本并锁定，返回本次写入是否生效
// 已锁定、空值或中间含空白的值静默忽略（User-Agent 中版本号以空白结束）
func (r *VersionRegistry) Set(version string) bool {
	version = strings.TrimSpace(version)
	if version == "" || strings.IndexFunc(version, unicode.IsSpace) >= 0 {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locked {
		return false
	}
	r.current = version
	r.locked = true
	return true
}

// Locked 是否已经写入过版本
func (r *VersionRegistry) Locked() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locked
}

// CurrentVersion 默认登记表的当前版本
func CurrentVersion() string {
	return DefaultVersions.Current()
}

// SetVersion 写入默认登记表
func SetVersion(version string) bool {
	return DefaultVersions.Set(version)
}
