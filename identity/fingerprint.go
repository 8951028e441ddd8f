package identity

import (
	"os"
	"runtime"
	"strings"
	"time"
	"unicode"

	"cloudcodeid/utils"

	"github.com/google/uuid"
)

// Fingerprint 单个会话使用的客户端身份
// 只在准备一次出站请求期间存活，不做持久化
type Fingerprint struct {
	DeviceID       string         `json:"deviceId"`
	SessionToken   string         `json:"sessionToken"`
	UserAgent      string         `json:"userAgent"`
	APIClient      string         `json:"apiClient"`
	ClientMetadata ClientMetadata `json:"clientMetadata"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// Headers 把指纹转换为请求头，刷新接口随指纹一并返回
func (fp *Fingerprint) Headers() (HeaderSet, error) {
	metadata, err := fp.ClientMetadata.Encode()
	if err != nil {
		return HeaderSet{}, err
	}
	return HeaderSet{
		UserAgent:      fp.UserAgent,
		GoogAPIClient:  fp.APIClient,
		ClientMetadata: metadata,
	}, nil
}

const sessionTokenLength = 32

// GenerateFingerprint 随机生成一个全新的身份
func (g *Generator) GenerateFingerprint() *Fingerprint {
	platform, arch := g.pickPlatform()
	return &Fingerprint{
		DeviceID:     uuid.NewString(),
		SessionToken: utils.RandomHex(sessionTokenLength),
		UserAgent:    g.userAgent(arch),
		APIClient:    g.choose(googAPIClients),
		ClientMetadata: ClientMetadata{
			IDEType:    antigravityIDE,
			Platform:   platform,
			PluginType: pluginTypeGemini,
		},
		CreatedAt: time.Now(),
	}
}

// CollectCurrentFingerprint 基于本机信息生成身份
// 同一主机的 DeviceID 保持不变，Linux 等其他系统按 Windows 上报
func (g *Generator) CollectCurrentFingerprint() *Fingerprint {
	platform, arch := hostPlatform(runtime.GOOS, runtime.GOARCH)

	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "localhost"
	}
	deviceID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(hostname+"|"+arch)).String()

	return &Fingerprint{
		DeviceID:     deviceID,
		SessionToken: utils.RandomHex(sessionTokenLength),
		UserAgent:    g.userAgent(arch),
		APIClient:    googAPIClients[0],
		ClientMetadata: ClientMetadata{
			IDEType:    antigravityIDE,
			Platform:   platform,
			PluginType: pluginTypeGemini,
		},
		CreatedAt: time.Now(),
	}
}

func hostPlatform(goos, goarch string) (Platform, string) {
	if goarch != "arm64" {
		goarch = "amd64"
	}
	switch goos {
	case "darwin":
		return PlatformMacOS, "darwin/" + goarch
	case "windows":
		return PlatformWindows, "windows/" + goarch
	default:
		return PlatformWindows, "windows/amd64"
	}
}

// UpdateFingerprintVersion 把指纹 User-Agent 中过期的版本号替换为当前版本
// 返回是否发生了修改
func (g *Generator) UpdateFingerprintVersion(fp *Fingerprint) bool {
	if fp == nil {
		return false
	}
	patched, changed := PatchUserAgentVersion(fp.UserAgent, g.versions.Current())
	if changed {
		fp.UserAgent = patched
	}
	return changed
}

// PatchUserAgentVersion 替换 "antigravity/" 后面的版本号，其余内容保持不变
// 找不到前缀或版本号为空时原样返回 false
func PatchUserAgentVersion(userAgent, version string) (string, bool) {
	if version == "" {
		return userAgent, false
	}

	idx := strings.Index(userAgent, antigravityPrefix)
	if idx < 0 {
		return userAgent, false
	}

	start := idx + len(antigravityPrefix)
	end := len(userAgent)
	if n := strings.IndexFunc(userAgent[start:], unicode.IsSpace); n >= 0 {
		end = start + n
	}

	embedded := userAgent[start:end]
	if embedded == "" || embedded == version || hasVersionPrefix(userAgent[start:], version) {
		return userAgent, false
	}

	return userAgent[:start] + version + userAgent[end:], true
}

// hasVersionPrefix 判断 rest 是否以 version 开头且其后为空白或结尾
func hasVersionPrefix(rest, version string) bool {
	if !strings.HasPrefix(rest, version) {
		return false
	}
	tail := rest[len(version):]
	return tail == "" || unicode.IsSpace(rune(tail[0]))
}

// GenerateFingerprint 使用默认登记表生成指纹
func GenerateFingerprint() *Fingerprint {
	return defaultGenerator.GenerateFingerprint()
}

// CollectCurrentFingerprint 使用默认登记表采集本机指纹
func CollectCurrentFingerprint() *Fingerprint {
	return defaultGenerator.CollectCurrentFingerprint()
}

// UpdateFingerprintVersion 使用默认登记表更新指纹版本
func UpdateFingerprintVersion(fp *Fingerprint) bool {
	return defaultGenerator.UpdateFingerprintVersion(fp)
}
