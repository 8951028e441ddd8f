package config

import (
	"os"
	"strings"
)

const (
	http2ModeAuto    = "auto"
	http2ModeForce   = "force"
	http2ModeDisable = "disable"

	HTTP2ModeAuto    = http2ModeAuto
	HTTP2ModeForce   = http2ModeForce
	HTTP2ModeDisable = http2ModeDisable

	// DefaultPort 身份服务默认监听端口
	DefaultPort = "8080"
)

var (
	stealthModeEnv   = "STEALTH_MODE"
	http2ModeEnv     = "STEALTH_HTTP2_MODE"
	defaultStyleEnv  = "DEFAULT_STYLE"
	versionEnv       = "ANTIGRAVITY_VERSION"
	versionURLEnv    = "ANTIGRAVITY_VERSION_URL"
	clientTokenEnv   = "IDENTITY_CLIENT_TOKEN"
	defaultStyleName = "antigravity"
)

// ProxyEnvKeys 代理环境变量，按优先级排列
var ProxyEnvKeys = []string{"HTTPS_PROXY", "HTTP_PROXY", "https_proxy", "http_proxy"}

// IsStealthModeEnabled 是否随机化 TLS/HTTP2 指纹
func IsStealthModeEnabled() bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(stealthModeEnv)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func HTTP2Mode() string {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv(http2ModeEnv)))
	switch mode {
	case http2ModeForce, http2ModeDisable:
		return mode
	default:
		return http2ModeAuto
	}
}

// DefaultStyle 出站请求默认模拟的客户端类型（未做校验，由调用方解析）
func DefaultStyle() string {
	if style := strings.TrimSpace(os.Getenv(defaultStyleEnv)); style != "" {
		return style
	}
	return defaultStyleName
}

// ConfiguredVersion 通过环境变量显式指定的客户端版本
func ConfiguredVersion() string {
	return strings.TrimSpace(os.Getenv(versionEnv))
}

// VersionURL 客户端版本探测地址，为空表示不探测
func VersionURL() string {
	return strings.TrimSpace(os.Getenv(versionURLEnv))
}

// ClientToken 访问 /v1 接口所需的token
func ClientToken() string {
	return os.Getenv(clientTokenEnv)
}

// ProxyURL 按优先级返回第一个非空的代理地址
func ProxyURL() string {
	for _, key := range ProxyEnvKeys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return ""
}
