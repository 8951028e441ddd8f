package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"cloudcodeid/logger"
	"cloudcodeid/utils"
)

// DefaultSystemConfigFile 默认的持久化配置文件
const DefaultSystemConfigFile = "data/system_config.json"

// SystemConfig 持久化的服务配置，加载后写入环境变量
// 已存在的环境变量优先，不会被文件覆盖
type SystemConfig struct {
	GinMode            string `json:"gin_mode,omitempty"`
	LogLevel           string `json:"log_level,omitempty"`
	StealthMode        string `json:"stealth_mode,omitempty"`
	HTTP2Mode          string `json:"http2_mode,omitempty"`
	DefaultStyle       string `json:"default_style,omitempty"`
	AntigravityVersion string `json:"antigravity_version,omitempty"`
	VersionURL         string `json:"antigravity_version_url,omitempty"`
	ClientToken        string `json:"client_token,omitempty"`
}

var (
	systemConfig *SystemConfig
	configMutex  sync.RWMutex
)

// SystemConfigFile 配置文件路径，可用 SYSTEM_CONFIG_FILE 覆盖
func SystemConfigFile() string {
	return utils.GetEnvWithDefault("SYSTEM_CONFIG_FILE", DefaultSystemConfigFile)
}

// LoadSystemConfig 加载配置文件并应用到环境变量，文件不存在时返回空配置
func LoadSystemConfig(path string) (*SystemConfig, error) {
	cfg := &SystemConfig{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Debug("配置文件不存在，仅使用环境变量", logger.String("file", path))
	case err != nil:
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	default:
		if err := utils.SafeUnmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
		applyConfigToEnv(cfg)
		logger.Info("从持久化文件加载系统配置成功", logger.String("file", path))
	}

	configMutex.Lock()
	systemConfig = cfg
	configMutex.Unlock()
	return cfg, nil
}

// GetSystemConfig 当前已加载的配置，未加载时返回空配置
func GetSystemConfig() SystemConfig {
	configMutex.RLock()
	defer configMutex.RUnlock()
	if systemConfig == nil {
		return SystemConfig{}
	}
	return *systemConfig
}

// Redacted 去掉敏感字段后的副本，用于对外展示
func (c SystemConfig) Redacted() SystemConfig {
	c.ClientToken = ""
	return c
}

func applyConfigToEnv(cfg *SystemConfig) {
	pairs := []struct {
		key   string
		value string
	}{
		{"GIN_MODE", cfg.GinMode},
		{"LOG_LEVEL", cfg.LogLevel},
		{"STEALTH_MODE", cfg.StealthMode},
		{"STEALTH_HTTP2_MODE", cfg.HTTP2Mode},
		{"DEFAULT_STYLE", cfg.DefaultStyle},
		{"ANTIGRAVITY_VERSION", cfg.AntigravityVersion},
		{"ANTIGRAVITY_VERSION_URL", cfg.VersionURL},
		{"IDENTITY_CLIENT_TOKEN", cfg.ClientToken},
	}
	for _, p := range pairs {
		if p.value == "" || os.Getenv(p.key) != "" {
			continue
		}
		os.Setenv(p.key, p.value)
	}
}
