package utils

import (
	"os"
	"strings"
)

// IsDebugMode 检查DEBUG、LOG_LEVEL、GIN_MODE任一是否处于调试状态
func IsDebugMode() bool {
	if debug := os.Getenv("DEBUG"); debug == "true" || debug == "1" {
		return true
	}
	if strings.ToLower(os.Getenv("LOG_LEVEL")) == "debug" {
		return true
	}
	return os.Getenv("GIN_MODE") == "debug"
}

// GetEnvWithDefault 获取环境变量，为空时返回默认值
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool 接受的true值：true, 1, yes, on（不区分大小写）
func GetEnvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
