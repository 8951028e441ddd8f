package utils

import (
	"github.com/bytedance/sonic"
)

// SafeConfig 与 encoding/json 行为一致的 sonic 配置
var SafeConfig = sonic.ConfigStd

// SafeMarshal JSON序列化
func SafeMarshal(v any) ([]byte, error) {
	return SafeConfig.Marshal(v)
}

// SafeUnmarshal JSON反序列化
func SafeUnmarshal(data []byte, v any) error {
	return SafeConfig.Unmarshal(data, v)
}
