package utils

import (
	"fmt"
	"io"
)

// ReadLimited 读取响应体，超过 limit 字节时返回错误
func ReadLimited(body io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return data, err
	}
	if int64(len(data)) > limit {
		return data[:limit], fmt.Errorf("响应体超过 %d 字节", limit)
	}
	return data, nil
}
