package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	mathrand "math/rand"
	"sync"
	"time"
)

// crypto/rand 不可用时的兜底随机源
var (
	fallbackRand     = mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	fallbackRandLock sync.Mutex
)

// RandomIntBetween 返回 [min, max] 闭区间内的均匀随机数
func RandomIntBetween(min, max int64) int64 {
	if min >= max {
		return min
	}
	span := max - min + 1

	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		fallbackRandLock.Lock()
		defer fallbackRandLock.Unlock()
		return min + fallbackRand.Int63n(span)
	}
	return min + n.Int64()
}

func RandomBool() bool {
	return RandomIntBetween(0, 1) == 1
}

// RandomHex 生成指定长度的十六进制字符串
func RandomHex(length int) string {
	if length <= 0 {
		return ""
	}
	buf := make([]byte, (length+1)/2)
	if _, err := rand.Read(buf); err != nil {
		fallbackRandLock.Lock()
		fallbackRand.Read(buf)
		fallbackRandLock.Unlock()
	}
	return hex.EncodeToString(buf)[:length]
}

// ShuffleUint16 原地打乱（Fisher-Yates）
func ShuffleUint16(values []uint16) {
	for i := len(values) - 1; i > 0; i-- {
		j := int(RandomIntBetween(0, int64(i)))
		values[i], values[j] = values[j], values[i]
	}
}
