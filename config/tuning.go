package config

import "time"

// Tuning 网络相关的调优参数
const (
	// ========== HTTP客户端 ==========

	// HTTPClientDialTimeout 建立连接超时
	HTTPClientDialTimeout = 15 * time.Second

	// HTTPClientKeepAlive HTTP客户端Keep-Alive间隔
	HTTPClientKeepAlive = 30 * time.Second

	// HTTPClientTLSHandshakeTimeout HTTP客户端TLS握手超时
	HTTPClientTLSHandshakeTimeout = 15 * time.Second

	// ========== 版本探测 ==========

	// VersionDiscoveryTimeout 启动时拉取客户端版本的超时
	VersionDiscoveryTimeout = 10 * time.Second

	// VersionResponseMaxBytes 版本接口响应体上限，防止异常大响应
	VersionResponseMaxBytes = 64 * 1024

	// ========== HTTP服务 ==========

	// ServerShutdownTimeout 优雅关闭等待时间
	ServerShutdownTimeout = 5 * time.Second
)
