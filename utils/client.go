package utils

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync"

	"cloudcodeid/config"
	"cloudcodeid/logger"
)

var (
	sharedClient     *http.Client
	sharedClientOnce sync.Once
)

// SharedHTTPClient 共享的出站HTTP客户端，首次调用时按当时的环境变量构建
// 须在 .env 和系统配置加载之后调用
func SharedHTTPClient() *http.Client {
	sharedClientOnce.Do(func() {
		sharedClient = NewHTTPClient()
	})
	return sharedClient
}

// NewHTTPClient 按当前环境变量构建HTTP客户端
func NewHTTPClient() *http.Client {
	return &http.Client{Transport: NewTransport()}
}

// NewTransport 构建带代理与TLS配置的 http.Transport
func NewTransport() *http.Transport {
	skipTLS := GetEnvBool("TLS_INSECURE_SKIP_VERIFY")
	if skipTLS {
		os.Stderr.WriteString("[WARNING] TLS证书验证已禁用 - 仅适用于开发/调试环境\n")
	}

	tlsConfig := &tls.Config{InsecureSkipVerify: skipTLS}
	applyTLSProfile(tlsConfig)

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   config.HTTPClientDialTimeout,
			KeepAlive: config.HTTPClientKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout: config.HTTPClientTLSHandshakeTimeout,
		TLSClientConfig:     tlsConfig,
		ForceAttemptHTTP2:   resolveHTTP2Preference(),
	}

	if raw := config.ProxyURL(); raw != "" {
		if err := configureProxy(transport, raw); err != nil {
			logger.Warn("代理配置失败，使用直连", logger.Err(err))
		}
	}

	return transport
}

// configureProxy 为 transport 设置代理，地址不合法时保持直连
func configureProxy(transport *http.Transport, raw string) error {
	proxyURL, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("解析代理地址失败: %w", err)
	}
	if proxyURL.Scheme == "" || proxyURL.Host == "" {
		return fmt.Errorf("代理地址缺少协议或主机: %s", proxyURL.Redacted())
	}

	transport.Proxy = http.ProxyURL(proxyURL)
	logger.Info("已配置出站代理", logger.String("proxy", proxyURL.Redacted()))
	return nil
}

func applyTLSProfile(cfg *tls.Config) {
	if !config.IsStealthModeEnabled() {
		cfg.MinVersion = tls.VersionTLS12
		cfg.MaxVersion = tls.VersionTLS13
		return
	}

	if RandomBool() {
		cfg.MinVersion = tls.VersionTLS13
	} else {
		cfg.MinVersion = tls.VersionTLS12
	}
	cfg.MaxVersion = tls.VersionTLS13

	// 仅影响 TLS1.2 握手，TLS1.3 套件不可配置
	cipherPool := []uint16{
		tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
		tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
		tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
		tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
		tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305,
		tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305,
	}
	ShuffleUint16(cipherPool)

	maxSuites := int(RandomIntBetween(4, int64(len(cipherPool))))
	cfg.CipherSuites = append([]uint16{}, cipherPool[:maxSuites]...)
}

func resolveHTTP2Preference() bool {
	switch config.HTTP2Mode() {
	case config.HTTP2ModeForce:
		return true
	case config.HTTP2ModeDisable:
		return false
	default:
		if config.IsStealthModeEnabled() {
			return RandomBool()
		}
		return false
	}
}
