package versionsync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cloudcodeid/config"
	"cloudcodeid/identity"
	"cloudcodeid/logger"
	"cloudcodeid/utils"

	"golang.org/x/mod/semver"
)

// ErrInvalidVersion 版本号不是合法的语义化版本
var ErrInvalidVersion = errors.New("invalid client version")

// Options 版本同步配置
type Options struct {
	Registry *identity.VersionRegistry
	Client   *http.Client
	// EnvVersion 显式指定的版本，优先于 URL
	EnvVersion string
	URL        string
}

// Syncer 启动时确定真实客户端版本并写入登记表（只写一次）
type Syncer struct {
	registry   *identity.VersionRegistry
	client     *http.Client
	envVersion string
	url        string
}

// New 创建 Syncer，未提供的字段使用默认值
func New(opts Options) *Syncer {
	if opts.Registry == nil {
		opts.Registry = identity.DefaultVersions
	}
	if opts.Client == nil {
		opts.Client = utils.SharedHTTPClient()
	}
	return &Syncer{
		registry:   opts.Registry,
		client:     opts.Client,
		envVersion: opts.EnvVersion,
		url:        opts.URL,
	}
}

// NewFromEnv 从环境变量读取版本来源，探测请求带 antigravity 身份请求头
func NewFromEnv(registry *identity.VersionRegistry) *Syncer {
	if registry == nil {
		registry = identity.DefaultVersions
	}
	client := &http.Client{
		Transport: &identity.Transport{
			Base:      utils.NewTransport(),
			Generator: identity.NewGenerator(registry),
			Style:     identity.StyleAntigravity,
		},
	}
	return New(Options{
		Registry:   registry,
		Client:     client,
		EnvVersion: config.ConfiguredVersion(),
		URL:        config.VersionURL(),
	})
}

// Sync 依次尝试环境变量和远程地址，返回同步后的当前版本
// 两者都不可用时保持兜底版本，仅远程拉取失败时返回错误
func (s *Syncer) Sync(ctx context.Context) (string, error) {
	if s.envVersion != "" {
		version, err := Normalize(s.envVersion)
		if err == nil {
			s.apply(version, "env")
			return s.registry.Current(), nil
		}
		logger.Warn("忽略无效的环境变量版本号",
			logger.String("value", s.envVersion),
			logger.Err(err))
	}

	if s.url == "" {
		logger.Debug("未配置版本探测地址，使用兜底版本",
			logger.String("version", s.registry.Current()))
		return s.registry.Current(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, config.VersionDiscoveryTimeout)
	defer cancel()

	raw, err := s.fetch(ctx)
	if err != nil {
		return s.registry.Current(), fmt.Errorf("拉取客户端版本失败: %w", err)
	}

	version, err := Normalize(raw)
	if err != nil {
		return s.registry.Current(), fmt.Errorf("远程版本号无效: %w", err)
	}

	s.apply(version, "remote")
	return s.registry.Current(), nil
}

func (s *Syncer) apply(version, source string) {
	if s.registry.Set(version) {
		logger.Info("客户端版本已同步",
			logger.String("version", version),
			logger.String("source", source))
		return
	}
	logger.Debug("客户端版本已锁定，忽略新值",
		logger.String("current", s.registry.Current()),
		logger.String("ignored", version),
		logger.String("source", source))
}

func (s *Syncer) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json, text/plain")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("版本接口返回状态码 %d", resp.StatusCode)
	}

	body, err := utils.ReadLimited(resp.Body, config.VersionResponseMaxBytes)
	if err != nil {
		return "", err
	}

	return parseVersionBody(body)
}

// parseVersionBody 支持 {"version":"x.y.z"} 或纯文本首行
func parseVersionBody(body []byte) (string, error) {
	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, "{") {
		var payload struct {
			Version string `json:"version"`
		}
		if err := utils.SafeUnmarshal([]byte(text), &payload); err != nil {
			return "", fmt.Errorf("解析版本JSON失败: %w", err)
		}
		return payload.Version, nil
	}

	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
		text = text[:idx]
	}
	return text, nil
}

// Normalize 去掉前缀 v 并校验语义化版本，如 "v1.20.0" -> "1.20.0"
func Normalize(raw string) (string, error) {
	version := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	if version == "" || !semver.IsValid("v"+version) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, raw)
	}
	return version, nil
}
