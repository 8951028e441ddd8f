package runtime

import (
	"context"
	"fmt"

	"cloudcodeid/config"
	"cloudcodeid/identity"
	"cloudcodeid/internal/adapter/httpapi"
	"cloudcodeid/internal/version"
	"cloudcodeid/internal/versionsync"
	"cloudcodeid/logger"
)

type Options struct {
	Port        string
	ClientToken string
	// Syncer 为空时从环境变量构建
	Syncer *versionsync.Syncer
}

type Runtime struct {
	server    *httpapi.Server
	generator *identity.Generator
	syncer    *versionsync.Syncer
}

func New(opts Options) (*Runtime, error) {
	if opts.Port == "" {
		opts.Port = config.DefaultPort
	}

	defaultStyle, err := identity.ParseStyle(config.DefaultStyle())
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_STYLE 配置无效: %w", err)
	}

	if config.IsStealthModeEnabled() {
		logger.Info("Stealth 模式已启用，随机化TLS指纹",
			logger.String("http2_mode", config.HTTP2Mode()))
	}

	syncer := opts.Syncer
	if syncer == nil {
		syncer = versionsync.NewFromEnv(identity.DefaultVersions)
	}

	generator := identity.NewGenerator(identity.DefaultVersions)

	server, err := httpapi.New(httpapi.Options{
		Port:         opts.Port,
		ClientToken:  opts.ClientToken,
		Generator:    generator,
		DefaultStyle: defaultStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("创建HTTP服务器失败: %w", err)
	}

	return &Runtime{
		server:    server,
		generator: generator,
		syncer:    syncer,
	}, nil
}

// Run 先同步客户端版本，再启动HTTP服务
// 版本同步失败不阻止启动，继续使用兜底版本
func (a *Runtime) Run(ctx context.Context) error {
	current, err := a.syncer.Sync(ctx)
	if err != nil {
		logger.Warn("客户端版本同步失败，使用当前版本",
			logger.String("version", current),
			logger.Err(err))
	}

	logger.Info("启动"+version.GetVersionInfo(),
		logger.String("port", a.server.Port()),
		logger.String("client_version", current))
	logger.Info("可用端点:")
	logger.Info("  GET  /health                    - 健康检查")
	logger.Info("  GET  /api/system/info           - 服务信息")
	logger.Info("  GET  /v1/headers                - 生成身份请求头")
	logger.Info("  POST /v1/fingerprints           - 生成新指纹")
	logger.Info("  GET  /v1/fingerprints/current   - 采集本机指纹")
	logger.Info("  POST /v1/fingerprints/refresh   - 更新指纹版本号")
	logger.Info("  GET  /v1/version                - 当前客户端版本")
	logger.Info("  PUT  /v1/version                - 写入客户端版本（仅首次生效）")

	return a.server.Start(ctx)
}

func (a *Runtime) Generator() *identity.Generator {
	return a.generator
}
