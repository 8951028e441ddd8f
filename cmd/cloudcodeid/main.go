package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cloudcodeid/config"
	sysconfig "cloudcodeid/internal/config"
	"cloudcodeid/internal/runtime"
	"cloudcodeid/logger"
	"cloudcodeid/utils"

	"github.com/joho/godotenv"
)

func main() {
	// .env 不存在时直接使用进程环境变量
	if err := godotenv.Load(); err != nil {
		logger.Debug(".env 文件不存在，使用环境变量")
	} else {
		logger.Info("已从 .env 文件加载配置")
	}

	if _, err := sysconfig.LoadSystemConfig(sysconfig.SystemConfigFile()); err != nil {
		logger.Warn("加载系统配置失败，忽略配置文件", logger.Err(err))
	}

	logger.Reinitialize()

	options := runtime.Options{}
	if len(os.Args) > 1 {
		options.Port = os.Args[1]
	}
	options.Port = utils.GetEnvWithDefault("PORT", options.Port)

	options.ClientToken = config.ClientToken()
	if options.ClientToken == "" {
		logger.Error("致命错误: 未设置 IDENTITY_CLIENT_TOKEN 环境变量")
		os.Exit(1)
	}

	application, err := runtime.New(options)
	if err != nil {
		logger.Error("应用初始化失败", logger.Err(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("服务器运行失败", logger.Err(err))
		os.Exit(1)
	}
}
