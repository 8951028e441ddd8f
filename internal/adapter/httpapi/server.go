package httpapi

import (
	"context"
	"errors"
	"net/http"
	"os"

	"cloudcodeid/config"
	"cloudcodeid/identity"
	"cloudcodeid/internal/adapter/httpapi/handlers"
	"cloudcodeid/internal/adapter/httpapi/middleware"
	"cloudcodeid/logger"
	"cloudcodeid/utils"

	"github.com/gin-gonic/gin"
)

type Options struct {
	Port         string
	ClientToken  string
	Generator    *identity.Generator
	DefaultStyle identity.Style
}

type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	opts       Options
}

func New(opts Options) (*Server, error) {
	if opts.Generator == nil {
		return nil, errors.New("Generator 未初始化")
	}
	if opts.ClientToken == "" {
		return nil, errors.New("必须提供客户端认证token")
	}
	if opts.Port == "" {
		opts.Port = config.DefaultPort
	}

	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "" {
		ginMode = gin.ReleaseMode
		if utils.IsDebugMode() {
			ginMode = gin.DebugMode
		}
	}
	gin.SetMode(ginMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.PathBasedAuthMiddleware(opts.ClientToken, []string{"/v1"}))

	handlers.New(handlers.Options{
		Generator:    opts.Generator,
		DefaultStyle: opts.DefaultStyle,
	}).Register(engine)

	return &Server{
		engine: engine,
		httpServer: &http.Server{
			Addr:    ":" + opts.Port,
			Handler: engine,
		},
		opts: opts,
	}, nil
}

// Handler 返回路由，便于测试直接调用
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("启动HTTP服务器", logger.String("port", s.opts.Port))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

func (s *Server) Port() string {
	return s.opts.Port
}
