package handlers

import (
	"net/http"

	"cloudcodeid/identity"
	logutil "cloudcodeid/internal/adapter/httpapi/logging"
	"cloudcodeid/internal/adapter/httpapi/support"
	"cloudcodeid/logger"

	"github.com/gin-gonic/gin"
)

type Options struct {
	Generator    *identity.Generator
	DefaultStyle identity.Style
}

type Handler struct {
	generator    *identity.Generator
	defaultStyle identity.Style
}

func New(opts Options) *Handler {
	if opts.Generator == nil {
		opts.Generator = identity.NewGenerator(identity.DefaultVersions)
	}
	if opts.DefaultStyle == "" {
		opts.DefaultStyle = identity.StyleAntigravity
	}
	return &Handler{
		generator:    opts.Generator,
		defaultStyle: opts.DefaultStyle,
	}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/api/system/info", h.handleGetSystemInfo)

	r.GET("/v1/headers", h.handleHeaders)
	r.POST("/v1/fingerprints", h.handleGenerateFingerprint)
	r.GET("/v1/fingerprints/current", h.handleCurrentFingerprint)
	r.POST("/v1/fingerprints/refresh", h.handleRefreshFingerprint)
	r.GET("/v1/version", h.handleGetVersion)
	r.PUT("/v1/version", h.handleSetVersion)

	r.NoRoute(func(c *gin.Context) {
		logger.Warn("访问未知端点",
			logutil.AddFields(c, logger.String("method", c.Request.Method))...)
		support.RespondError(c, http.StatusNotFound, "未找到: %s", c.Request.URL.Path)
	})
}

// resolveStyle 未指定 style 参数时使用默认类型
func (h *Handler) resolveStyle(raw string) (identity.Style, error) {
	if raw == "" {
		return h.defaultStyle, nil
	}
	return identity.ParseStyle(raw)
}
