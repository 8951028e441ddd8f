package handlers

import (
	"net/http"

	"cloudcodeid/identity"
	sysconfig "cloudcodeid/internal/config"
	"cloudcodeid/internal/version"

	"github.com/gin-gonic/gin"
)

// handleGetSystemInfo 获取服务信息，settings 为已加载的配置文件内容（不含令牌）
func (h *Handler) handleGetSystemInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":        version.GetVersionInfo(),
		"client_version": h.generator.Versions().Current(),
		"default_style":  h.defaultStyle,
		"styles":         []identity.Style{identity.StyleGeminiCLI, identity.StyleAntigravity},
		"gin_mode":       gin.Mode(),
		"settings":       sysconfig.GetSystemConfig().Redacted(),
	})
}
