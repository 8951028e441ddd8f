package handlers

import (
	"net/http"

	"cloudcodeid/identity"
	logutil "cloudcodeid/internal/adapter/httpapi/logging"
	"cloudcodeid/internal/adapter/httpapi/support"
	"cloudcodeid/internal/versionsync"
	"cloudcodeid/logger"

	"github.com/gin-gonic/gin"
)

// handleHeaders GET /v1/headers?style=&model=
func (h *Handler) handleHeaders(c *gin.Context) {
	style, err := h.resolveStyle(c.Query("style"))
	if err != nil {
		support.HandleIdentityError(c, err)
		return
	}

	headers, err := h.generator.Headers(style, c.Query("model"))
	if err != nil {
		support.HandleIdentityError(c, err)
		return
	}

	logger.Debug("生成身份请求头",
		logutil.AddFields(c,
			logger.String("style", string(style)),
			logger.String("user_agent", headers.UserAgent))...)
	c.JSON(http.StatusOK, headers)
}

func (h *Handler) handleGenerateFingerprint(c *gin.Context) {
	c.JSON(http.StatusOK, h.generator.GenerateFingerprint())
}

func (h *Handler) handleCurrentFingerprint(c *gin.Context) {
	c.JSON(http.StatusOK, h.generator.CollectCurrentFingerprint())
}

// handleRefreshFingerprint 把旧指纹中的版本号更新为当前版本
func (h *Handler) handleRefreshFingerprint(c *gin.Context) {
	var fp identity.Fingerprint
	if err := c.ShouldBindJSON(&fp); err != nil {
		support.HandleBindError(c, err)
		return
	}

	changed := h.generator.UpdateFingerprintVersion(&fp)
	headers, err := fp.Headers()
	if err != nil {
		support.RespondError(c, http.StatusInternalServerError, "生成请求头失败: %v", err)
		return
	}
	if changed {
		logger.Info("指纹版本已更新",
			logutil.AddFields(c,
				logger.String("device_id", fp.DeviceID),
				logger.String("user_agent", fp.UserAgent))...)
	}

	c.JSON(http.StatusOK, gin.H{
		"fingerprint": fp,
		"headers":     headers,
		"changed":     changed,
	})
}

func (h *Handler) handleGetVersion(c *gin.Context) {
	versions := h.generator.Versions()
	c.JSON(http.StatusOK, gin.H{
		"version":  versions.Current(),
		"fallback": identity.FallbackVersion,
		"locked":   versions.Locked(),
	})
}

// handleSetVersion 首次写入生效，之后的写入返回 applied=false
func (h *Handler) handleSetVersion(c *gin.Context) {
	var req struct {
		Version string `json:"version" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		support.HandleBindError(c, err)
		return
	}

	version, err := versionsync.Normalize(req.Version)
	if err != nil {
		support.RespondError(c, http.StatusBadRequest, "%v", err)
		return
	}

	versions := h.generator.Versions()
	applied := versions.Set(version)
	logger.Info("收到版本写入请求",
		logutil.AddFields(c,
			logger.String("requested", version),
			logger.String("current", versions.Current()),
			logger.Bool("applied", applied))...)

	c.JSON(http.StatusOK, gin.H{
		"version": versions.Current(),
		"applied": applied,
		"locked":  versions.Locked(),
	})
}
