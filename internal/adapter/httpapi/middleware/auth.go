package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"cloudcodeid/config"
	logutil "cloudcodeid/internal/adapter/httpapi/logging"
	"cloudcodeid/internal/adapter/httpapi/support"
	"cloudcodeid/logger"

	"github.com/gin-gonic/gin"
)

// PathBasedAuthMiddleware 只校验 protectedPrefixes 下的路径
// 优先使用环境变量中的最新token，支持热更新
func PathBasedAuthMiddleware(authToken string, protectedPrefixes []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !requiresAuth(path, protectedPrefixes) {
			c.Next()
			return
		}

		currentToken := config.ClientToken()
		if currentToken == "" {
			currentToken = authToken
		}

		if !validateAPIKey(c, currentToken) {
			c.Abort()
			return
		}

		c.Next()
	}
}

func requiresAuth(path string, protectedPrefixes []string) bool {
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func validateAPIKey(c *gin.Context, authToken string) bool {
	provided := extractAPIKey(c)
	if provided == "" {
		logger.Warn("请求缺少Authorization或x-api-key头", logutil.AddFields(c)...)
		support.RespondError(c, http.StatusUnauthorized, "缺少认证信息")
		return false
	}

	if subtle.ConstantTimeCompare([]byte(provided), []byte(authToken)) != 1 {
		logger.Warn("token验证失败",
			logutil.AddFields(c, logger.String("provided_suffix", maskTokenSuffix(provided)))...)
		support.RespondError(c, http.StatusUnauthorized, "认证失败")
		return false
	}

	return true
}

// maskTokenSuffix 只显示token的最后4位
func maskTokenSuffix(token string) string {
	if len(token) <= 4 {
		return "***"
	}
	return "***" + token[len(token)-4:]
}

func extractAPIKey(c *gin.Context) string {
	if apiKey := c.GetHeader("Authorization"); apiKey != "" {
		return strings.TrimPrefix(apiKey, "Bearer ")
	}
	return c.GetHeader("x-api-key")
}
