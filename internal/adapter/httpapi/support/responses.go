package support

import (
	"errors"
	"fmt"
	"net/http"

	"cloudcodeid/identity"
	logutil "cloudcodeid/internal/adapter/httpapi/logging"
	"cloudcodeid/logger"

	"github.com/gin-gonic/gin"
)

func RespondErrorWithCode(c *gin.Context, statusCode int, code string, format string, args ...any) {
	c.JSON(statusCode, gin.H{
		"error": gin.H{
			"message": fmt.Sprintf(format, args...),
			"code":    code,
		},
	})
}

func RespondError(c *gin.Context, statusCode int, format string, args ...any) {
	var code string
	switch statusCode {
	case http.StatusBadRequest:
		code = "bad_request"
	case http.StatusUnauthorized:
		code = "unauthorized"
	case http.StatusForbidden:
		code = "forbidden"
	case http.StatusNotFound:
		code = "not_found"
	default:
		code = "internal_error"
	}
	RespondErrorWithCode(c, statusCode, code, format, args...)
}

// HandleIdentityError 把生成器错误映射为HTTP响应
func HandleIdentityError(c *gin.Context, err error) {
	if errors.Is(err, identity.ErrInvalidStyle) {
		logger.Warn("不支持的客户端类型", logutil.AddFields(c, logger.Err(err))...)
		RespondErrorWithCode(c, http.StatusBadRequest, "invalid_style", "%v", err)
		return
	}
	logger.Error("生成身份信息失败", logutil.AddFields(c, logger.Err(err))...)
	RespondError(c, http.StatusInternalServerError, "生成身份信息失败: %v", err)
}

func HandleBindError(c *gin.Context, err error) {
	logger.Warn("请求体解析失败", logutil.AddFields(c, logger.Err(err))...)
	RespondError(c, http.StatusBadRequest, "请求体无效: %v", err)
}
