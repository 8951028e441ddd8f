package logging

import (
	srvcontext "cloudcodeid/internal/adapter/httpapi/context"
	"cloudcodeid/logger"

	"github.com/gin-gonic/gin"
)

// AddFields 附加请求ID等请求级字段
func AddFields(c *gin.Context, fields ...logger.Field) []logger.Field {
	out := make([]logger.Field, 0, len(fields)+2)
	if rid := srvcontext.GetRequestID(c); rid != "" {
		out = append(out, logger.String("request_id", rid))
	}
	out = append(out, logger.String("path", c.Request.URL.Path))
	out = append(out, fields...)
	return out
}
