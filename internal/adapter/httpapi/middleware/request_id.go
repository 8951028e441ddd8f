package middleware

import (
	"cloudcodeid/internal/adapter/httpapi/context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = "req_" + uuid.NewString()
		}
		context.SetRequestID(c, rid)
		c.Next()
	}
}
