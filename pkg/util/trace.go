package util

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderXRequestID = "X-Request-ID"

	// 上游传入的 ID 超过该长度时视为不可信，重新生成
	maxRequestIDLen = 128
)

// TraceLogger 追踪中间件：沿用上游（Nginx/Ingress）传入的 X-Request-ID，没有则生成，
// 写入 Gin 上下文与 request context，并回写到响应头
func TraceLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := c.GetHeader(HeaderXRequestID)
		if traceId == "" || len(traceId) > maxRequestIDLen {
			traceId = uuid.NewString()
		}

		c.Set("trace_id", traceId)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), "trace_id", traceId))
		c.Header(HeaderXRequestID, traceId)

		c.Next()
	}
}
