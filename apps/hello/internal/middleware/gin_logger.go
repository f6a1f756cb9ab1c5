package middleware

import (
	"HelloServer/pkg/logger"
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// slowRequestThreshold 超过该耗时的请求按慢请求记录
const slowRequestThreshold = 2 * time.Second

// NewContextWithGin 从 gin.Context 创建携带 trace_id、client_ip 的 context.Context，
// 供日志系统及下游调用使用
func NewContextWithGin(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if traceId, ok := c.Get("trace_id"); ok {
		ctx = context.WithValue(ctx, "trace_id", traceId)
	}
	if clientIP, ok := c.Get("client_ip"); ok {
		ctx = context.WithValue(ctx, "client_ip", clientIP)
	}
	return ctx
}

// GinLogger 请求日志中间件。
// 请求开始记 debug；只有服务端错误(5xx)和慢请求(>2s)记 warn，正常请求不刷屏。
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		clientIP := ClientIPFromGinContext(c)
		if clientIP == "" {
			clientIP = c.ClientIP()
		}
		ctx := NewContextWithGin(c)

		logger.Debug(ctx, "请求开始",
			logger.String("method", c.Request.Method),
			logger.String("path", path),
			logger.String("query", query),
			logger.String("ip", clientIP),
		)

		c.Next()

		cost := time.Since(start)
		status := c.Writer.Status()

		if status >= 500 || cost > slowRequestThreshold {
			logger.Warn(ctx, "慢请求或服务端错误",
				logger.Int("status", status),
				logger.String("method", c.Request.Method),
				logger.String("path", path),
				logger.String("query", query),
				logger.String("ip", clientIP),
				logger.String("user-agent", c.Request.UserAgent()),
				logger.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
				logger.Duration("cost", cost),
			)
		}
	}
}
