package router

import (
	"HelloServer/apps/hello/internal/handler"
	"HelloServer/apps/hello/internal/middleware"
	"HelloServer/pkg/util"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// InitRouter 初始化路由
// trustedProxies: 可信代理，为空时客户端 IP 只取 RemoteAddr
// rateLimit: 可为 nil，表示根路径不做限流
func InitRouter(trustedProxies []string, helloHandler *handler.HelloHandler, metrics *middleware.Metrics, healthHandler http.Handler, rateLimit gin.HandlerFunc) (*gin.Engine, error) {
	r := gin.New()

	// gin 默认信任所有代理，必须显式收紧
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	// 恢复中间件
	r.Use(middleware.GinRecovery(true))

	// 追踪中间件 (生成 trace_id)
	r.Use(util.TraceLogger())

	// 客户端 IP 中间件
	r.Use(middleware.ClientIPMiddleware())

	// 日志中间件
	r.Use(middleware.GinLogger())

	// Prometheus 监控中间件
	r.Use(middleware.PrometheusMiddleware(metrics))

	// 探针接口不限流
	r.GET("/health", gin.WrapH(healthHandler))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	root := []gin.HandlerFunc{helloHandler.Hello}
	if rateLimit != nil {
		root = append([]gin.HandlerFunc{rateLimit}, root...)
	}
	r.GET("/", root...)
	r.HEAD("/", root...)

	return r, nil
}
