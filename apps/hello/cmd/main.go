package main

import (
	"HelloServer/apps/hello/internal/handler"
	"HelloServer/apps/hello/internal/middleware"
	"HelloServer/apps/hello/internal/router"
	"HelloServer/apps/hello/internal/server"
	"HelloServer/config"
	"HelloServer/pkg/health"
	"HelloServer/pkg/logger"
	pkgredis "HelloServer/pkg/redis"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化日志
	l, err := logger.Build(config.DefaultLoggerConfig())
	if err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	logger.ReplaceGlobal(l)

	// 监听中断信号：Ctrl+C (SIGINT) 和 kill 命令 (SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, config.DefaultServerConfig(), config.DefaultRedisConfig(), config.DefaultRateLimitConfig())
	stop()

	if err != nil {
		logger.Error(context.Background(), "服务异常退出", logger.ErrorField("error", err))
	}
	// Sync 对 os.Stdout 可能返回错误，可以忽略
	_ = logger.L().Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run 组装依赖、绑定端口并提供服务，直到 ctx 结束后优雅停机。
// 只有绑定成功后才输出启动日志；绑定失败直接返回错误。
func run(ctx context.Context, serverCfg config.ServerConfig, redisCfg config.RedisConfig, rateLimitCfg config.RateLimitConfig) error {
	// 2. 初始化 Redis（可选，未配置或不可用时限流与黑名单降级为本地）
	redisClient, err := pkgredis.Build(redisCfg)
	switch {
	case errors.Is(err, pkgredis.ErrDisabled):
		logger.Debug(ctx, "未配置 Redis")
	case err != nil:
		logger.Warn(ctx, "初始化 Redis 失败，降级运行", logger.ErrorField("error", err))
		redisClient = nil
	default:
		logger.Info(ctx, "Redis 初始化成功", logger.String("addr", redisCfg.Addr))
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error(ctx, "关闭 Redis 连接失败", logger.ErrorField("error", err))
			}
		}()
	}

	// 3. 初始化中间件依赖
	metrics := middleware.NewMetrics()
	rateLimit, err := middleware.IPRateLimitMiddleware(rateLimitCfg, redisClient)
	if err != nil {
		return fmt.Errorf("init rate limiter: %w", err)
	}
	logger.Debug(ctx, "IP 限流配置",
		logger.Bool("enabled", rateLimitCfg.Enabled),
		logger.Float64("rate", rateLimitCfg.Rate),
		logger.Int("burst", rateLimitCfg.Burst),
	)

	// 4. 初始化路由
	gin.SetMode(serverCfg.GinMode)
	r, err := router.InitRouter(
		serverCfg.TrustedProxies,
		handler.NewHelloHandler(),
		metrics,
		health.NewHandler(health.NewChecker(redisClient)),
		rateLimit,
	)
	if err != nil {
		return err
	}

	// 5. 绑定端口
	srv := server.New(serverCfg, r)
	if err := srv.Listen(); err != nil {
		logger.Error(ctx, "端口绑定失败",
			logger.String("address", serverCfg.Addr()),
			logger.ErrorField("error", err),
		)
		return fmt.Errorf("listen %s: %w", serverCfg.Addr(), err)
	}
	addr := srv.Addr().String()
	port := serverCfg.Port
	if tcpAddr, ok := srv.Addr().(*net.TCPAddr); ok {
		port = tcpAddr.Port
	}
	logger.Info(ctx, fmt.Sprintf("Server is up on http://localhost:%d", port),
		logger.String("address", addr),
	)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve()
	}()

	// 6. 优雅停机
	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		logger.Info(context.Background(), "收到关闭信号，开始优雅停机...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-serveErr; err != nil {
		return err
	}

	logger.Info(context.Background(), "服务器已优雅退出")
	return nil
}
