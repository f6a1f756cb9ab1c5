package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"HelloServer/pkg/logger"

	"github.com/alexliesenfeld/health"
	"github.com/redis/go-redis/v9"
)

// checkTimeout 单个检查项的超时
const checkTimeout = 2 * time.Second

// NewChecker 创建健康检查器。
// client 为空时不注册任何检查项，结果恒为 up（Redis 本就是可选依赖）。
func NewChecker(client *redis.Client) health.Checker {
	var lastStatus health.AvailabilityStatus
	var lastStatusMu sync.Mutex

	opts := []health.CheckerOption{
		// 同步检查，短时间缓存，避免探针频繁打到 Redis
		health.WithCacheDuration(time.Second),
		health.WithTimeout(checkTimeout),
		health.WithStatusListener(func(ctx context.Context, state health.CheckerState) {
			lastStatusMu.Lock()
			prev := lastStatus
			lastStatus = state.Status
			lastStatusMu.Unlock()

			if prev == state.Status {
				return
			}
			logger.Info(ctx, "健康状态变化", logger.String("status", string(state.Status)))
		}),
	}
	if client != nil {
		opts = append(opts, health.WithCheck(redisCheck(client)))
	}
	return health.NewChecker(opts...)
}

func redisCheck(client *redis.Client) health.Check {
	return health.Check{
		Name:    "redis",
		Timeout: checkTimeout,
		Check: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}
}

// NewHandler 返回 /health 接口：全部通过 200，任一失败 503
func NewHandler(checker health.Checker) http.Handler {
	return health.NewHandler(checker)
}
