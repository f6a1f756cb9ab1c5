package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"HelloServer/config"
	"HelloServer/consts"
	rediskey "HelloServer/consts/redisKey"
	"HelloServer/pkg/logger"
	"HelloServer/pkg/result"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// ==================== Redis 令牌桶 Lua 脚本 ====================

// luaTokenBucketRedis 原子性地补充令牌并判断是否允许通过
//
//	KEYS[1]: 限流 key
//	ARGV[1]: 当前时间戳 (毫秒)
//	ARGV[2]: 令牌桶容量
//	ARGV[3]: 每秒产生的令牌数
//	ARGV[4]: 每次请求消耗的令牌数
//
// 返回 1 允许通过，0 令牌不足
const luaTokenBucketRedis = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local rate = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])

local info = redis.call('HMGET', key, 'tokens', 'last_time')
local current_tokens = tonumber(info[1])
local last_time = tonumber(info[2])

if current_tokens == nil then
    current_tokens = capacity
end
if last_time == nil then
    last_time = now
end

local time_diff = math.max(0, now - last_time)
local new_tokens = math.floor((time_diff * rate) / 1000)

-- 只有产生了新令牌才推进时间，防止精度丢失
if new_tokens > 0 then
    current_tokens = math.min(capacity, current_tokens + new_tokens)
    last_time = now
end

local allowed = 0
if current_tokens >= requested then
    current_tokens = current_tokens - requested
    allowed = 1
end

redis.call('HMSET', key, 'tokens', current_tokens, 'last_time', last_time)

-- 过期时间：桶填满所需时间 * 2，至少 60 秒
local fill_time = math.ceil(capacity / rate)
local ttl = math.max(60, fill_time * 2)
redis.call('EXPIRE', key, ttl)

return allowed
`

// redisOpTimeout 单次 Redis 操作的超时，防止 Redis 响应慢拖死请求
const redisOpTimeout = 50 * time.Millisecond

// ==================== Redis 限流器 ====================

// RedisRateLimiter 基于 Redis 的分布式令牌桶，多实例部署时共享配额
type RedisRateLimiter struct {
	client *redis.Client
	rate   float64
	burst  int
	now    func() time.Time
}

// NewRedisRateLimiter 创建 Redis 限流器
func NewRedisRateLimiter(client *redis.Client, rate float64, burst int) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		rate:   rate,
		burst:  burst,
		now:    time.Now,
	}
}

// Allow 检查 key 是否还有令牌。Redis 出错时返回 error，由调用方决定降级策略。
func (r *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	res, err := r.client.Eval(redisCtx, luaTokenBucketRedis, []string{key},
		r.now().UnixMilli(), r.burst, r.rate, 1).Result()
	if err != nil {
		return false, fmt.Errorf("eval token bucket %s: %w", key, err)
	}

	allowed, ok := res.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected token bucket result %T", res)
	}
	return allowed == 1, nil
}

// CheckBlacklist 检查 IP 是否在黑名单 Set 中
func CheckBlacklist(ctx context.Context, client *redis.Client, blacklistKey, ip string) (bool, error) {
	redisCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	return client.SIsMember(redisCtx, blacklistKey, ip).Result()
}

// ==================== 本地限流器 ====================

// LocalRateLimiter 进程内按 key 的令牌桶。
// 使用 LRU 限制跟踪的 key 数量，被淘汰的 key 下次访问时重新拿到满桶。
type LocalRateLimiter struct {
	rate  rate.Limit
	burst int

	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
}

// NewLocalRateLimiter 创建本地限流器
func NewLocalRateLimiter(r float64, burst, maxEntries int) (*LocalRateLimiter, error) {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	cache, err := lru.New[string, *rate.Limiter](maxEntries)
	if err != nil {
		return nil, err
	}
	return &LocalRateLimiter{
		rate:     rate.Limit(r),
		burst:    burst,
		limiters: cache,
	}, nil
}

// Allow 消耗 key 的一个令牌
func (l *LocalRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters.Add(key, limiter)
	}
	l.mu.Unlock()

	return limiter.Allow()
}

// ==================== IP 限流中间件 ====================

// IPRateLimitMiddleware IP 级别限流中间件。
// client 非空时先查黑名单，再走 Redis 令牌桶；Redis 不可用或未配置时降级为本地令牌桶。
// cfg.Enabled 为 false 时返回 nil，调用方不挂载该中间件。
func IPRateLimitMiddleware(cfg config.RateLimitConfig, client *redis.Client) (gin.HandlerFunc, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	local, err := NewLocalRateLimiter(cfg.Rate, cfg.Burst, cfg.MaxEntries)
	if err != nil {
		return nil, err
	}
	var remote *RedisRateLimiter
	if client != nil {
		remote = NewRedisRateLimiter(client, cfg.Rate, cfg.Burst)
	}

	return func(c *gin.Context) {
		ctx := NewContextWithGin(c)
		ip := clientKey(c)

		if client != nil {
			blocked, err := CheckBlacklist(ctx, client, cfg.BlacklistKey, ip)
			if err != nil {
				logger.Warn(ctx, "Redis 黑名单检查失败，降级放行",
					logger.String("ip", ip),
					logger.ErrorField("error", err),
				)
			} else if blocked {
				logger.Warn(ctx, "IP 在黑名单中，拒绝访问",
					logger.String("ip", ip),
					logger.String("path", c.Request.URL.Path),
					logger.String("method", c.Request.Method),
				)
				result.Abort(c, http.StatusForbidden, consts.CodeAccessDenied)
				return
			}
		}

		var allowed bool
		if remote != nil {
			var err error
			allowed, err = remote.Allow(ctx, rediskey.IPRateLimitKey(ip))
			if err != nil {
				logger.Warn(ctx, "Redis 限流检查失败，降级为本地限流",
					logger.String("ip", ip),
					logger.ErrorField("error", err),
				)
				allowed = local.Allow(ip)
			}
		} else {
			allowed = local.Allow(ip)
		}

		if !allowed {
			logger.Warn(ctx, "IP 请求被限流",
				logger.String("ip", ip),
				logger.String("path", c.Request.URL.Path),
				logger.String("method", c.Request.Method),
			)
			result.Abort(c, http.StatusTooManyRequests, consts.CodeTooManyRequests)
			return
		}

		c.Next()
	}, nil
}
