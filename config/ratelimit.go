package config

import (
	"os"
	"strconv"

	rediskey "HelloServer/consts/redisKey"
)

// RateLimitConfig IP 限流配置（令牌桶）
type RateLimitConfig struct {
	Enabled      bool    `json:"enabled" yaml:"enabled"`
	Rate         float64 `json:"rate" yaml:"rate"`                 // 每秒产生的令牌数
	Burst        int     `json:"burst" yaml:"burst"`               // 令牌桶容量
	MaxEntries   int     `json:"maxEntries" yaml:"maxEntries"`     // 本地限流器最多跟踪的 IP 数
	BlacklistKey string  `json:"blacklistKey" yaml:"blacklistKey"` // Redis 黑名单 Set 的 key
}

// DefaultRateLimitConfig 返回默认配置。
// 默认关闭：根路径对任意请求都返回 200；HELLO_RATE_LIMIT=true 时开启。
func DefaultRateLimitConfig() RateLimitConfig {
	enabled, _ := strconv.ParseBool(os.Getenv("HELLO_RATE_LIMIT"))
	return RateLimitConfig{
		Enabled:      enabled,
		Rate:         1000,
		Burst:        2000,
		MaxEntries:   10000,
		BlacklistKey: rediskey.IPBlacklistKey(),
	}
}
