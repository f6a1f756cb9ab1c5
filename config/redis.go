package config

import (
	"os"
	"time"
)

// RedisConfig Redis 连接配置。
// Addr 为空表示不启用 Redis，依赖 Redis 的功能（分布式限流、黑名单）自动降级。
type RedisConfig struct {
	Addr         string        `json:"addr" yaml:"addr"`
	Password     string        `json:"password" yaml:"password"`
	DB           int           `json:"db" yaml:"db"`
	DialTimeout  time.Duration `json:"dialTimeout" yaml:"dialTimeout"`
	ReadTimeout  time.Duration `json:"readTimeout" yaml:"readTimeout"`
	WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
	PoolSize     int           `json:"poolSize" yaml:"poolSize"`
}

// DefaultRedisConfig 返回默认配置，地址读取 HELLO_REDIS_ADDR
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:         os.Getenv("HELLO_REDIS_ADDR"),
		Password:     os.Getenv("HELLO_REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
		PoolSize:     20,
	}
}
