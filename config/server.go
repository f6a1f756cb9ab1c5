package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig HTTP 服务运行参数
type ServerConfig struct {
	Host string `json:"host" yaml:"host"` // 监听地址，空表示所有网卡
	Port int    `json:"port" yaml:"port"` // 监听端口

	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
	ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
	WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
	ShutdownTimeout   time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"` // 优雅停机等待时间

	GinMode string `json:"ginMode" yaml:"ginMode"` // release/debug/test

	// 可信代理网段，只有来自这些地址的 X-Forwarded-For/X-Real-IP 才会被采信。
	// 为空表示不信任任何代理，客户端 IP 取 RemoteAddr。
	TrustedProxies []string `json:"trustedProxies" yaml:"trustedProxies"`
}

// DefaultServerConfig 返回默认配置。
// 默认监听 0.0.0.0:3000；HELLO_ADDR 可覆盖监听地址，GIN_MODE 可覆盖 Gin 模式，
// HELLO_TRUSTED_PROXIES 以逗号分隔配置可信代理。
func DefaultServerConfig() ServerConfig {
	cfg := ServerConfig{
		Host:              "",
		Port:              3000,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   30 * time.Second,
		GinMode:           "release",
	}

	if addr := os.Getenv("HELLO_ADDR"); addr != "" {
		if host, port, err := net.SplitHostPort(addr); err == nil {
			if p, err := strconv.Atoi(port); err == nil {
				cfg.Host = host
				cfg.Port = p
			}
		}
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		cfg.GinMode = mode
	}
	for _, p := range strings.Split(os.Getenv("HELLO_TRUSTED_PROXIES"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			cfg.TrustedProxies = append(cfg.TrustedProxies, p)
		}
	}
	return cfg
}

// Addr 返回 http.Server 使用的监听地址，如 ":3000"
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
