package middleware

import (
	"context"
	"net"

	"github.com/gin-gonic/gin"
)

// unknownClientIP 无法解析出 IP 时使用的限流 key，所有此类请求共享一个桶
const unknownClientIP = "unknown"

// GetClientIP 获取客户端 IP。
// 只有 RemoteAddr 属于可信代理（engine.SetTrustedProxies）时才采信 X-Forwarded-For/X-Real-IP，
// 否则直接使用 RemoteAddr，防止客户端伪造请求头冒充他人 IP。
func GetClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// GetClientIPSafe 获取 IP 并校验格式
func GetClientIPSafe(c *gin.Context) (string, bool) {
	ip := GetClientIP(c)
	if ip == "" || net.ParseIP(ip) == nil {
		return "", false
	}
	return ip, true
}

// clientKey 限流/黑名单使用的客户端标识，解析失败时回退到 RemoteAddr，绝不返回空
func clientKey(c *gin.Context) string {
	if ip, ok := GetClientIPSafe(c); ok {
		return ip
	}
	if ip := c.RemoteIP(); ip != "" {
		return ip
	}
	return unknownClientIP
}

// ClientIPMiddleware 将客户端 IP 注入 Gin 上下文与 request context
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := GetClientIP(c)

		c.Set("client_ip", ip)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), "client_ip", ip))

		c.Next()
	}
}

// ClientIPFromGinContext 读取 ClientIPMiddleware 注入的 IP
func ClientIPFromGinContext(c *gin.Context) string {
	if ip, ok := c.Get("client_ip"); ok {
		if ipStr, ok := ip.(string); ok {
			return ipStr
		}
	}
	return ""
}
