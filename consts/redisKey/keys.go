package rediskey

import "fmt"

// ==================== 限流 Key 构造函数 ====================

// IPBlacklistKey IP 黑名单 Key: hello:blacklist:ips
func IPBlacklistKey() string {
	return "hello:blacklist:ips"
}

// IPRateLimitKey IP 限流 Key: hello:rate:limit:ip:{ip}
func IPRateLimitKey(ip string) string {
	return fmt.Sprintf("hello:rate:limit:ip:%s", ip)
}
