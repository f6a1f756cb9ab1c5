package middleware

import (
	"errors"
	"net"
	"net/http"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"

	"HelloServer/consts"
	"HelloServer/pkg/logger"
	"HelloServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// GinRecovery 捕获 handler 中的 panic，记录日志后返回 500。
// stack: 是否在日志中附带堆栈。
func GinRecovery(stack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			ctx := NewContextWithGin(c)
			httpRequest, _ := httputil.DumpRequest(c.Request, false)

			// 客户端断开连接（broken pipe）时无需再写响应
			if isBrokenPipe(rec) {
				logger.Error(ctx, "连接已断开",
					logger.String("path", c.Request.URL.Path),
					logger.Any("error", rec),
					logger.String("request", string(httpRequest)),
				)
				c.Abort()
				return
			}

			if stack {
				logger.Error(ctx, "panic 已恢复",
					logger.Any("error", rec),
					logger.String("request", string(httpRequest)),
					logger.String("stack", string(debug.Stack())),
				)
			} else {
				logger.Error(ctx, "panic 已恢复",
					logger.Any("error", rec),
					logger.String("request", string(httpRequest)),
				)
			}
			result.Abort(c, http.StatusInternalServerError, consts.CodeInternalError)
		}()
		c.Next()
	}
}

func isBrokenPipe(rec any) bool {
	err, ok := rec.(error)
	if !ok {
		return false
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if !errors.As(opErr, &sysErr) {
		return false
	}
	msg := strings.ToLower(sysErr.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
