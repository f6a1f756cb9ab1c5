package result

import (
	"HelloServer/consts"

	"github.com/gin-gonic/gin"
)

// Response 响应结构体
type Response struct {
	Code    int32       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	TraceId string      `json:"trace_id"`
}

// Result 返回响应
func Result(c *gin.Context, httpStatus int, data interface{}, message string, code int32) {
	traceId := c.GetString("trace_id")
	if message == "" {
		message = consts.GetMessage(code)
	}
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Data:    data,
		TraceId: traceId,
	})
}

// Abort 以指定 HTTP 状态码返回错误响应并中断后续 handler。
// 中间件拒绝请求（限流、黑名单、panic 兜底）时使用。
func Abort(c *gin.Context, httpStatus int, code int32) {
	Result(c, httpStatus, nil, "", code)
	c.Abort()
}
