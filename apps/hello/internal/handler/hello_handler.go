package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HelloMessage GET / 的固定响应体
const HelloMessage = "Hello world\n"

// HelloHandler 根路径处理器
type HelloHandler struct {
	message string
}

// NewHelloHandler 创建根路径处理器
func NewHelloHandler() *HelloHandler {
	return &HelloHandler{message: HelloMessage}
}

// Hello 返回固定文本。无状态、无副作用，可被任意并发调用。
// GET /
func (h *HelloHandler) Hello(c *gin.Context) {
	c.String(http.StatusOK, h.message)
}
