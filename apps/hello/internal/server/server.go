package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"HelloServer/config"
)

// Server 对 http.Server 的轻量封装。
// 监听与服务拆成两步：Listen 成功后调用方才输出启动日志，绑定失败可立即感知。
type Server struct {
	httpServer *http.Server
	listener   net.Listener
}

// New 包装 HTTP Server
func New(cfg config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			MaxHeaderBytes:    1 << 20, // 最大请求头 1MB
		},
	}
}

// Listen 绑定 TCP 端口（unbound -> listening）。端口被占用等错误直接返回。
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	return nil
}

// Addr 返回实际绑定的地址；端口为 0 时可借此拿到系统分配的端口
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve 阻塞处理请求，直到 Shutdown。优雅关闭时返回 nil。
func (s *Server) Serve() error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 执行优雅停机，等待进行中的请求完成。
// 调用方需要传入带超时的 ctx，以防止无限等待。
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
