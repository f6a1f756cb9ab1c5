package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"HelloServer/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(port int) config.ServerConfig {
	cfg := config.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = port
	cfg.ShutdownTimeout = time.Second
	return cfg
}

var hello = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = io.WriteString(w, "Hello world\n")
})

func TestServerLifecycle(t *testing.T) {
	srv := New(testConfig(0), hello)
	assert.Nil(t, srv.Addr())

	require.NoError(t, srv.Listen())
	require.NotNil(t, srv.Addr())

	done := make(chan error, 1)
	go func() { done <- srv.Serve() }()

	resp, err := http.Get("http://" + srv.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello world\n", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err, "优雅关闭不应返回错误")
	case <-time.After(2 * time.Second):
		t.Fatal("Serve 未在关闭后返回")
	}
}

func TestServerPortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	srv := New(testConfig(port), hello)
	err = srv.Listen()
	assert.Error(t, err)
	assert.Nil(t, srv.Addr())

	// Serve 未监听时会先尝试绑定，同样返回错误
	assert.Error(t, srv.Serve())
}
