package logger

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"HelloServer/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{in: "debug", want: zapcore.DebugLevel},
		{in: "WARN", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "", want: zapcore.InfoLevel},
		{in: "verbose", want: zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestBuildWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.log")

	l, err := Build(config.LoggerConfig{
		Level:       "info",
		Encoding:    "json",
		OutputPaths: []string{path},
	})
	require.NoError(t, err)

	ReplaceGlobal(l)
	defer ReplaceGlobal(nil)

	ctx := context.WithValue(context.Background(), "trace_id", "t-1")
	Info(ctx, "Server is up on http://localhost:3000", Int("port", 3000))
	Debug(ctx, "filtered")
	require.NoError(t, l.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Server is up on http://localhost:3000", entry["msg"])
	assert.Equal(t, "t-1", entry["trace_id"])
	assert.EqualValues(t, 3000, entry["port"])
}

func TestTraceIDAttached(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ReplaceGlobal(zap.New(core))
	defer ReplaceGlobal(nil)

	Warn(context.WithValue(context.Background(), "trace_id", "abc"), "with trace")
	Error(nil, "no ctx")
	Info(context.Background(), "no trace")

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	assert.Equal(t, "abc", entries[0].ContextMap()["trace_id"])
	assert.NotContains(t, entries[1].ContextMap(), "trace_id")
	assert.NotContains(t, entries[2].ContextMap(), "trace_id")
}

func TestNopBeforeInit(t *testing.T) {
	ReplaceGlobal(nil)
	assert.NotPanics(t, func() {
		Info(context.Background(), "dropped")
	})
}
