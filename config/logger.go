package config

import "os"

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level            string   `json:"level" yaml:"level"`                       // debug/info/warn/error
	Encoding         string   `json:"encoding" yaml:"encoding"`                 // json 或 console
	EnableColor      bool     `json:"enableColor" yaml:"enableColor"`           // console 模式下是否彩色输出
	Development      bool     `json:"development" yaml:"development"`           // 开发模式：error 级别附带堆栈
	OutputPaths      []string `json:"outputPaths" yaml:"outputPaths"`           // 普通日志输出，默认 stdout
	ErrorOutputPaths []string `json:"errorOutputPaths" yaml:"errorOutputPaths"` // zap 内部错误输出，默认 stderr
}

// DefaultLoggerConfig 返回容器场景的默认配置（JSON 输出到 stdout，方便 docker logs）。
// HELLO_LOG_LEVEL 可覆盖日志级别。
func DefaultLoggerConfig() LoggerConfig {
	level := os.Getenv("HELLO_LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	return LoggerConfig{
		Level:            level,
		Encoding:         "json",
		EnableColor:      false,
		Development:      false,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
}
