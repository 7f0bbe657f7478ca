package logger

import (
	"Blogicum/internal/api/config"
	"fmt"
	"io"
	log "log/slog"
	"os"
	"path/filepath"
	"strings"
)

// OpenFile 以追加方式打开 log.file，未配置时返回 nil
func OpenFile(cfg config.LogConfig) (*os.File, error) {
	if strings.TrimSpace(cfg.File) == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// New 根据配置构建日志实例，由调用方注入到各个组件中；extra 中的每个 Writer 各得到一份 JSON 日志
func New(cfg config.LogConfig, extra ...io.Writer) *log.Logger {
	opts := &log.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var finalHandler log.Handler = log.NewJSONHandler(os.Stdout, opts)
	if len(extra) > 0 {
		handlers := []log.Handler{finalHandler}
		for _, w := range extra {
			handlers = append(handlers, log.NewJSONHandler(w, opts))
		}
		finalHandler = &TeeHandler{handlers: handlers}
	}

	return log.New(&ContextHandler{finalHandler})
}

// Discard 返回不输出任何内容的日志实例，供测试与命令行工具使用
func Discard() *log.Logger {
	return log.New(log.NewTextHandler(io.Discard, &log.HandlerOptions{Level: log.LevelError + 4}))
}

// ParseLevel 将配置中的级别名称转换为 slog.Level，未知值按 INFO 处理
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
