package logger

import (
	"context"
	"errors"
	log "log/slog"
	"time"

	"gorm.io/gorm/logger"
)

type SlogGormLogger struct {
	LogLevel      logger.LogLevel
	SlowThreshold time.Duration
	l             *log.Logger
}

func NewGormLogger(l *log.Logger) *SlogGormLogger {
	return &SlogGormLogger{LogLevel: logger.Info, SlowThreshold: 200 * time.Millisecond, l: l}
}

func (s *SlogGormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *s
	clone.LogLevel = level
	return &clone
}

func (s *SlogGormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if s.LogLevel >= logger.Info {
		s.l.InfoContext(ctx, msg, "data", data)
	}
}

func (s *SlogGormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if s.LogLevel >= logger.Warn {
		s.l.WarnContext(ctx, msg, "data", data)
	}
}

func (s *SlogGormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if s.LogLevel >= logger.Error {
		s.l.ErrorContext(ctx, msg, "data", data)
	}
}

func (s *SlogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if s.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	operation := "Query"
	for i, char := range sql {
		if char == ' ' {
			operation = sql[:i]
			break
		}
	}
	msg := "SQL " + operation

	fields := []any{
		log.String("sql", sql),
		log.Duration("latency", elapsed),
		log.Int64("rows", rows),
	}

	switch {
	case err != nil && !errors.Is(err, logger.ErrRecordNotFound):
		s.l.ErrorContext(ctx, msg+" Error", append(fields, log.Any("err", err))...)
	case elapsed > s.SlowThreshold:
		s.l.WarnContext(ctx, msg+" Slow", fields...)
	default:
		s.l.DebugContext(ctx, msg, fields...)
	}
}
