package logx

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	traceIDKey
)

var (
	logger *zap.Logger
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
)

func init() {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.Level = level

	// LOG_LEVEL is read here as well so output before config load honors it.
	_ = SetLevel(os.Getenv("LOG_LEVEL"))

	var err error
	logger, err = zapCfg.Build(zap.AddCaller(), zap.AddCallerSkip(0))
	if err != nil {
		panic(err)
	}
}

// L returns the package-level logger instance.
func L() *zap.Logger {
	return logger
}

// SetLevel changes the level of the package logger. Empty keeps the current one.
func SetLevel(lvl string) error {
	if lvl == "" {
		return nil
	}
	return level.UnmarshalText([]byte(strings.ToLower(lvl)))
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

func TraceID(ctx context.Context) string {
	v, _ := ctx.Value(traceIDKey).(string)
	return v
}

// WithFields enriches logs with request and trace IDs from context.
func WithFields(ctx context.Context) *zap.Logger {
	l := logger
	if id := RequestID(ctx); id != "" {
		l = l.With(zap.String("request_id", id))
	}
	if id := TraceID(ctx); id != "" {
		l = l.With(zap.String("trace_id", id))
	}
	return l
}
