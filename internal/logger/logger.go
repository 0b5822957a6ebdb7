package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a no-op until Init runs, so packages can log from tests without setup.
var Logger = zap.NewNop()

type requestIDKey struct{}

// Init builds the process logger. Production writes JSON, anything else a
// colored console. level overrides the environment default when set.
func Init(environment, level string) error {
	cfg := zap.NewDevelopmentConfig()
	defaultLevel := zapcore.DebugLevel
	if environment == "production" {
		cfg = zap.NewProductionConfig()
		defaultLevel = zapcore.InfoLevel
	} else {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl, err := ParseLevel(level, defaultLevel)
	if err != nil {
		return err
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.MessageKey = "message"

	built, err := cfg.Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("service", "englife-dashboard")),
	)
	if err != nil {
		return err
	}

	Logger = built
	zap.ReplaceGlobals(Logger)
	return nil
}

// ParseLevel reads LOG_LEVEL values; empty means fallback.
func ParseLevel(level string, fallback zapcore.Level) (zapcore.Level, error) {
	if level == "" {
		return fallback, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fallback, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

func Sync() {
	_ = Logger.Sync()
}

// ContextWithRequestID lets code below the handlers log with the request id.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// WithRequestID tags the logger with a request id taken from gin.
func WithRequestID(requestID string) *zap.Logger {
	return Logger.WithOptions(zap.AddCallerSkip(-1)).With(zap.String("request_id", requestID))
}

// Ctx returns the logger tagged with the request id carried by ctx, if any.
func Ctx(ctx context.Context) *zap.Logger {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return WithRequestID(id)
	}
	return Logger.WithOptions(zap.AddCallerSkip(-1))
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}
