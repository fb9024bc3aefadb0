package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields represents structured log fields
type Fields map[string]any

// Logger is the structured logging interface used across the pipeline
type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(err error, msg string, fields ...Fields)
	WithFields(fields Fields) Logger
}

var (
	defaultLevel  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	defaultLogger Logger
	defaultOnce   sync.Once
)

// SetLevel changes the level of the default logger (debug, info, warn, error)
func SetLevel(level string) {
	switch level {
	case "debug":
		defaultLevel.SetLevel(zapcore.DebugLevel)
	case "warn":
		defaultLevel.SetLevel(zapcore.WarnLevel)
	case "error":
		defaultLevel.SetLevel(zapcore.ErrorLevel)
	default:
		defaultLevel.SetLevel(zapcore.InfoLevel)
	}
}

// NewDefaultLogger returns the process-wide default logger
func NewDefaultLogger() Logger {
	defaultOnce.Do(func() {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.Lock(os.Stderr),
			defaultLevel,
		)

		defaultLogger = &zapLogger{base: zap.New(core)}
	})
	return defaultLogger
}

// WithFields returns the default logger with the given fields attached
func WithFields(fields Fields) Logger {
	return NewDefaultLogger().WithFields(fields)
}

// NewNopLogger returns a logger that discards everything (useful in tests)
func NewNopLogger() Logger {
	return &zapLogger{base: zap.NewNop()}
}

// zapLogger adapts a zap.Logger to the Logger interface
type zapLogger struct {
	base *zap.Logger
}

func (l *zapLogger) Debug(msg string, fields ...Fields) {
	l.base.Debug(msg, zapFields(fields)...)
}

func (l *zapLogger) Info(msg string, fields ...Fields) {
	l.base.Info(msg, zapFields(fields)...)
}

func (l *zapLogger) Warn(msg string, fields ...Fields) {
	l.base.Warn(msg, zapFields(fields)...)
}

func (l *zapLogger) Error(err error, msg string, fields ...Fields) {
	zf := zapFields(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	l.base.Error(msg, zf...)
}

func (l *zapLogger) WithFields(fields Fields) Logger {
	return &zapLogger{base: l.base.With(zapFields([]Fields{fields})...)}
}

func zapFields(fields []Fields) []zap.Field {
	var zf []zap.Field
	for _, f := range fields {
		for k, v := range f {
			zf = append(zf, zap.Any(k, v))
		}
	}
	return zf
}
