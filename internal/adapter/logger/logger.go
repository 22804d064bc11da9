package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Info(action, message, requestID string, details map[string]interface{})
	Debug(action, message, requestID string, details map[string]interface{})
	Error(action, message, requestID string, details map[string]interface{}, err error)
	Sync() error
}

type zapLogger struct {
	z *zap.Logger
}

// New builds a JSON logger tagged with the service name and hostname.
func New(service string, opts ...Option) (Logger, error) {
	o := options{level: zapcore.InfoLevel}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(o.level)
	cfg.EncoderConfig.TimeKey = FieldTimestamp
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.DisableStacktrace = true

	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	return Wrap(z.With(zap.String(FieldService, service), zap.String(FieldHostname, hostname))), nil
}

// Wrap adapts an existing zap logger.
func Wrap(z *zap.Logger) Logger {
	return &zapLogger{z: z}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return Wrap(zap.NewNop())
}

func (l *zapLogger) Info(action, message, requestID string, details map[string]interface{}) {
	l.z.Info(message, fields(action, requestID, details, nil)...)
}

func (l *zapLogger) Debug(action, message, requestID string, details map[string]interface{}) {
	l.z.Debug(message, fields(action, requestID, details, nil)...)
}

func (l *zapLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
	l.z.Error(message, fields(action, requestID, details, err)...)
}

func (l *zapLogger) Sync() error {
	return l.z.Sync()
}

func fields(action, requestID string, details map[string]interface{}, err error) []zap.Field {
	out := make([]zap.Field, 0, 4)
	out = append(out, zap.String(FieldAction, action))
	if requestID != "" {
		out = append(out, zap.String(FieldRequestID, requestID))
	}
	if len(details) > 0 {
		out = append(out, zap.Any(FieldDetails, details))
	}
	if err != nil {
		out = append(out, zap.Error(err))
	}
	return out
}
