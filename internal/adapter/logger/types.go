package logger

import "go.uber.org/zap/zapcore"

// Structured field keys shared by every log entry.
const (
	FieldTimestamp = "timestamp"
	FieldService   = "service"
	FieldHostname  = "hostname"
	FieldRequestID = "request_id"
	FieldAction    = "action"
	FieldDetails   = "details"
)

type options struct {
	level zapcore.Level
}

type Option func(*options)

// WithDebug enables debug level output.
func WithDebug(enabled bool) Option {
	return func(o *options) {
		if enabled {
			o.level = zapcore.DebugLevel
		}
	}
}

// WithLevel parses a level name ("debug", "info", "error"). Unknown names keep the default.
func WithLevel(name string) Option {
	return func(o *options) {
		if name == "" {
			return
		}
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(name)); err == nil {
			o.level = lvl
		}
	}
}
