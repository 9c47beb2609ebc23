// Package log provides the coloured, named component loggers used by the service.
package log

import (
	"errors"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const colorReset = "\033[0m"

var ErrNilWriter = errors.New("logger writer is nil")

// Logger writes human readable lines prefixed with a coloured component name.
// Implements i.Logger.
type Logger struct {
	z *zap.Logger
}

// Option configures a Logger.
type Option func(*options)

type options struct {
	level zapcore.Level
}

// WithLevel sets the minimum level written, Info by default.
func WithLevel(l zapcore.Level) Option {
	return func(o *options) {
		o.level = l
	}
}

// New creates a logger named name whose prefix is printed in color.
func New(name, color string, w io.Writer, opts ...Option) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}

	o := &options{level: zapcore.InfoLevel}
	for _, opt := range opts {
		opt(o)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
	encoderConfig.EncodeLevel = func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString("[" + l.CapitalString() + "]")
	}
	encoderConfig.EncodeName = func(n string, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(color + "[" + n + "]" + colorReset)
	}
	encoderConfig.CallerKey = ""
	encoderConfig.StacktraceKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), o.level)
	return &Logger{z: zap.New(core).Named(name)}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.z.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.z.Info(msg)
}

// Warning logs a warning.
func (l *Logger) Warning(msg string) {
	l.z.Warn(msg)
}

// Error logs an error.
func (l *Logger) Error(msg string) {
	l.z.Error(msg)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.z.Sync()
}
