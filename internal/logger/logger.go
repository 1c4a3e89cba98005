package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls where and how much a logger writes
type Options struct {
	// Level is one of debug, info, warn, error
	Level string
	// Verbose forces debug level
	Verbose bool
	// File redirects output to a file instead of stderr
	File string
	// JSON selects the JSON encoder instead of the console encoder
	JSON bool
}

// Logger provides structured, component-scoped logging
type Logger struct {
	component string
	z         *zap.Logger
}

// Field represents a key-value pair for structured logging
type Field = zap.Field

// New creates a logger for component using opts
func New(component string, opts Options) (*Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if opts.JSON {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	sink := zapcore.Lock(os.Stderr)
	if opts.File != "" {
		ws, _, err := zap.Open(opts.File)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		sink = ws
	}

	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(level))
	return &Logger{
		component: component,
		z:         zap.New(core).Named(componentName(component)),
	}, nil
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{component: "main", z: zap.NewNop()}
}

// FromZap wraps an existing zap logger
func FromZap(component string, z *zap.Logger) *Logger {
	if z == nil {
		return Nop()
	}
	return &Logger{component: component, z: z.Named(componentName(component))}
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	if l == nil {
		return Nop()
	}
	return &Logger{component: component, z: l.z.Named(componentName(component))}
}

// Component returns the component name
func (l *Logger) Component() string {
	return l.component
}

// Debug logs debug messages (only at debug level)
func (l *Logger) Debug(msg string, fields ...Field) {
	if l == nil {
		return
	}
	l.z.Debug(msg, fields...)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...Field) {
	if l == nil {
		return
	}
	l.z.Info(msg, fields...)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...Field) {
	if l == nil {
		return
	}
	l.z.Warn(msg, fields...)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...Field) {
	if l == nil {
		return
	}
	l.z.Error(msg, fields...)
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.z.Sync()
}

func componentName(component string) string {
	if component == "" {
		return "main"
	}
	return component
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return zap.Any(key, value)
}

func Count(value int) Field {
	return zap.Int("count", value)
}

func Duration(d time.Duration) Field {
	return zap.Duration("duration", d)
}

func Error(err error) Field {
	return zap.Error(err)
}
