// Package logger wraps log/slog with a component name and request-scoped context.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Component names
const (
	ComponentHTTP     = "http"
	ComponentAuth     = "auth"
	ComponentExpenses = "expenses"
	ComponentEvents   = "events"
	ComponentStorage  = "storage"
)

// Logger is a slog.Logger that tags every record with its component.
// base carries the same attributes without the component tag.
type Logger struct {
	*slog.Logger
	base      *slog.Logger
	component string
}

func tagged(base *slog.Logger, component string) *Logger {
	return &Logger{Logger: base.With("component", component), base: base, component: component}
}

type Config struct {
	Level     slog.Level
	Component string
	Output    io.Writer
	JSON      bool
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	component := cfg.Component
	if component == "" {
		component = "app"
	}
	return tagged(slog.New(handler), component)
}

// Discard returns a logger that writes nothing. Used by tests.
func Discard() *Logger {
	return tagged(slog.New(slog.NewTextHandler(io.Discard, nil)), "discard")
}

// With returns a logger with additional attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), base: l.base.With(args...), component: l.component}
}

// WithComponent returns a logger tagged with a different component.
func (l *Logger) WithComponent(component string) *Logger {
	return tagged(l.base, component)
}

func (l *Logger) Component() string {
	return l.component
}

type contextKey string

const loggerKey contextKey = "logger"

// IntoContext stores l in ctx.
func IntoContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the request logger, or one backed by slog.Default.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerKey).(*Logger); ok {
		return l
	}
	return tagged(slog.Default(), "unknown")
}
