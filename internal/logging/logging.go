package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger defines the minimal logging interface used across layers.
type Logger interface {
	Debug(ctx context.Context, msg string, kv ...any)
	Debugf(ctx context.Context, format string, args ...any)
	Info(ctx context.Context, msg string, kv ...any)
	Infof(ctx context.Context, format string, args ...any)
	Warn(ctx context.Context, msg string, kv ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Error(ctx context.Context, msg string, kv ...any)
	Errorf(ctx context.Context, format string, args ...any)
	With(kv ...any) Logger
}

type contextKey struct{}

var loggerKey contextKey

// WithLogger stores a logger in context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext retrieves a logger from context, returns default logger if absent.
func FromContext(ctx context.Context) Logger {
	if v, ok := ctx.Value(loggerKey).(Logger); ok && v != nil {
		return v
	}
	return defaultLogger()
}

// Options configures log output sinks. Console is always active; File
// and Journal add mirrors of the same records.
type Options struct {
	Format  string       // "human" (default), "text", "json"
	Level   slog.Leveler // default slog.LevelInfo
	Console io.Writer    // default os.Stderr
	File    io.Writer    // optional append sink, text format
	Journal bool         // mirror records to the systemd journal
}

// New constructs a Logger of given format (human|text|json) and level
// writing to stderr.
func New(format string, level slog.Leveler) (Logger, error) {
	return NewWithOptions(Options{Format: format, Level: level})
}

// NewWithOptions constructs a Logger fanning out to every configured sink.
func NewWithOptions(o Options) (Logger, error) {
	level := o.Level
	if level == nil {
		level = slog.LevelInfo
	}
	console := o.Console
	if console == nil {
		console = os.Stderr
	}

	var h slog.Handler
	switch o.Format {
	case "", "human":
		h = newHumanHandler(console, level)
	case "text":
		h = slog.NewTextHandler(console, &slog.HandlerOptions{Level: level})
	case "json":
		h = slog.NewJSONHandler(console, &slog.HandlerOptions{Level: level})
	default:
		return nil, errors.New("unsupported log format: " + o.Format)
	}

	handlers := []slog.Handler{h}
	if o.File != nil {
		handlers = append(handlers, slog.NewTextHandler(o.File, &slog.HandlerOptions{Level: level}))
	}
	if o.Journal {
		if jh := newJournalHandler(level); jh != nil {
			handlers = append(handlers, jh)
		}
	}
	if len(handlers) == 1 {
		return &slogWrapper{logger: slog.New(handlers[0])}, nil
	}
	return &slogWrapper{logger: slog.New(fanoutHandler(handlers))}, nil
}

// slogWrapper adapts slog.Logger to Logger.
type slogWrapper struct{ logger *slog.Logger }

func (l *slogWrapper) Debug(ctx context.Context, msg string, kv ...any) {
	l.logger.DebugContext(ctx, msg, kv...)
}
func (l *slogWrapper) Debugf(ctx context.Context, format string, args ...any) {
	l.logger.DebugContext(ctx, fmt.Sprintf(format, args...))
}
func (l *slogWrapper) Info(ctx context.Context, msg string, kv ...any) {
	l.logger.InfoContext(ctx, msg, kv...)
}
func (l *slogWrapper) Infof(ctx context.Context, format string, args ...any) {
	l.logger.InfoContext(ctx, fmt.Sprintf(format, args...))
}
func (l *slogWrapper) Warn(ctx context.Context, msg string, kv ...any) {
	l.logger.WarnContext(ctx, msg, kv...)
}
func (l *slogWrapper) Warnf(ctx context.Context, format string, args ...any) {
	l.logger.WarnContext(ctx, fmt.Sprintf(format, args...))
}
func (l *slogWrapper) Error(ctx context.Context, msg string, kv ...any) {
	l.logger.ErrorContext(ctx, msg, kv...)
}
func (l *slogWrapper) Errorf(ctx context.Context, format string, args ...any) {
	l.logger.ErrorContext(ctx, fmt.Sprintf(format, args...))
}

func (l *slogWrapper) With(kv ...any) Logger { return &slogWrapper{logger: l.logger.With(kv...)} }

var (
	defaultLoggerOnce  sync.Once
	defaultLoggerValue *slogWrapper
)

func defaultLogger() *slogWrapper {
	defaultLoggerOnce.Do(func() {
		defaultLoggerValue = &slogWrapper{logger: slog.New(newHumanHandler(os.Stderr, slog.LevelInfo))}
	})
	return defaultLoggerValue
}

// fanoutHandler duplicates every record to each child handler.
type fanoutHandler []slog.Handler

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
