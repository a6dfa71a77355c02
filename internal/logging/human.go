package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// newHumanHandler returns the console handler for interactive use. For
// stderr it reuses slog's default log-package output, which reads well
// on a terminal; any other writer gets a plain text handler.
func newHumanHandler(w io.Writer, level slog.Leveler) slog.Handler {
	if w == os.Stderr {
		return &defaultLevelHandler{inner: slog.Default().Handler(), level: level}
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

// defaultLevelHandler applies the configured level to slog's default
// log-package handler, whose level go1.21 offers no way to set
// (slog.SetLogLoggerLevel is go1.22+).
type defaultLevelHandler struct {
	inner slog.Handler
	level slog.Leveler
}

func (h *defaultLevelHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *defaultLevelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *defaultLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &defaultLevelHandler{inner: h.inner.WithAttrs(attrs), level: h.level}
}

func (h *defaultLevelHandler) WithGroup(name string) slog.Handler {
	return &defaultLevelHandler{inner: h.inner.WithGroup(name), level: h.level}
}
