package logging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coreos/go-systemd/v22/journal"
)

// journalHandler mirrors records to the systemd journal so timer-driven
// runs are visible in journalctl without consulting the log file.
type journalHandler struct {
	level slog.Leveler
	attrs []slog.Attr
}

// newJournalHandler returns nil when no journal socket is available
// (non-systemd hosts, containers); mirroring then silently stays off.
func newJournalHandler(level slog.Leveler) slog.Handler {
	if !journal.Enabled() {
		return nil
	}
	return &journalHandler{level: level}
}

func (h *journalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *journalHandler) Handle(_ context.Context, r slog.Record) error {
	fields := map[string]string{
		"SYSLOG_IDENTIFIER": "cfddns",
	}
	for _, a := range h.attrs {
		addJournalField(fields, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addJournalField(fields, a)
		return true
	})
	return journal.Send(r.Message, journalPriority(r.Level), fields)
}

func (h *journalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &journalHandler{level: h.level, attrs: merged}
}

func (h *journalHandler) WithGroup(string) slog.Handler { return h }

// addJournalField maps an attribute to a journal field. Journal field
// names must be uppercase ASCII; anything unmappable keeps the run going
// rather than failing a log call.
func addJournalField(fields map[string]string, a slog.Attr) {
	key := make([]byte, 0, len(a.Key))
	for i := 0; i < len(a.Key); i++ {
		c := a.Key[i]
		switch {
		case c >= 'a' && c <= 'z':
			key = append(key, c-'a'+'A')
		case c >= 'A' && c <= 'Z' || c >= '0' && c <= '9':
			key = append(key, c)
		default:
			key = append(key, '_')
		}
	}
	if len(key) == 0 {
		return
	}
	fields[string(key)] = fmt.Sprint(a.Value.Any())
}

func journalPriority(level slog.Level) journal.Priority {
	switch {
	case level >= slog.LevelError:
		return journal.PriErr
	case level >= slog.LevelWarn:
		return journal.PriWarning
	case level >= slog.LevelInfo:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}
