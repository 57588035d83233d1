// Package diag provides the structured logging and error classification used
// by the wordpack command.
package diag

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
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

// Logger writes start/finish/error events. Every event carries comp (the
// component) and stage (start|finish|error).
type Logger struct {
	l *slog.Logger
}

// New returns a Logger writing to w. format is "json" or "text".
func New(w io.Writer, level, format string) *Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return &Logger{l: slog.New(h)}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, "error", "text")
}

// With returns a Logger that adds args to every event.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l: l.l.With(args...)}
}

// Start logs a start event and returns a Timer for the matching finish.
func (l *Logger) Start(comp, msg string, args ...any) *Timer {
	l.l.Debug(msg, append([]any{"comp", comp, "stage", "start"}, args...)...)
	return &Timer{l: l, comp: comp, t0: time.Now()}
}

// Info logs an informational event outside a start/finish pair.
func (l *Logger) Info(comp, msg string, args ...any) {
	l.l.Info(msg, append([]any{"comp", comp}, args...)...)
}

// Warn logs a warning.
func (l *Logger) Warn(comp, msg string, args ...any) {
	l.l.Warn(msg, append([]any{"comp", comp}, args...)...)
}

// Error logs err with its classification code.
func (l *Logger) Error(comp, msg string, err error, args ...any) {
	l.l.Error(msg, append([]any{"comp", comp, "stage", "error", "code", string(Classify(err)), "err", err}, args...)...)
}

// Timer measures one phase, from Start to Finish.
type Timer struct {
	l    *Logger
	comp string
	t0   time.Time
}

// Finish logs a finish event with the elapsed time and, if count >= 0,
// the number of bytes or items the phase handled. It returns the elapsed
// time.
func (t *Timer) Finish(msg string, count int64, args ...any) time.Duration {
	if t == nil || t.l == nil {
		return 0
	}
	d := time.Since(t.t0)
	attrs := []any{"comp", t.comp, "stage", "finish", "dur_ms", d.Milliseconds()}
	if count >= 0 {
		attrs = append(attrs, "count", count)
	}
	t.l.l.Info(msg, append(attrs, args...)...)
	return d
}
