package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// LogRecord is one captured log record
type LogRecord struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// BufferedHandler captures log records so tests can assert on what a
// component logged.
type BufferedHandler struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewLogger returns a logger backed by a buffered handler
func NewLogger() (*slog.Logger, *BufferedHandler) {
	h := &BufferedHandler{}
	return slog.New(h), h
}

// Handle implements slog.Handler
func (h *BufferedHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, LogRecord{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	return nil
}

// Enabled implements slog.Handler; every level is captured
func (h *BufferedHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler
func (h *BufferedHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

// WithGroup implements slog.Handler
func (h *BufferedHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Records returns a copy of the captured records
func (h *BufferedHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Contains reports whether any record at the given level contains the
// substring in its message.
func (h *BufferedHandler) Contains(level slog.Level, substring string) bool {
	for _, r := range h.Records() {
		if r.Level == level && strings.Contains(r.Message, substring) {
			return true
		}
	}
	return false
}
