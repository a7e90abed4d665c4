// Package testutil holds helpers shared by the test suites: a slog capture
// handler and accident fixture file generation.
package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// LogRecord is one captured log record.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// CaptureHandler is a slog.Handler that records everything it handles, so
// tests can assert on emitted warnings and notices.
type CaptureHandler struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewCaptureHandler creates an empty capture handler.
func NewCaptureHandler() *CaptureHandler {
	return &CaptureHandler{}
}

// NewCaptureLogger returns a logger backed by a fresh capture handler.
func NewCaptureLogger() (*slog.Logger, *CaptureHandler) {
	h := NewCaptureHandler()
	return slog.New(h), h
}

func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	return nil
}

func (h *CaptureHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *CaptureHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

func (h *CaptureHandler) WithGroup(_ string) slog.Handler { return h }

// Records returns a copy of everything captured so far.
func (h *CaptureHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(h.records))
	copy(out, h.records)
	return out
}

// AtLevel returns the captured records at the given level.
func (h *CaptureHandler) AtLevel(level slog.Level) []LogRecord {
	var out []LogRecord
	for _, r := range h.Records() {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}
