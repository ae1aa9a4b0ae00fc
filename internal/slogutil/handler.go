// Package slogutil provides the compact line handler used for licensekit's
// diagnostic output and helpers for picking a level.
package slogutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// LineHandler writes one line per record:
//
//	TIMESTAMP [level] message | key=value, key=value
//
// Group names are dropped; grouped attributes are written flat.
type LineHandler struct {
	out   *lockedWriter
	level slog.Leveler
	// preformatted holds the rendered "key=value" pairs added through WithAttrs.
	preformatted []string
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLineHandler creates a line handler writing to w. A nil opts or Level
// means info.
func NewLineHandler(w io.Writer, opts *slog.HandlerOptions) *LineHandler {
	h := &LineHandler{out: &lockedWriter{w: w}, level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	pairs := append([]string(nil), h.preformatted...)
	r.Attrs(func(a slog.Attr) bool {
		pairs = appendAttr(pairs, a)
		return true
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", r.Time.UTC().Format(time.RFC3339), levelName(r.Level), r.Message)
	if len(pairs) > 0 {
		b.WriteString(" | ")
		b.WriteString(strings.Join(pairs, ", "))
	}
	b.WriteByte('\n')

	h.out.mu.Lock()
	defer h.out.mu.Unlock()
	_, err := io.WriteString(h.out.w, b.String())
	return err
}

func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.preformatted = append([]string(nil), h.preformatted...)
	for _, a := range attrs {
		next.preformatted = appendAttr(next.preformatted, a)
	}
	return &next
}

func (h *LineHandler) WithGroup(string) slog.Handler { return h }

func appendAttr(pairs []string, a slog.Attr) []string {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			pairs = appendAttr(pairs, ga)
		}
		return pairs
	}
	if a.Key == "" {
		return pairs
	}
	return append(pairs, a.Key+"="+v.String())
}

func levelName(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "debug"
	case level < slog.LevelWarn:
		return "info"
	case level < slog.LevelError:
		return "warn"
	default:
		return "error"
	}
}
