package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// plainHandler is a minimal slog.Handler that prints only the message and
// appends key=value pairs, without time/level decorations. Intended for clean
// stderr output alongside the stdio transport.
type plainHandler struct {
	w       io.Writer
	attrs   []slog.Attr
	mu      sync.Mutex
	leveler slog.Leveler
}

func newPlainHandler(w io.Writer, leveler slog.Leveler) slog.Handler {
	return &plainHandler{w: w, leveler: leveler}
}

// Enabled implements slog.Handler by checking level
func (h *plainHandler) Enabled(_ context.Context, lvl slog.Level) bool {
	if h.leveler == nil {
		return true
	}
	return lvl >= h.leveler.Level()
}

// metaKeys are attributes kept out of console lines; they still reach the
// file handler in full.
func isMetaKey(key string) bool {
	switch key {
	case "time", "level", "msg", "component":
		return true
	}
	return false
}

// Handle prints the message and key=value pairs without time/level prefixes
func (h *plainHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	line := r.Message

	appendAttr := func(a slog.Attr) {
		if a.Value.Kind() == slog.KindGroup {
			for _, ga := range a.Value.Group() {
				if !isMetaKey(ga.Key) {
					line += fmt.Sprintf(" %s=%v", ga.Key, ga.Value)
				}
			}
			return
		}
		if !isMetaKey(a.Key) {
			line += fmt.Sprintf(" %s=%v", a.Key, a.Value)
		}
	}

	for _, a := range h.attrs {
		appendAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(a)
		return true
	})

	_, err := fmt.Fprintln(h.w, line)
	return err
}

// WithAttrs returns a new handler with additional attributes bound
func (h *plainHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := &plainHandler{w: h.w, leveler: h.leveler}
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return nh
}

// WithGroup groups attributes; for plain output we encode as a group attr
func (h *plainHandler) WithGroup(name string) slog.Handler {
	nh := &plainHandler{w: h.w, leveler: h.leveler}
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), slog.Group(name))
	return nh
}
