// Package log builds slog loggers that never print password material.
//
// Records are passed through MaskingHandler, which replaces the value of any
// attribute whose key names a credential. Code that wants to mention a
// password while debugging can log it under the "password" key and the value
// is masked before it reaches the writer.
package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// MaskValue replaces masked attribute values.
const MaskValue = "***REDACTED***"

var maskedKeys = map[string]bool{
	"pw":         true,
	"pass":       true,
	"line":       true,
	"record":     true,
	"credential": true,
	"word":       true,
}

var maskedKeywords = []string{"password", "passwd", "secret", "credential"}

// MaskingHandler wraps a slog.Handler and masks credential attributes.
type MaskingHandler struct {
	handler slog.Handler
}

// NewMaskingHandler wraps handler. A nil handler wraps the default handler.
func NewMaskingHandler(handler slog.Handler) *MaskingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &MaskingHandler{handler: handler}
}

// Enabled implements slog.Handler.
func (h *MaskingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *MaskingHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(mask(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs implements slog.Handler.
func (h *MaskingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = mask(a)
	}
	return &MaskingHandler{handler: h.handler.WithAttrs(out)}
}

// WithGroup implements slog.Handler.
func (h *MaskingHandler) WithGroup(name string) slog.Handler {
	return &MaskingHandler{handler: h.handler.WithGroup(name)}
}

func mask(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			out[i] = mask(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	if isMaskedKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}
	return a
}

func isMaskedKey(key string) bool {
	key = strings.ToLower(key)
	if maskedKeys[key] {
		return true
	}
	for _, kw := range maskedKeywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

// New returns a text logger writing to w. verbose lowers the level from
// warn to debug so that progress and timing lines are shown.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(NewMaskingHandler(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
