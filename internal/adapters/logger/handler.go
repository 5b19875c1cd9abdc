package logger

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/crxbuild/internal/ui/output"
	"go.trai.ch/crxbuild/internal/ui/style"
)

// PrettyHandler is a slog.Handler producing one coloured line per record.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []string
	group string
}

// NewPrettyHandler creates a PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes r.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	color := style.Slate

	switch {
	case r.Level >= slog.LevelError:
		b.WriteString(style.Cross + " ")
		color = style.Red
	case r.Level >= slog.LevelWarn:
		b.WriteString(style.Warning + " ")
		color = style.Yellow
	case r.Level < slog.LevelInfo:
		b.WriteString(style.Dot + " ")
	}
	b.WriteString(r.Message)

	for _, attr := range h.attrs {
		b.WriteString(" " + attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		b.WriteString(" " + formatAttr(h.group, attr))
		return true
	})

	styled := h.out.String(b.String()).Foreground(termenv.RGBColor(string(color)))
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a Handler that appends attrs to every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	formatted := make([]string, 0, len(h.attrs)+len(attrs))
	formatted = append(formatted, h.attrs...)
	for _, attr := range attrs {
		formatted = append(formatted, formatAttr(h.group, attr))
	}

	clone := *h
	clone.attrs = formatted
	return &clone
}

// WithGroup returns a Handler that prefixes subsequent attribute keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group != "" {
		name = clone.group + "." + name
	}
	clone.group = name
	return &clone
}

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	value := attr.Value.Resolve().String()
	if strings.ContainsAny(value, " \t\n\"") {
		value = strconv.Quote(value)
	}
	return key + "=" + value
}
