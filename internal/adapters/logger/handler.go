package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/reqsync/internal/ui/output"
	"go.trai.ch/reqsync/internal/ui/style"
)

// Attribute keys rendered in their own place instead of as key=value.
const (
	// PackageKey names the package a line is about. It prefixes the message.
	PackageKey = "package"
	// OriginKey is the "file:line" a requirement came from. It trails the line.
	OriginKey = "origin"
)

// PrettyHandler is a slog.Handler for terminals: one colored line per record,
// prefixed by a level icon.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewPrettyHandler creates a new PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &PrettyHandler{out: output.New(w), level: level}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes r as "icon package: message key=value (origin)".
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	line := lineParts{}
	for _, attr := range h.attrs {
		line.add(attr)
	}
	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(attr slog.Attr) bool {
		line.addGrouped(prefix, attr)
		return true
	})

	icon, color := levelStyle(r.Level)

	var b strings.Builder
	if icon != "" {
		b.WriteString(icon + " ")
	}
	if line.pkg != "" {
		b.WriteString(line.pkg + ": ")
	}
	b.WriteString(r.Message)
	for _, kv := range line.pairs {
		b.WriteString(" " + kv)
	}
	if line.origin != "" {
		b.WriteString(" (" + line.origin + ")")
	}

	styled := h.out.String(b.String()).Foreground(termenv.RGBColor(color))
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended. They are
// qualified by the groups opened so far.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := h.clone()
	prefix := strings.Join(h.groups, ".")
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, qualify(prefix, attr))
	}
	return clone
}

// WithGroup returns a new Handler nesting later attributes under name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		out:    h.out,
		level:  h.level,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

// levelStyle returns the icon and hex color of a level.
func levelStyle(level slog.Level) (string, string) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, string(style.Red)
	case level >= slog.LevelWarn:
		return style.Warning, string(style.Yellow)
	case level < slog.LevelInfo:
		return style.Dot, string(style.Iris)
	default:
		return "", string(style.Slate)
	}
}

// lineParts collects the attributes of one record.
type lineParts struct {
	pkg    string
	origin string
	pairs  []string
}

func (l *lineParts) addGrouped(prefix string, attr slog.Attr) {
	l.add(qualify(prefix, attr))
}

func (l *lineParts) add(attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	if attr.Value.Kind() == slog.KindGroup {
		for _, member := range attr.Value.Group() {
			l.addGrouped(attr.Key, member)
		}
		return
	}

	switch attr.Key {
	case PackageKey:
		l.pkg = attr.Value.String()
	case OriginKey:
		l.origin = attr.Value.String()
	default:
		l.pairs = append(l.pairs, attr.Key+"="+quoteValue(attr.Value.String()))
	}
}

// qualify prefixes the key of attr with the open groups.
func qualify(prefix string, attr slog.Attr) slog.Attr {
	if prefix == "" || attr.Key == "" {
		return attr
	}
	attr.Key = prefix + "." + attr.Key
	return attr
}

func quoteValue(v string) string {
	if v == "" || strings.ContainsAny(v, " \t\n\"=") {
		return strconv.Quote(v)
	}
	return v
}
