package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyLayout selects how a prettyHandler arranges a record.
type prettyLayout int

const (
	prettyText prettyLayout = iota // key=value pairs on one line
	prettyJSON                     // one "key": value pair per line
)

// prettyHandler is a colorized [slog.Handler].
// Attributes added with WithAttrs are rendered after the record's own
// attributes, and groups qualify keys with a dotted prefix.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
	layout prettyLayout
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	layout prettyLayout,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		layout: layout,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	fields := make([]slog.Attr, 0, r.NumAttrs()+len(h.attrs)+4)

	if !r.Time.IsZero() {
		fields = append(fields, slog.Time(slog.TimeKey, r.Time))
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			fields = append(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))

	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, h.qualify(a))

		return true
	})

	fields = append(fields, h.attrs...)

	if h.layout == prettyJSON {
		buf.WriteString("{\n")
	}

	n := 0

	for _, a := range fields {
		// Levels keep their slog.Level value so they can be colored.
		if a.Key != slog.LevelKey {
			if a = h.replace(a); a.Equal(slog.Attr{}) {
				continue
			}
		}

		h.writeAttr(&buf, a, n)
		n++
	}

	if h.layout == prettyJSON {
		buf.WriteString("\n}")
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	c.attrs = append(c.attrs, h.attrs...)

	for _, a := range attrs {
		c.attrs = append(c.attrs, h.qualify(a))
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

func (h *prettyHandler) qualify(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}

	a.Key = strings.Join(h.groups, ".") + "." + a.Key

	return a
}

func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, a slog.Attr, n int) {
	switch h.layout {
	case prettyJSON:
		if n > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  " + colorGray + a.Key + colorReset + ": ")

	default:
		if n > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(colorGray + a.Key + colorReset + "=")
	}

	writeValue(buf, a.Value.Resolve())
}

func writeValue(buf *bytes.Buffer, v slog.Value) {
	color, text := colorCyan, v.String()

	switch v.Kind() {
	case slog.KindInt64:
		color, text = colorYellow, strconv.FormatInt(v.Int64(), 10)

	case slog.KindUint64:
		color, text = colorYellow, strconv.FormatUint(v.Uint64(), 10)

	case slog.KindFloat64:
		color, text = colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)

	case slog.KindBool:
		color = colorRed
		if v.Bool() {
			color = colorGreen
		}

	case slog.KindDuration:
		color = colorMagenta

	case slog.KindTime:
		color, text = colorBlue, v.Time().Format(time.RFC3339)

	case slog.KindGroup:
		parts := make([]string, 0, len(v.Group()))
		for _, a := range v.Group() {
			parts = append(parts, a.Key+"="+a.Value.Resolve().String())
		}

		text = "{" + strings.Join(parts, " ") + "}"

	case slog.KindAny:
		switch val := v.Any().(type) {
		case slog.Level:
			color, text = levelColor(val), strings.ToUpper(Level(val).String())
		case nil:
			color, text = colorGray, "null"
		}
	}

	buf.WriteString(color + text + colorReset)
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}
