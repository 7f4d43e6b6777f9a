package log

//go:generate go tool stringer --linecomment --type Level,Format --output config_string.go

import (
	"io"
	"iter"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level slog.Level

const levelTraceMask = -8

const (
	LevelTrace Level = Level(levelTraceMask)  // trace
	LevelDebug Level = Level(slog.LevelDebug) // debug
	LevelInfo  Level = Level(slog.LevelInfo)  // info
	LevelWarn  Level = Level(slog.LevelWarn)  // warn
	LevelError Level = Level(slog.LevelError) // error
)

// DefaultLevel is the default log level.
const DefaultLevel = LevelInfo

// Levels returns an iterator over the names of all defined log levels, from
// most to least verbose.
func Levels() iter.Seq[string] {
	return names(LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError)
}

// ParseLevel parses a string representation of a log level.
// Valid level strings are "trace", "debug", "info", "warn" and "error" in any
// case, optionally followed by a "+" or "-" and an integer offset (see
// [slog.Level.UnmarshalText]). Unrecognized input yields [DefaultLevel].
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)

	// slog.Level.UnmarshalText does not know about trace.
	if strings.EqualFold(s, LevelTrace.String()) {
		return LevelTrace
	}

	var l slog.Level

	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format represents the output format for log messages.
type Format int

const (
	FormatText Format = iota // text
	FormatJSON               // json
)

// DefaultFormat is the default log message format.
const DefaultFormat = FormatJSON

// Formats returns an iterator over the names of all defined log formats.
func Formats() iter.Seq[string] {
	return names(FormatJSON, FormatText)
}

// ParseFormat parses a string representation of a log format.
// Valid format strings are "json" and "text". Unrecognized input yields
// [DefaultFormat].
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case FormatJSON.String():
		return FormatJSON
	case FormatText.String():
		return FormatText
	default:
		return DefaultFormat
	}
}

func names[T interface{ String() string }](v ...T) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range v {
			if !yield(e.String()) {
				return
			}
		}
	}
}

// FormatTime formats a timestamp for log output.
// An empty result removes the timestamp from the record.
type FormatTime func(time.Time) string

const (
	// DefaultTimeLayout is used when no time layout is configured.
	DefaultTimeLayout = time.RFC3339
	// DefaultCaller controls whether caller information is included.
	DefaultCaller = false
	// DefaultPretty controls whether output is colorized.
	DefaultPretty = true
)

// config holds the configuration of a [Logger].
//
// The mutex is shared by value copies of a config and replaced by clone, so
// that a derived Logger never contends with the Logger it was derived from.
type config struct {
	mutex      *sync.RWMutex
	output     io.Writer
	formatTime FormatTime
	level      Level
	format     Format
	caller     bool
	pretty     bool
}

// makeConfig returns the default config for w with opts applied.
func makeConfig(w io.Writer, opts ...Option) config {
	return apply(config{mutex: &sync.RWMutex{}}, append([]Option{WithDefaults(w)}, opts...)...)
}

// clone returns a copy of c with its own mutex and opts applied.
func (c config) clone(opts ...Option) config {
	c.mutex = &sync.RWMutex{}

	return apply(c, opts...)
}

// rlock acquires the read lock, allocating a mutex for zero-value configs,
// and returns the matching unlock function.
func (c *config) rlock() func() {
	if c.mutex == nil {
		c.mutex = &sync.RWMutex{}
	}

	c.mutex.RLock()

	return c.mutex.RUnlock
}

// update returns an [Option] that applies fn while holding the write lock.
func update(fn func(c *config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = &sync.RWMutex{}
		}

		c.mutex.Lock()
		defer c.mutex.Unlock()

		fn(&c)

		return c
	}
}

// handlerOptions returns the slog options derived from c.
func (c config) handlerOptions() *slog.HandlerOptions {
	formatTime := c.formatTime
	if formatTime == nil {
		formatTime = makeFormatTimeFunc(DefaultTimeLayout)
	}

	return &slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				if t, ok := a.Value.Any().(time.Time); ok {
					s := formatTime(t)
					if s == "" {
						return slog.Attr{}
					}

					a.Value = slog.StringValue(s)
				}

			case slog.LevelKey:
				// Print TRACE instead of DEBUG-4.
				if l, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(strings.ToUpper(Level(l).String()))
				}
			}

			return a
		},
	}
}

// handler returns the slog.Handler described by c.
func (c config) handler() slog.Handler {
	out := c.output
	if out == nil {
		out = io.Discard
	}

	opts := c.handlerOptions()

	switch {
	case c.pretty && c.format == FormatJSON:
		return newPrettyHandler(out, opts, prettyJSON)
	case c.pretty && c.format == FormatText:
		return newPrettyHandler(out, opts, prettyText)
	case c.format == FormatJSON:
		return slog.NewJSONHandler(out, opts)
	case c.format == FormatText:
		return slog.NewTextHandler(out, opts)
	default:
		return slog.DiscardHandler
	}
}

// WithDefaults returns an [Option] that resets every setting to its default
// and writes to w ([io.Discard] if nil).
func WithDefaults(w io.Writer) Option {
	return update(func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
		c.formatTime = makeFormatTimeFunc(DefaultTimeLayout)
		c.level = DefaultLevel
		c.format = DefaultFormat
		c.caller = DefaultCaller
		c.pretty = DefaultPretty
	})
}

// WithOutput returns an [Option] that sets the output writer.
// A nil writer discards all output.
func WithOutput(w io.Writer) Option {
	return update(func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	})
}

// WithLevel returns an [Option] that sets the minimum log level.
func WithLevel(level Level) Option {
	return update(func(c *config) { c.level = level })
}

// WithFormat returns an [Option] that sets the output format.
func WithFormat(format Format) Option {
	return update(func(c *config) { c.format = format })
}

// WithTimeLayout returns an [Option] that sets the timestamp layout.
//
// The layout may name one of the [time] package layouts, case and punctuation
// insensitive ("RFC3339", "rfc-3339-nano", "kitchen"), one of the shorthands
// "ms", "us" and "ns", or "none". Any other string is passed verbatim to
// [time.Time.Format]. A blank layout disables timestamps.
func WithTimeLayout(layout string) Option {
	format := makeFormatTimeFunc(layout)

	return update(func(c *config) { c.formatTime = format })
}

// WithCaller returns an [Option] that controls whether the source location of
// the log call is included.
func WithCaller(enable bool) Option {
	return update(func(c *config) { c.caller = enable })
}

// WithPretty returns an [Option] that controls colorized output.
// Pretty text output drops quoting and colors keys and values; pretty JSON
// output is indented one attribute per line.
func WithPretty(enable bool) Option {
	return update(func(c *config) { c.pretty = enable })
}

var timeLayout = map[string]string{
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rubydate":    time.RubyDate,
	"rfc822":      time.RFC822,
	"rfc822z":     time.RFC822Z,
	"rfc850":      time.RFC850,
	"rfc1123":     time.RFC1123,
	"rfc1123z":    time.RFC1123Z,
	"kitchen":     time.Kitchen,
	"datetime":    time.DateTime,
	"dateonly":    time.DateOnly,
	"timeonly":    time.TimeOnly,
	"stamp":       time.Stamp,
	"none":        "",

	"stampmilli": time.StampMilli,
	"ms":         time.StampMilli,

	"stampmicro": time.StampMicro,
	"us":         time.StampMicro,

	"stampnano": time.StampNano,
	"ns":        time.StampNano,
}

func makeFormatTimeFunc(layout string) FormatTime {
	// Only letters and digits are significant when matching a named layout.
	key := strings.Map(
		func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				return r
			}

			return -1
		},
		strings.ToLower(layout),
	)

	if key == "" {
		return func(time.Time) string { return "" }
	}

	if named, ok := timeLayout[key]; ok {
		layout = named
	}

	if layout == "" {
		return func(time.Time) string { return "" }
	}

	return func(t time.Time) string { return t.Format(layout) }
}
