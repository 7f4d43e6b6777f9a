package log

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// DefaultContextProvider returns the context used by logging functions and
// methods that do not take one.
var DefaultContextProvider = context.TODO

var (
	defaultMu  sync.RWMutex
	defaultLog = Make(os.Stderr)
)

// pkgSkip counts the frames from logDepth up to the code that called a
// package-level function: logDepth and the function itself.
const pkgSkip = 2

// Config reconfigures the default logger with opts.
func Config(opts ...Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultLog = defaultLog.Wrap(opts...)
}

// Default returns the default logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	return defaultLog
}

// With returns a copy of the default logger that includes attrs in each
// message.
func With(attrs ...slog.Attr) Logger {
	return Default().With(attrs...)
}

// TraceContext logs a message at [LevelTrace] using the default logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logDepth(ctx, pkgSkip, LevelTrace, msg, attrs...)
}

// Trace logs a message at [LevelTrace] using the default logger.
func Trace(msg string, attrs ...slog.Attr) {
	Default().logDepth(DefaultContextProvider(), pkgSkip, LevelTrace, msg, attrs...)
}

// DebugContext logs a message at [LevelDebug] using the default logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logDepth(ctx, pkgSkip, LevelDebug, msg, attrs...)
}

// Debug logs a message at [LevelDebug] using the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	Default().logDepth(DefaultContextProvider(), pkgSkip, LevelDebug, msg, attrs...)
}

// InfoContext logs a message at [LevelInfo] using the default logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logDepth(ctx, pkgSkip, LevelInfo, msg, attrs...)
}

// Info logs a message at [LevelInfo] using the default logger.
func Info(msg string, attrs ...slog.Attr) {
	Default().logDepth(DefaultContextProvider(), pkgSkip, LevelInfo, msg, attrs...)
}

// WarnContext logs a message at [LevelWarn] using the default logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logDepth(ctx, pkgSkip, LevelWarn, msg, attrs...)
}

// Warn logs a message at [LevelWarn] using the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	Default().logDepth(DefaultContextProvider(), pkgSkip, LevelWarn, msg, attrs...)
}

// ErrorContext logs a message at [LevelError] using the default logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().logDepth(ctx, pkgSkip, LevelError, msg, attrs...)
}

// Error logs a message at [LevelError] using the default logger.
func Error(msg string, attrs ...slog.Attr) {
	Default().logDepth(DefaultContextProvider(), pkgSkip, LevelError, msg, attrs...)
}
