// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// colorized output and output formats that are applied at logger creation
// time using functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("rendered template", slog.String("path", path))
//	logger.Error("render failed", slog.Any("error", err))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions write through a default logger that
// [Config] reconfigures and [Default] returns.
//
// # Context-Aware Logging
//
// Each level has a context-aware variant. The context-unaware variants use
// [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Supported Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and [LevelError].
// Messages below the configured level are discarded.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText]. With [WithPretty] enabled both
// formats are colorized for terminals.
package log
