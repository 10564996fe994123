// Package log provides a leveled structured logger built on [log/slog].
//
// A [Logger] is configured once, with functional options, when it is made:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true))
//
// Loggers are immutable values. [Logger.Wrap] derives a logger with
// different options and [Logger.With] one carrying extra attributes. The zero
// Logger discards everything, which lets library code accept an optional
// logger without nil checks.
//
// # Levels
//
// Five levels are defined: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. Each has a method taking a context and one
// that uses [DefaultContextProvider].
//
// # Formats
//
// [FormatText] writes key=value lines, styled with lipgloss when
// [WithPretty] is enabled and the output supports color. [FormatJSON] writes
// one JSON object per line.
//
// # Package-level logger
//
// The package-level functions log through a shared logger writing to
// standard error, reconfigured with [Config].
package log
