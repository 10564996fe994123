package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/lox/log"
)

func Example_textFormat() {
	logger := log.Make(os.Stdout,
		log.WithTimeLayout("none"),
		log.WithPretty(false))

	logger.Info("scope entered", slog.Int("depth", 2))
	logger.Debug("hidden below info")
	// Output:
	// level=INFO msg="scope entered" depth=2
}

func Example_jsonFormat() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout("none"))

	logger.With(slog.String("stage", "parse")).
		TraceContext(context.Background(), "cache lookup", slog.Bool("hit", true))
	// Output:
	// {"level":"TRACE","msg":"cache lookup","stage":"parse","hit":true}
}

func Example_prettyText() {
	// Styles are dropped when the output is not a terminal.
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"))

	logger.Warn("runtime error", slog.Group("diagnostic",
		slog.Int("line", 3),
		slog.String("message", "Undefined variable 'x'."),
	))
	// Output:
	// WARN  runtime error diagnostic.line=3 diagnostic.message=Undefined variable 'x'.
}
