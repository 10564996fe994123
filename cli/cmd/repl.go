package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/lox/cli/cmd/repl"
)

// REPL starts an interactive session.
type REPL struct {
	Plain   bool     `help:"Use a minimal line editor instead of the full-screen interface."`
	Define  []Define `help:"Define a global variable NAME=EXPR before the session starts (repeatable)." placeholder:"NAME=EXPR" short:"D"`
	History string   `default:"${history}" help:"History file; empty disables persistence." type:"path"`
}

// Run executes the repl command. The plain line editor is used when
// requested or when stdin is not a terminal.
func (r *REPL) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := logger("repl")
	streams := streamsFrom(ctx)

	globals, err := evalDefines(r.Define)
	if err != nil {
		return err
	}

	cfg := repl.Config{
		In:      streams.In,
		Out:     streams.Out,
		History: r.History,
		Globals: globals,
		Logger:  logger,
	}

	plain := r.Plain || !isTerminal(streams.In)

	logger.DebugContext(ctx, "start session",
		slog.Bool("plain", plain),
		slog.String("history", r.History),
	)

	if plain {
		return repl.RunPlain(ctx, cfg)
	}

	return repl.Run(ctx, cfg)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)

	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
