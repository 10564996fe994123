package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/lox/lang"
)

// Run executes scripts in one interpreter, so globals defined by one script
// are visible to the scripts after it.
type Run struct {
	Define []Define `help:"Define a global variable NAME=EXPR before running (repeatable)." placeholder:"NAME=EXPR" short:"D"`
	Path   []string `help:"Search directory for relative script paths (repeatable), before $LOXPATH." placeholder:"DIR" short:"I" type:"path"`

	Scripts []string `arg:"" default:"-" help:"Script files to run, or '-' for stdin." name:"script" optional:""`
}

// Run executes the run command.
//
// Scripts run in order. A script with a lexical or syntax error is not
// executed, and no later script runs. A runtime error aborts only the
// offending top-level statement; later statements and scripts still run and
// the first such error is returned once all are done.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := logger("run")
	streams := streamsFrom(ctx)

	globals, err := evalDefines(r.Define)
	if err != nil {
		return err
	}

	search := SearchPath(r.Path...)

	logger.DebugContext(ctx, "resolve scripts",
		slog.Any("scripts", r.Scripts),
		slog.Any("search", search),
		slog.Int("defines", len(globals)),
	)

	srcs, err := OpenSources(streams.In, search, r.Scripts...)
	if err != nil {
		return err
	}

	defer closeSources(srcs)

	in := interpreter(streams, logger, lang.WithGlobals(globals))

	var runtimeErr error

	for _, src := range srcs {
		source, err := lang.ReadSource(ctx, src, logger)
		if err != nil {
			return ErrOpenSource.With(slog.String("path", src.Name)).Wrap(err)
		}

		logger.DebugContext(ctx, "run script",
			slog.String("script", src.Name),
			slog.Int("bytes", len(source)),
		)

		err = in.Run(ctx, source)

		switch {
		case err == nil:
		case errors.Is(err, lang.ErrRuntime):
			if runtimeErr == nil {
				runtimeErr = lang.WrapError(err).With(slog.String("script", src.Name))
			}
		default:
			err = lang.WrapError(err).With(slog.String("script", src.Name))
			if runtimeErr != nil {
				return errors.Join(err, runtimeErr)
			}

			return err
		}
	}

	return runtimeErr
}
