package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/lox/lang"
	"github.com/ardnew/lox/log"
)

// Tokens prints the token stream of a script.
type Tokens struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML output." short:"i"`

	Script string `arg:"" default:"-" help:"Script file or '-' for stdin." name:"script"`
}

// Run executes the tokens command. Lexical errors are reported, and the
// tokens scanned around them are still printed.
func (t *Tokens) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := logger("tokens")
	streams := streamsFrom(ctx)

	source, err := readScript(ctx, streams, t.Script, logger)
	if err != nil {
		return err
	}

	var diags lang.Diagnostics

	tokens := lang.Scan(source, lang.Tee(&diags, lang.NewWriterReporter(streams.Err)))

	logger.DebugContext(ctx, "scanned",
		slog.Int("tokens", len(tokens)),
		slog.Int("errors", len(diags)),
	)

	switch t.Format {
	case "text":
		for _, tok := range tokens {
			if _, err := fmt.Fprintln(streams.Out, tok.String()); err != nil {
				return ErrWriteOutput.Wrap(err)
			}
		}
	case "json":
		err = lang.FormatJSON(ctx, streams.Out, lang.TokensToMaps(tokens), t.Indent)
	case "yaml":
		err = lang.FormatYAML(ctx, streams.Out, lang.TokensToMaps(tokens), t.Indent)
	default:
		return ErrUnknownFormat.With(slog.String("format", t.Format))
	}

	if err != nil {
		return ErrWriteOutput.With(slog.String("format", t.Format)).Wrap(err)
	}

	if n := diags.Count(lang.ErrLexical); n > 0 {
		return lang.ErrLexical.With(slog.Int("count", n))
	}

	return nil
}

// AST prints the statements parsed from a script.
type AST struct {
	Format string `default:"sexpr" enum:"sexpr,json,yaml" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"2"                            help:"Indent width for JSON and YAML output." short:"i"`

	Script string `arg:"" default:"-" help:"Script file or '-' for stdin." name:"script"`
}

// Run executes the ast command. Nothing is printed if the script has a
// lexical or syntax error.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := logger("ast")
	streams := streamsFrom(ctx)

	stmts, err := parseScript(ctx, streams, a.Script, logger)
	if err != nil {
		return err
	}

	switch a.Format {
	case "sexpr":
		for _, s := range stmts {
			if _, err := fmt.Fprintln(streams.Out, lang.Sprint(s)); err != nil {
				return ErrWriteOutput.Wrap(err)
			}
		}
	case "json":
		err = lang.FormatJSON(ctx, streams.Out, lang.StmtsToMaps(stmts), a.Indent)
	case "yaml":
		err = lang.FormatYAML(ctx, streams.Out, lang.StmtsToMaps(stmts), a.Indent)
	default:
		return ErrUnknownFormat.With(slog.String("format", a.Format))
	}

	if err != nil {
		return ErrWriteOutput.With(slog.String("format", a.Format)).Wrap(err)
	}

	return nil
}

// Fmt prints a script in normalized form.
type Fmt struct {
	Indent int `default:"2" help:"Indent width for nested blocks; 0 prints each block on one line." short:"i"`

	Script string `arg:"" default:"-" help:"Script file or '-' for stdin." name:"script"`
}

// Run executes the fmt command. Nothing is printed if the script has a
// lexical or syntax error.
func (f *Fmt) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger := logger("fmt")
	streams := streamsFrom(ctx)

	stmts, err := parseScript(ctx, streams, f.Script, logger)
	if err != nil {
		return err
	}

	if err := lang.Format(ctx, streams.Out, stmts, f.Indent); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// readScript resolves and reads the single script named by path.
func readScript(
	ctx context.Context,
	streams Streams,
	path string,
	logger log.Logger,
) (string, error) {
	srcs, err := OpenSources(streams.In, SearchPath(), path)
	if err != nil {
		return "", err
	}

	defer closeSources(srcs)

	if len(srcs) == 0 {
		return "", nil
	}

	source, err := lang.ReadSource(ctx, srcs[0], logger)
	if err != nil {
		return "", ErrOpenSource.With(slog.String("path", srcs[0].Name)).Wrap(err)
	}

	return source, nil
}

// parseScript reads and parses the script named by path, reporting
// diagnostics to streams.Err.
func parseScript(
	ctx context.Context,
	streams Streams,
	path string,
	logger log.Logger,
) ([]lang.Stmt, error) {
	source, err := readScript(ctx, streams, path, logger)
	if err != nil {
		return nil, err
	}

	stmts, err := lang.ParseCached(ctx, source, lang.NewWriterReporter(streams.Err), logger)
	if err != nil {
		return nil, lang.WrapError(err).With(slog.String("script", path))
	}

	logger.DebugContext(ctx, "parsed", slog.Int("statements", len(stmts)))

	return stmts, nil
}
