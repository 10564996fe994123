package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lox/lang"
	"github.com/ardnew/lox/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	streamsKey struct{}

	// Streams are the standard streams a command reads and writes.
	Streams struct {
		In  io.Reader
		Out io.Writer
		Err io.Writer
	}
)

// WithStreams returns a new context.Context whose commands use s instead of
// the process's standard streams. Nil fields keep their default.
func WithStreams(ctx context.Context, s Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, s)
}

// streamsFrom retrieves the streams stored in ctx by WithStreams, filling any
// unset field with the corresponding os.Std* file.
func streamsFrom(ctx context.Context) Streams {
	s, _ := ctx.Value(streamsKey{}).(Streams)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}

// logger returns the package-level logger tagged with the command name.
func logger(name string) log.Logger {
	return log.Default().With(slog.String("command", name))
}

// interpreter returns a new interpreter writing program output to s.Out and
// diagnostics to s.Err.
func interpreter(s Streams, l log.Logger, opts ...lang.Option) *lang.Interpreter {
	return lang.NewInterpreter(append([]lang.Option{
		lang.WithOutput(s.Out),
		lang.WithReporter(lang.NewWriterReporter(s.Err)),
		lang.WithLogger(l),
	}, opts...)...)
}
