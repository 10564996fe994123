package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lox/log"
)

// logFormat configures the logger format as a side effect of parsing, so that
// errors reported while Kong is still parsing use the requested format.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	var format log.Format
	if err := format.UnmarshalText(text); err != nil {
		return err
	}

	*f = logFormat(format.String())
	log.Config(log.WithFormat(format))

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (f logFormat) MarshalText() ([]byte, error) { return []byte(f), nil }

// logLevel configures the logger level as a side effect of parsing.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	var level log.Level
	if err := level.UnmarshalText(text); err != nil {
		return err
	}

	*l = logLevel(level.String())
	log.Config(log.WithLevel(level))

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (l logLevel) MarshalText() ([]byte, error) { return []byte(l), nil }

type logConfig struct {
	Level      logLevel  `default:"${logLevelDefault}"  help:"Set log level (${logLevelEnum})."   placeholder:"LEVEL"`
	Format     logFormat `default:"${logFormatDefault}" enum:"${logFormatEnum}"                    help:"Set log format."`
	TimeLayout string    `default:"RFC3339"             help:"Set timestamp format."`
	Caller     bool      `default:"false"               help:"Include caller information."        negatable:""`
	Pretty     bool      `default:"true"                help:"Enable colorized pretty printing."  negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelDefault":  log.DefaultLevel.String(),
		"logLevelEnum":     strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatDefault": log.DefaultFormat.String(),
		"logFormatEnum":    strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies logger flags found in args before Kong begins parsing, so the
// logger is configured regardless of flag position. Level and format are also
// applied by their TextUnmarshaler during parsing; the boolean flags are not.
func (f *logConfig) scan(args []string) {
	toggles := map[string]func(bool) log.Option{
		"pretty": func(v bool) log.Option { f.Pretty = v; return log.WithPretty(v) },
		"caller": func(v bool) log.Option { f.Caller = v; return log.WithCaller(v) },
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return
		}

		flag, negated := strings.CutPrefix(arg, "--no-log-")
		if !negated {
			var ok bool
			if flag, ok = strings.CutPrefix(arg, "--log-"); !ok {
				continue
			}
		}

		name, value, assigned := strings.Cut(flag, "=")

		// Non-boolean flags consume the next arg as value if not assigned.
		takeValue := func() string {
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return value
		}

		switch name {
		case "level":
			if !negated {
				_ = f.Level.UnmarshalText([]byte(takeValue()))
			}

		case "format":
			if !negated {
				_ = f.Format.UnmarshalText([]byte(takeValue()))
			}

		default:
			toggle, ok := toggles[name]
			if !ok {
				continue
			}

			enable := true
			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				enable = v
			}

			log.Config(toggle(enable != negated))
		}
	}
}
