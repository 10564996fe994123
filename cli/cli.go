package cli

import (
	"context"
	"errors"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lox/cli/cmd"
	"github.com/ardnew/lox/lang"
	"github.com/ardnew/lox/pkg"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// Exit codes returned by [ExitCode], following the sysexits(3) convention.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 64 // command line usage error
	ExitDataErr  = 65 // lexical or syntax error in a script
	ExitSoftware = 70 // runtime error in a script
)

// CLI is the top-level command-line interface for lox.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Run     cmd.Run     `cmd:"" default:"withargs" help:"Run scripts (default command)."`
	Tokens  cmd.Tokens  `cmd:""                    help:"Print the tokens of a script."`
	AST     cmd.AST     `cmd:""                    help:"Print the syntax tree of a script." name:"ast"`
	Fmt     cmd.Fmt     `cmd:""                    help:"Print a script in normalized form."`
	REPL    cmd.REPL    `cmd:""                    help:"Start an interactive session."      name:"repl"`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file."`
	Version cmd.Version `cmd:""                    help:"Print version information."`
}

// Run executes the lox CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := pkg.MkdirAll()
	if err != nil {
		return err
	}

	configFilePath := pkg.ConfigPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier:  configFilePath + yamlExt,
		cmd.CacheIdentifier:   pkg.CacheDir(),
		cmd.HistoryIdentifier: pkg.CachePath("history"),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve, configFilePath+yamlExt, configFilePath+".yml"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}

// ExitCode returns the process exit status for an error returned by [Run]:
// 65 if a script had a lexical or syntax error, 70 if it had a runtime error,
// 64 for a command line usage error and 1 for anything else.
func ExitCode(err error) int {
	var parseErr *kong.ParseError

	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, lang.ErrLexical), errors.Is(err, lang.ErrSyntax):
		return ExitDataErr
	case errors.Is(err, lang.ErrRuntime):
		return ExitSoftware
	case errors.As(err, &parseErr):
		return ExitUsage
	default:
		return ExitFailure
	}
}
