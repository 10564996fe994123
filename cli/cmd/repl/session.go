package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/lox/lang"
	"github.com/ardnew/lox/log"
)

// Config configures a REPL session.
type Config struct {
	In      io.Reader
	Out     io.Writer
	History string                // history file; empty keeps history in memory
	Globals map[string]lang.Value // variables defined before the first input
	Logger  log.Logger
}

// commandPrefix starts a REPL command, as opposed to source text.
const commandPrefix = ":"

// commands are the REPL commands, without [commandPrefix].
var commands = []string{"clear", "edit", "help", "quit", "vars"}

func helpMessage() string {
	return `Enter statements to run them, e.g. var a = 1; print a + 2;
An expression without a trailing ';' is printed.
Blocks and strings may span lines until closed.

Commands:
  :help    Print this message
  :vars    List visible variables and their values
  :edit    Write source in $EDITOR and run it
  :clear   Clear the screen
  :quit    Exit (also Ctrl+D on an empty line)
`
}

// action tells a frontend what to do after an input was handled.
type action int

const (
	actionNone action = iota
	actionQuit
	actionClear
	actionEdit
)

// result is the outcome of one input.
type result struct {
	output  string             // text printed by the program
	diags   []*lang.Diagnostic // errors reported while running it
	message string             // response to a command
	action  action
}

// session is the frontend-independent state of a REPL: one interpreter whose
// bindings persist across inputs.
type session struct {
	in      *lang.Interpreter
	out     bytes.Buffer
	diags   lang.Diagnostics
	history *History
	logger  log.Logger
}

func newSession(cfg Config) *session {
	s := &session{
		history: NewHistory(cfg.History),
		logger:  cfg.Logger,
	}

	s.in = lang.NewInterpreter(
		lang.WithOutput(&s.out),
		lang.WithReporter(&s.diags),
		lang.WithLogger(cfg.Logger),
		lang.WithGlobals(cfg.Globals),
	)

	return s
}

// handle runs one complete input: a command or source text.
func (s *session) handle(ctx context.Context, input string) result {
	input = strings.TrimSpace(input)
	if input == "" {
		return result{}
	}

	if err := s.history.Add(input); err != nil {
		s.logger.WarnContext(ctx, "history not saved", slog.Any("error", err))
	}

	if name, ok := strings.CutPrefix(input, commandPrefix); ok {
		return s.command(ctx, strings.TrimSpace(name))
	}

	return s.run(ctx, input)
}

func (s *session) command(ctx context.Context, name string) result {
	s.logger.TraceContext(ctx, "repl command", slog.String("command", name))

	switch name {
	case "q", "quit", "exit":
		return result{action: actionQuit}
	case "h", "help", "?":
		return result{message: helpMessage()}
	case "v", "vars":
		return result{message: s.vars()}
	case "c", "clear":
		return result{action: actionClear}
	case "e", "edit":
		return result{action: actionEdit}
	default:
		return result{message: fmt.Sprintf("unknown command %q (try :help)", commandPrefix+name)}
	}
}

// run executes source in the session's interpreter. A lone expression
// without a terminating semicolon is printed.
func (s *session) run(ctx context.Context, source string) result {
	s.out.Reset()
	s.diags = s.diags[:0]

	var err error

	if stmts, ok := bareExpression(source); ok {
		err = s.in.Interpret(ctx, stmts)
	} else {
		err = s.in.Run(ctx, source)
	}

	s.logger.TraceContext(ctx, "repl run",
		slog.Int("output_bytes", s.out.Len()),
		slog.Int("errors", len(s.diags)),
	)

	r := result{output: s.out.String(), diags: append([]*lang.Diagnostic(nil), s.diags...)}

	if err != nil && len(r.diags) == 0 && !errors.Is(err, context.Canceled) {
		r.message = err.Error()
	}

	return r
}

// bareExpression parses source followed by a semicolon and, if that yields a
// single expression statement, returns it as a print statement.
func bareExpression(source string) ([]lang.Stmt, bool) {
	if strings.HasSuffix(source, ";") || strings.HasSuffix(source, "}") {
		return nil, false
	}

	stmts, err := lang.Parse(source+";", nil)
	if err != nil || len(stmts) != 1 {
		return nil, false
	}

	e, ok := stmts[0].(*lang.ExpressionStmt)
	if !ok {
		return nil, false
	}

	return []lang.Stmt{&lang.PrintStmt{Expr: e.Expr}}, true
}

// vars lists the visible variables, innermost first.
func (s *session) vars() string {
	env := s.in.Environment()
	names := env.Names()

	if len(names) == 0 {
		return "no variables defined\n"
	}

	var b strings.Builder

	for _, name := range names {
		v, _ := env.Get(name)

		display := "<uninitialized>"
		if env.Initialized(name) {
			display = v.Display()
		}

		fmt.Fprintf(&b, "  %s = %s\n", name, display)
	}

	return b.String()
}

// incomplete reports whether source ends inside an open block or string and
// more lines should be read before running it.
func incomplete(source string) bool {
	var diags lang.Diagnostics

	depth := 0

	for _, tok := range lang.Scan(source, &diags) {
		switch tok.Kind {
		case lang.LeftBrace:
			depth++
		case lang.RightBrace:
			depth--
		}
	}

	for _, d := range diags {
		if errors.Is(d, lang.ErrUnterminatedString) {
			return true
		}
	}

	return depth > 0
}
