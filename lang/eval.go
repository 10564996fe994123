package lang

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/lox/log"
)

// Interpreter executes statements against a single evolving [Environment],
// starting from its global frame.
//
// An Interpreter is not safe for concurrent use. Statements run one at a
// time, each to completion.
type Interpreter struct {
	env    *Environment
	out    io.Writer
	report Reporter
	logger log.Logger
}

// Option configures an [Interpreter].
type Option func(*Interpreter)

// WithOutput sets the writer that print statements write to.
// The default is [os.Stdout].
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) {
		if w == nil {
			w = io.Discard
		}

		in.out = w
	}
}

// WithReporter sets the sink for diagnostics. The default writes each
// diagnostic as a line to the print output.
func WithReporter(r Reporter) Option {
	return func(in *Interpreter) {
		in.report = r
	}
}

// WithLogger sets the structured logger used for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// WithGlobals defines each entry of globals in the global frame.
func WithGlobals(globals map[string]Value) Option {
	return func(in *Interpreter) {
		for _, name := range sortedKeys(globals) {
			in.env.Define(name, globals[name])
		}
	}
}

// NewInterpreter returns an Interpreter with a fresh global frame.
func NewInterpreter(opts ...Option) *Interpreter {
	in := &Interpreter{
		env: NewEnvironment(),
		out: os.Stdout,
	}

	for _, opt := range opts {
		opt(in)
	}

	if in.report == nil {
		in.report = NewWriterReporter(in.out)
	}

	return in
}

// Environment returns the interpreter's scope chain.
func (in *Interpreter) Environment() *Environment { return in.env }

// Run scans, parses and, only if no lexical or syntax error was found,
// interprets source. Bindings persist across calls.
func (in *Interpreter) Run(ctx context.Context, source string) error {
	stmts, err := ParseCached(ctx, source, in.report, in.logger)
	if err != nil {
		return err
	}

	return in.Interpret(ctx, stmts)
}

// Interpret executes each top-level statement in order.
//
// A runtime error aborts only the top-level statement that raised it, even
// when raised inside a nested block: it is reported and execution continues
// with the next top-level statement. The returned error wraps [ErrRuntime]
// if any statement failed. If ctx is canceled, Interpret stops before
// starting the next top-level statement and returns ctx.Err(), joined with
// the runtime error if any statement had already failed.
func (in *Interpreter) Interpret(ctx context.Context, stmts []Stmt) error {
	failed := 0

	for _, s := range stmts {
		if err := ctx.Err(); err != nil {
			if failed > 0 {
				return errors.Join(err, ErrRuntime.With(slog.Int("count", failed)))
			}

			return err
		}

		in.logger.TraceContext(ctx, "execute", stmtAttrs(s)...)

		err := in.execute(ctx, s)
		if err == nil {
			continue
		}

		failed++

		d := &Diagnostic{}
		if !errors.As(err, &d) {
			d = newDiagnostic(ErrRuntime, 0, "", err.Error())
		}

		in.logger.DebugContext(ctx, "statement failed", slog.Any("diagnostic", d))
		in.report.Report(d)
	}

	if failed > 0 {
		return ErrRuntime.With(slog.Int("count", failed))
	}

	return nil
}

func (in *Interpreter) execute(ctx context.Context, s Stmt) error {
	switch s := s.(type) {
	case *ExpressionStmt:
		_, err := in.evaluate(s.Expr)

		return err

	case *PrintStmt:
		v, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(in.out, v.String())

		return nil

	case *VarStmt:
		var v Value

		if s.Init != nil {
			var err error

			v, err = in.evaluate(s.Init)
			if err != nil {
				return err
			}
		}

		in.env.Define(s.Name.Lexeme, v)

		return nil

	case *BlockStmt:
		return in.executeBlock(ctx, s.Stmts)

	default:
		return fmt.Errorf("unhandled statement %T", s)
	}
}

func (in *Interpreter) executeBlock(ctx context.Context, stmts []Stmt) error {
	id := in.env.Push()
	in.logger.TraceContext(ctx, "push scope",
		slog.Int("frame", int(id)), slog.Int("depth", in.env.Depth()))

	defer func() {
		in.env.Pop()
		in.logger.TraceContext(ctx, "pop scope",
			slog.Int("frame", int(id)), slog.Int("depth", in.env.Depth()))
	}()

	for _, s := range stmts {
		if err := in.execute(ctx, s); err != nil {
			return err
		}
	}

	return nil
}

func (in *Interpreter) evaluate(e Expr) (Value, error) {
	switch e := e.(type) {
	case *Literal:
		return e.Value, nil

	case *Grouping:
		return in.evaluate(e.Expr)

	case *Unary:
		return in.evaluateUnary(e)

	case *Binary:
		return in.evaluateBinary(e)

	case *Variable:
		v, ok := in.env.Get(e.Name.Lexeme)
		if !ok {
			return nil, runtimeError(ErrUndefinedVariable, e.Name,
				"Undefined variable '"+e.Name.Lexeme+"'.")
		}

		return v, nil

	case *Assign:
		v, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}

		if !in.env.Assign(e.Name.Lexeme, v) {
			return nil, runtimeError(ErrInvalidAssignment, e.Name,
				"Cannot assign to undeclared variable '"+e.Name.Lexeme+"'.")
		}

		return v, nil

	default:
		return nil, fmt.Errorf("unhandled expression %T", e)
	}
}

func (in *Interpreter) evaluateUnary(e *Unary) (Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case Minus:
		d, ok := right.(Double)
		if !ok {
			return nil, operandError(e.Op, "Operand must be a number.", right)
		}

		return -d, nil

	case Bang:
		return Bool(!Truthy(right)), nil

	default:
		return nil, operandError(e.Op, "Unrecognised unary operator.", right)
	}
}

func (in *Interpreter) evaluateBinary(e *Binary) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case EqualEqual:
		return Bool(ValuesEqual(left, right)), nil

	case BangEqual:
		return Bool(!ValuesEqual(left, right)), nil

	case Plus:
		switch l := left.(type) {
		case Double:
			if r, ok := right.(Double); ok {
				return l + r, nil
			}

		case String:
			if r, ok := right.(String); ok {
				return l + r, nil
			}
		}

		return nil, operandError(e.Op,
			"Operands must be two numbers or two strings.", left, right)
	}

	l, lok := left.(Double)
	r, rok := right.(Double)

	if !lok || !rok {
		return nil, operandError(e.Op, "Operands must be numbers.", left, right)
	}

	switch e.Op.Kind {
	case Minus:
		return l - r, nil
	case Star:
		return l * r, nil
	case Slash:
		return l / r, nil
	case Greater:
		return Bool(l > r), nil
	case GreaterEqual:
		return Bool(l >= r), nil
	case Less:
		return Bool(l < r), nil
	case LessEqual:
		return Bool(l <= r), nil
	default:
		return nil, operandError(e.Op, "Unrecognised binary operator.", left, right)
	}
}

func runtimeError(kind *Error, tok Token, message string) *Diagnostic {
	return tokenDiagnostic(
		kind.With(slog.String("name", tok.Lexeme)),
		tok,
		message,
	)
}

func operandError(op Token, message string, operands ...Value) *Diagnostic {
	types := make([]string, len(operands))
	for i, v := range operands {
		types[i] = TypeName(v)
	}

	return tokenDiagnostic(
		ErrInvalidOperand.With(
			slog.String("operator", op.Lexeme),
			slog.Any("operands", types),
		),
		op,
		message,
	)
}
