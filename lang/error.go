package lang

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Stage errors. Every diagnostic unwraps to exactly one of these.
var (
	ErrLexical = NewError("lexical error")
	ErrSyntax  = NewError("syntax error")
	ErrRuntime = NewError("runtime error")
)

// Diagnostic kinds.
var (
	ErrUnexpectedCharacter     = NewError("unexpected character").Wrap(ErrLexical)
	ErrUnterminatedString      = NewError("unterminated string").Wrap(ErrLexical)
	ErrExpectedToken           = NewError("expected token").Wrap(ErrSyntax)
	ErrExpectedExpression      = NewError("expected expression").Wrap(ErrSyntax)
	ErrInvalidAssignmentTarget = NewError("invalid assignment target").Wrap(ErrSyntax)
	ErrInvalidOperand          = NewError("invalid operand").Wrap(ErrRuntime)
	ErrUndefinedVariable       = NewError("undefined variable").Wrap(ErrRuntime)
	ErrInvalidAssignment       = NewError("invalid assignment").Wrap(ErrRuntime)
	ErrReadInput               = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With returns a copy of e carrying the additional attributes.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// Is reports whether e derives from the sentinel target: same message and,
// if target has a cause, the same cause. Attributes added with [Error.With]
// are ignored.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.msg == t.msg && (t.err == nil || e.err == t.err)
}

// Diagnostic is a single reportable problem found while scanning, parsing or
// evaluating source text.
type Diagnostic struct {
	Kind    error  // one of the Err* diagnostic kinds
	Line    int    // 1-based source line
	Where   string // location context, e.g. " at 'x'" or " at end"
	Message string
}

// Error renders d as "[line N] Error{where}: message".
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// Unwrap returns the diagnostic kind.
func (d *Diagnostic) Unwrap() error { return d.Kind }

// LogValue implements slog.LogValuer.
func (d *Diagnostic) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("line", d.Line),
		slog.String("message", d.Message),
	}

	if d.Where != "" {
		attrs = append(attrs, slog.String("where", strings.TrimSpace(d.Where)))
	}

	if d.Kind != nil {
		attrs = append(attrs, slog.String("kind", d.Kind.Error()))
	}

	return slog.GroupValue(attrs...)
}

func newDiagnostic(kind error, line int, where, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Line: line, Where: where, Message: message}
}

func tokenDiagnostic(kind error, tok Token, message string) *Diagnostic {
	return newDiagnostic(kind, tok.Line, tok.Where(), message)
}

// Reporter receives diagnostics as they are found.
type Reporter interface {
	Report(d *Diagnostic)
}

// ReporterFunc adapts a function to the [Reporter] interface.
type ReporterFunc func(d *Diagnostic)

// Report calls f(d).
func (f ReporterFunc) Report(d *Diagnostic) { f(d) }

// Diagnostics is a [Reporter] that collects every diagnostic it receives.
type Diagnostics []*Diagnostic

// Report appends d.
func (ds *Diagnostics) Report(d *Diagnostic) { *ds = append(*ds, d) }

// Err returns nil if no diagnostics were collected, otherwise an error
// joining all of them in order.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}

	errs := make([]error, len(ds))
	for i, d := range ds {
		errs[i] = d
	}

	return errors.Join(errs...)
}

// Count returns the number of collected diagnostics that unwrap to stage.
func (ds Diagnostics) Count(stage error) int {
	n := 0

	for _, d := range ds {
		if errors.Is(d, stage) {
			n++
		}
	}

	return n
}

// NewWriterReporter returns a [Reporter] that writes one line per diagnostic
// to w.
func NewWriterReporter(w io.Writer) Reporter {
	return ReporterFunc(func(d *Diagnostic) {
		_, _ = fmt.Fprintln(w, d.Error())
	})
}

// multiReporter fans diagnostics out to several reporters.
type multiReporter []Reporter

func (m multiReporter) Report(d *Diagnostic) {
	for _, r := range m {
		r.Report(d)
	}
}

// Tee returns a [Reporter] that forwards every diagnostic to each non-nil
// reporter in rs.
func Tee(rs ...Reporter) Reporter {
	m := make(multiReporter, 0, len(rs))

	for _, r := range rs {
		if r != nil {
			m = append(m, r)
		}
	}

	return m
}

// discard drops all diagnostics.
type discard struct{}

func (discard) Report(*Diagnostic) {}

func reporterOrDiscard(r Reporter) Reporter {
	if r == nil {
		return discard{}
	}

	return r
}
