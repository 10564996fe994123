package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Sprint returns the fully parenthesized prefix form of an [Expr] or [Stmt],
// e.g. "(+ 1 (* 2 3))". It makes grouping and operator precedence explicit.
func Sprint(node any) string {
	var sb strings.Builder

	switch n := node.(type) {
	case Expr:
		sprintExpr(&sb, n)
	case Stmt:
		sprintStmt(&sb, n)
	default:
		fmt.Fprintf(&sb, "%v", node)
	}

	return sb.String()
}

func sprintExpr(sb *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *Literal:
		sb.WriteString(e.Value.Display())
	case *Grouping:
		parenthesize(sb, "group", e.Expr)
	case *Unary:
		parenthesize(sb, e.Op.Lexeme, e.Right)
	case *Binary:
		parenthesize(sb, e.Op.Lexeme, e.Left, e.Right)
	case *Variable:
		sb.WriteString(e.Name.Lexeme)
	case *Assign:
		parenthesize(sb, "= "+e.Name.Lexeme, e.Value)
	}
}

func sprintStmt(sb *strings.Builder, s Stmt) {
	switch s := s.(type) {
	case *ExpressionStmt:
		parenthesize(sb, ";", s.Expr)
	case *PrintStmt:
		parenthesize(sb, "print", s.Expr)
	case *VarStmt:
		if s.Init == nil {
			sb.WriteString("(var " + s.Name.Lexeme + ")")
		} else {
			parenthesize(sb, "var "+s.Name.Lexeme, s.Init)
		}
	case *BlockStmt:
		sb.WriteString("(block")

		for _, inner := range s.Stmts {
			sb.WriteByte(' ')
			sprintStmt(sb, inner)
		}

		sb.WriteByte(')')
	}
}

func parenthesize(sb *strings.Builder, name string, exprs ...Expr) {
	sb.WriteString("(" + name)

	for _, e := range exprs {
		sb.WriteByte(' ')
		sprintExpr(sb, e)
	}

	sb.WriteByte(')')
}

// Format writes stmts back out as source text, one statement per line.
// Each nested block is indented by indent spaces; an indent of zero writes
// every block on a single line.
func Format(_ context.Context, w io.Writer, stmts []Stmt, indent int) error {
	f := &formatter{indent: indent}

	for _, s := range stmts {
		f.stmt(s, 0)
		f.sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, f.sb.String())

	return err
}

type formatter struct {
	sb     strings.Builder
	indent int
}

func (f *formatter) pad(depth int) {
	if f.indent > 0 {
		f.sb.WriteString(strings.Repeat(" ", depth*f.indent))
	}
}

func (f *formatter) stmt(s Stmt, depth int) {
	switch s := s.(type) {
	case *ExpressionStmt:
		f.expr(s.Expr)
		f.sb.WriteByte(';')

	case *PrintStmt:
		f.sb.WriteString("print ")
		f.expr(s.Expr)
		f.sb.WriteByte(';')

	case *VarStmt:
		f.sb.WriteString("var " + s.Name.Lexeme)

		if s.Init != nil {
			f.sb.WriteString(" = ")
			f.expr(s.Init)
		}

		f.sb.WriteByte(';')

	case *BlockStmt:
		f.block(s, depth)
	}
}

func (f *formatter) block(b *BlockStmt, depth int) {
	if len(b.Stmts) == 0 {
		f.sb.WriteString("{}")

		return
	}

	f.sb.WriteByte('{')

	for _, s := range b.Stmts {
		if f.indent > 0 {
			f.sb.WriteByte('\n')
			f.pad(depth + 1)
		} else {
			f.sb.WriteByte(' ')
		}

		f.stmt(s, depth+1)
	}

	if f.indent > 0 {
		f.sb.WriteByte('\n')
		f.pad(depth)
	} else {
		f.sb.WriteByte(' ')
	}

	f.sb.WriteByte('}')
}

func (f *formatter) expr(e Expr) {
	switch e := e.(type) {
	case *Literal:
		f.sb.WriteString(sourceLiteral(e.Value))

	case *Grouping:
		f.sb.WriteByte('(')
		f.expr(e.Expr)
		f.sb.WriteByte(')')

	case *Unary:
		f.sb.WriteString(e.Op.Lexeme)
		f.expr(e.Right)

	case *Binary:
		f.expr(e.Left)
		f.sb.WriteString(" " + e.Op.Lexeme + " ")
		f.expr(e.Right)

	case *Variable:
		f.sb.WriteString(e.Name.Lexeme)

	case *Assign:
		f.sb.WriteString(e.Name.Lexeme + " = ")
		f.expr(e.Value)
	}
}

// sourceLiteral renders v as it would be written in source. String literals
// have no escape sequences, so the text is written between quotes verbatim.
func sourceLiteral(v Value) string {
	if s, ok := v.(String); ok {
		return `"` + string(s) + `"`
	}

	return v.String()
}

// FormatJSON writes v as JSON, indented by indent spaces when indent is
// positive.
func FormatJSON(_ context.Context, w io.Writer, v any, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes v as YAML. A positive indent selects block style with
// that indentation; otherwise flow style is used.
func FormatYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
