package lang

import (
	"log/slog"
)

// Parser builds statements from a token sequence by recursive descent.
//
// Grammar, lowest to highest precedence:
//
//	program     → declaration* EOF
//	declaration → varDecl | statement
//	varDecl     → "var" IDENTIFIER ( "=" expression )? ";"
//	statement   → printStmt | block | exprStmt
//	printStmt   → "print" expression ";"
//	block       → "{" declaration* "}"
//	exprStmt    → expression ";"
//	expression  → assignment
//	assignment  → IDENTIFIER "=" assignment | equality
//	equality    → comparison ( ( "!=" | "==" ) comparison )*
//	comparison  → term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term        → factor ( ( "-" | "+" ) factor )*
//	factor      → unary ( ( "/" | "*" ) unary )*
//	unary       → ( "!" | "-" ) unary | primary
//	primary     → "true" | "false" | "nil" | NUMBER | STRING
//	            | IDENTIFIER | "(" expression ")"
type Parser struct {
	tokens  []Token
	current int
	report  Reporter
	errors  int
}

// NewParser returns a Parser over tokens that reports syntax errors to r.
// A nil r discards them. The token sequence must end with an EOF token, as
// produced by [Scanner.ScanTokens].
func NewParser(tokens []Token, r Reporter) *Parser {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != EOF {
		line := 1
		if n > 0 {
			line = tokens[n-1].Line
		}

		tokens = append(tokens[:n:n], Token{Kind: EOF, Line: line})
	}

	return &Parser{tokens: tokens, report: reporterOrDiscard(r)}
}

// Parse consumes the whole token sequence once and returns every statement
// that parsed cleanly.
//
// A malformed statement is reported, skipped up to the next statement
// boundary and parsing continues, so a single call reports every detectable
// syntax error. The returned error is non-nil, wrapping [ErrSyntax], when at
// least one was reported.
func (p *Parser) Parse() ([]Stmt, error) {
	var stmts []Stmt

	for !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}

	if p.errors > 0 {
		return stmts, ErrSyntax.With(slog.Int("count", p.errors))
	}

	return stmts, nil
}

// Parse scans and parses source, reporting every lexical and syntax error to
// r. The returned error wraps [ErrLexical] or [ErrSyntax] if any was found,
// in which case the statements must not be executed.
func Parse(source string, r Reporter) ([]Stmt, error) {
	var diags Diagnostics

	tokens := Scan(source, Tee(&diags, r))

	stmts, err := NewParser(tokens, Tee(&diags, r)).Parse()

	if n := diags.Count(ErrLexical); n > 0 {
		return stmts, ErrLexical.With(slog.Int("count", n))
	}

	return stmts, err
}

func (p *Parser) declaration() Stmt {
	var (
		s   Stmt
		err error
	)

	if p.match(Var) {
		s, err = p.varDeclaration()
	} else {
		s, err = p.statement()
	}

	if err != nil {
		p.synchronize()

		return nil
	}

	return s
}

func (p *Parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var init Expr

	if p.match(Equal) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	_, err = p.consume(Semicolon, "Expect ';' after variable declaration.")
	if err != nil {
		return nil, err
	}

	return &VarStmt{Name: name, Init: init}, nil
}

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(Print):
		return p.printStatement()

	case p.match(LeftBrace):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}

		return &BlockStmt{Stmts: stmts}, nil

	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (Stmt, error) {
	e, err := p.expression()
	if err != nil {
		return nil, err
	}

	_, err = p.consume(Semicolon, "Expect ';' after value.")
	if err != nil {
		return nil, err
	}

	return &PrintStmt{Expr: e}, nil
}

func (p *Parser) expressionStatement() (Stmt, error) {
	e, err := p.expression()
	if err != nil {
		return nil, err
	}

	_, err = p.consume(Semicolon, "Expect ';' after expression.")
	if err != nil {
		return nil, err
	}

	return &ExpressionStmt{Expr: e}, nil
}

func (p *Parser) block() ([]Stmt, error) {
	var stmts []Stmt

	for !p.check(RightBrace) && !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}

	_, err := p.consume(RightBrace, "Expect '}' after block.")
	if err != nil {
		return nil, err
	}

	return stmts, nil
}

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (Expr, error) {
	e, err := p.equality()
	if err != nil {
		return nil, err
	}

	if !p.match(Equal) {
		return e, nil
	}

	equals := p.previous()

	value, err := p.assignment()
	if err != nil {
		return nil, err
	}

	if v, ok := e.(*Variable); ok {
		return &Assign{Name: v.Name, Value: value}, nil
	}

	// The parser is not confused by a bad target, so report without
	// synchronizing and carry on with the left operand.
	p.error(ErrInvalidAssignmentTarget, equals, "Invalid assignment target.")

	return e, nil
}

// binary parses a left-associative level of the precedence cascade: one
// operand from next, then any number of (operator, operand) pairs folded to
// the left.
func (p *Parser) binary(next func() (Expr, error), ops ...Kind) (Expr, error) {
	e, err := next()
	if err != nil {
		return nil, err
	}

	for p.match(ops...) {
		op := p.previous()

		right, err := next()
		if err != nil {
			return nil, err
		}

		e = &Binary{Left: e, Op: op, Right: right}
	}

	return e, nil
}

func (p *Parser) equality() (Expr, error) {
	return p.binary(p.comparison, BangEqual, EqualEqual)
}

func (p *Parser) comparison() (Expr, error) {
	return p.binary(p.term, Greater, GreaterEqual, Less, LessEqual)
}

func (p *Parser) term() (Expr, error) {
	return p.binary(p.factor, Minus, Plus)
}

func (p *Parser) factor() (Expr, error) {
	return p.binary(p.unary, Slash, Star)
}

func (p *Parser) unary() (Expr, error) {
	if p.match(Bang, Minus) {
		op := p.previous()

		right, err := p.unary()
		if err != nil {
			return nil, err
		}

		return &Unary{Op: op, Right: right}, nil
	}

	return p.primary()
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(False):
		return &Literal{Value: Bool(false)}, nil

	case p.match(True):
		return &Literal{Value: Bool(true)}, nil

	case p.match(NilLit):
		return &Literal{Value: Nil{}}, nil

	case p.match(Number, StringLit):
		return &Literal{Value: p.previous().Literal}, nil

	case p.match(Identifier):
		return &Variable{Name: p.previous()}, nil

	case p.match(LeftParen):
		e, err := p.expression()
		if err != nil {
			return nil, err
		}

		_, err = p.consume(RightParen, "Expect ')' after expression.")
		if err != nil {
			return nil, err
		}

		return &Grouping{Expr: e}, nil
	}

	return nil, p.error(ErrExpectedExpression, p.peek(), "Expect expression.")
}

// synchronize discards tokens until the start of the next statement: just
// past a semicolon, or before a keyword that begins a declaration or
// statement.
func (p *Parser) synchronize() {
	p.advance()

	for !p.atEnd() {
		if p.previous().Kind == Semicolon {
			return
		}

		switch p.peek().Kind {
		case Class, Fun, Var, For, If, While, Print, Return:
			return
		}

		p.advance()
	}
}

func (p *Parser) consume(kind Kind, message string) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}

	return Token{}, p.error(ErrExpectedToken, p.peek(), message)
}

// error reports a syntax diagnostic at tok and returns it.
func (p *Parser) error(kind *Error, tok Token, message string) error {
	p.errors++

	d := tokenDiagnostic(
		kind.With(
			slog.String("lexeme", tok.Lexeme),
			slog.String("token", tok.Kind.String()),
		),
		tok,
		message,
	)
	p.report.Report(d)

	return d
}

func (p *Parser) match(kinds ...Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()

			return true
		}
	}

	return false
}

func (p *Parser) check(kind Kind) bool {
	if p.atEnd() {
		return false
	}

	return p.peek().Kind == kind
}

func (p *Parser) advance() Token {
	if !p.atEnd() {
		p.current++
	}

	return p.previous()
}

func (p *Parser) atEnd() bool { return p.peek().Kind == EOF }

func (p *Parser) peek() Token { return p.tokens[p.current] }

func (p *Parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}

	return p.tokens[p.current-1]
}
