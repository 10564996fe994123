package lang

import (
	"strconv"
	"unicode/utf8"
)

// Scanner converts source text into a token sequence in a single
// left-to-right pass.
//
// Scanning never fails outright. Problems with individual characters are
// sent to the [Reporter] and scanning resumes at the next character.
type Scanner struct {
	source string
	tokens []Token
	report Reporter

	start   int // byte offset of the lexeme being scanned
	current int // byte offset of the next unread rune
	line    int
}

// NewScanner returns a Scanner over source that reports lexical errors to r.
// A nil r discards them.
func NewScanner(source string, r Reporter) *Scanner {
	return &Scanner{
		source: source,
		report: reporterOrDiscard(r),
		line:   1,
	}
}

// Scan is shorthand for NewScanner(source, r).ScanTokens().
func Scan(source string, r Reporter) []Token {
	return NewScanner(source, r).ScanTokens()
}

// ScanTokens scans the entire source. The returned sequence always ends with
// exactly one EOF token.
func (s *Scanner) ScanTokens() []Token {
	for !s.atEnd() {
		s.start = s.current
		s.scanToken()
	}

	s.tokens = append(s.tokens, Token{Kind: EOF, Line: s.line})

	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.advance()

	switch c {
	case '(':
		s.add(LeftParen)
	case ')':
		s.add(RightParen)
	case '{':
		s.add(LeftBrace)
	case '}':
		s.add(RightBrace)
	case ',':
		s.add(Comma)
	case '.':
		s.add(Dot)
	case '-':
		s.add(Minus)
	case '+':
		s.add(Plus)
	case ';':
		s.add(Semicolon)
	case '*':
		s.add(Star)

	case '!':
		s.add(s.choose('=', BangEqual, Bang))
	case '=':
		s.add(s.choose('=', EqualEqual, Equal))
	case '<':
		s.add(s.choose('=', LessEqual, Less))
	case '>':
		s.add(s.choose('=', GreaterEqual, Greater))

	case '/':
		if s.match('/') {
			// Line comment runs up to, not including, the newline.
			for s.peek() != '\n' && !s.atEnd() {
				s.advance()
			}
		} else {
			s.add(Slash)
		}

	case ' ', '\r', '\t':

	case '\n':
		s.line++

	case '"':
		s.stringLiteral()

	default:
		switch {
		case isDigit(c):
			s.number()
		case isAlpha(c):
			s.identifier()
		default:
			s.report.Report(newDiagnostic(
				ErrUnexpectedCharacter, s.line, "", "Unexpected character",
			))
		}
	}
}

func (s *Scanner) stringLiteral() {
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}

		s.advance()
	}

	if s.atEnd() {
		s.report.Report(newDiagnostic(
			ErrUnterminatedString, s.line, "", "Unterminated string.",
		))

		return
	}

	s.advance() // closing quote

	text := s.source[s.start+1 : s.current-1]
	s.addLiteral(StringLit, String(text))
}

func (s *Scanner) number() {
	for isDigit(s.peek()) {
		s.advance()
	}

	// A fractional part needs at least one digit after the dot.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()

		for isDigit(s.peek()) {
			s.advance()
		}
	}

	// ParseFloat only fails here on overflow, where it already yields ±Inf.
	f, _ := strconv.ParseFloat(s.source[s.start:s.current], 64)

	s.addLiteral(Number, Double(f))
}

func (s *Scanner) identifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}

	kind, ok := Keyword(s.source[s.start:s.current])
	if !ok {
		kind = Identifier
	}

	s.add(kind)
}

func (s *Scanner) add(kind Kind) { s.addLiteral(kind, nil) }

func (s *Scanner) addLiteral(kind Kind, literal Value) {
	s.tokens = append(s.tokens, Token{
		Kind:    kind,
		Lexeme:  s.source[s.start:s.current],
		Literal: literal,
		Line:    s.line,
	})
}

// choose consumes next and returns yes if it is the next rune, otherwise no.
func (s *Scanner) choose(next rune, yes, no Kind) Kind {
	if s.match(next) {
		return yes
	}

	return no
}

func (s *Scanner) match(expected rune) bool {
	if s.atEnd() || s.peek() != expected {
		return false
	}

	s.advance()

	return true
}

func (s *Scanner) advance() rune {
	r, size := utf8.DecodeRuneInString(s.source[s.current:])
	s.current += size

	return r
}

func (s *Scanner) peek() rune {
	if s.atEnd() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s.source[s.current:])

	return r
}

func (s *Scanner) peekNext() rune {
	_, size := utf8.DecodeRuneInString(s.source[s.current:])
	if s.current+size >= len(s.source) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s.source[s.current+size:])

	return r
}

func (s *Scanner) atEnd() bool { return s.current >= len(s.source) }

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isAlphaNumeric(r rune) bool { return isAlpha(r) || isDigit(r) }
