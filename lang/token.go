package lang

import (
	"iter"
	"strconv"
)

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	// Single-character punctuation.
	LeftParen Kind = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character operators.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	StringLit
	Number

	// Keywords.
	And
	Class
	Else
	False
	Fun
	For
	If
	NilLit
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	EOF
)

var kindNames = [...]string{
	LeftParen:    "LeftParen",
	RightParen:   "RightParen",
	LeftBrace:    "LeftBrace",
	RightBrace:   "RightBrace",
	Comma:        "Comma",
	Dot:          "Dot",
	Minus:        "Minus",
	Plus:         "Plus",
	Semicolon:    "Semicolon",
	Slash:        "Slash",
	Star:         "Star",
	Bang:         "Bang",
	BangEqual:    "BangEqual",
	Equal:        "Equal",
	EqualEqual:   "EqualEqual",
	Greater:      "Greater",
	GreaterEqual: "GreaterEqual",
	Less:         "Less",
	LessEqual:    "LessEqual",
	Identifier:   "Identifier",
	StringLit:    "String",
	Number:       "Number",
	And:          "And",
	Class:        "Class",
	Else:         "Else",
	False:        "False",
	Fun:          "Fun",
	For:          "For",
	If:           "If",
	NilLit:       "Nil",
	Or:           "Or",
	Print:        "Print",
	Return:       "Return",
	Super:        "Super",
	This:         "This",
	True:         "True",
	Var:          "Var",
	While:        "While",
	EOF:          "EOF",
}

// String returns the name of the token kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}

	return kindNames[k]
}

// keywords is the fixed reserved word table.
var keywords = map[string]Kind{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    NilLit,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// Keyword reports the keyword kind for text, if text is a reserved word.
func Keyword(text string) (Kind, bool) {
	k, ok := keywords[text]

	return k, ok
}

// Keywords returns an iterator over all reserved words in sorted order.
func Keywords() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, kw := range sortedKeys(keywords) {
			if !yield(kw) {
				return
			}
		}
	}
}

// Token is a single lexical unit produced by the [Scanner].
// Tokens are immutable once produced.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal Value // nil unless Kind is StringLit or Number
	Line    int
}

// String returns the kind, lexeme and literal of the token.
func (t Token) String() string {
	lit := "null"
	if t.Literal != nil {
		lit = t.Literal.String()
	}

	return t.Kind.String() + " " + t.Lexeme + " " + lit
}

// Where returns the location context used in diagnostics that cite t.
func (t Token) Where() string {
	if t.Kind == EOF {
		return " at end"
	}

	return " at '" + t.Lexeme + "'"
}
