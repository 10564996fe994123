package lang

import (
	"math"
)

// Native converts v to the plain Go value used in JSON and YAML output.
// Non-finite numbers have no JSON form and are rendered as their printed
// string.
func Native(v Value) any {
	switch v := v.(type) {
	case String:
		return string(v)

	case Double:
		f := float64(v)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return v.String()
		}

		return f

	case Bool:
		return bool(v)

	default:
		return nil
	}
}

// TokenMap converts t to a native map structure.
func TokenMap(t Token) map[string]any {
	m := map[string]any{
		"kind":   t.Kind.String(),
		"lexeme": t.Lexeme,
		"line":   t.Line,
	}

	if t.Literal != nil {
		m["literal"] = Native(t.Literal)
	}

	return m
}

// TokensToMaps converts each token with [TokenMap].
func TokensToMaps(tokens []Token) []any {
	out := make([]any, len(tokens))
	for i, t := range tokens {
		out[i] = TokenMap(t)
	}

	return out
}

// StmtsToMaps converts each statement with [StmtMap].
func StmtsToMaps(stmts []Stmt) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = StmtMap(s)
	}

	return out
}

// StmtMap converts a statement tree to a native map structure. Every map
// carries a "type" key naming the node.
func StmtMap(s Stmt) map[string]any {
	switch s := s.(type) {
	case *ExpressionStmt:
		return map[string]any{"type": "expression", "expr": ExprMap(s.Expr)}

	case *PrintStmt:
		return map[string]any{"type": "print", "expr": ExprMap(s.Expr)}

	case *VarStmt:
		m := map[string]any{
			"type": "var",
			"name": s.Name.Lexeme,
			"line": s.Name.Line,
		}

		if s.Init != nil {
			m["init"] = ExprMap(s.Init)
		}

		return m

	case *BlockStmt:
		return map[string]any{"type": "block", "stmts": StmtsToMaps(s.Stmts)}

	default:
		return map[string]any{"type": "unknown"}
	}
}

// ExprMap converts an expression tree to a native map structure.
func ExprMap(e Expr) map[string]any {
	switch e := e.(type) {
	case *Literal:
		return map[string]any{
			"type":  "literal",
			"kind":  TypeName(e.Value),
			"value": Native(e.Value),
		}

	case *Grouping:
		return map[string]any{"type": "grouping", "expr": ExprMap(e.Expr)}

	case *Unary:
		return map[string]any{
			"type":     "unary",
			"operator": e.Op.Lexeme,
			"right":    ExprMap(e.Right),
		}

	case *Binary:
		return map[string]any{
			"type":     "binary",
			"operator": e.Op.Lexeme,
			"left":     ExprMap(e.Left),
			"right":    ExprMap(e.Right),
		}

	case *Variable:
		return map[string]any{"type": "variable", "name": e.Name.Lexeme}

	case *Assign:
		return map[string]any{
			"type":  "assign",
			"name":  e.Name.Lexeme,
			"value": ExprMap(e.Value),
		}

	default:
		return map[string]any{"type": "unknown"}
	}
}
