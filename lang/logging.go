package lang

import (
	"log/slog"
	"sort"
)

func sortedKeys[T any](m map[string]T) []string {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// stmtAttrs describes s for trace logging.
func stmtAttrs(s Stmt) []slog.Attr {
	switch s := s.(type) {
	case *ExpressionStmt:
		return []slog.Attr{slog.String("stmt", "expression")}

	case *PrintStmt:
		return []slog.Attr{slog.String("stmt", "print")}

	case *VarStmt:
		return []slog.Attr{
			slog.String("stmt", "var"),
			slog.String("name", s.Name.Lexeme),
			slog.Int("line", s.Name.Line),
		}

	case *BlockStmt:
		return []slog.Attr{
			slog.String("stmt", "block"),
			slog.Int("len", len(s.Stmts)),
		}

	default:
		return []slog.Attr{slog.String("stmt", "unknown")}
	}
}
