package lang

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		source string
		indent int
		want   string
	}{
		{
			name:   "indented",
			source: `var a=1;{print a;{}}`,
			indent: 2,
			want:   "var a = 1;\n{\n  print a;\n  {}\n}\n",
		},
		{
			name:   "single line blocks",
			source: `var a=1;{print a;{}}`,
			indent: 0,
			want:   "var a = 1;\n{ print a; {} }\n",
		},
		{
			name:   "expressions",
			source: `x=-(1+2)*3>=!true;var s="a b";`,
			indent: 4,
			want:   "x = -(1 + 2) * 3 >= !true;\nvar s = \"a b\";\n",
		},
		{
			name:   "nested",
			source: "{{print nil;}}",
			indent: 4,
			want:   "{\n    {\n        print nil;\n    }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, err := Parse(tt.source, nil)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			var buf bytes.Buffer
			if err := Format(t.Context(), &buf, stmts, tt.indent); err != nil {
				t.Fatalf("format error: %v", err)
			}

			if buf.String() != tt.want {
				t.Errorf("Format =\n%s\nwant:\n%s", buf.String(), tt.want)
			}
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	source := `var a = 1.25; { var b = "x"; a = b = a * (2 - -a); } print a == nil;`

	first, err := Parse(source, nil)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := Format(t.Context(), &buf, first, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	second, err := Parse(buf.String(), nil)
	if err != nil {
		t.Fatalf("reparse error: %v\n%s", err, buf.String())
	}

	if len(first) != len(second) {
		t.Fatalf("statement count %d != %d", len(first), len(second))
	}

	for i := range first {
		if a, b := Sprint(first[i]), Sprint(second[i]); a != b {
			t.Errorf("statement %d: %s != %s", i, a, b)
		}
	}
}

func TestFormatJSON_Tokens(t *testing.T) {
	var buf bytes.Buffer

	tokens := Scan(`var x = "y";`, nil)
	if err := FormatJSON(t.Context(), &buf, TokensToMaps(tokens), 0); err != nil {
		t.Fatalf("format error: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if len(got) != 6 {
		t.Fatalf("got %d tokens, want 6", len(got))
	}

	if got[3]["kind"] != "String" || got[3]["literal"] != "y" {
		t.Errorf("string token = %v", got[3])
	}

	if got[5]["kind"] != "EOF" {
		t.Errorf("last token = %v", got[5])
	}
}

func TestFormatYAML_Stmts(t *testing.T) {
	stmts, err := Parse("print 1 + 2;", nil)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := FormatYAML(t.Context(), &buf, StmtsToMaps(stmts), 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	for _, want := range []string{"type: print", "type: binary", "type: literal"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("YAML missing %q:\n%s", want, buf.String())
		}
	}
}

func TestExprMap(t *testing.T) {
	stmts, err := Parse(`a = -"s";`, nil)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	m := StmtMap(stmts[0])
	if m["type"] != "expression" {
		t.Fatalf("type = %v", m["type"])
	}

	assign, _ := m["expr"].(map[string]any)
	if assign["type"] != "assign" || assign["name"] != "a" {
		t.Fatalf("assign = %v", assign)
	}

	unary, _ := assign["value"].(map[string]any)
	if unary["operator"] != "-" {
		t.Errorf("unary = %v", unary)
	}

	lit, _ := unary["right"].(map[string]any)
	if lit["kind"] != "string" || lit["value"] != "s" {
		t.Errorf("literal = %v", lit)
	}
}
