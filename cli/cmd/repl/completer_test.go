package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/lox/lang"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_paren", "(fo", 3, "fo", 1, 3},
		{"after_brace", "{ pri", 5, "pri", 2, 5},
		{"after_comparison", "a>=fo", 5, "fo", 3, 5},
		{"after_semicolon", "var a = 1;pr", 12, "pr", 10, 12},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"underscore_digits", "x_1 + my_var2", 13, "my_var2", 6, 13},
		{"command", ":he", 3, ":he", 0, 3},
		{"cursor_past_end", "ab", 10, "ab", 0, 2},
		{"string_quote", `"ab`, 3, "ab", 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	env := lang.NewEnvironment()
	env.Define("answer", lang.Double(42))
	env.Push()
	env.Define("inner", nil)

	got := candidates(env, "an")

	for _, want := range []string{"and", "print", "var", "answer", "inner"} {
		if !slices.Contains(got, want) {
			t.Errorf("candidates missing %q: %v", want, got)
		}
	}

	if slices.Contains(got, ":quit") {
		t.Errorf("commands offered for a non-command word: %v", got)
	}

	cmds := candidates(env, ":q")
	if !slices.Equal(cmds, []string{":clear", ":edit", ":help", ":quit", ":vars"}) {
		t.Errorf("command candidates = %v", cmds)
	}

	if got := candidates(nil, "x"); len(got) != len(slices.Collect(lang.Keywords())) {
		t.Errorf("candidates with nil environment = %v", got)
	}
}

func TestComplete(t *testing.T) {
	env := lang.NewEnvironment()
	env.Define("counter", lang.Double(0))

	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantNone  bool
	}{
		{"keyword_prefix", "pri", "print", false},
		{"variable_prefix", "print cou", "counter", false},
		{"fuzzy", "cntr", "counter", false},
		{"command", ":qu", ":quit", false},
		{"command_mid_line", "a :qu", "", true},
		{"empty_word", "print ", "", true},
		{"no_match", "zzz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, _, _ := complete(env, tt.input, len(tt.input))

			if tt.wantNone {
				if len(matches) != 0 {
					t.Errorf("complete(%q) = %v, want none", tt.input, matches)
				}

				return
			}

			if len(matches) == 0 || matches[0].Str != tt.wantFirst {
				t.Errorf("complete(%q) = %v, want %q first", tt.input, matches, tt.wantFirst)
			}
		})
	}
}

func TestRenderCandidateBar(t *testing.T) {
	env := lang.NewEnvironment()
	matches, _, _ := complete(env, "r", 1)

	if len(matches) < 2 {
		t.Fatalf("expected several matches for %q, got %v", "r", matches)
	}

	if bar := renderCandidateBar(nil, -1, false, 80); bar != "" {
		t.Errorf("empty matches rendered %q", bar)
	}

	if bar := renderCandidateBar(matches, 0, true, 0); bar != "" {
		t.Errorf("zero width rendered %q", bar)
	}

	narrow := renderCandidateBar(matches, -1, false, 12)
	wide := renderCandidateBar(matches, -1, false, 500)

	if len(narrow) >= len(wide) {
		t.Errorf("narrow bar not ellipsized: %q vs %q", narrow, wide)
	}
}
