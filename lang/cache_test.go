package lang

import (
	"errors"
	"strings"
	"testing"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/lox/log"
)

func TestParseCached_Hit(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	source := "var a = 1; print a;"

	first, err := ParseCached(t.Context(), source, nil, log.Logger{})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	second, err := ParseCached(t.Context(), source, nil, log.Logger{})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("got %d and %d statements, want 2", len(first), len(second))
	}

	if first[0] != second[0] {
		t.Error("cache hit returned a different tree")
	}

	ClearCache()

	third, _ := ParseCached(t.Context(), source, nil, log.Logger{})
	if third[0] == first[0] {
		t.Error("ClearCache did not drop the cached tree")
	}
}

func TestParseCached_ReplaysDiagnostics(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	source := "print ;\nvar 1;"

	for i := range 2 {
		var diags Diagnostics

		_, err := ParseCached(t.Context(), source, &diags, log.Logger{})
		if !errors.Is(err, ErrSyntax) {
			t.Fatalf("call %d: error = %v, want syntax error", i, err)
		}

		if len(diags) != 2 {
			t.Fatalf("call %d: got %d diagnostics, want 2", i, len(diags))
		}

		if diags[1].Line != 2 {
			t.Errorf("call %d: second diagnostic line = %d", i, diags[1].Line)
		}
	}
}

func TestParseCached_Collision(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	source := "print 1;"

	// Seed the slot for source with the tree of a different program, as a hash
	// collision would.
	other := &parsed{source: "print 2; print 3;"}
	other.once.Do(func() {
		other.stmts, other.err = Parse(other.source, &other.diags)
	})
	parseCache.Store(xxh3.HashString(source), other)

	stmts, err := ParseCached(t.Context(), source, nil, log.Logger{})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}

	want, err := Parse(source, nil)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if got := Sprint(stmts[0]); got != Sprint(want[0]) {
		t.Errorf("statement = %s, want the tree of %q", got, source)
	}

	if stmts[0] == other.stmts[0] {
		t.Error("collision returned the cached tree of another source")
	}
}

func TestParseReader(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	stmts, err := ParseReader(t.Context(), strings.NewReader("print 1;\nprint 2;\n"), nil, log.Logger{})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestReadSource_Error(t *testing.T) {
	_, err := ReadSource(t.Context(), failingReader{}, log.Logger{})
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("error = %v, want read input error", err)
	}
}
