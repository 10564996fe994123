package lang

import (
	"io"
	"strings"
	"testing"

	"github.com/ardnew/lox/log"
)

var benchSource = strings.Repeat(`
var a = 1;
var s = "text";
{
  var b = a * 2 + 3 / 4 - (5 - 6);
  a = b >= 0 == !nil;
  s = s + "more";
}
print s;
`, 64)

func BenchmarkScan(b *testing.B) {
	b.SetBytes(int64(len(benchSource)))

	for b.Loop() {
		Scan(benchSource, nil)
	}
}

func BenchmarkParse(b *testing.B) {
	b.SetBytes(int64(len(benchSource)))

	for b.Loop() {
		_, _ = Parse(benchSource, nil)
	}
}

func BenchmarkParseCached(b *testing.B) {
	b.Cleanup(ClearCache)

	for b.Loop() {
		_, _ = ParseCached(b.Context(), benchSource, nil, log.Logger{})
	}
}

func BenchmarkInterpret(b *testing.B) {
	stmts, err := Parse(benchSource, nil)
	if err != nil {
		b.Fatalf("parse error: %v", err)
	}

	for b.Loop() {
		in := NewInterpreter(WithOutput(io.Discard))
		_ = in.Interpret(b.Context(), stmts)
	}
}
