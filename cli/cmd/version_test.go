package cmd

import (
	"strings"
	"testing"

	"github.com/ardnew/lox/pkg"
)

func TestVersion(t *testing.T) {
	ctx, out, _ := withBuffers(t.Context(), "")

	if err := (&Version{}).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if want := pkg.Name + " " + pkg.Version() + "\n"; out.String() != want {
		t.Errorf("stdout = %q, want %q", out.String(), want)
	}

	out.Reset()

	if err := (&Version{Verbose: true}).Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, want := range []string{"go:", "pprof:", "author:", pkg.Author[0].Email} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("verbose output missing %q:\n%s", want, out.String())
		}
	}
}
