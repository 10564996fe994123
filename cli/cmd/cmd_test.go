package cmd

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// writeScripts creates each named file under dir with its content.
func writeScripts(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func sourceNames(srcs []Source) []string {
	names := make([]string, len(srcs))
	for i, s := range srcs {
		names[i] = s.Name
	}

	return names
}

func TestOpenSources_StdinLast(t *testing.T) {
	dir := t.TempDir()
	writeScripts(t, dir, map[string]string{"a.lox": "print 1;", "b.lox": "print 2;"})

	a, b := filepath.Join(dir, "a.lox"), filepath.Join(dir, "b.lox")

	srcs, err := OpenSources(strings.NewReader("print 3;"), nil, "-", a, b)
	if err != nil {
		t.Fatalf("OpenSources: %v", err)
	}

	defer closeSources(srcs)

	if got, want := sourceNames(srcs), []string{a, b, stdinName}; !slices.Equal(got, want) {
		t.Fatalf("sources = %q, want %q", got, want)
	}

	data, err := io.ReadAll(srcs[2])
	if err != nil || string(data) != "print 3;" {
		t.Errorf("stdin source = %q, %v", data, err)
	}
}

func TestOpenSources_Dedup(t *testing.T) {
	dir := t.TempDir()
	writeScripts(t, dir, map[string]string{"a.lox": "print 1;"})

	a := filepath.Join(dir, "a.lox")
	link := filepath.Join(dir, "link.lox")

	if err := os.Symlink(a, link); err != nil {
		t.Skipf("symlink: %v", err)
	}

	srcs, err := OpenSources(nil, nil, a, link, filepath.Join(dir, ".", "a.lox"))
	if err != nil {
		t.Fatalf("OpenSources: %v", err)
	}

	defer closeSources(srcs)

	if len(srcs) != 1 || srcs[0].Name != a {
		t.Errorf("sources = %q, want only %q", sourceNames(srcs), a)
	}
}

func TestOpenSources_Resolve(t *testing.T) {
	dir := t.TempDir()
	lib := filepath.Join(dir, "lib")
	writeScripts(t, dir, map[string]string{
		"main.lox":     "print 1;",
		"lib/util.lox": "print 2;",
		"lib/data":     "print 3;",
	})

	tests := []struct {
		name   string
		search []string
		path   string
		want   string
	}{
		{"extension", nil, filepath.Join(dir, "main"), filepath.Join(dir, "main.lox")},
		{"search", []string{lib}, "util.lox", filepath.Join(lib, "util.lox")},
		{"search_extension", []string{dir, lib}, "util", filepath.Join(lib, "util.lox")},
		{"search_no_extension", []string{lib}, "data", filepath.Join(lib, "data")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srcs, err := OpenSources(nil, tt.search, tt.path)
			if err != nil {
				t.Fatalf("OpenSources(%q): %v", tt.path, err)
			}

			defer closeSources(srcs)

			if len(srcs) != 1 || srcs[0].Name != tt.want {
				t.Errorf("OpenSources(%q) = %q, want %q", tt.path, sourceNames(srcs), tt.want)
			}
		})
	}
}

func TestOpenSources_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeScripts(t, dir, map[string]string{"a.lox": "print 1;"})

	srcs, err := OpenSources(nil, []string{dir}, filepath.Join(dir, "a.lox"), "missing")
	if !errors.Is(err, ErrOpenSource) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want ErrOpenSource wrapping fs.ErrNotExist", err)
	}

	if srcs != nil {
		t.Errorf("sources = %q, want nil on error", sourceNames(srcs))
	}
}

func TestSearchPath(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	missing := filepath.Join(first, "missing")

	t.Setenv(PathEnv, second)

	got := SearchPath(first, missing)

	i, j := slices.Index(got, first), slices.Index(got, second)
	if i < 0 || j < 0 || i > j {
		t.Errorf("SearchPath() = %q, want %q before %q", got, first, second)
	}

	if slices.Contains(got, missing) {
		t.Errorf("SearchPath() = %q, contains missing directory", got)
	}
}

func TestOpenSources_LOXPATH(t *testing.T) {
	dir := t.TempDir()
	writeScripts(t, dir, map[string]string{"prelude.lox": "var x = 1;"})

	t.Setenv(PathEnv, dir)

	srcs, err := OpenSources(nil, SearchPath(), "prelude")
	if err != nil {
		t.Fatalf("OpenSources: %v", err)
	}

	defer closeSources(srcs)

	if want := filepath.Join(dir, "prelude.lox"); len(srcs) != 1 || srcs[0].Name != want {
		t.Errorf("sources = %q, want %q", sourceNames(srcs), want)
	}
}
