package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// initCLI is a small command line carrying flags of each kind buildConfig
// handles.
type initCLI struct {
	Log struct {
		Level  string `default:"info"`
		Pretty bool   `default:"true"   negatable:""`
	} `embed:"" group:"log" prefix:"log-"`

	Indent int      `default:"2"`
	Path   []string `help:"Search directory."`
	Empty  string
	Secret string `hidden:""`

	Init Init `cmd:""`
}

// parseInit parses args against initCLI with the config path set to path.
func parseInit(t *testing.T, path string, args ...string) (*initCLI, *kong.Context) {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: path})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(append([]string{"init"}, args...))
	if err != nil {
		t.Fatal(err)
	}

	return &cli, ktx
}

func TestInit_Run(t *testing.T) {
	tests := []struct {
		name     string
		existing bool
		force    bool
		wantErr  error
	}{
		{"create_new_config", false, false, nil},
		{"overwrite_existing_with_force", true, true, nil},
		{"fail_without_force", true, false, ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.existing {
				if err := os.WriteFile(confPath, []byte("existing: true\n"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			args := []string{"--log-level=debug", "--path=a", "--path=b"}
			if tt.force {
				args = append(args, "--force")
			}

			cli, ktx := parseInit(t, confPath, args...)

			err := cli.Init.Run(WithContext(t.Context(), ktx))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run: %v", err)
			}

			data, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(data, &got); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, data)
			}

			log, ok := got["log"].(map[string]any)
			if !ok || log["level"] != "debug" || log["pretty"] != true {
				t.Errorf("log group = %v", got["log"])
			}

			if fmt.Sprint(got["indent"]) != "2" {
				t.Errorf("indent = %v", got["indent"])
			}

			if fmt.Sprint(got["path"]) != "[a b]" {
				t.Errorf("path = %v", got["path"])
			}

			for _, key := range []string{"empty", "secret", "help", "existing"} {
				if _, ok := got[key]; ok {
					t.Errorf("config contains %q:\n%s", key, data)
				}
			}
		})
	}
}

func TestInit_NoTarget(t *testing.T) {
	if err := (&Init{}).Run(t.Context()); !errors.Is(err, ErrNoConfigTarget) {
		t.Errorf("Run without kong context error = %v, want ErrNoConfigTarget", err)
	}

	cli, ktx := parseInit(t, "")

	if err := cli.Init.Run(WithContext(t.Context(), ktx)); !errors.Is(err, ErrNoConfigTarget) {
		t.Errorf("Run with empty path error = %v, want ErrNoConfigTarget", err)
	}
}

func TestFlagValue(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{"", nil},
		{"x", "x"},
		{3, 3},
		{false, false},
		{[]string{}, nil},
		{[]string{"a"}, []string{"a"}},
		{Define{"x", "1"}, "x=1"},
	}

	for _, tt := range tests {
		if got := flagValue(tt.in); fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Errorf("flagValue(%#v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
