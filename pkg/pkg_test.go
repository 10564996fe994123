package pkg

import (
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	semver := regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

	if v := Version(); !semver.MatchString(v) {
		t.Errorf("Version() = %q, not a semantic version", v)
	}
}

func TestPaths(t *testing.T) {
	if Prefix() == "" {
		t.Fatal("Prefix() is empty")
	}

	for name, dir := range map[string]string{
		"ConfigDir": ConfigDir(),
		"CacheDir":  CacheDir(),
	} {
		if filepath.Base(dir) != Prefix() {
			t.Errorf("%s() = %q, want base %q", name, dir, Prefix())
		}
	}

	got := ConfigPath("config.yaml")
	if !strings.HasPrefix(got, ConfigDir()) || filepath.Base(got) != "config.yaml" {
		t.Errorf("ConfigPath() = %q", got)
	}

	if CachePath() != CacheDir() {
		t.Errorf("CachePath() = %q, want %q", CachePath(), CacheDir())
	}
}
