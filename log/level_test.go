package log

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"info+2", LevelInfo + 2},
		{" error ", LevelError},
		{"verbose", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "trace"},
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LevelInfo + 2, "info+2"},
		{LevelTrace + 1, "trace+1"},
		{LevelTrace - 2, "trace-2"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevel_UnmarshalText(t *testing.T) {
	var l Level

	if err := l.UnmarshalText([]byte("warn")); err != nil || l != LevelWarn {
		t.Errorf("UnmarshalText(warn) = %v, %v", l, err)
	}

	if err := l.UnmarshalText([]byte("loud")); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("UnmarshalText(loud) error = %v", err)
	}
}

func TestFormat_Text(t *testing.T) {
	var f Format

	if err := f.UnmarshalText([]byte("JSON")); err != nil || f != FormatJSON {
		t.Errorf("UnmarshalText(JSON) = %v, %v", f, err)
	}

	if err := f.UnmarshalText([]byte("xml")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("UnmarshalText(xml) error = %v", err)
	}

	if ParseFormat("xml") != DefaultFormat {
		t.Error("ParseFormat did not fall back to the default")
	}

	if got := slices.Collect(Formats()); !slices.Equal(got, []string{"text", "json"}) {
		t.Errorf("Formats() = %v", got)
	}

	if got := slices.Collect(Levels()); len(got) != 5 || got[0] != "trace" {
		t.Errorf("Levels() = %v", got)
	}
}

func TestConfig_Package(t *testing.T) {
	original := Default()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	})

	var buf lockedBuffer

	Config(WithOutput(&buf), WithLevel(LevelDebug), WithFormat(FormatJSON))

	Debug("package debug")
	InfoContext(t.Context(), "package info")
	Trace("package trace")

	out := buf.String()
	for _, want := range []string{"package debug", "package info"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}

	if strings.Contains(out, "package trace") {
		t.Errorf("trace written below configured level: %s", out)
	}
}
