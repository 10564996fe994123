package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestMake_Defaults(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if logger.Level() != LevelInfo {
		t.Errorf("level = %v, want info", logger.Level())
	}

	if logger.Format() != FormatText {
		t.Errorf("format = %v, want text", logger.Format())
	}

	if logger.caller {
		t.Error("caller enabled by default")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		log   func(Logger)
		want  bool
	}{
		{LevelInfo, func(l Logger) { l.Trace("m") }, false},
		{LevelInfo, func(l Logger) { l.Debug("m") }, false},
		{LevelInfo, func(l Logger) { l.Info("m") }, true},
		{LevelError, func(l Logger) { l.Warn("m") }, false},
		{LevelError, func(l Logger) { l.Error("m") }, true},
		{LevelTrace, func(l Logger) { l.Trace("m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.level)))

			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("logged = %v, want %v: %q", got, tt.want, buf.String())
			}
		})
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelTrace))
	logger.With(slog.String("key", "value")).
		TraceContext(t.Context(), "traced", slog.Int("n", 3))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if entry["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", entry["level"])
	}

	if entry["key"] != "value" || entry["n"] != float64(3) {
		t.Errorf("attributes missing: %v", entry)
	}

	if _, ok := entry["time"]; !ok {
		t.Error("time missing with default layout")
	}
}

func TestLogger_TimeLayout(t *testing.T) {
	tests := []struct {
		layout string
		check  func(string) bool
	}{
		{"none", func(s string) bool { return !strings.Contains(s, "time=") }},
		{"", func(s string) bool { return !strings.Contains(s, "time=") }},
		{"RFC3339Nano", func(s string) bool { return strings.Contains(s, "time=") }},
		{"kitchen", func(s string) bool {
			return strings.Contains(s, "AM") || strings.Contains(s, "PM")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			var buf bytes.Buffer

			Make(&buf, WithTimeLayout(tt.layout), WithPretty(false)).Info("m")

			if !tt.check(buf.String()) {
				t.Errorf("unexpected output for layout %q: %q", tt.layout, buf.String())
			}
		})
	}
}

func TestMakeFormatTimeFunc(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"rfc3339", "2024-03-09T14:05:06Z"},
		{"RFC-3339", "2024-03-09T14:05:06Z"},
		{"DateTime", "2024-03-09 14:05:06"},
		{"2006", "2024"},
		{"none", ""},
		{"  ", ""},
	}

	for _, tt := range tests {
		if got := makeFormatTimeFunc(tt.layout)(ts); got != tt.want {
			t.Errorf("layout %q = %q, want %q", tt.layout, got, tt.want)
		}
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithPretty(false)).Info("m")

	if !strings.Contains(buf.String(), "log_test.go:") {
		t.Errorf("caller is not the test file: %q", buf.String())
	}
}

func TestLogger_Pretty(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none")).
		With(slog.String("stage", "run"))

	logger.Info("done",
		slog.Bool("ok", true),
		slog.Group("frame", slog.Int("depth", 2)),
	)

	want := "INFO  done stage=run ok=true frame.depth=2\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestLogger_Wrap(t *testing.T) {
	var first, second bytes.Buffer

	base := Make(&first, WithLevel(LevelError))
	wrapped := base.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	base.Debug("dropped")
	wrapped.Debug("kept")

	if first.Len() != 0 {
		t.Errorf("base logger wrote %q", first.String())
	}

	if !strings.Contains(second.String(), "kept") {
		t.Errorf("wrapped logger wrote %q", second.String())
	}

	if base.Level() != LevelError {
		t.Error("Wrap modified the original logger")
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Trace("m")
	l.Info("m")
	l.ErrorContext(t.Context(), "m")

	if l.With(slog.String("k", "v")).Logger != nil {
		t.Error("With on zero Logger produced a live logger")
	}

	if l.Enabled(t.Context(), LevelError) {
		t.Error("zero Logger reports enabled")
	}

	if l.Wrap(WithOutput(&bytes.Buffer{})).Logger == nil {
		t.Error("Wrap on zero Logger did not produce a live logger")
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var (
		buf lockedBuffer
		wg  sync.WaitGroup
	)

	logger := Make(&buf, WithFormat(FormatJSON))

	for i := range 16 {
		wg.Go(func() {
			logger.With(slog.Int("worker", i)).Info("m")
		})
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 16 {
		t.Errorf("got %d lines, want 16", n)
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}
