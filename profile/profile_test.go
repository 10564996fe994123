package profile

import (
	"slices"
	"testing"
)

func TestProfiler_EmptyModeIsNoop(t *testing.T) {
	stop := Profiler{}.Start()
	if _, ok := stop.(ignore); !ok {
		t.Fatalf("Start() = %T, want no-op", stop)
	}

	stop.Stop()
}

func TestProfiler_UnknownModeIsNoop(t *testing.T) {
	stop := Profiler{Mode: "bogus", Path: t.TempDir(), Quiet: true}.Start()
	if _, ok := stop.(ignore); !ok {
		t.Fatalf("Start() = %T, want no-op", stop)
	}

	stop.Stop()
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !slices.IsSorted(modes) {
		t.Errorf("Modes() not sorted: %v", modes)
	}

	if Enabled() != (len(modes) > 0) {
		t.Error("Enabled disagrees with Modes")
	}
}
