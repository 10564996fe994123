// Package profile provides optional runtime profiling of the interpreter.
//
// Profiling is compiled in only with the "pprof" build tag, which wires
// [github.com/pkg/profile] behind [Profiler]. Without the tag every
// [Profiler] is a no-op, [Modes] is empty and nothing is linked in.
//
//	go build -tags pprof .
//	lox --pprof-mode cpu --pprof-dir ./profiles script.lox
//	go tool pprof ./profiles/cpu.pprof
//
// Supported modes are allocs, block, clock, cpu, goroutine, heap, mem, mutex,
// thread and trace. Profiles are written to the configured directory, by
// default the user cache directory ($XDG_CACHE_HOME/lox/pprof on Linux).
//
// The pprof build also registers the [net/http/pprof] handlers so a
// long-running REPL session can be inspected through an HTTP server started by
// the embedding program.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Profiler describes a profiling session.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Path  string // output directory; empty uses the working directory
	Quiet bool   // suppress the profiler's own log output
}

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Start begins profiling as described by p. Start and the returned Stopper
// are always safe to call; if p.Mode is empty or unknown, or the binary was
// built without the pprof tag, nothing is profiled.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

// Enabled reports whether profiling support was compiled in.
func Enabled() bool { return len(Modes()) > 0 }

type ignore struct{}

func (ignore) Stop() {}
