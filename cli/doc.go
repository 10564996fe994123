// Package cli contains the command line interface for lox.
//
// # Usage
//
// Scripts are run by the default command. With no arguments the script is
// read from standard input:
//
//	lox hello.lox
//	lox -D greeting='"hi " + env.USER' -I ./lib main
//	lox repl
//
// Other commands inspect a script without running it:
//
//	lox tokens -o json hello.lox
//	lox ast -o yaml hello.lox
//	lox fmt hello.lox
//
// # Exit Status
//
// [ExitCode] maps the error returned by [Run] to a process exit status: 65
// for lexical or syntax errors, 70 for runtime errors, 64 for command line
// usage errors and 1 for anything else.
//
// # Configuration
//
// Flag defaults are read from config.json and config.yaml in the user's
// configuration directory. The YAML file is written by the init command and
// groups flags by their prefix:
//
//	log:
//	  level: debug
//	  pretty: false
//
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o lox .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/lox/pprof)
package cli
