// Package cmd implements the lox subcommands: run, tokens, ast, fmt, repl,
// init and version.
//
// Each command is a kong command struct whose Run method receives the
// application context. Commands read and write through the [Streams] stored
// with [WithStreams], defaulting to the process's standard streams.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path of
	// the YAML configuration file written by [Init].
	ConfigIdentifier = "config"

	// HistoryIdentifier is the kong variable identifier containing the default
	// path of the REPL history file.
	HistoryIdentifier = "history"
)
