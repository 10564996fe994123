// Package repl implements the interactive read-eval-print loop.
//
// Every input runs in one interpreter, so variables persist for the whole
// session. Two frontends share that session: [Run] is a full-screen Bubble
// Tea program with fuzzy completion of keywords and visible variables, and
// [RunPlain] is a minimal line editor for simple terminals and piped input.
//
// Input beginning with ':' is a command (:help, :vars, :edit, :clear,
// :quit). An input ending inside an open block or string continues on the
// next line. History is kept in a file, one entry per line.
package repl
