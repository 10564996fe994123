package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// clearScreen is the ANSI sequence that homes the cursor and clears the
// terminal.
const clearScreen = "\033[H\033[2J"

// RunPlain starts a line-oriented REPL using a minimal line editor on the
// process's terminal. Unlike [Run] it needs no full-screen terminal support.
// If cfg.In is set to a reader other than os.Stdin, lines are read from it
// without prompts or line editing.
func RunPlain(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := newSession(cfg)

	if err := s.history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "history not loaded", slog.Any("error", err))
	}

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	var (
		prompt      prompter
		history     func(string)
		interactive bool
	)

	if in := cfg.In; in != nil && in != os.Stdin {
		prompt = scanPrompter{bufio.NewScanner(in)}
		history = func(string) {}
	} else {
		ln := newLiner(s)
		defer ln.Close()

		prompt, history, interactive = ln, ln.AppendHistory, true
	}

	cfg.Logger.TraceContext(
		ctx,
		"repl start",
		slog.String("history", cfg.History),
		slog.Int("history_entries", s.history.Len()),
		slog.Bool("plain", true),
	)

	var lastEdit string

	for ctx.Err() == nil {
		source, ok := readInput(prompt)
		if !ok {
			if interactive {
				fmt.Fprintln(out)
			}

			return nil
		}

		r := s.handle(ctx, source)
		if strings.TrimSpace(source) != "" {
			history(strings.Join(strings.Fields(source), " "))
		}

		switch r.action {
		case actionQuit:
			return nil

		case actionClear:
			fmt.Fprint(out, clearScreen)

		case actionEdit:
			cmd := newEditCommand(ctx, lastEdit, cfg.Logger)

			switch err := cmd.Run(); {
			case errors.Is(err, ErrEditDeclined):
				fmt.Fprintln(out, hintStyle.Render("edit discarded"))
			case err != nil:
				fmt.Fprintln(out, errorStyle.Render("edit failed: "+err.Error()))
			case cmd.content == "":
				fmt.Fprintln(out, hintStyle.Render("edit cancelled"))
			default:
				lastEdit = cmd.content
				writeResult(out, s.run(ctx, cmd.content))
			}

		default:
			writeResult(out, r)
		}
	}

	return nil
}

// prompter reads one line of input after showing a prompt.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// scanPrompter reads lines from a non-terminal reader without showing
// prompts.
type scanPrompter struct{ *bufio.Scanner }

func (p scanPrompter) Prompt(string) (string, error) {
	if p.Scan() {
		return p.Text(), nil
	}

	if err := p.Err(); err != nil {
		return "", err
	}

	return "", io.EOF
}

// newLiner returns a line editor on the process's terminal completing words
// from the session's environment and seeded with its history.
func newLiner(s *session) *liner.State {
	ln := liner.NewLiner()

	ln.SetCtrlCAborts(true)
	ln.SetTabCompletionStyle(liner.TabPrints)

	for _, entry := range s.history.Entries() {
		ln.AppendHistory(entry)
	}

	ln.SetWordCompleter(func(line string, pos int) (string, []string, string) {
		runes := []rune(line)
		cursor := len(string(runes[:min(pos, len(runes))]))

		matches, start, end := complete(s.in.Environment(), line, cursor)

		completions := make([]string, len(matches))
		for i, m := range matches {
			completions[i] = m.Str
		}

		return line[:start], completions, line[end:]
	})

	return ln
}

// readInput reads lines until they form a complete input. ok is false when
// the user ends the session with Ctrl+D, or with Ctrl+C on an empty prompt.
func readInput(ln prompter) (source string, ok bool) {
	var b strings.Builder

	for {
		prompt := mainPrompt
		if b.Len() > 0 {
			prompt = contPrompt
		}

		line, err := ln.Prompt(prompt)

		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			if b.Len() == 0 && line == "" {
				return "", false
			}

			return "", true

		case errors.Is(err, io.EOF):
			return "", false

		case err != nil:
			return "", false
		}

		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), commandPrefix) || !incomplete(src) {
			return src, true
		}

		b.WriteByte('\n')
	}
}

// writeResult prints r to w.
func writeResult(w io.Writer, r result) {
	io.WriteString(w, r.output)

	for _, d := range r.diags {
		fmt.Fprintln(w, errorStyle.Render(d.Error()))
	}

	if r.message != "" {
		io.WriteString(w, r.message)

		if !strings.HasSuffix(r.message, "\n") {
			fmt.Fprintln(w)
		}
	}
}
