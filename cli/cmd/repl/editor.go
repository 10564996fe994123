package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/lox/lang"
	"github.com/ardnew/lox/log"
	"github.com/ardnew/lox/pkg"
)

const defaultEditor = "vi"

// editTemplate is the initial content of an empty edit buffer.
const editTemplate = "// Write statements to run, then save and quit.\n"

// editCommand implements [tea.ExecCommand] for the edit-parse-retry loop. It
// writes content to a temp file, opens the user's editor, and parses the
// result. On a lexical or syntax error the user is prompted to re-edit;
// declining returns [ErrEditDeclined].
type editCommand struct {
	ctx     context.Context
	content string // initial buffer; replaced by the accepted source
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func newEditCommand(ctx context.Context, content string, logger log.Logger) *editCommand {
	if strings.TrimSpace(content) == "" {
		content = editTemplate
	}

	return &editCommand{
		ctx:     ctx,
		content: content,
		logger:  logger,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. When it returns nil, c.content
// holds source that parsed cleanly, or is empty if the user cleared the
// buffer.
func (c *editCommand) Run() error {
	f, err := os.CreateTemp(os.TempDir(), pkg.Name+"-repl-*"+pkg.Extension)
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	for {
		if err := os.WriteFile(tmpPath, []byte(c.content), 0o600); err != nil {
			return err
		}

		if err := runEditor(c.ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		c.content = string(data)
		if strings.TrimSpace(c.content) == "" || c.content == editTemplate {
			c.content = ""

			return nil
		}

		var diags lang.Diagnostics

		_, parseErr := lang.Parse(c.content, &diags)

		c.logger.TraceContext(
			c.ctx,
			"editor parse attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", parseErr == nil),
		)

		if parseErr == nil {
			return nil
		}

		for _, d := range diags {
			fmt.Fprintln(c.stderr, d.Error())
		}

		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}
	}
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}

	if editor == "" {
		editor = defaultEditor
	}

	args := strings.Fields(editor)

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
