package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	mainPrompt = "> "
	contPrompt = ". "
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	contPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	outputStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	keywordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// editDoneMsg is sent when the external editor exits.
type editDoneMsg struct {
	source string
	err    error
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	session      *session
	input        textinput.Model
	pending      string        // lines of an input still open
	historyIdx   int           // == history.Len() when not browsing
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	lastEdit     string        // source accepted by the last :edit
	width        int           // terminal width for ellipsization
	quitting     bool
}

// Run starts the full-screen REPL and blocks until the user quits or ctx is
// canceled.
func Run(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s := newSession(cfg)

	if err := s.history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "history not loaded", slog.Any("error", err))
	}

	cfg.Logger.TraceContext(
		ctx,
		"repl start",
		slog.String("history", cfg.History),
		slog.Int("history_entries", s.history.Len()),
	)

	opts := []tea.ProgramOption{tea.WithContext(ctx)}

	if cfg.In != nil {
		opts = append(opts, tea.WithInput(cfg.In))
	}

	if cfg.Out != nil {
		opts = append(opts, tea.WithOutput(cfg.Out))
	}

	_, err = tea.NewProgram(newModel(ctx, s), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, s *session) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(mainPrompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		session:    s,
		input:      ti,
		historyIdx: s.history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.Println(hintStyle.Render(
		"Type statements to run them, :help for commands.")))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(mainPrompt) - 2

		return m, nil

	case editDoneMsg:
		return m.handleEditDone(msg)
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.session.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.session.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))

	case m.pending != "":
		b.WriteString(hintStyle.Render("Input continues until blocks and strings close (Ctrl+C cancels)"))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render("Enter a statement, or :help"))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.session.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" && m.pending == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.setPending("")
		m.tabActive = false
		m.historyIdx = m.session.history.Len()
		m.refreshMatches()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" && m.pending == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.submit()
		}

		// Lock in the current tab candidate without executing.
		m.tabActive = false
		m.refreshMatches()

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1), nil

	case tea.KeyDown:
		return m.historyMove(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches()
		}

		return m, nil
	}

	if msg.Type == tea.KeyRunes && m.tabActive && msg.String() == " " {
		m.tabActive = false
	} else if msg.Type != tea.KeyRunes {
		m.tabActive = false
	}

	var cmd tea.Cmd

	m.historyIdx = m.session.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// cycle moves the tab selection by step, wrapping around. A single candidate
// is completed immediately.
func (m model) cycle(step int) model {
	if len(m.matches) == 0 {
		return m
	}

	if len(m.matches) == 1 {
		m.replaceCurrentWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	m.replaceCurrentWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func (m *model) replaceCurrentWord(replacement string) {
	input := m.input.Value()
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
func (m *model) refreshMatches() {
	if m.tabActive {
		return
	}

	m.matches, m.wordStart, m.wordEnd = complete(
		m.session.in.Environment(), m.input.Value(), m.input.Position())
	m.suggIdx = -1

	// Nothing to offer once the word is already the sole candidate.
	if len(m.matches) == 1 &&
		m.matches[0].Str == m.input.Value()[m.wordStart:m.wordEnd] {
		m.matches = nil
	}
}

func (m model) historyMove(step int) model {
	n := m.session.history.Len()
	idx := m.historyIdx + step

	switch {
	case idx < 0:
		return m
	case idx >= n:
		m.historyIdx = n
		m.input.SetValue("")
	default:
		entry, err := m.session.history.Entry(idx)
		if err != nil {
			return m
		}

		m.historyIdx = idx
		m.input.SetValue(entry)
		m.input.SetCursor(len(entry))
	}

	m.tabActive = false
	m.matches = nil

	return m
}

func (m *model) setPending(pending string) {
	m.pending = pending

	if pending == "" {
		m.input.Prompt = promptStyle.Render(mainPrompt)
	} else {
		m.input.Prompt = contPromptStyle.Render(contPrompt)
	}
}

// submit echoes the input line and runs the accumulated input once it is
// complete.
func (m model) submit() (model, tea.Cmd) {
	line := m.input.Value()

	prompt := promptStyle.Render(mainPrompt)
	if m.pending != "" {
		prompt = contPromptStyle.Render(contPrompt)
	}

	echo := tea.Println(prompt + inputStyle.Render(line))

	m.input.SetValue("")
	m.matches = nil
	m.tabActive = false

	source := m.pending + line
	if strings.TrimSpace(source) == "" {
		m.setPending("")

		return m, echo
	}

	if !strings.HasPrefix(strings.TrimSpace(source), commandPrefix) && incomplete(source) {
		m.setPending(source + "\n")

		return m, echo
	}

	m.setPending("")

	r := m.session.handle(m.ctxFunc(), source)
	m.historyIdx = m.session.history.Len()

	switch r.action {
	case actionQuit:
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case actionClear:
		return m, tea.Sequence(echo, tea.ClearScreen)

	case actionEdit:
		cmd := newEditCommand(m.ctxFunc(), m.lastEdit, m.session.logger)

		return m, tea.Sequence(echo, tea.Exec(cmd, func(err error) tea.Msg {
			return editDoneMsg{source: cmd.content, err: err}
		}))
	}

	return m, tea.Sequence(append([]tea.Cmd{echo}, printResult(r)...)...)
}

func (m model) handleEditDone(msg editDoneMsg) (model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, ErrEditDeclined):
		return m, tea.Println(hintStyle.Render("edit discarded"))

	case msg.err != nil:
		return m, tea.Println(errorStyle.Render("edit failed: " + msg.err.Error()))

	case msg.source == "":
		return m, tea.Println(hintStyle.Render("edit cancelled"))
	}

	m.lastEdit = msg.source

	return m, tea.Sequence(printResult(m.session.run(m.ctxFunc(), msg.source))...)
}

// printResult returns the commands printing r above the input line.
func printResult(r result) []tea.Cmd {
	var cmds []tea.Cmd

	if out := strings.TrimSuffix(r.output, "\n"); r.output != "" {
		cmds = append(cmds, tea.Println(outputStyle.Render(out)))
	}

	for _, d := range r.diags {
		cmds = append(cmds, tea.Println(errorStyle.Render(d.Error())))
	}

	if msg := strings.TrimSuffix(r.message, "\n"); r.message != "" {
		cmds = append(cmds, tea.Println(hintStyle.Render(msg)))
	}

	return cmds
}
