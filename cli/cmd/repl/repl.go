package repl

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/tmplgen/gen"
	"github.com/ardnew/tmplgen/lang"
	"github.com/ardnew/tmplgen/log"
)

const (
	defaultWidth = 80
	maxInput     = 1024
)

// inputMode selects how a submitted line is interpreted.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

func (m inputMode) prompt() string {
	if m == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt)
	}

	return promptStyle.Render(evalPrompt)
}

func (m inputMode) other() inputMode {
	if m == modeCtrl {
		return modeEval
	}

	return modeCtrl
}

// env is what a session evaluates input against.
type env struct {
	gen   *gen.Generator
	scope lang.Scope
}

// evaluate resolves input as an expression, or renders it if it contains a
// template region.
func (e env) evaluate(ctx context.Context, input string) (lang.Value, error) {
	if !isTemplate(input) {
		return e.gen.Resolve(ctx, e.scope, input)
	}

	out, err := e.gen.WithText(input).Render(ctx, e.scope)
	if err != nil {
		return lang.Value{}, err
	}

	return lang.String(out), nil
}

// isTemplate reports whether input opens a template region.
func isTemplate(input string) bool {
	return strings.Contains(input, "${") ||
		strings.Contains(input, "$if{") ||
		strings.Contains(input, "$for(")
}

type model struct {
	ctx      func() context.Context
	env      env
	logger   log.Logger
	keys     keyMap
	input    textinput.Model
	sugg     suggestions
	history  *History
	recall   int       // index of the recalled history entry, Len() if none
	mode     inputMode // mode of the line being edited
	stash    [2]string // unsubmitted line of each mode
	width    int
	quitting bool
}

// Run starts a session resolving input with g against scope. History is kept
// in cacheDir.
func Run(
	ctx context.Context,
	g *gen.Generator,
	scope lang.Scope,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if g == nil {
		return ErrNoGenerator
	}

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "history not loaded", slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("scope_keys", scope.Len()),
		slog.Int("history", history.Len()),
	)

	m := newModel(ctx, env{gen: g, scope: scope}, history, logger)

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

func newModel(ctx context.Context, e env, history *History, logger log.Logger) model {
	in := textinput.New()
	in.Prompt = modeEval.prompt()
	in.CharLimit = maxInput
	in.Width = defaultWidth
	in.Focus()

	return model{
		ctx:     func() context.Context { return ctx },
		env:     e,
		logger:  logger,
		keys:    defaultKeys(),
		input:   in,
		sugg:    noSuggestions(),
		history: history,
		recall:  history.Len(),
		mode:    modeEval,
		width:   defaultWidth,
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(1, msg.Width-lipgloss.Width(m.mode.prompt())-1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n" + m.status() + "\n"
}

// status is the line shown below the input.
func (m model) status() string {
	line := m.input.Value()

	switch {
	case m.recall < m.history.Len():
		return hintStyle.Render(historyPosition(m.recall, m.history.Len()))

	case strings.TrimSpace(line) == "":
		if m.mode == modeCtrl {
			return hintStyle.Render("Commands: " + strings.Join(commandNames(), ", ") + " (Esc returns)")
		}

		return hintStyle.Render("Type an expression, or Esc for commands")

	case !m.sugg.empty():
		return m.sugg.render(m.width)

	case m.mode == modeEval:
		if c, ok := callAt(line, m.cursor()); ok {
			return m.env.hint(m.ctx(), c)
		}
	}

	return ""
}

// submit interprets the edited line in the current mode.
func (m model) submit() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())

	m.sugg = noSuggestions()
	m.setInput("")

	if line == "" {
		return m, nil
	}

	if err := m.history.Append(line, m.mode); err != nil {
		m.logger.DebugContext(m.ctx(), "history not saved", slog.Any("error", err))
	}

	m.recall = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(line)
	}

	m.logger.TraceContext(m.ctx(), "repl eval", slog.String("input", line))

	var out string
	if v, err := m.env.evaluate(m.ctx(), line); err != nil {
		out = errorStyle.Render(err.Error())
	} else {
		out = resultStyle.Render(v.String())
	}

	return m, tea.Sequence(tea.Println(echo(modeEval, line)), tea.Println(out))
}

// switchMode stashes the edited line and restores the one of mode.
func (m model) switchMode(mode inputMode) model {
	if mode == m.mode {
		return m
	}

	m.stash[m.mode] = m.input.Value()
	m.mode = mode
	m.input.Prompt = mode.prompt()
	m.setInput(m.stash[mode])
	m.sugg = noSuggestions()

	return m
}

// cursor returns the byte offset of the cursor in the edited line.
func (m model) cursor() int {
	runes := []rune(m.input.Value())

	return len(string(runes[:min(m.input.Position(), len(runes))]))
}

// setInput replaces the edited line and moves the cursor to its end.
func (m *model) setInput(line string) {
	m.input.SetValue(line)
	m.input.CursorEnd()
}

// setInputCursor replaces the edited line and moves the cursor to the byte
// offset at.
func (m *model) setInputCursor(line string, at int) {
	m.input.SetValue(line)
	m.input.SetCursor(utf8.RuneCountInString(line[:at]))
}
