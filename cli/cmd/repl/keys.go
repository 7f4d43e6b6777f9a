package repl

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Submit       key.Binding
	Complete     key.Binding
	CompleteBack key.Binding
	Toggle       key.Binding
	Prev         key.Binding
	Next         key.Binding
	PrevInMode   key.Binding
	NextInMode   key.Binding
	Interrupt    key.Binding
	Quit         key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Submit: key.NewBinding(key.WithKeys("enter"),
			key.WithHelp("enter", "resolve the line or run the command")),
		Complete: key.NewBinding(key.WithKeys("tab"),
			key.WithHelp("tab", "next completion")),
		CompleteBack: key.NewBinding(key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous completion")),
		Toggle: key.NewBinding(key.WithKeys("esc"),
			key.WithHelp("esc", "cancel completion or toggle command mode")),
		Prev: key.NewBinding(key.WithKeys("up"),
			key.WithHelp("↑", "older history entry")),
		Next: key.NewBinding(key.WithKeys("down"),
			key.WithHelp("↓", "newer history entry")),
		PrevInMode: key.NewBinding(key.WithKeys("shift+up"),
			key.WithHelp("shift+↑", "older entry of the current mode")),
		NextInMode: key.NewBinding(key.WithKeys("shift+down"),
			key.WithHelp("shift+↓", "newer entry of the current mode")),
		Interrupt: key.NewBinding(key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "clear the line, or exit if empty")),
		Quit: key.NewBinding(key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "exit")),
	}
}

// bindings returns k in the order shown by help.
func (k keyMap) bindings() []key.Binding {
	return []key.Binding{
		k.Submit, k.Complete, k.CompleteBack, k.Toggle,
		k.Prev, k.Next, k.PrevInMode, k.NextInMode,
		k.Interrupt, k.Quit,
	}
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true

		return m, tea.Quit

	case key.Matches(msg, m.keys.Interrupt):
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.sugg = noSuggestions()
		m.recall = m.history.Len()
		m.setInput("")

		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Complete):
		return m.cycle(1), nil

	case key.Matches(msg, m.keys.CompleteBack):
		return m.cycle(-1), nil

	case key.Matches(msg, m.keys.Toggle):
		if m.sugg.cycling() {
			return m.cancelCompletion(), nil
		}

		return m.switchMode(m.mode.other()), nil

	case key.Matches(msg, m.keys.Prev):
		return m.recallEntry(-1, false), nil

	case key.Matches(msg, m.keys.Next):
		return m.recallEntry(1, false), nil

	case key.Matches(msg, m.keys.PrevInMode):
		return m.recallEntry(-1, true), nil

	case key.Matches(msg, m.keys.NextInMode):
		return m.recallEntry(1, true), nil
	}

	before := m.input.Value()

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		m.recall = m.history.Len()
	}

	m = m.refreshCompletion()

	return m, cmd
}

// recallEntry replaces the line with the history entry before (step < 0) or
// after (step > 0) the one shown, switching to the entry's mode. With inMode
// only entries of the current mode are visited. Moving past the newest entry
// returns to an empty line.
func (m model) recallEntry(step int, inMode bool) model {
	var match func(HistoryEntry) bool
	if inMode {
		mode := m.mode
		match = func(e HistoryEntry) bool { return e.Mode == mode }
	}

	i, e, ok := m.history.Find(m.recall, step, match)
	if !ok {
		if step > 0 && m.recall < m.history.Len() {
			m.recall = m.history.Len()
			m.setInput("")
		}

		return m
	}

	m = m.switchMode(e.Mode)
	m.recall = i
	m.sugg = noSuggestions()
	m.setInput(e.Line)

	return m
}

// historyPosition formats the 0-based index i of n entries for display.
func historyPosition(i, n int) string {
	return fmt.Sprintf("%s/%d", lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(i+1)), n)
}
