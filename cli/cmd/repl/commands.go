package repl

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// command is a line accepted in control mode.
type command struct {
	name    string
	aliases []string
	usage   string
	run     func(m model, args []string) (model, tea.Cmd)
}

func commands() []command {
	return []command{
		{
			name:  "help",
			usage: "show commands and key bindings",
			run: func(m model, _ []string) (model, tea.Cmd) {
				return m, tea.Println(m.help())
			},
		},
		{
			name:  "list",
			usage: "list the values in scope, or only those named",
			run: func(m model, args []string) (model, tea.Cmd) {
				return m, tea.Println(m.listScope(args...))
			},
		},
		{
			name:  "funcs",
			usage: "list the functions",
			run: func(m model, _ []string) (model, tea.Cmd) {
				return m, tea.Println(m.listFuncs())
			},
		},
		{
			name:  "history",
			usage: "list the saved history",
			run: func(m model, _ []string) (model, tea.Cmd) {
				return m, tea.Println(m.listHistory())
			},
		},
		{
			name:  "clear",
			usage: "clear the screen",
			run: func(m model, _ []string) (model, tea.Cmd) {
				return m, tea.ClearScreen
			},
		},
		{
			name:    "quit",
			aliases: []string{"q", "exit"},
			usage:   "exit",
			run: func(m model, _ []string) (model, tea.Cmd) {
				m.quitting = true

				return m, tea.Quit
			},
		},
	}
}

// commandNames returns the primary name of every command.
func commandNames() []string {
	cmds := commands()
	names := make([]string, len(cmds))

	for i, c := range cmds {
		names[i] = c.name
	}

	return names
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands() {
		if c.name == name || slices.Contains(c.aliases, name) {
			return c, true
		}
	}

	return command{}, false
}

// executeCommand runs the control-mode line input.
func (m model) executeCommand(input string) (model, tea.Cmd) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return m, nil
	}

	m.logger.TraceContext(m.ctx(), "repl command",
		slog.String("command", fields[0]),
		slog.Any("args", fields[1:]),
	)

	echoed := tea.Println(echo(modeCtrl, input))

	c, ok := lookupCommand(fields[0])
	if !ok {
		msg := errorStyle.Render(fmt.Sprintf("unknown command %q (try help)", fields[0]))

		return m, tea.Sequence(echoed, tea.Println(msg))
	}

	m, cmd := c.run(m, fields[1:])

	return m, tea.Sequence(echoed, cmd)
}

func (m model) help() string {
	var b strings.Builder

	b.WriteString("Commands (Esc toggles command mode):\n")

	for _, c := range commands() {
		name := c.name
		if len(c.aliases) > 0 {
			name += ", " + strings.Join(c.aliases, ", ")
		}

		fmt.Fprintf(&b, "  %-16s %s\n", name, c.usage)
	}

	b.WriteString("\nKeys:\n")

	for _, k := range m.keys.bindings() {
		h := k.Help()
		fmt.Fprintf(&b, "  %-16s %s\n", h.Key, h.Desc)
	}

	b.WriteString("\nA line containing ${...}, $if{...} or $for(...) is rendered as a template.\n")

	return b.String()
}

// listScope lists the values bound to names, or every value in scope if no
// names are given.
func (m model) listScope(names ...string) string {
	if len(names) == 0 {
		names = m.env.scope.Keys()
	}

	var b strings.Builder

	for _, name := range names {
		v, ok := m.env.scope.Lookup(name)
		if !ok {
			fmt.Fprintf(&b, "  %s %s\n", name, errorStyle.Render("(unbound)"))

			continue
		}

		fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render(preview(v, previewWidth)))
	}

	if b.Len() == 0 {
		return hintStyle.Render("  (no values in scope)")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (m model) listFuncs() string {
	var b strings.Builder

	for name := range m.env.gen.Names() {
		fmt.Fprintf(&b, "  %s\n", m.env.signature(name))
	}

	fmt.Fprintf(&b, "  %s", m.env.signature(templateFunc))

	return b.String()
}

func (m model) listHistory() string {
	n := m.history.Len()
	if n == 0 {
		return hintStyle.Render("  (no history)")
	}

	var b strings.Builder

	for i := range n {
		e, err := m.history.Entry(i)
		if err != nil {
			break
		}

		fmt.Fprintf(&b, "  %4d %s\n", i+1, echo(e.Mode, e.Line))
	}

	return strings.TrimSuffix(b.String(), "\n")
}
