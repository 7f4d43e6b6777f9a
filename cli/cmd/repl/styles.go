package repl

import "github.com/charmbracelet/lipgloss"

const (
	evalPrompt = "➜ "
	ctrlPrompt = ": "
)

var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	echoStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	nameStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	paramStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

	candidateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchedStyle   = candidateStyle.Bold(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	selMatchStyle  = selectedStyle.Bold(true)
)

// echo formats a submitted line the way it appeared at the prompt.
func echo(mode inputMode, line string) string {
	return mode.prompt() + echoStyle.Render(line)
}
