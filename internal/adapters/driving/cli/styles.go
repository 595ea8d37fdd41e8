package cli

import "github.com/charmbracelet/lipgloss"

// Output styles. lipgloss drops colour when stdout is not a terminal.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E8E3E"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D93025"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5F6368"))
)
