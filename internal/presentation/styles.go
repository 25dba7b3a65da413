package presentation

import "github.com/charmbracelet/lipgloss"

// Text output styles. lipgloss drops the colors when the output is not a terminal.
var (
	// LabelStyle for field names in record output
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}).
			Width(16)

	// ValueStyle for field values
	ValueStyle = lipgloss.NewStyle()

	// SuccessStyle for committed transactions
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#73F59F"}).
			Bold(true)

	// ErrorStyle for rejected transactions
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#FF8787"}).
			Bold(true)

	// CodeStyle for the numeric error code
	CodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FECA57"})
)
