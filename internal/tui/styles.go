package tui

import (
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/task"
)

// Styles carry color and weight only. Borders or padding would change card
// heights and break the row-to-card mapping in layout.go.
var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	activeFilterStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("255"))
	cardTitleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	draggingStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("236"))
	overdueStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	alertStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("124"))

	statusStyles = map[task.Status]lipgloss.Style{
		task.Pending:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		task.InProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		task.Completed:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

const selectedMarker = "▌ "

func badgeStyle(s task.Status) lipgloss.Style {
	if st, ok := statusStyles[s]; ok {
		return st
	}
	return dimStyle
}
