package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/eisenq/eq/internal/task"
)

// Color palette
var (
	colorDoFirst  = lipgloss.Color("196") // red
	colorSchedule = lipgloss.Color("214") // orange
	colorDelegate = lipgloss.Color("39")  // blue
	colorDrop     = lipgloss.Color("242") // gray
	colorAccent   = lipgloss.Color("76")  // green
	colorMuted    = lipgloss.Color("242")
	colorWhite    = lipgloss.Color("15")
)

// Styles for the matrix TUI
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	dateStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	cellTitleStyle = lipgloss.NewStyle().
			Bold(true)

	selectedItemStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(colorWhite).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	completedItemStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Strikethrough(true)

	notationStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDoFirst)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	chatUserStyle = lipgloss.NewStyle().
			Foreground(colorSchedule).
			Bold(true)

	chatAssistantStyle = lipgloss.NewStyle().
				Foreground(colorDelegate).
				Bold(true)

	chatHintStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	zenTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	zenTimerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	zenMutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// quadrantColor maps a quadrant onto its accent color.
func quadrantColor(q task.Quadrant) lipgloss.Color {
	switch q {
	case task.DoFirst:
		return colorDoFirst
	case task.Schedule:
		return colorSchedule
	case task.Delegate:
		return colorDelegate
	default:
		return colorDrop
	}
}
