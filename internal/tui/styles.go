package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Dialog frame around the whole picker
	AppStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1)

	// Title bar
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F4FB7")).
			Padding(0, 1)

	// Field labels next to the text inputs
	LabelStyle = lipgloss.NewStyle().
			Bold(true)

	// Listing row under the cursor
	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F4FB7"))

	// Listing rows flagged by the selection model
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#3B3B7A"))

	// Directory rows
	DirStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#81A1C1")).
			Bold(true)

	// File rows
	FileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	// Size and date column
	DetailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595"))

	// Status line for counts and toggles
	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595"))

	// Listing failures
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	// Empty-directory placeholder
	EmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595")).
			Italic(true)
)
