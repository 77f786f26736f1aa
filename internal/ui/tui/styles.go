package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#8BC34A")
	primary = lipgloss.Color("#2196F3")
	muted   = lipgloss.Color("#6c7a89")
	danger  = lipgloss.Color("#e53935")
)

type styles struct {
	Title     lipgloss.Style
	Caption   lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Spinner   lipgloss.Style
	Trace     lipgloss.Style
	Input     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Caption:   lipgloss.NewStyle().Foreground(muted).Italic(true),
		User:      lipgloss.NewStyle().Bold(true).Foreground(primary).MarginTop(1),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Error:     lipgloss.NewStyle().Foreground(danger),
		Spinner:   lipgloss.NewStyle().Foreground(accent),
		Trace: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Foreground(muted).
			Padding(0, 1),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
	}
}
