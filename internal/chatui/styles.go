package chatui

import "github.com/charmbracelet/lipgloss"

var (
	colorBlue = lipgloss.Color("#1b4965")
	colorRose = lipgloss.Color("#e11d48")
	colorDim  = lipgloss.Color("#6b7280")

	headerStyle    = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(colorDim)
	userStyle      = lipgloss.NewStyle().Foreground(colorRose).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
	bodyStyle      = lipgloss.NewStyle().PaddingLeft(2)
)
