package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorPurple  = lipgloss.Color("#7C3AED")
	colorMagenta = lipgloss.Color("#FF00FF")
	colorRed     = lipgloss.Color("#EF4444")
	colorGray    = lipgloss.Color("#6B7280")
	colorDimmed  = lipgloss.Color("#4B5563")
	colorWhite   = lipgloss.Color("#F9FAFB")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPurple).
			PaddingLeft(1).
			PaddingBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			PaddingLeft(1).
			PaddingTop(1)

	normalItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				BorderLeft(true).
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(colorPurple)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(colorPurple).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	dimmedStyle = lipgloss.NewStyle().
			Foreground(colorDimmed)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorMagenta)

	actionKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMagenta)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPurple)

	borderDimStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDimmed)
)
