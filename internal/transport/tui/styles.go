package tui

import "charm.land/lipgloss/v2"

var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#06B6D4")
	colorMuted     = lipgloss.Color("#6B7280")
	colorBorder    = lipgloss.Color("#374151")
	colorText      = lipgloss.Color("#F9FAFB")
	colorError     = lipgloss.Color("#EF4444")
	colorSuccess   = lipgloss.Color("#10B981")
	colorWarning   = lipgloss.Color("#F59E0B")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Background(colorPrimary).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.
				BorderForeground(colorPrimary)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	winnerBadgeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorSuccess)

	drawBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning)

	cellStyle = lipgloss.NewStyle().
			Foreground(colorText)

	cursorCellStyle = cellStyle.
			Reverse(true)

	winningCellStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorSuccess)
)
