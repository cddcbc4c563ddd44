package watchtui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agusx1211/agentwatch/internal/theme"
)

// Header and status bar.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorBase).
			Background(theme.ColorBlue).
			Padding(0, 2)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(theme.ColorSubtext0).
			Background(theme.ColorSurface0).
			Padding(0, 1)

	statusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorLavender).
			Background(theme.ColorSurface0)

	statusValueStyle = lipgloss.NewStyle().
				Foreground(theme.ColorSubtext0).
				Background(theme.ColorSurface0)
)

// Pane chrome.
var (
	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorLavender)

	paneTitleFocusedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.ColorTeal)

	splitterStyle = lipgloss.NewStyle().
			Foreground(theme.ColorSurface2)

	splitterActiveStyle = lipgloss.NewStyle().
				Foreground(theme.ColorTeal).
				Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(theme.ColorOverlay0)

	textStyle = lipgloss.NewStyle().
			Foreground(theme.ColorText)

	errorStyle = lipgloss.NewStyle().
			Foreground(theme.ColorRed)

	okStyle = lipgloss.NewStyle().
		Foreground(theme.ColorGreen)
)

// Agent tree.
var (
	agentLineStyle = lipgloss.NewStyle().
			Foreground(theme.ColorText)

	agentActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.ColorTeal)

	agentCursorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.ColorMauve)
)

// Event log and detail.
var (
	eventLineStyle = lipgloss.NewStyle().
			Foreground(theme.ColorSubtext0)

	eventActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.ColorPeach)
)

// Chat.
var (
	chatRoleUserStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.ColorBlue)

	chatRoleAssistantStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.ColorMauve)

	chatRoleOtherStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(theme.ColorOverlay0)
)

func chatRoleStyle(role string) lipgloss.Style {
	switch role {
	case "user":
		return chatRoleUserStyle
	case "assistant":
		return chatRoleAssistantStyle
	default:
		return chatRoleOtherStyle
	}
}
