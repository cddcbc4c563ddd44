// Package theme holds the shared color palette for the TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Dark palette in the Catppuccin Mocha family.
var (
	ColorBase     = lipgloss.Color("#1e1e2e")
	ColorSurface0 = lipgloss.Color("#313244")
	ColorSurface2 = lipgloss.Color("#585b70")
	ColorOverlay0 = lipgloss.Color("#6c7086")
	ColorText     = lipgloss.Color("#cdd6f4")
	ColorSubtext0 = lipgloss.Color("#a6adc8")

	ColorRed      = lipgloss.Color("#f38ba8")
	ColorGreen    = lipgloss.Color("#a6e3a1")
	ColorYellow   = lipgloss.Color("#f9e2af")
	ColorBlue     = lipgloss.Color("#89b4fa")
	ColorMauve    = lipgloss.Color("#cba6f7")
	ColorTeal     = lipgloss.Color("#94e2d5")
	ColorPeach    = lipgloss.Color("#fab387")
	ColorLavender = lipgloss.Color("#b4befe")
)

// AgentStatusStyle returns the style for an agent status tag.
func AgentStatusStyle(status string) lipgloss.Style {
	switch status {
	case "running", "busy", "working":
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case "idle", "ready", "completed", "done":
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case "failed", "error", "crashed":
		return lipgloss.NewStyle().Foreground(ColorRed)
	default:
		return lipgloss.NewStyle().Foreground(ColorOverlay0)
	}
}
