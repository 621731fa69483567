package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorAccent = lipgloss.Color("#007bff")
	ColorText   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#dddddd"}
	ColorMuted  = lipgloss.Color("240")
	ColorError  = lipgloss.Color("#ff4d4f")
	ColorHeart  = lipgloss.Color("#ff6b9d")
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(1, 3).
			Align(lipgloss.Center)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	descriptionStyle = lipgloss.NewStyle().
				Align(lipgloss.Left)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	hintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)
)

// cardWidth clamps the card to the terminal, leaving room for the border.
func cardWidth(termWidth, preferred int) int {
	if termWidth <= 0 {
		return preferred
	}
	return max(20, min(preferred, termWidth-4))
}
