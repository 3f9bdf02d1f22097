package playground

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	errorColor   = lipgloss.Color("#EF4444") // Red
	warningColor = lipgloss.Color("#F59E0B") // Amber/Yellow

	// Header styles
	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(primaryColor).
				Padding(0, 1)

	headerStatsStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#E0E0E0")).
				Background(primaryColor).
				Padding(0, 1)

	headerContainerStyle = lipgloss.NewStyle().
				Background(primaryColor)

	// Transcript line styles
	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")) // Green

	deliveryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60A5FA")) // Blue

	noticeStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	warnLineStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	errorLineStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// Input line style
	inputLineStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2D2D2D"))

	// Status bar style
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)
)
