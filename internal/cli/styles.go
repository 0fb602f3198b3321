package cli

import "github.com/charmbracelet/lipgloss"

var (
	styleBold    = lipgloss.NewStyle().Bold(true)
	styleDefault = lipgloss.NewStyle()
	styleFaded   = lipgloss.NewStyle().Faint(true)

	styleError        = lipgloss.NewStyle().Foreground(lipgloss.Color(AnsiRed))
	styleInput        = styleDefault
	styleInputFocused = lipgloss.NewStyle().Foreground(lipgloss.Color(AnsiBlue))
	stylePlaceholder  = styleFaded
	styleTitle        = styleBold

	defaultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			Padding(1, 2)

	defaultButtonStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				Padding(0, 5)
)
