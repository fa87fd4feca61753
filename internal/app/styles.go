package app

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// styles holds every lipgloss style used to draw the map and the footer.
// Two of them come from the configuration.
type styles struct {
	active    lipgloss.Style
	connector lipgloss.Style
	marker    lipgloss.Style
	status    lipgloss.Style
	message   lipgloss.Style
	errorMsg  lipgloss.Style
	prompt    lipgloss.Style
	hint      lipgloss.Style
	title     lipgloss.Style
}

var (
	connectorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	markerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("80")).Bold(true)
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
)

// newStyles builds the styles for the configured colors. Empty colors fall
// back to the built-in palette.
func newStyles(activeColor, messageColor string) styles {
	if activeColor == "" {
		activeColor = "212"
	}
	if messageColor == "" {
		messageColor = "244"
	}
	return styles{
		active:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color(activeColor)).Bold(true),
		connector: connectorStyle,
		marker:    markerStyle,
		status:    statusStyle,
		message:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color(messageColor)).Bold(true),
		errorMsg:  lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160")).Bold(true),
		prompt:    promptStyle,
		hint:      hintStyle,
		title:     titleStyle,
	}
}

// applyColorEnv honors NO_COLOR by dropping every color from lipgloss
// output.
func applyColorEnv() {
	if termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
