package tui

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - active icon
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - titles
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - borders, hints
	colorYellow = lipgloss.Color("220") // Amber - drop target
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHint    = lipgloss.NewStyle().Foreground(colorDim)
	styleDockHit = lipgloss.NewStyle().Foreground(colorYellow)

	styleIcon     = lipgloss.NewStyle().Foreground(colorGray)
	styleIconText = lipgloss.NewStyle().Foreground(colorWhite)
	styleDragged  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleGhost    = lipgloss.NewStyle().Foreground(colorYellow)

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Padding(0, 2)
	stylePanelTitle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	styleLabel      = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleMeta       = lipgloss.NewStyle().Foreground(colorGray)
	styleLink       = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
)
