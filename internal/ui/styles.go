package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF0000")
	ColorGreen   = lipgloss.Color("#00FF00")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorMagenta = lipgloss.Color("#FF00FF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	PlayingDotStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	PausedDotStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	LabelBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	GroupMarkStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	// FilledStyle renders the sung portion of a line, UnfilledStyle the
	// rest; the accent color is applied at startup from config.
	FilledStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	UnfilledStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ActiveLineStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	FocusLineStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	AdLibStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	SyncedMarkStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Background(ColorDimGray).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	RulerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	RulerHeadStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	StatusBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	EditBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)
)

// SetAccent recolors the accent-bearing styles from config.
func SetAccent(hex string) {
	if hex == "" {
		return
	}
	c := lipgloss.Color(hex)
	FilledStyle = FilledStyle.Foreground(c)
	SelectedStyle = SelectedStyle.Foreground(c)
	TitleStyle = TitleStyle.Foreground(c)
}
