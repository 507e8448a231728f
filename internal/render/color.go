package render

import "github.com/charmbracelet/lipgloss"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// tileColors is the cycle assigned to tile ids. Bright red and gray are
// reserved for fallback and unresolved cells.
var tileColors = []Color{
	ColorRed,
	ColorGreen,
	ColorYellow,
	ColorBlue,
	ColorMagenta,
	ColorCyan,
	ColorWhite,
	ColorBrightGreen,
	ColorBrightYellow,
	ColorBrightBlue,
	ColorBrightMagenta,
	ColorBrightCyan,
	ColorBrightWhite,
	ColorOrange,
}

// colorStyles maps Color to lipgloss styles.
var colorStyles = map[Color]lipgloss.Style{
	ColorDefault:       lipgloss.NewStyle(),
	ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Style returns the lipgloss style for c.
func (c Color) Style() lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[ColorDefault]
}
