package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

// GradientColors cycle under the spinner frames.
var GradientColors = []lipgloss.Color{
	"#FF6AD5", // pink
	"#C774E8", // purple
	"#94D0FF", // cyan
	"#8BFFA8", // green
}

// Status symbols
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolWarning = "!"
)
