package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Aman-CERP/feedlens/internal/feedback"
)

// Color palette. Teal and magenta follow the screen/viewport markers, yellow
// is the classic search highlight.
const (
	ColorTeal     = "37"  // Screen box, accents
	ColorMagenta  = "163" // Viewport box
	ColorYellow   = "226" // Matched text background
	ColorBlack    = "16"
	ColorWhite    = "255" // Headers, important text
	ColorGray     = "245" // Secondary text, labels
	ColorDarkGray = "238" // Borders, separators
	ColorRed      = "196" // Errors, low ratings
	ColorOrange   = "208"
	ColorGreen    = "70" // High ratings
)

// ratingColors maps One..Five from red to green.
var ratingColors = [...]string{ColorRed, ColorOrange, ColorYellow, "148", ColorGreen}

// Styles holds all styles used by the renderers.
type Styles struct {
	// Text styles
	Header  lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Dim     lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	// Matched is applied to matched fragments of a comment.
	Matched lipgloss.Style
	// Empty renders the placeholder for an empty comment.
	Empty lipgloss.Style
	// Selected marks the cursor row in the browser.
	Selected lipgloss.Style

	// Screen and Viewport color the two boxes of the viewport diagram.
	Screen   lipgloss.Style
	Viewport lipgloss.Style

	Panel lipgloss.Style

	ratings [5]lipgloss.Style
}

// Rating returns the style for a rating mark.
func (s Styles) Rating(r feedback.Rating) lipgloss.Style {
	if !r.Valid() {
		return s.Dim
	}
	return s.ratings[r-1]
}

// DefaultStyles returns styles for color terminals.
func DefaultStyles() Styles {
	s := Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorTeal)),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorRed)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOrange)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)),

		Matched: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorBlack)).
			Background(lipgloss.Color(ColorYellow)),
		Empty:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(ColorGray)),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorTeal)),

		Screen:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTeal)),
		Viewport: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMagenta)),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorDarkGray)).
			Padding(0, 1),
	}
	for i, c := range ratingColors {
		s.ratings[i] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c))
	}
	return s
}

// NoColorStyles returns styles without color. Matches stay underlined and
// the empty comment stays italic, since NO_COLOR only rules out color.
func NoColorStyles() Styles {
	s := Styles{
		Header:   lipgloss.NewStyle().Bold(true),
		Title:    lipgloss.NewStyle().Bold(true),
		Label:    lipgloss.NewStyle(),
		Dim:      lipgloss.NewStyle(),
		Error:    lipgloss.NewStyle().Bold(true),
		Warning:  lipgloss.NewStyle(),
		Success:  lipgloss.NewStyle(),
		Matched:  lipgloss.NewStyle().Underline(true),
		Empty:    lipgloss.NewStyle().Italic(true),
		Selected: lipgloss.NewStyle().Reverse(true),
		Screen:   lipgloss.NewStyle(),
		Viewport: lipgloss.NewStyle(),
		Panel:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	}
	for i := range s.ratings {
		s.ratings[i] = lipgloss.NewStyle()
	}
	return s
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
