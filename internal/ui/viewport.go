package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/Aman-CERP/feedlens/internal/feedback"
)

// Rect is an axis-aligned box in scaled units.
type Rect struct {
	X, Y, Width, Height int
}

func (r Rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Layout is the screen and viewport of one feedback item scaled to a common
// width.
type Layout struct {
	// Scale is target width divided by the wider of the two boxes.
	Scale float64
	// Viewport is anchored at the origin.
	Viewport Rect
	// Screen is offset by the available top/left of the screen.
	Screen Rect
	// ViewportDominates is true when the viewport is taller than the screen's
	// usable area, in which case it is drawn on top.
	ViewportDominates bool
}

// ViewportLayout scales viewport and screen so the wider one spans width.
// Sizes are rounded to the nearest unit. A degenerate input (zero widths)
// yields an all-zero layout.
func ViewportLayout(vp feedback.Viewport, sc feedback.Screen, width int) Layout {
	l := Layout{
		ViewportDominates: vp.Height > sc.AvailableTop+sc.AvailableHeight,
	}

	span := max(vp.Width, sc.AvailableLeft+sc.AvailableWidth)
	if span <= 0 || width <= 0 {
		return l
	}

	l.Scale = float64(width) / float64(span)
	scale := func(v int) int { return int(math.Round(l.Scale * float64(v))) }

	l.Viewport = Rect{Width: scale(vp.Width), Height: scale(vp.Height)}
	l.Screen = Rect{
		X:      scale(sc.AvailableLeft),
		Y:      scale(sc.AvailableTop),
		Width:  scale(sc.AvailableWidth),
		Height: scale(sc.AvailableHeight),
	}
	return l
}

// Diagram glyphs.
const (
	glyphScreen   = '░'
	glyphViewport = '▒'
	glyphBoth     = '▓'
)

// RenderViewport draws the layout on a character grid. Terminal cells are
// roughly twice as tall as wide, so rows are halved. The grid is never taller
// than it is wide; boxes beyond that are cut off.
func RenderViewport(l Layout, vp feedback.Viewport, sc feedback.Screen, styles Styles) string {
	halve := func(r Rect) Rect {
		return Rect{
			X:      r.X,
			Y:      int(math.Round(float64(r.Y) / 2)),
			Width:  r.Width,
			Height: int(math.Round(float64(r.Height) / 2)),
		}
	}
	v, s := halve(l.Viewport), halve(l.Screen)

	cols := max(v.X+v.Width, s.X+s.Width)
	rows := max(v.Y+v.Height, s.Y+s.Height)
	clipped := rows > cols
	rows = min(rows, cols)

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		var line strings.Builder
		for x := 0; x < cols; x++ {
			inV, inS := v.contains(x, y), s.contains(x, y)
			switch {
			case inV && inS:
				line.WriteRune(glyphBoth)
			case inV:
				line.WriteString(styles.Viewport.Render(string(glyphViewport)))
			case inS:
				line.WriteString(styles.Screen.Render(string(glyphScreen)))
			default:
				line.WriteByte(' ')
			}
		}
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "%s screen %dx%d at %d,%d  %s viewport %dx%d",
		styles.Screen.Render(string(glyphScreen)), sc.AvailableWidth, sc.AvailableHeight, sc.AvailableLeft, sc.AvailableTop,
		styles.Viewport.Render(string(glyphViewport)), vp.Width, vp.Height)
	if l.ViewportDominates {
		sb.WriteString("  (viewport taller than screen)")
	}
	if clipped {
		sb.WriteString("  (clipped)")
	}
	sb.WriteByte('\n')

	return sb.String()
}
