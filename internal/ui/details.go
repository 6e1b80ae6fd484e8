package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Aman-CERP/feedlens/internal/feedback"
)

// creationLayout formats creation dates as "HH:mm, dd.MM.YYYY".
const creationLayout = "15:04, 02.01.2006"

// DetailOptions controls RenderDetails.
type DetailOptions struct {
	Styles        Styles
	ViewportWidth int
	// Search, when set, highlights the comment as in the list.
	Search string
	// Now anchors the relative creation time. Zero means time.Now.
	Now time.Time
}

// MapLink returns an OpenStreetMap URL centered on p.
func MapLink(p feedback.Position) string {
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.4f&mlon=%.4f#map=12/%.4f/%.4f",
		p.Lat, p.Lng, p.Lat, p.Lng)
}

// RenderDetails writes the details page of one feedback item: the basic
// section, browser, screen and viewport, and geo location.
func RenderDetails(w io.Writer, d feedback.Detailed, opts DetailOptions) error {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	width := opts.ViewportWidth
	if width <= 0 {
		width = DefaultViewportWidth
	}
	st := opts.Styles

	var sb strings.Builder
	section := func(title string) {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		if title != "" {
			sb.WriteString(st.Title.Render(title))
			sb.WriteByte('\n')
		}
	}
	pair := func(label, value string) {
		sb.WriteString(st.Label.Render(fmt.Sprintf("%-15s", label)))
		sb.WriteString(value)
		sb.WriteByte('\n')
	}

	section("")
	pair("Rating", RatingMark(d.Rating, st))
	pair("Creation Date", fmt.Sprintf("%s (%s)",
		d.CreationDate.Format(creationLayout), humanize.RelTime(d.CreationDate, now, "ago", "from now")))
	pair("Contact email", orDash(d.Email))
	pair("Source url", orDash(d.URL))
	pair("Comment", Highlight(commentFragments(opts.Search, d.Comment), st))

	section("Browser")
	pair("Name", d.Browser.Name)
	pair("Version", d.Browser.Version)
	pair("Platform", d.Browser.Platform)
	pair("Device", orDash(d.Browser.Device))

	section("Screen & Viewport")
	layout := ViewportLayout(d.Viewport, d.Screen, width)
	sb.WriteString(RenderViewport(layout, d.Viewport, d.Screen, st))

	section("Geo location")
	pair("Country", d.Geo.Country)
	pair("City", d.Geo.City)
	pair("Coordinates", fmt.Sprintf("%.4f, %.4f", d.Geo.Position.Lat, d.Geo.Position.Lng))
	pair("Map", MapLink(d.Geo.Position))

	_, err := io.WriteString(w, sb.String())
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
