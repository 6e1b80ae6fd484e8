package ui

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/feedlens/internal/dashboard"
	ferrors "github.com/Aman-CERP/feedlens/internal/errors"
	"github.com/Aman-CERP/feedlens/internal/feedback"
	"github.com/Aman-CERP/feedlens/internal/fragment"
)

func frag(s string, matched bool) fragment.Fragment {
	return fragment.Fragment{Slice: s, Matched: matched}
}

// =============================================================================
// Highlight
// =============================================================================

func TestHighlight_ConcatenatesWithoutSeparators(t *testing.T) {
	frags, ok := fragment.Fragmentize("pattern", "1p2a3t4t5e6r7n8")
	require.True(t, ok)

	got := Highlight(frags, NoColorStyles())

	assert.Equal(t, "1p2a3t4t5e6r7n8", got)
}

func TestHighlight_Empty(t *testing.T) {
	assert.Equal(t, EmptyComment, Highlight(nil, NoColorStyles()))
	assert.Equal(t, EmptyComment, Highlight([]fragment.Fragment{}, DefaultStyles()))
}

// =============================================================================
// Truncate
// =============================================================================

func TestTruncate(t *testing.T) {
	frags := []fragment.Fragment{frag("no ", false), frag("pattern", true), frag(" more", false)}

	tests := []struct {
		name  string
		width int
		want  []fragment.Fragment
	}{
		{"fits", 20, frags},
		{"exact", 15, frags},
		{"disabled", 0, frags},
		{"cut in matched", 6, []fragment.Fragment{frag("no ", false), frag("pa", true), frag("…", false)}},
		{"cut at boundary", 4, []fragment.Fragment{frag("no …", false)}},
		{"cut in trailing", 12, []fragment.Fragment{frag("no ", false), frag("pattern", true), frag(" …", false)}},
		{"only ellipsis", 1, []fragment.Fragment{frag("…", false)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Truncate(frags, tc.width))
		})
	}
}

func TestTruncate_WideRunes(t *testing.T) {
	got := Truncate([]fragment.Fragment{frag("日本語のコメント", false)}, 7)

	// Each rune is two cells: three fit in six, plus the ellipsis
	assert.Equal(t, []fragment.Fragment{frag("日本語…", false)}, got)
}

func TestTruncate_FlattensNewlines(t *testing.T) {
	got := Truncate([]fragment.Fragment{frag("line one\nline\ttwo", false)}, 0)

	assert.Equal(t, "line one line two", fragment.Text(got))
}

// =============================================================================
// Table
// =============================================================================

func tableItems() []dashboard.Item {
	return dashboard.FilterMap(dashboard.Criteria{Search: "btn"}, []feedback.Feedback{
		{ID: "1", Rating: feedback.Two, Comment: "The button doesn't work",
			Browser: feedback.Browser{Name: "Chrome", Version: "32.0", Platform: "MacOSX", Device: "Desktop"}},
		{ID: "2", Rating: feedback.Five, Comment: "Page is fine"},
	})
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer

	err := RenderTable(&buf, tableItems(), TableOptions{Styles: NoColorStyles(), CommentWidth: 40})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "RATING")
	assert.Contains(t, out, "COMMENT")
	assert.Contains(t, out, "2 ★★☆☆☆")
	assert.Contains(t, out, "The button doesn't work")
	assert.Contains(t, out, "Chrome 32.0")
	assert.Contains(t, out, "MacOSX")
	assert.NotContains(t, out, "Page is fine")
}

func TestRenderTable_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderTable(&buf, nil, TableOptions{Styles: NoColorStyles()}))

	assert.Equal(t, NoData+"\n", buf.String())
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	items := tableItems()

	require.NoError(t, RenderSummary(&buf, dashboard.Summarize(items), 2, NoColorStyles()))

	assert.Equal(t, "Feedback 1 of 2  1:0 2:1 3:0 4:0 5:0\n", buf.String())
}

func TestRatingMark(t *testing.T) {
	assert.Equal(t, "5 ★★★★★", RatingMark(feedback.Five, NoColorStyles()))
	assert.Equal(t, "1 ★☆☆☆☆", RatingMark(feedback.One, NoColorStyles()))
	assert.Equal(t, "?", RatingMark(feedback.Rating(0), NoColorStyles()))
}

// =============================================================================
// Viewport
// =============================================================================

func TestViewportLayout_ScalesToWiderBox(t *testing.T) {
	// Given: a 1440 wide screen offset by 22 at the top and a smaller viewport
	vp := feedback.Viewport{Width: 1280, Height: 800}
	sc := feedback.Screen{AvailableTop: 22, AvailableLeft: 0, AvailableWidth: 1440, AvailableHeight: 874}

	// When: laying out at 300 units
	l := ViewportLayout(vp, sc, 300)

	// Then: the screen spans the full width
	assert.InDelta(t, 300.0/1440.0, l.Scale, 1e-9)
	assert.Equal(t, Rect{Width: 267, Height: 167}, l.Viewport)
	assert.Equal(t, Rect{X: 0, Y: 5, Width: 300, Height: 182}, l.Screen)
	assert.False(t, l.ViewportDominates)
}

func TestViewportLayout_ViewportDominates(t *testing.T) {
	vp := feedback.Viewport{Width: 1600, Height: 1200}
	sc := feedback.Screen{AvailableTop: 0, AvailableLeft: 100, AvailableWidth: 1000, AvailableHeight: 700}

	l := ViewportLayout(vp, sc, 160)

	assert.True(t, l.ViewportDominates)
	assert.Equal(t, Rect{Width: 160, Height: 120}, l.Viewport)
	assert.Equal(t, Rect{X: 10, Y: 0, Width: 100, Height: 70}, l.Screen)
}

func TestViewportLayout_Degenerate(t *testing.T) {
	l := ViewportLayout(feedback.Viewport{}, feedback.Screen{}, 300)

	assert.Zero(t, l.Scale)
	assert.Equal(t, Rect{}, l.Viewport)
	assert.Equal(t, Rect{}, l.Screen)
}

func TestRenderViewport_DrawsBothBoxes(t *testing.T) {
	vp := feedback.Viewport{Width: 100, Height: 40}
	sc := feedback.Screen{AvailableTop: 0, AvailableLeft: 0, AvailableWidth: 50, AvailableHeight: 80}

	out := RenderViewport(ViewportLayout(vp, sc, 10), vp, sc, NoColorStyles())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// 8 scaled rows halved to 4, plus the legend
	require.Len(t, lines, 5)
	assert.Equal(t, "▓▓▓▓▓▒▒▒▒▒", lines[0])
	assert.Equal(t, "░░░░░", lines[3])
	assert.Contains(t, lines[4], "screen 50x80 at 0,0")
	assert.Contains(t, lines[4], "viewport 100x40")
}

func TestRenderViewport_ClipsAbsurdHeight(t *testing.T) {
	// Given: a viewport reported as fifty million pixels tall
	vp := feedback.Viewport{Width: 1280, Height: 50_000_000}
	sc := feedback.Screen{AvailableWidth: 1440, AvailableHeight: 874}
	l := ViewportLayout(vp, sc, 40)

	// When: rendering it
	out := RenderViewport(l, vp, sc, NoColorStyles())

	// Then: the grid stays within the diagram width and says so
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 41)
	assert.Contains(t, lines[40], "viewport 1280x50000000")
	assert.Contains(t, lines[40], "(clipped)")
}

// =============================================================================
// Details
// =============================================================================

func sampleDetailed() feedback.Detailed {
	return feedback.Detailed{
		Feedback: feedback.Feedback{
			ID:      "a1",
			Rating:  feedback.Four,
			Comment: "The button doesn't work",
			Browser: feedback.Browser{Name: "Chrome", Version: "32.0", Platform: "MacOSX", Device: "Desktop"},
		},
		CreationDate: time.Date(2014, 2, 3, 13, 46, 58, 0, time.UTC),
		Email:        "someone@example.com",
		URL:          "https://example.com/page",
		Viewport:     feedback.Viewport{Width: 1280, Height: 800},
		Screen:       feedback.Screen{AvailableTop: 22, AvailableWidth: 1440, AvailableHeight: 874},
		Geo: feedback.Geo{
			Country:  "NL",
			City:     "Amsterdam",
			Position: feedback.Position{Lng: 4.9167, Lat: 52.35},
		},
	}
}

func TestRenderDetails(t *testing.T) {
	var buf bytes.Buffer
	d := sampleDetailed()

	err := RenderDetails(&buf, d, DetailOptions{
		Styles:        NoColorStyles(),
		ViewportWidth: 20,
		Now:           d.CreationDate.Add(3 * time.Hour),
	})

	require.NoError(t, err)
	out := buf.String()
	for _, want := range []string{
		"Rating", "4 ★★★★☆",
		"13:46, 03.02.2014 (3 hours ago)",
		"someone@example.com",
		"https://example.com/page",
		"The button doesn't work",
		"Browser", "Chrome", "32.0", "MacOSX", "Desktop",
		"Screen & Viewport", "viewport 1280x800",
		"Geo location", "Amsterdam", "52.3500, 4.9167",
		MapLink(d.Geo.Position),
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderDetails_EmptyFields(t *testing.T) {
	var buf bytes.Buffer
	d := sampleDetailed()
	d.Email = ""
	d.Comment = ""

	require.NoError(t, RenderDetails(&buf, d, DetailOptions{Styles: NoColorStyles()}))

	assert.Contains(t, buf.String(), "Contact email  -")
	assert.Contains(t, buf.String(), EmptyComment)
}

func TestMapLink(t *testing.T) {
	got := MapLink(feedback.Position{Lng: 4.9167, Lat: 52.35})

	assert.Equal(t, "https://www.openstreetmap.org/?mlat=52.3500&mlon=4.9167#map=12/52.3500/4.9167", got)
}

// =============================================================================
// Failure
// =============================================================================

func TestDescribeFailure(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		title     string
		retryable bool
	}{
		{"network", ferrors.NetworkError("down", nil), "You are facing a Network Error", true},
		{"timeout", ferrors.TimeoutError("timeout of 1000ms exceeded", nil), "You are facing a Timeout issue", true},
		{"server", ferrors.StatusError(500, "http://x"), "You are facing an unexpected Server side Error 500!", true},
		{"client", ferrors.StatusError(404, "http://x"), "You are facing an unexpected Client side Error 404!", false},
		{"decode", ferrors.DecodeError("bad", nil), "You are facing an unexpected Response Body Error!", false},
		{"not found", ferrors.NotFoundError("x", nil), "404", false},
		{"bad endpoint", ferrors.ConfigError("invalid endpoint", nil), "Oops... we broke something...", false},
		{"unknown", fmt.Errorf("boom"), "Something went wrong", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := DescribeFailure(tc.err)

			assert.Equal(t, tc.title, f.Title)
			assert.Equal(t, tc.retryable, f.Retryable)
		})
	}
}

func TestRenderFailure_DecodeShowsPath(t *testing.T) {
	var buf bytes.Buffer
	err := ferrors.DecodeError("invalid response body at items[3].rating: missing field", nil)

	require.NoError(t, RenderFailure(&buf, err, NoColorStyles()))

	assert.Contains(t, buf.String(), "Response Body Error")
	assert.Contains(t, buf.String(), "items[3].rating")
	assert.NotContains(t, buf.String(), "Try again")
}

func TestRenderFailure_RetryHint(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderFailure(&buf, ferrors.TimeoutError("timeout of 1000ms exceeded", nil), NoColorStyles()))

	assert.Contains(t, buf.String(), "timeout of 1000ms exceeded")
	assert.Contains(t, buf.String(), "Try again")
}
