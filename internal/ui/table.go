package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Aman-CERP/feedlens/internal/dashboard"
	"github.com/Aman-CERP/feedlens/internal/feedback"
)

// Layout defaults, in terminal cells.
const (
	DefaultCommentWidth  = 60
	DefaultViewportWidth = 48
)

// NoData is printed when the filtered list is empty.
const NoData = "No Data"

// RatingMark renders a rating as its number followed by stars.
func RatingMark(r feedback.Rating, styles Styles) string {
	if !r.Valid() {
		return styles.Dim.Render("?")
	}
	stars := strings.Repeat("★", int(r)) + strings.Repeat("☆", int(feedback.Five-r))
	return styles.Rating(r).Render(r.String() + " " + stars)
}

// TableOptions controls RenderTable.
type TableOptions struct {
	Styles       Styles
	CommentWidth int
}

// RenderTable writes the feedback list as a table with rating, highlighted
// comment, browser, device and platform columns.
func RenderTable(w io.Writer, items []dashboard.Item, opts TableOptions) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, opts.Styles.Dim.Render(NoData))
		return err
	}

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			RatingMark(it.Rating, opts.Styles),
			Highlight(Truncate(it.Fragments, opts.CommentWidth), opts.Styles),
			browserLabel(it.Browser),
			it.Browser.Device,
			it.Browser.Platform,
		})
	}

	header := opts.Styles.Header
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(opts.Styles.Dim).
		Headers("RATING", "COMMENT", "BROWSER", "DEVICE", "PLATFORM").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return cell
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// RenderSummary writes the one-line count header shown above the table.
func RenderSummary(w io.Writer, s dashboard.Summary, fetched int, styles Styles) error {
	parts := make([]string, 0, len(feedback.Ratings))
	for _, r := range feedback.Ratings {
		parts = append(parts, fmt.Sprintf("%s:%d", styles.Rating(r).Render(r.String()), s.Count(r)))
	}
	_, err := fmt.Fprintf(w, "%s %d of %d  %s\n",
		styles.Title.Render("Feedback"), s.Total, fetched, strings.Join(parts, " "))
	return err
}

func browserLabel(b feedback.Browser) string {
	if b.Version == "" {
		return b.Name
	}
	return b.Name + " " + b.Version
}
