// Package dashboard turns a fetched feedback list into what the list views
// show: rating exclusion, comment search with highlight fragments, and the
// summary header.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	ferrors "github.com/Aman-CERP/feedlens/internal/errors"
	"github.com/Aman-CERP/feedlens/internal/feedback"
	"github.com/Aman-CERP/feedlens/internal/fragment"
)

// RatingSet is a set of ratings, stored as a bitmask. The zero value is empty.
type RatingSet uint8

// ParseRatingSet parses a comma separated list such as "1,2".
// Blank input yields an empty set.
func ParseRatingSet(s string) (RatingSet, error) {
	var set RatingSet
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || !feedback.Rating(n).Valid() {
			return 0, ferrors.New(ferrors.ErrCodeInvalidRating,
				fmt.Sprintf("invalid rating %q", part), err).
				WithSuggestion("Ratings are whole numbers from 1 to 5, e.g. --exclude-rating 1,2")
		}
		set = set.With(feedback.Rating(n))
	}
	return set, nil
}

// Has reports whether r is in the set.
func (s RatingSet) Has(r feedback.Rating) bool {
	if !r.Valid() {
		return false
	}
	return s&(1<<uint(r)) != 0
}

// With returns the set with r added.
func (s RatingSet) With(r feedback.Rating) RatingSet {
	if !r.Valid() {
		return s
	}
	return s | 1<<uint(r)
}

// Toggle returns the set with r flipped.
func (s RatingSet) Toggle(r feedback.Rating) RatingSet {
	if !r.Valid() {
		return s
	}
	return s ^ 1<<uint(r)
}

// List returns the members in ascending order.
func (s RatingSet) List() []feedback.Rating {
	var out []feedback.Rating
	for _, r := range feedback.Ratings {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// String formats the set the way ParseRatingSet reads it.
func (s RatingSet) String() string {
	parts := make([]string, 0, 5)
	for _, r := range s.List() {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ",")
}

// Criteria selects which feedback items are shown.
type Criteria struct {
	// Search is the fuzzy comment pattern. Empty matches every comment.
	Search string
	// Exclude lists ratings to hide.
	Exclude RatingSet
}

// Item is a feedback item that passed the filter, with the fragments used to
// highlight its comment.
type Item struct {
	feedback.Feedback
	Fragments []fragment.Fragment `json:"fragments"`
}

// FilterMap applies c to items and keeps input order.
// Excluded ratings are dropped before the comment is fragmentized.
func FilterMap(c Criteria, items []feedback.Feedback) []Item {
	out := make([]Item, 0, len(items))
	for _, fb := range items {
		if it, ok := c.match(fb); ok {
			out = append(out, it)
		}
	}
	return out
}

func (c Criteria) match(fb feedback.Feedback) (Item, bool) {
	if c.Exclude.Has(fb.Rating) {
		return Item{}, false
	}
	frags, ok := fragment.Fragmentize(c.Search, fb.Comment)
	if !ok {
		return Item{}, false
	}
	return Item{Feedback: fb, Fragments: frags}, true
}

// FilterMapParallel computes the same result as FilterMap by splitting items
// into contiguous chunks handled by at most workers goroutines.
// workers <= 0 means GOMAXPROCS.
func FilterMapParallel(ctx context.Context, c Criteria, items []feedback.Feedback, workers int) ([]Item, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if len(items) == 0 {
		return []Item{}, nil
	}

	chunkSize := (len(items) + workers - 1) / workers
	chunks := make([][]Item, (len(items)+chunkSize-1)/chunkSize)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for k := range chunks {
		lo := k * chunkSize
		hi := min(lo+chunkSize, len(items))

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			chunks[k] = FilterMap(c, items[lo:hi])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, ch := range chunks {
		total += len(ch)
	}
	out := make([]Item, 0, total)
	for _, ch := range chunks {
		out = append(out, ch...)
	}
	return out, nil
}

// Options tunes Apply.
type Options struct {
	// Workers bounds FilterMapParallel. Zero means GOMAXPROCS.
	Workers int
	// ParallelThreshold is the list size above which filtering runs in parallel.
	// Zero disables the parallel path.
	ParallelThreshold int
}

// Apply filters items, switching to FilterMapParallel for large lists.
func Apply(ctx context.Context, c Criteria, items []feedback.Feedback, opts Options) ([]Item, error) {
	start := time.Now()

	var (
		out []Item
		err error
	)
	parallel := opts.ParallelThreshold > 0 && len(items) > opts.ParallelThreshold
	if parallel {
		out, err = FilterMapParallel(ctx, c, items, opts.Workers)
	} else {
		out = FilterMap(c, items)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("filter_complete",
		slog.String("search", c.Search),
		slog.String("exclude", c.Exclude.String()),
		slog.Int("input", len(items)),
		slog.Int("shown", len(out)),
		slog.Bool("parallel", parallel),
		slog.Duration("duration", time.Since(start)))

	return out, nil
}

// Summary counts shown items for the list header.
type Summary struct {
	Total    int            `json:"total"`
	ByRating map[string]int `json:"by_rating"`
}

// Summarize counts items per rating. Every rating has an entry.
func Summarize(items []Item) Summary {
	s := Summary{Total: len(items), ByRating: make(map[string]int, len(feedback.Ratings))}
	for _, r := range feedback.Ratings {
		s.ByRating[r.String()] = 0
	}
	for _, it := range items {
		s.ByRating[it.Rating.String()]++
	}
	return s
}

// Count returns the number of items with rating r.
func (s Summary) Count(r feedback.Rating) int {
	return s.ByRating[r.String()]
}
