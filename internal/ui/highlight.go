package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Aman-CERP/feedlens/internal/fragment"
)

// EmptyComment is shown in place of a comment with no text.
const EmptyComment = "Empty comment"

// ellipsis marks a truncated comment.
const ellipsis = "…"

// Highlight renders fragments in order, applying styles.Matched to matched
// slices. Nothing is inserted between fragments.
func Highlight(fragments []fragment.Fragment, styles Styles) string {
	if len(fragments) == 0 {
		return styles.Empty.Render(EmptyComment)
	}

	var sb strings.Builder
	for _, f := range fragments {
		if f.Matched {
			sb.WriteString(styles.Matched.Render(f.Slice))
		} else {
			sb.WriteString(f.Slice)
		}
	}
	return sb.String()
}

// commentFragments highlights comment with search, falling back to a single
// unmatched fragment when search does not match.
func commentFragments(search, comment string) []fragment.Fragment {
	if frags, ok := fragment.Fragmentize(search, comment); ok {
		return frags
	}
	frags, _ := fragment.Fragmentize("", comment)
	return frags
}

// Truncate cuts fragments to at most width display cells. When anything is
// cut, the last cell becomes an unmatched ellipsis. Line breaks are flattened
// to spaces so a comment fits in one table row. width <= 0 disables cutting.
func Truncate(fragments []fragment.Fragment, width int) []fragment.Fragment {
	out := make([]fragment.Fragment, 0, len(fragments))
	total := 0
	for _, f := range fragments {
		slice := flatten(f.Slice)
		total += runewidth.StringWidth(slice)
		out = append(out, fragment.Fragment{Slice: slice, Matched: f.Matched})
	}
	if width <= 0 || total <= width {
		return out
	}

	// Keep room for the ellipsis
	room := width - runewidth.StringWidth(ellipsis)
	cut := make([]fragment.Fragment, 0, len(out))
	used := 0
	for _, f := range out {
		if used >= room {
			break
		}
		w := runewidth.StringWidth(f.Slice)
		if used+w <= room {
			cut = append(cut, f)
			used += w
			continue
		}
		if head := runewidth.Truncate(f.Slice, room-used, ""); head != "" {
			cut = append(cut, fragment.Fragment{Slice: head, Matched: f.Matched})
		}
		break
	}
	return appendUnmatched(cut, ellipsis)
}

// appendUnmatched adds s as unmatched text, merging with a trailing unmatched
// fragment so the result keeps alternating.
func appendUnmatched(frags []fragment.Fragment, s string) []fragment.Fragment {
	if n := len(frags); n > 0 && !frags[n-1].Matched {
		frags[n-1].Slice += s
		return frags
	}
	return append(frags, fragment.Fragment{Slice: s})
}

var flattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func flatten(s string) string {
	return flattener.Replace(s)
}
