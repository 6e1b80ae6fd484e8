package fragment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fragment is one contiguous slice of the original text.
type Fragment struct {
	// Slice is the substring, with the casing of the original text.
	Slice string `json:"slice"`
	// Matched is true when the slice is part of the fuzzy match.
	Matched bool `json:"matched"`
}

// Fragmentize partitions text into fragments according to pattern.
//
// The second result reports whether pattern matched at all. On no match the
// fragments are nil. On a match, concatenating every Slice yields text
// exactly and adjacent fragments never share the same Matched value.
//
// Characters are compared as runes after case folding. Runs in O(len(text)).
func Fragmentize(pattern, text string) ([]Fragment, bool) {
	// Empty pattern matches trivially but consumes nothing
	if pattern == "" {
		if text == "" {
			return []Fragment{}, true
		}
		return []Fragment{{Slice: text, Matched: false}}, true
	}

	pat := []rune(pattern)
	if text == "" || len(pat) > utf8.RuneCountInString(text) {
		return nil, false
	}
	for k, r := range pat {
		pat[k] = fold(r)
	}

	first, _ := utf8.DecodeRuneInString(text)
	matched := fold(first) == pat[0]

	fragments := make([]Fragment, 0, 4)
	start := 0
	i := 0

	for p := 0; p < len(pat); {
		if i == len(text) {
			// Text exhausted before the pattern was consumed
			return nil, false
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		charMatched := fold(r) == pat[p]
		if charMatched {
			p++
		}

		if charMatched != matched {
			fragments = append(fragments, Fragment{Slice: text[start:i], Matched: matched})
			start = i
			matched = !matched
		}

		i += size
	}

	// The run that consumed the last pattern rune is always a matched one
	fragments = append(fragments, Fragment{Slice: text[start:i], Matched: matched})

	if i < len(text) {
		fragments = append(fragments, Fragment{Slice: text[i:], Matched: false})
	}

	return fragments, true
}

// Matches reports whether pattern fuzzy-matches text.
func Matches(pattern, text string) bool {
	_, ok := Fragmentize(pattern, text)
	return ok
}

// Text joins the slices of fragments back into a single string.
func Text(fragments []Fragment) string {
	var sb strings.Builder
	for _, f := range fragments {
		sb.WriteString(f.Slice)
	}
	return sb.String()
}

// MatchedCount returns the number of runes covered by matched fragments.
func MatchedCount(fragments []Fragment) int {
	n := 0
	for _, f := range fragments {
		if f.Matched {
			n += utf8.RuneCountInString(f.Slice)
		}
	}
	return n
}

// fold maps a rune to its case-insensitive comparison form.
func fold(r rune) rune {
	return unicode.ToLower(unicode.ToUpper(r))
}
