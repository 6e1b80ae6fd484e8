package fragment

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// f and m build unmatched and matched fragments for expectations.
func f(s string) Fragment { return Fragment{Slice: s, Matched: false} }
func m(s string) Fragment { return Fragment{Slice: s, Matched: true} }

// =============================================================================
// Boundary behaviour
// =============================================================================

func TestFragmentize_EmptyPatternAndText_ReturnsEmptyMatch(t *testing.T) {
	got, ok := Fragmentize("", "")

	require.True(t, ok)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFragmentize_EmptyPattern_ReturnsSingleUnmatched(t *testing.T) {
	got, ok := Fragmentize("", "input")

	require.True(t, ok)
	assert.Equal(t, []Fragment{f("input")}, got)
}

func TestFragmentize_EmptyText_NoMatch(t *testing.T) {
	got, ok := Fragmentize("pattern", "")

	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestFragmentize_LongerPattern_NoMatch(t *testing.T) {
	got, ok := Fragmentize("pattern pattern", "pattern")

	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestFragmentize_PartialMatch_NoMatch(t *testing.T) {
	got, ok := Fragmentize("pattern", "pat one more")

	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestFragmentize_EqualInput_SingleMatched(t *testing.T) {
	got, ok := Fragmentize("input", "input")

	require.True(t, ok)
	assert.Equal(t, []Fragment{m("input")}, got)
}

func TestFragmentize_EqualIgnoringCase_SingleMatched(t *testing.T) {
	got, ok := Fragmentize("INPUT", "Input")

	require.True(t, ok)
	assert.Equal(t, []Fragment{m("Input")}, got)
}

// =============================================================================
// End-to-end scenarios
// =============================================================================

func TestFragmentize_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    []Fragment
	}{
		{
			name:    "pattern at the beginning",
			pattern: "pattern",
			text:    "pattern no more",
			want:    []Fragment{m("pattern"), f(" no more")},
		},
		{
			name:    "pattern at the end",
			pattern: "pattern",
			text:    "no more pattern",
			want:    []Fragment{f("no more "), m("pattern")},
		},
		{
			name:    "pattern in the middle",
			pattern: "pattern",
			text:    "no pattern more",
			want:    []Fragment{f("no "), m("pattern"), f(" more")},
		},
		{
			name:    "case is ignored",
			pattern: "patTeRN",
			text:    "no PaTtern more",
			want:    []Fragment{f("no "), m("PaTtern"), f(" more")},
		},
		{
			name:    "scattered characters",
			pattern: "pattern",
			text:    "1p2a3t4t5e6r7n8",
			want: []Fragment{
				f("1"), m("p"), f("2"), m("a"), f("3"), m("t"), f("4"), m("t"),
				f("5"), m("e"), f("6"), m("r"), f("7"), m("n"), f("8"),
			},
		},
		{
			name:    "first appearance wins",
			pattern: "pattern",
			text:    "hello papa what is the pattern?",
			want: []Fragment{
				f("hello "), m("pa"), f("pa wha"), m("t"), f(" is "), m("t"),
				f("h"), m("e"), f(" patte"), m("rn"), f("?"),
			},
		},
		{
			name:    "multibyte runes keep byte-exact slices",
			pattern: "wö",
			text:    "Straße wÖrld",
			want:    []Fragment{f("Straße "), m("wÖ"), f("rld")},
		},
		{
			name:    "repeated characters",
			pattern: "aa",
			text:    "baaab",
			want:    []Fragment{f("b"), m("aa"), f("ab")},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Fragmentize(tc.pattern, tc.text)

			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFragmentize_ScatteredCharacters_FifteenFragments(t *testing.T) {
	got, ok := Fragmentize("pattern", "1p2a3t4t5e6r7n8")

	require.True(t, ok)
	assert.Len(t, got, 15)
	assert.Equal(t, f("1"), got[0])
	assert.Equal(t, m("p"), got[1])
	assert.Equal(t, f("8"), got[14])
}

// =============================================================================
// Properties
// =============================================================================

var propertyCases = []struct{ pattern, text string }{
	{"", ""},
	{"", "anything"},
	{"a", "a"},
	{"abc", "aXbXc"},
	{"but", "The button doesn't work"},
	{"button d", "button doenst work"},
	{"ton d", "This page doesn't have any print styling"},
	{"zz", "buzz buzz"},
	{"ÉTÉ", "un été chaud"},
	{"日本", "こんにちは日本語"},
	{"?!", "why?! really?!"},
	{"aaa", "aaaaaaa"},
	{"pattern", "hello papa what is the pattern?"},
	{"xyz", "nothing to see here"},
}

func TestFragmentize_LosslessPartition(t *testing.T) {
	for _, tc := range propertyCases {
		got, ok := Fragmentize(tc.pattern, tc.text)
		if !ok {
			continue
		}
		assert.Equal(t, tc.text, Text(got), "pattern %q text %q", tc.pattern, tc.text)
	}
}

func TestFragmentize_Alternation(t *testing.T) {
	for _, tc := range propertyCases {
		got, ok := Fragmentize(tc.pattern, tc.text)
		if !ok {
			continue
		}
		for i := 1; i < len(got); i++ {
			assert.NotEqual(t, got[i-1].Matched, got[i].Matched,
				"adjacent fragments %d and %d share Matched for %q/%q", i-1, i, tc.pattern, tc.text)
		}
		for _, fr := range got {
			assert.NotEmpty(t, fr.Slice)
		}
	}
}

func TestFragmentize_MonotonicConsumption(t *testing.T) {
	for _, tc := range propertyCases {
		got, ok := Fragmentize(tc.pattern, tc.text)
		if !ok {
			continue
		}
		assert.Equal(t, utf8.RuneCountInString(tc.pattern), MatchedCount(got),
			"pattern %q text %q", tc.pattern, tc.text)
	}
}

func TestFragmentize_CaseInsensitivity(t *testing.T) {
	for _, tc := range propertyCases {
		lower, okLower := Fragmentize(tc.pattern, tc.text)
		upper, okUpper := Fragmentize(strings.ToUpper(tc.pattern), tc.text)

		require.Equal(t, okLower, okUpper, "pattern %q text %q", tc.pattern, tc.text)
		assert.Equal(t, lower, upper, "pattern %q text %q", tc.pattern, tc.text)
	}
}

func TestFragmentize_EmptyPatternPolicy_KeepsEveryText(t *testing.T) {
	for _, tc := range propertyCases {
		got, ok := Fragmentize("", tc.text)

		require.True(t, ok)
		if tc.text == "" {
			assert.Empty(t, got)
			continue
		}
		assert.Equal(t, []Fragment{f(tc.text)}, got)
	}
}

func TestFragmentize_InvalidUTF8_IsTotal(t *testing.T) {
	text := "ab\xffcd"

	got, ok := Fragmentize("bc", text)

	require.True(t, ok)
	assert.Equal(t, text, Text(got))
	assert.Equal(t, []Fragment{f("a"), m("b"), f("\xff"), m("c"), f("d")}, got)
}

// =============================================================================
// Helpers
// =============================================================================

func TestMatches(t *testing.T) {
	assert.True(t, Matches("", ""))
	assert.True(t, Matches("btn", "button"))
	assert.False(t, Matches("nbt", "button"))
}

func TestMatchedCount_CountsRunes(t *testing.T) {
	frags := []Fragment{f("x"), m("日本"), f("y"), m("é")}

	assert.Equal(t, 3, MatchedCount(frags))
}

func TestText_Empty(t *testing.T) {
	assert.Equal(t, "", Text(nil))
}

func BenchmarkFragmentize(b *testing.B) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 20)
	for i := 0; i < b.N; i++ {
		_, _ = Fragmentize("lazy dog", text)
	}
}
