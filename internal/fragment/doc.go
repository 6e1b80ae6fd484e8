// Package fragment splits feedback text into matched and unmatched slices
// for a fuzzy search pattern.
//
// A pattern matches a text when its characters appear in the text in order,
// compared case-insensitively. The scan is a single left-to-right pass that
// commits to the first complete match; it never backtracks to look for a
// tighter window.
//
// Usage:
//
//	fragments, ok := fragment.Fragmentize("but", "Button doesn't work")
//	if !ok {
//	    // exclude the item
//	}
//	for _, f := range fragments {
//	    if f.Matched {
//	        // emphasize f.Slice
//	    }
//	}
//
// An empty pattern always matches and produces a single unmatched fragment,
// so an empty search box keeps every item and highlights nothing.
package fragment
