// Package grapheme provides grapheme-cluster segmentation and display-width
// helpers shared by the buffer and layout subsystems.
//
// Three units of measurement appear throughout the editor:
//
//  1. Bytes: the storage unit of Go strings. A single cluster may span
//     many bytes.
//  2. Clusters: user-perceived characters. Cursor columns and all edit
//     positions are cluster indices.
//  3. Display columns: terminal cells. A cluster occupies 0, 1, or 2
//     columns; a tab occupies a position-dependent number of columns.
package grapheme

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns the grapheme clusters of s in order.
func Split(s string) []string {
	if s == "" {
		return nil
	}

	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		out = append(out, cluster)
		s = rest
		state = newState
	}
	return out
}

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// At returns the cluster at the given cluster index, or "" if the index
// is out of bounds.
func At(s string, idx int) string {
	if idx < 0 {
		return ""
	}

	i := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		if i == idx {
			return cluster
		}
		i++
		s = rest
		state = newState
	}
	return ""
}

// ByteOffset converts a cluster index to a byte offset in s.
// An index at or past the end of s returns len(s).
func ByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}

	i := 0
	offset := 0
	state := -1
	for len(s) > 0 {
		_, rest, _, newState := uniseg.StepString(s, state)
		i++
		offset += len(s) - len(rest)
		if i == idx {
			return offset
		}
		s = rest
		state = newState
	}
	return offset
}

// Width returns the display width of a single cluster in terminal cells.
// Tab is not handled here; its width depends on the current column (see
// TabWidth). Combining marks and control characters report zero, narrow
// characters one, wide East-Asian characters two.
func Width(cluster string) int {
	if cluster == "" || cluster == "\t" {
		return 0
	}

	w := runewidth.StringWidth(cluster)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		// runewidth reports some emoji sequences as zero; uniseg
		// knows their cluster width.
		if fallback := uniseg.StringWidth(cluster); fallback > w {
			w = fallback
		}
	}
	if w > 2 {
		w = 2
	}
	return w
}

// TabWidth returns the width of a tab starting at the given display
// column: the distance to the next multiple of tabStop.
func TabWidth(col, tabStop int) int {
	if tabStop < 1 {
		tabStop = 1
	}
	return tabStop - (col % tabStop)
}

// IsWhitespace reports whether a cluster is entirely whitespace.
// Used by word-boundary wrapping and word motions.
func IsWhitespace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsWordRune reports whether r belongs to a word (letter, digit, or
// underscore), matching the motion handlers' word classification.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// FirstRune returns the first rune of a cluster, or utf8.RuneError for
// an empty cluster.
func FirstRune(cluster string) rune {
	for _, r := range cluster {
		return r
	}
	return '�'
}
