// Package layout provides the display-width index: the per-line mapping
// between grapheme-cluster indices and terminal display columns, plus
// wrap segmentation and a generation-validated cache.
package layout

import (
	"sort"

	"skald/internal/grapheme"
)

// Span is the half-open display-column range [Start, End) occupied by
// one grapheme cluster. Spans for consecutive clusters are contiguous:
// span[i].End == span[i+1].Start.
type Span struct {
	Start int
	End   int
}

// Width returns the number of columns the span covers.
func (s Span) Width() int {
	return s.End - s.Start
}

// Contains reports whether col falls inside the span.
func (s Span) Contains(col int) bool {
	return col >= s.Start && col < s.End
}

// LineIndex maps cluster indices to display columns for a single buffer
// line under a fixed tab stop. It is immutable once built; a mutated
// line gets a fresh index (validated via the line's generation counter
// by Cache).
type LineIndex struct {
	clusters []string
	spans    []Span
	tabStop  int
	width    int
}

// BuildIndex computes the display-width index for a line of text.
// Tab clusters expand to the next multiple of tabStop; zero-width
// clusters occupy empty spans.
func BuildIndex(text string, tabStop int) *LineIndex {
	if tabStop < 1 {
		tabStop = 1
	}

	clusters := grapheme.Split(text)
	spans := make([]Span, len(clusters))

	col := 0
	for i, c := range clusters {
		var w int
		if c == "\t" {
			w = grapheme.TabWidth(col, tabStop)
		} else {
			w = grapheme.Width(c)
		}
		spans[i] = Span{Start: col, End: col + w}
		col += w
	}

	return &LineIndex{
		clusters: clusters,
		spans:    spans,
		tabStop:  tabStop,
		width:    col,
	}
}

// CharCount returns the number of grapheme clusters in the line.
func (ix *LineIndex) CharCount() int {
	return len(ix.clusters)
}

// Width returns the total display width of the line.
func (ix *LineIndex) Width() int {
	return ix.width
}

// TabStop returns the tab stop the index was built with.
func (ix *LineIndex) TabStop() int {
	return ix.tabStop
}

// Cluster returns the cluster text at the given index, or "" if out of
// range.
func (ix *LineIndex) Cluster(i int) string {
	if i < 0 || i >= len(ix.clusters) {
		return ""
	}
	return ix.clusters[i]
}

// SpanAt returns the column span of the cluster at index i.
// Out-of-range indices clamp: negative maps to the zero-width span at
// column 0, past-end maps to the zero-width end-of-line span. Both are
// documented last-legal positions, never a panic.
func (ix *LineIndex) SpanAt(i int) Span {
	if i < 0 || len(ix.spans) == 0 {
		return Span{Start: 0, End: 0}
	}
	if i >= len(ix.spans) {
		return Span{Start: ix.width, End: ix.width}
	}
	return ix.spans[i]
}

// CharToColumn converts a cluster index to the starting display column
// of that cluster. Index CharCount() is legal and returns the total
// width: the end-of-line position where insert mode appends.
func (ix *LineIndex) CharToColumn(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(ix.spans) {
		return ix.width
	}
	return ix.spans[i].Start
}

// ColumnToChar converts a display column to the index of the cluster
// whose span contains it. A column inside a wide cluster's span rounds
// down to that cluster's index. Columns at or past the line width
// return CharCount(), the end-of-line position; negative columns
// return 0.
func (ix *LineIndex) ColumnToChar(col int) int {
	if col < 0 {
		return 0
	}
	if col >= ix.width {
		return len(ix.clusters)
	}

	// Binary search for the first span ending past col. Zero-width
	// spans (combining marks, controls) can never contain a column,
	// so the found span is the visible cluster at col.
	i := sort.Search(len(ix.spans), func(i int) bool {
		return ix.spans[i].End > col
	})
	if i >= len(ix.spans) {
		return len(ix.clusters)
	}
	return i
}

// NextTabStop returns the first tab stop column after col.
func (ix *LineIndex) NextTabStop(col int) int {
	return col + grapheme.TabWidth(col, ix.tabStop)
}

// PrevTabStop returns the last tab stop column at or before col-1, or 0
// when col is within the first stop.
func (ix *LineIndex) PrevTabStop(col int) int {
	if col <= 0 {
		return 0
	}
	if col%ix.tabStop == 0 {
		return col - ix.tabStop
	}
	return (col / ix.tabStop) * ix.tabStop
}
