package layout

import "skald/internal/grapheme"

// Segment is one visual row of a wrapped (or truncated) buffer line:
// a cluster range and the display-column range those clusters occupy.
// Column values are absolute within the line, so tab expansion stays
// anchored to the logical line regardless of wrapping.
type Segment struct {
	StartChar int // first cluster index (inclusive)
	EndChar   int // last cluster index (exclusive)
	StartCol  int // display column of StartChar
	EndCol    int // display column after the last cluster
}

// IsEmpty reports whether the segment covers no clusters.
func (s Segment) IsEmpty() bool {
	return s.StartChar >= s.EndChar
}

// Segments partitions the line into visual rows of at most width
// columns for wrap mode.
//
// A cluster that would straddle the row boundary moves entirely to the
// next row. A single cluster wider than the row is placed alone and
// overflows; that is tolerated, never an error. With lineBreak set,
// the split prefers the position after the last whitespace cluster at
// or before the boundary, falling back to the column split when the
// row holds a single unbroken word.
//
// The returned segments concatenate to the whole line: no cluster is
// skipped or duplicated. A line whose last row is exactly full gets an
// empty trailing segment so the end-of-line cursor position remains
// representable.
func (ix *LineIndex) Segments(width int, lineBreak bool) []Segment {
	if width < 1 {
		width = 1
	}

	n := len(ix.clusters)
	if n == 0 {
		return []Segment{{}}
	}

	var segs []Segment
	start := 0
	for start < n {
		end := ix.rowEnd(start, width, lineBreak)
		segs = append(segs, Segment{
			StartChar: start,
			EndChar:   end,
			StartCol:  ix.spans[start].Start,
			EndCol:    ix.spans[end-1].End,
		})
		start = end
	}

	// Reserve the trailing column for the end-of-line position.
	last := segs[len(segs)-1]
	if last.EndCol-last.StartCol >= width {
		segs = append(segs, Segment{
			StartChar: n,
			EndChar:   n,
			StartCol:  ix.width,
			EndCol:    ix.width,
		})
	}

	return segs
}

// rowEnd finds the exclusive cluster index ending the row that starts
// at cluster index start.
func (ix *LineIndex) rowEnd(start, width int, lineBreak bool) int {
	n := len(ix.clusters)
	limit := ix.spans[start].Start + width

	// Zero-width clusters at the boundary have End == Start <= limit,
	// so this also keeps them on the row with their base.
	i := start
	for i < n && ix.spans[i].End <= limit {
		i++
	}

	if i >= n {
		return n
	}
	if i == start {
		// Single cluster wider than the row: place it alone.
		return start + 1
	}

	if lineBreak {
		if b := ix.breakAfterWhitespace(start, i); b > start {
			return b
		}
	}
	return i
}

// breakAfterWhitespace returns the index just after the last
// whitespace cluster in (start, hard), or start if the row holds no
// whitespace to break at.
func (ix *LineIndex) breakAfterWhitespace(start, hard int) int {
	for i := hard - 1; i > start; i-- {
		if grapheme.IsWhitespace(ix.clusters[i]) {
			return i + 1
		}
	}
	return start
}

// SegmentContaining returns the index of the segment whose cluster
// range contains char. The end-of-line position belongs to the final
// segment. Out-of-range values clamp to the nearest segment.
func SegmentContaining(segs []Segment, char int) int {
	for i, s := range segs {
		if char < s.EndChar {
			return i
		}
	}
	if len(segs) == 0 {
		return 0
	}
	return len(segs) - 1
}

// Truncate computes the visible cluster range for non-wrap mode: the
// clusters of the line whose spans fit entirely inside the window
// [leftCol, leftCol+width). A wide cluster straddling either edge is
// excluded rather than half-painted.
func (ix *LineIndex) Truncate(leftCol, width int) Segment {
	if leftCol < 0 {
		leftCol = 0
	}
	rightCol := leftCol + width

	n := len(ix.clusters)
	start := 0
	for start < n && ix.spans[start].Start < leftCol {
		start++
	}
	// Zero-width clusters at the right edge have End == Start, so the
	// End bound keeps them with their base.
	end := start
	for end < n && ix.spans[end].End <= rightCol {
		end++
	}

	if start >= end {
		return Segment{StartChar: start, EndChar: start, StartCol: leftCol, EndCol: leftCol}
	}
	return Segment{
		StartChar: start,
		EndChar:   end,
		StartCol:  ix.spans[start].Start,
		EndCol:    ix.spans[end-1].End,
	}
}
