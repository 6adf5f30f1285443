package viewport

import (
	"skald/internal/engine/buffer"
	"skald/internal/grapheme"
	"skald/internal/renderer/layout"
)

// Direction names the scroll intent of an anchor search.
type Direction int

const (
	// DirDown scrolls content up so a target below the window lands
	// on the last row.
	DirDown Direction = iota
	// DirUp scrolls content down so a target above the window lands
	// on the first row.
	DirUp
	// DirRight shifts the horizontal offset so a target right of the
	// window lands at the right edge. Non-wrap mode only.
	DirRight
	// DirLeft shifts the horizontal offset so a target left of the
	// window lands at the left edge. Non-wrap mode only.
	DirLeft
)

func (d Direction) String() string {
	switch d {
	case DirDown:
		return "down"
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	}
	return "unknown"
}

// rowPos identifies one display row: a line and the index of its
// segment. In non-wrap mode seg is always 0.
type rowPos struct {
	line int
	seg  int
}

// Search returns the anchor that brings target into view by scrolling
// in the given direction, moving as little as possible: the target
// lands on the window edge it entered from. If target is already
// visible under the current anchor, Search returns it unchanged.
func Search(src Source, cache *layout.Cache, current Anchor, target buffer.Point, geom Geometry, opts Options, dir Direction) Anchor {
	geom = geom.Clamped()
	opts = opts.Normalized()
	target = clampTarget(src, target)

	vp := Compute(src, cache, current, geom, opts)
	if vp.Visible(target) {
		return vp.Anchor
	}

	switch dir {
	case DirUp, DirDown:
		return searchVertical(src, cache, vp.Anchor, target, geom, opts, dir)
	default:
		return searchHorizontal(src, cache, vp.Anchor, target, geom, opts, dir)
	}
}

// EnsureVisible picks the search direction from the target's position
// relative to the current viewport and returns the adjusted anchor.
// Vertical adjustment runs first, horizontal second (non-wrap only),
// so a target off both axes lands on the nearest corner.
func EnsureVisible(src Source, cache *layout.Cache, current Anchor, target buffer.Point, geom Geometry, opts Options) Anchor {
	geom = geom.Clamped()
	opts = opts.Normalized()
	target = clampTarget(src, target)

	vp := Compute(src, cache, current, geom, opts)
	if vp.Visible(target) {
		return vp.Anchor
	}

	a := vp.Anchor
	switch cmpVertical(src, cache, &vp, target, geom, opts) {
	case -1:
		a = searchVertical(src, cache, a, target, geom, opts, DirUp)
	case 1:
		a = searchVertical(src, cache, a, target, geom, opts, DirDown)
	}

	if !opts.Wrap {
		ix := lineIndex(src, cache, target.Line)
		startCol := ix.CharToColumn(target.Col)
		endCol := targetEndCol(ix, target.Col)
		if startCol < a.LeftCol {
			a = searchHorizontal(src, cache, a, target, geom, opts, DirLeft)
		} else if endCol > a.LeftCol+geom.Width {
			a = searchHorizontal(src, cache, a, target, geom, opts, DirRight)
		}
	}
	return a
}

// clampTarget forces a target onto an existing position, including the
// end-of-line slot.
func clampTarget(src Source, p buffer.Point) buffer.Point {
	last := src.LineCount() - 1
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line > last {
		p.Line = last
	}
	n := grapheme.Count(src.LineText(p.Line))
	if p.Col < 0 {
		p.Col = 0
	}
	if p.Col > n {
		p.Col = n
	}
	return p
}

// cmpVertical reports whether target sits above (-1), within (0), or
// below (+1) the viewport's vertical range.
func cmpVertical(src Source, cache *layout.Cache, vp *Viewport, target buffer.Point, geom Geometry, opts Options) int {
	tp := positionRow(src, cache, target, geom, opts)
	first := rowPos{line: vp.Anchor.Line}
	if opts.Wrap {
		first.seg = segIndexOfChar(src, cache, vp.Anchor.Line, vp.Anchor.Char, geom, opts)
	}
	if rowBefore(tp, first) {
		return -1
	}
	last := first
	for i := 1; i < geom.Height; i++ {
		next, ok := nextRow(src, cache, last, geom, opts)
		if !ok {
			break
		}
		last = next
	}
	if rowBefore(last, tp) {
		return 1
	}
	return 0
}

func rowBefore(a, b rowPos) bool {
	return a.line < b.line || (a.line == b.line && a.seg < b.seg)
}

// searchVertical walks the anchor so target's row lands on the edge
// row the direction names: row 0 for DirUp, row Height-1 for DirDown.
func searchVertical(src Source, cache *layout.Cache, current Anchor, target buffer.Point, geom Geometry, opts Options, dir Direction) Anchor {
	tp := positionRow(src, cache, target, geom, opts)

	steps := 0
	if dir == DirDown {
		steps = geom.Height - 1
	}
	for i := 0; i < steps; i++ {
		prev, ok := prevRow(src, cache, tp, geom, opts)
		if !ok {
			break
		}
		tp = prev
	}

	a := Anchor{Line: tp.line, LeftCol: current.LeftCol}
	if opts.Wrap {
		a.Char = segStartChar(src, cache, tp, geom, opts)
		a.LeftCol = 0
	}
	return a
}

// searchHorizontal shifts LeftCol so the target column sits at the
// window edge the direction names. No-op in wrap mode.
func searchHorizontal(src Source, cache *layout.Cache, current Anchor, target buffer.Point, geom Geometry, opts Options, dir Direction) Anchor {
	if opts.Wrap {
		return current
	}

	ix := lineIndex(src, cache, target.Line)
	a := current
	switch dir {
	case DirLeft:
		a.LeftCol = ix.CharToColumn(target.Col)
	case DirRight:
		a.LeftCol = targetEndCol(ix, target.Col) - geom.Width
	}
	if a.LeftCol < 0 {
		a.LeftCol = 0
	}
	return a
}

// targetEndCol returns the exclusive display column of the target
// cluster. The end-of-line slot occupies one cell.
func targetEndCol(ix *layout.LineIndex, char int) int {
	if char >= ix.CharCount() {
		return ix.Width() + 1
	}
	end := ix.SpanAt(char).End
	if end == ix.SpanAt(char).Start {
		end++
	}
	return end
}

// positionRow returns the display row holding the given position.
func positionRow(src Source, cache *layout.Cache, p buffer.Point, geom Geometry, opts Options) rowPos {
	if !opts.Wrap {
		return rowPos{line: p.Line}
	}
	return rowPos{line: p.Line, seg: segIndexOfChar(src, cache, p.Line, p.Col, geom, opts)}
}

func lineSegments(src Source, cache *layout.Cache, line int, geom Geometry, opts Options) []layout.Segment {
	return lineIndex(src, cache, line).Segments(geom.Width, opts.LineBreak)
}

func segIndexOfChar(src Source, cache *layout.Cache, line, char int, geom Geometry, opts Options) int {
	return layout.SegmentContaining(lineSegments(src, cache, line, geom, opts), char)
}

func segStartChar(src Source, cache *layout.Cache, p rowPos, geom Geometry, opts Options) int {
	segs := lineSegments(src, cache, p.line, geom, opts)
	if p.seg >= len(segs) {
		p.seg = len(segs) - 1
	}
	return segs[p.seg].StartChar
}

// nextRow advances one display row, crossing line boundaries. ok=false
// at the last row of the buffer.
func nextRow(src Source, cache *layout.Cache, p rowPos, geom Geometry, opts Options) (rowPos, bool) {
	if opts.Wrap {
		segs := lineSegments(src, cache, p.line, geom, opts)
		if p.seg+1 < len(segs) {
			return rowPos{line: p.line, seg: p.seg + 1}, true
		}
	}
	if p.line+1 >= src.LineCount() {
		return p, false
	}
	return rowPos{line: p.line + 1}, true
}

// prevRow steps one display row backward. ok=false at the first row of
// the buffer.
func prevRow(src Source, cache *layout.Cache, p rowPos, geom Geometry, opts Options) (rowPos, bool) {
	if p.seg > 0 {
		return rowPos{line: p.line, seg: p.seg - 1}, true
	}
	if p.line == 0 {
		return p, false
	}
	prev := rowPos{line: p.line - 1}
	if opts.Wrap {
		prev.seg = len(lineSegments(src, cache, prev.line, geom, opts)) - 1
	}
	return prev, true
}
