package viewport

import (
	"skald/internal/engine/buffer"
	"skald/internal/renderer/layout"
)

// Anchor identifies the buffer position mapped to the window's
// top-left cell.
//
// In wrap mode Char is the cluster starting the first visible row
// (Compute normalizes it to its segment start) and LeftCol is unused.
// In non-wrap mode LeftCol is the horizontal scroll offset shared by
// every row and Char is unused.
type Anchor struct {
	Line    int
	Char    int
	LeftCol int
}

// Row describes one terminal row of the viewport: the cluster range of
// one buffer line it displays and the display-column range those
// clusters occupy within the line.
type Row struct {
	Line      int
	StartChar int
	EndChar   int
	StartCol  int
	EndCol    int

	// Continuation marks a wrapped row that does not start its line.
	Continuation bool

	// LastOfLine marks the row holding the line's end: the row where
	// the end-of-line cursor slot lives.
	LastOfLine bool

	// Filler marks a row past the end of the buffer.
	Filler bool
}

// Viewport is the computed mapping of buffer content onto the window.
// It is a derived value: recomputed whenever the anchor, geometry,
// options, or underlying lines change, never persisted.
type Viewport struct {
	Anchor Anchor
	Geom   Geometry
	Wrap   bool
	Rows   []Row
}

// Compute lays out the viewport forward from the anchor: exactly
// geom.Height rows, padded with filler rows past end of buffer. It is
// a pure function of its inputs; cache is a memoization detail keyed
// by line generations.
func Compute(src Source, cache *layout.Cache, anchor Anchor, geom Geometry, opts Options) Viewport {
	geom = geom.Clamped()
	opts = opts.Normalized()
	cache.SetTabStop(opts.TabStop)

	anchor = clampAnchor(src, anchor)

	vp := Viewport{
		Anchor: anchor,
		Geom:   geom,
		Wrap:   opts.Wrap,
		Rows:   make([]Row, 0, geom.Height),
	}

	if opts.Wrap {
		computeWrapped(&vp, src, cache, geom, opts)
	} else {
		computePlain(&vp, src, cache, geom)
	}

	return vp
}

// clampAnchor forces the anchor onto an existing position.
func clampAnchor(src Source, a Anchor) Anchor {
	last := src.LineCount() - 1
	if a.Line < 0 {
		a.Line = 0
	}
	if a.Line > last {
		a.Line = last
	}
	if a.Char < 0 {
		a.Char = 0
	}
	if n := len(src.LineText(a.Line)); a.Char > n {
		// Cluster counts are bounded by byte length; precise
		// clamping happens against the segment list below.
		a.Char = n
	}
	if a.LeftCol < 0 {
		a.LeftCol = 0
	}
	return a
}

// computeWrapped fills rows in wrap mode, starting at the segment of
// the anchor line containing anchor.Char.
func computeWrapped(vp *Viewport, src Source, cache *layout.Cache, geom Geometry, opts Options) {
	line := vp.Anchor.Line
	ix := lineIndex(src, cache, line)
	segs := ix.Segments(geom.Width, opts.LineBreak)
	seg := layout.SegmentContaining(segs, vp.Anchor.Char)

	// Normalize the anchor to its segment start so callers can hand
	// in any cluster of the row.
	vp.Anchor.Char = segs[seg].StartChar
	vp.Anchor.LeftCol = 0

	for len(vp.Rows) < geom.Height {
		if line >= src.LineCount() {
			vp.Rows = append(vp.Rows, Row{Line: line, Filler: true})
			line++
			continue
		}

		s := segs[seg]
		vp.Rows = append(vp.Rows, Row{
			Line:         line,
			StartChar:    s.StartChar,
			EndChar:      s.EndChar,
			StartCol:     s.StartCol,
			EndCol:       s.EndCol,
			Continuation: seg > 0,
			LastOfLine:   seg == len(segs)-1,
		})

		seg++
		if seg >= len(segs) {
			line++
			seg = 0
			if line < src.LineCount() {
				ix = lineIndex(src, cache, line)
				segs = ix.Segments(geom.Width, opts.LineBreak)
			}
		}
	}
}

// computePlain fills rows in non-wrap mode: one buffer line per row,
// truncated against the shared horizontal scroll offset.
func computePlain(vp *Viewport, src Source, cache *layout.Cache, geom Geometry) {
	vp.Anchor.Char = 0

	for r := 0; r < geom.Height; r++ {
		line := vp.Anchor.Line + r
		if line >= src.LineCount() {
			vp.Rows = append(vp.Rows, Row{Line: line, Filler: true})
			continue
		}

		ix := lineIndex(src, cache, line)
		seg := ix.Truncate(vp.Anchor.LeftCol, geom.Width)
		vp.Rows = append(vp.Rows, Row{
			Line:      line,
			StartChar: seg.StartChar,
			EndChar:   seg.EndChar,
			StartCol:  seg.StartCol,
			EndCol:    seg.EndCol,
			// A window scrolled wholly past the line leaves the
			// end-of-line slot off screen to the left.
			LastOfLine: seg.EndChar == ix.CharCount() && ix.Width() >= vp.Anchor.LeftCol,
		})
	}
}

// lineIndex fetches the display-width index for a line through the
// generation-validated cache.
func lineIndex(src Source, cache *layout.Cache, line int) *layout.LineIndex {
	return cache.Get(line, src.LineText(line), src.LineGen(line))
}

// rowLeft returns the display column mapped to the row's first window
// cell.
func (v *Viewport) rowLeft(r Row) int {
	if v.Wrap {
		return r.StartCol
	}
	return v.Anchor.LeftCol
}

// RowForPosition returns the index of the row displaying the given
// buffer position, or ok=false when the position is outside the
// viewport. The end-of-line position counts as visible only on its
// line's last row and only when its reserved column fits the window.
func (v *Viewport) RowForPosition(p buffer.Point) (int, bool) {
	for i, row := range v.Rows {
		if row.Filler || row.Line != p.Line {
			continue
		}
		if p.Col >= row.StartChar && p.Col < row.EndChar {
			return i, true
		}
		if p.Col == row.EndChar && row.LastOfLine {
			if row.EndCol-v.rowLeft(row) < v.Geom.Width {
				return i, true
			}
		}
	}
	return 0, false
}

// Visible reports whether the given buffer position is displayed.
func (v *Viewport) Visible(p buffer.Point) bool {
	_, ok := v.RowForPosition(p)
	return ok
}

// FirstLine returns the first visible buffer line.
func (v *Viewport) FirstLine() int {
	return v.Anchor.Line
}

// LastLine returns the last non-filler buffer line, or the anchor line
// when the window shows nothing but filler.
func (v *Viewport) LastLine() int {
	last := v.Anchor.Line
	for _, row := range v.Rows {
		if !row.Filler {
			last = row.Line
		}
	}
	return last
}

// ScreenPosition converts a buffer position to window-relative (row,
// col) coordinates. ok=false when the position is not visible.
func (v *Viewport) ScreenPosition(src Source, cache *layout.Cache, p buffer.Point) (row, col int, ok bool) {
	r, ok := v.RowForPosition(p)
	if !ok {
		return 0, 0, false
	}

	ix := lineIndex(src, cache, p.Line)
	return r, ix.CharToColumn(p.Col) - v.rowLeft(v.Rows[r]), true
}

// BufferPosition converts window-relative (row, col) coordinates to
// the buffer position displayed there, clamping into the row's range.
// Used for mouse positioning; a click inside a wide cluster rounds
// down to the cluster start.
func (v *Viewport) BufferPosition(src Source, cache *layout.Cache, row, col int) buffer.Point {
	if len(v.Rows) == 0 {
		return buffer.Point{}
	}
	if row < 0 {
		row = 0
	}
	if row >= len(v.Rows) {
		row = len(v.Rows) - 1
	}

	r := v.Rows[row]
	for r.Filler && row > 0 {
		row--
		r = v.Rows[row]
	}
	if r.Filler {
		return buffer.Point{}
	}

	ix := lineIndex(src, cache, r.Line)
	char := ix.ColumnToChar(v.rowLeft(r) + col)
	if char < r.StartChar {
		char = r.StartChar
	}
	if char > r.EndChar {
		char = r.EndChar
	}
	return buffer.Point{Line: r.Line, Col: char}
}
