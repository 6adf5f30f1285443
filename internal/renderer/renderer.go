// Package renderer paints a computed viewport into a backend surface.
// It is a one-way sink: nothing it does feeds back into the viewport
// or the buffer.
package renderer

import (
	"skald/internal/renderer/backend"
	"skald/internal/renderer/core"
	"skald/internal/renderer/layout"
	"skald/internal/renderer/viewport"
)

// Renderer holds the styles painting uses.
type Renderer struct {
	text   core.Style
	filler core.Style
}

// New creates a renderer with default text style and dimmed filler
// markers.
func New() *Renderer {
	filler := core.DefaultStyle()
	filler.Dim = true
	return &Renderer{
		text:   core.DefaultStyle(),
		filler: filler,
	}
}

// Paint writes the viewport's rows into the backend, one cell at a
// time, inside the viewport's own rectangle. Rows past the end of the
// buffer get a filler marker in their first column.
func (r *Renderer) Paint(b backend.Backend, vp viewport.Viewport, src viewport.Source, cache *layout.Cache) {
	for i, row := range vp.Rows {
		y := vp.Geom.Y + i
		if row.Filler {
			r.paintFiller(b, vp, y)
			continue
		}
		r.paintRow(b, vp, src, cache, row, y)
	}
}

func (r *Renderer) paintFiller(b backend.Backend, vp viewport.Viewport, y int) {
	b.SetCell(vp.Geom.X, y, core.Cell{Text: "~", Width: 1, Style: r.filler})
	for x := 1; x < vp.Geom.Width; x++ {
		b.SetCell(vp.Geom.X+x, y, core.EmptyCell())
	}
}

func (r *Renderer) paintRow(b backend.Backend, vp viewport.Viewport, src viewport.Source, cache *layout.Cache, row viewport.Row, y int) {
	ix := cache.Get(row.Line, src.LineText(row.Line), src.LineGen(row.Line))

	left := vp.Anchor.LeftCol
	if vp.Wrap {
		left = row.StartCol
	}

	painted := make([]bool, vp.Geom.Width)
	put := func(x int, cell core.Cell) {
		if x < 0 || x >= vp.Geom.Width {
			return
		}
		b.SetCell(vp.Geom.X+x, y, cell)
		painted[x] = true
	}

	for char := row.StartChar; char < row.EndChar; char++ {
		span := ix.SpanAt(char)
		x := span.Start - left

		switch w := span.Width(); {
		case w == 0:
			// Zero-width cluster, no cell of its own.
		case ix.Cluster(char) == "\t":
			for t := 0; t < w; t++ {
				put(x+t, core.Cell{Text: " ", Width: 1, Style: r.text})
			}
		case w == 2:
			put(x, core.Cell{Text: ix.Cluster(char), Width: 2, Style: r.text})
			put(x+1, core.Continuation())
		default:
			put(x, core.Cell{Text: ix.Cluster(char), Width: 1, Style: r.text})
		}
	}

	for x, done := range painted {
		if !done {
			b.SetCell(vp.Geom.X+x, y, core.EmptyCell())
		}
	}
}
