package renderer

import (
	"testing"

	"skald/internal/renderer/backend"
	"skald/internal/renderer/layout"
	"skald/internal/renderer/viewport"
)

type sliceSource []string

func (s sliceSource) LineCount() int        { return len(s) }
func (s sliceSource) LineText(i int) string { return s[i] }
func (s sliceSource) LineGen(i int) uint64  { return uint64(i) + 1 }

func paint(t *testing.T, src sliceSource, anchor viewport.Anchor, geom viewport.Geometry, opts viewport.Options) *backend.ScreenBuffer {
	t.Helper()
	cache := layout.NewCache(opts.TabStop, 64)
	vp := viewport.Compute(src, cache, anchor, geom, opts)
	sb := backend.NewScreenBuffer(geom.X+geom.Width, geom.Y+geom.Height)
	New().Paint(sb, vp, src, cache)
	return sb
}

func TestPaintPlainLines(t *testing.T) {
	src := sliceSource{"hello", "world"}
	sb := paint(t, src, viewport.Anchor{}, viewport.Geometry{Width: 10, Height: 4}, viewport.DefaultOptions())

	want := []string{"hello", "world", "~", "~"}
	for y, w := range want {
		if got := sb.Row(y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
}

func TestPaintWrappedLine(t *testing.T) {
	src := sliceSource{"abcdefghij"}
	sb := paint(t, src, viewport.Anchor{}, viewport.Geometry{Width: 4, Height: 3}, viewport.DefaultOptions())

	want := []string{"abcd", "efgh", "ij"}
	for y, w := range want {
		if got := sb.Row(y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
}

func TestPaintHorizontalScroll(t *testing.T) {
	src := sliceSource{"0123456789"}
	opts := viewport.DefaultOptions()
	opts.Wrap = false
	sb := paint(t, src, viewport.Anchor{LeftCol: 3}, viewport.Geometry{Width: 4, Height: 1}, opts)

	if got := sb.Row(0); got != "3456" {
		t.Errorf("row 0 = %q, want %q", got, "3456")
	}
}

func TestPaintTabsAsSpaces(t *testing.T) {
	src := sliceSource{"a\tb"}
	opts := viewport.DefaultOptions()
	opts.TabStop = 4
	sb := paint(t, src, viewport.Anchor{}, viewport.Geometry{Width: 8, Height: 1}, opts)

	if got := sb.Row(0); got != "a   b" {
		t.Errorf("row 0 = %q, want %q", got, "a   b")
	}
}

func TestPaintWideClusterContinuation(t *testing.T) {
	src := sliceSource{"中X"}
	sb := paint(t, src, viewport.Anchor{}, viewport.Geometry{Width: 6, Height: 1}, viewport.DefaultOptions())

	if got := sb.Cell(0, 0).Text; got != "中" {
		t.Errorf("cell 0 = %q, want wide cluster", got)
	}
	if !sb.Cell(1, 0).IsContinuation() {
		t.Error("cell 1 is not a continuation cell")
	}
	if got := sb.Cell(2, 0).Text; got != "X" {
		t.Errorf("cell 2 = %q, want %q", got, "X")
	}
}

func TestPaintRespectsOrigin(t *testing.T) {
	src := sliceSource{"hi"}
	sb := paint(t, src, viewport.Anchor{}, viewport.Geometry{X: 3, Y: 2, Width: 5, Height: 1}, viewport.DefaultOptions())

	if got := sb.Cell(3, 2).Text; got != "h" {
		t.Errorf("cell at origin = %q, want %q", got, "h")
	}
	if got := sb.Cell(0, 0).Text; got != " " {
		t.Errorf("cell outside viewport = %q, want blank", got)
	}
}

func TestPaintCombiningCluster(t *testing.T) {
	// e + combining acute is one cluster in one cell.
	src := sliceSource{"éx"}
	sb := paint(t, src, viewport.Anchor{}, viewport.Geometry{Width: 4, Height: 1}, viewport.DefaultOptions())

	if got := sb.Cell(0, 0).Text; got != "é" {
		t.Errorf("cell 0 = %q, want combined cluster", got)
	}
	if got := sb.Cell(1, 0).Text; got != "x" {
		t.Errorf("cell 1 = %q, want %q", got, "x")
	}
}
