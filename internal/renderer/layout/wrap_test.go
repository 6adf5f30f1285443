package layout

import (
	"strings"
	"testing"
)

// checkCoverage verifies the wrap-coverage property: segments in row
// order reconstruct the full line with no cluster skipped or repeated.
func checkCoverage(t *testing.T, ix *LineIndex, segs []Segment) {
	t.Helper()

	next := 0
	for i, s := range segs {
		if s.StartChar != next {
			t.Errorf("segment %d starts at cluster %d, want %d", i, s.StartChar, next)
		}
		if s.EndChar < s.StartChar {
			t.Errorf("segment %d has negative range [%d,%d)", i, s.StartChar, s.EndChar)
		}
		next = s.EndChar
	}
	if next != ix.CharCount() {
		t.Errorf("segments cover %d clusters, line has %d", next, ix.CharCount())
	}
}

func TestSegmentsNarrow(t *testing.T) {
	ix := BuildIndex("abcdefghij", 8) // 10 narrow clusters
	segs := ix.Segments(4, false)

	checkCoverage(t, ix, segs)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if segs[0].EndChar != 4 || segs[1].EndChar != 8 || segs[2].EndChar != 10 {
		t.Errorf("unexpected split points: %+v", segs)
	}
}

func TestSegmentsWideClusterNotSplit(t *testing.T) {
	// Widths 1,1,2,1,2: cumulative 1,2,4,5,7. With width 5 the
	// first row must end after the fourth cluster (cumulative 5) and
	// the fifth (wide) cluster starts row two.
	ix := BuildIndex("ab中c日", 8)
	segs := ix.Segments(5, false)

	checkCoverage(t, ix, segs)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].EndChar != 4 {
		t.Errorf("row 1 ends at cluster %d, want 4", segs[0].EndChar)
	}
	if segs[0].EndCol-segs[0].StartCol != 5 {
		t.Errorf("row 1 spans %d columns, want 5", segs[0].EndCol-segs[0].StartCol)
	}
	if segs[1].StartChar != 4 {
		t.Errorf("row 2 starts at cluster %d, want 4", segs[1].StartChar)
	}
}

func TestSegmentsWideStraddleMovesToNextRow(t *testing.T) {
	// Width 3 window, clusters 1,1,2: the wide cluster would straddle
	// the row boundary, so it moves wholly to row two.
	ix := BuildIndex("ab中", 8)
	segs := ix.Segments(3, false)

	checkCoverage(t, ix, segs)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].EndChar != 2 {
		t.Errorf("row 1 ends at cluster %d, want 2", segs[0].EndChar)
	}
}

func TestSegmentsOverflowingCluster(t *testing.T) {
	// A wide cluster in a width-1 window overflows alone; never an
	// error, never an infinite loop.
	ix := BuildIndex("中日", 8)
	segs := ix.Segments(1, false)

	checkCoverage(t, ix, segs)
	if len(segs) < 2 {
		t.Fatalf("expected one overflowing cluster per row, got %+v", segs)
	}
	if segs[0].EndChar != 1 {
		t.Errorf("row 1 holds clusters [%d,%d), want [0,1)", segs[0].StartChar, segs[0].EndChar)
	}
}

func TestSegmentsZeroWidthAtRowBoundary(t *testing.T) {
	// A zero-width cluster sitting exactly on the row limit stays on
	// that row. Spans: a,b,c,d then ZWSP [4,4), e [4,5), f [5,6).
	ix := BuildIndex("abcd​ef", 8)
	segs := ix.Segments(4, false)

	checkCoverage(t, ix, segs)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].EndChar != 5 {
		t.Errorf("row 1 ends at cluster %d, want 5 (zero-width rides the row)", segs[0].EndChar)
	}

	if seg := ix.Truncate(0, 4); seg.EndChar != 5 {
		t.Errorf("truncated range ends at cluster %d, want 5", seg.EndChar)
	}
}

func TestSegmentsLineBreakAtWord(t *testing.T) {
	ix := BuildIndex("hello world", 8)
	segs := ix.Segments(8, true)

	checkCoverage(t, ix, segs)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(segs), segs)
	}
	// Break falls after the space: "hello " / "world".
	if segs[0].EndChar != 6 {
		t.Errorf("row 1 ends at cluster %d, want 6 (after the space)", segs[0].EndChar)
	}
	if segs[1].StartChar != 6 {
		t.Errorf("row 2 starts at cluster %d, want 6", segs[1].StartChar)
	}
}

func TestSegmentsLineBreakLongWordFallsBack(t *testing.T) {
	// A single word longer than the window falls back to the column
	// split.
	ix := BuildIndex("abcdefghijklmno", 8)
	segs := ix.Segments(5, true)

	checkCoverage(t, ix, segs)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if segs[0].EndChar != 5 {
		t.Errorf("row 1 ends at cluster %d, want 5", segs[0].EndChar)
	}
}

func TestSegmentsCoverageProperty(t *testing.T) {
	lines := []string{
		"",
		"short",
		"the quick brown fox jumps over the lazy dog",
		"no_spaces_in_this_very_long_identifier_at_all",
		"tabs\there\tand\tthere",
		"日本語のテキスト mixed with ascii",
		strings.Repeat("ab 中", 20),
	}
	widths := []int{1, 2, 5, 10, 80}

	for _, text := range lines {
		ix := BuildIndex(text, 8)
		for _, w := range widths {
			for _, lineBreak := range []bool{false, true} {
				segs := ix.Segments(w, lineBreak)
				if len(segs) == 0 {
					t.Errorf("%q width %d: no segments", text, w)
					continue
				}
				checkCoverage(t, ix, segs)
			}
		}
	}
}

func TestSegmentsExactFitReservesEOLRow(t *testing.T) {
	// Line exactly fills its rows: an empty trailing segment keeps the
	// end-of-line cursor position representable.
	ix := BuildIndex("abcd", 8)
	segs := ix.Segments(4, false)

	checkCoverage(t, ix, segs)
	if len(segs) != 2 {
		t.Fatalf("expected full row plus EOL segment, got %+v", segs)
	}
	if !segs[1].IsEmpty() {
		t.Errorf("trailing segment should be empty, got %+v", segs[1])
	}
	if segs[1].StartChar != 4 {
		t.Errorf("EOL segment at cluster %d, want 4", segs[1].StartChar)
	}
}

func TestSegmentsEmptyLine(t *testing.T) {
	ix := BuildIndex("", 8)
	segs := ix.Segments(10, true)

	if len(segs) != 1 {
		t.Fatalf("empty line should produce one segment, got %d", len(segs))
	}
	if !segs[0].IsEmpty() {
		t.Errorf("empty line segment should be empty, got %+v", segs[0])
	}
}

func TestSegmentContaining(t *testing.T) {
	ix := BuildIndex("abcdefghij", 8)
	segs := ix.Segments(4, false)

	tests := []struct {
		char int
		want int
	}{
		{0, 0},
		{3, 0},
		{4, 1},
		{7, 1},
		{8, 2},
		{9, 2},
		{10, 2}, // end-of-line belongs to the final segment
		{99, 2},
	}

	for _, tt := range tests {
		if got := SegmentContaining(segs, tt.char); got != tt.want {
			t.Errorf("SegmentContaining(%d) = %d, want %d", tt.char, got, tt.want)
		}
	}
}

func TestTruncateNoWrap(t *testing.T) {
	// Window width 10 over a 15-char line anchored at column 0 shows
	// clusters 0-9 only.
	ix := BuildIndex("abcdefghijklmno", 8)
	seg := ix.Truncate(0, 10)

	if seg.StartChar != 0 || seg.EndChar != 10 {
		t.Errorf("visible range [%d,%d), want [0,10)", seg.StartChar, seg.EndChar)
	}
}

func TestTruncateScrolled(t *testing.T) {
	ix := BuildIndex("abcdefghijklmno", 8)
	seg := ix.Truncate(5, 10)

	if seg.StartChar != 5 || seg.EndChar != 15 {
		t.Errorf("visible range [%d,%d), want [5,15)", seg.StartChar, seg.EndChar)
	}
}

func TestTruncateWideAtEdges(t *testing.T) {
	// Wide cluster straddling the left edge is excluded, not half
	// painted. Spans: a[0,1) wide[1,3) b[3,4).
	ix := BuildIndex("a中b", 8)

	seg := ix.Truncate(2, 4)
	if seg.StartChar != 2 {
		t.Errorf("left-straddling wide cluster should be skipped; start = %d, want 2", seg.StartChar)
	}

	// Wide cluster straddling the right edge is excluded too.
	ix = BuildIndex("ab中", 8)
	seg = ix.Truncate(0, 3)
	if seg.EndChar != 2 {
		t.Errorf("right-straddling wide cluster should be cut; end = %d, want 2", seg.EndChar)
	}
}

func TestTruncateBeyondLine(t *testing.T) {
	ix := BuildIndex("ab", 8)
	seg := ix.Truncate(10, 5)

	if !seg.IsEmpty() {
		t.Errorf("window past end of line should be empty, got %+v", seg)
	}
}
