package buffer

import (
	"strings"

	"skald/internal/grapheme"
)

// Snapshot is a read-only view of a buffer at one revision. It never
// changes after creation, so it is safe to read from any goroutine
// without locking. The viewport calculator operates exclusively on
// snapshots.
type Snapshot struct {
	lines      []string
	gens       []uint64
	revision   RevisionID
	lineEnding LineEnding
}

// Revision returns the revision the snapshot was taken at.
func (s *Snapshot) Revision() RevisionID {
	return s.revision
}

// LineEnding returns the snapshot's line ending style.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// LineCount returns the number of lines; always at least 1.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// LineText returns the text of a line without its ending, or "" for an
// out-of-range index.
func (s *Snapshot) LineText(line int) string {
	if line < 0 || line >= len(s.lines) {
		return ""
	}
	return s.lines[line]
}

// LineGen returns the generation the line had when the snapshot was
// taken, or 0 for an out-of-range index.
func (s *Snapshot) LineGen(line int) uint64 {
	if line < 0 || line >= len(s.gens) {
		return 0
	}
	return s.gens[line]
}

// LineLen returns the number of grapheme clusters in a line.
func (s *Snapshot) LineLen(line int) int {
	return grapheme.Count(s.LineText(line))
}

// Text serializes the snapshot using its line ending style.
func (s *Snapshot) Text() string {
	return strings.Join(s.lines, s.lineEnding.Sequence())
}

// Clamp returns the nearest valid position to p within the snapshot.
func (s *Snapshot) Clamp(p Point) Point {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(s.lines) {
		p.Line = len(s.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if max := grapheme.Count(s.lines[p.Line]); p.Col > max {
		p.Col = max
	}
	return p
}
