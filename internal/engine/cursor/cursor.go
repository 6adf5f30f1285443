// Package cursor provides the cursor value type: a buffer position, a
// sticky desired column, and the editing-mode tag that decides the
// end-of-line boundary rule.
package cursor

import (
	"fmt"

	"skald/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Mode is the editing mode carried on the cursor. It changes the
// end-of-line boundary: insert mode may sit one position past the last
// cluster (the append slot), normal mode may not.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeInsert
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "insert"
	default:
		return "normal"
	}
}

// NoDesiredCol marks an unset sticky column.
const NoDesiredCol = -1

// Cursor is an immutable value type. Motions and edits derive new
// cursors rather than mutating in place.
type Cursor struct {
	pos     Point
	desired int
	mode    Mode
}

// New creates a normal-mode cursor at the origin.
func New() Cursor {
	return Cursor{desired: NoDesiredCol}
}

// At creates a normal-mode cursor at the given position.
func At(p Point) Cursor {
	return Cursor{pos: p, desired: NoDesiredCol}
}

// Pos returns the cursor's buffer position.
func (c Cursor) Pos() Point {
	return c.pos
}

// Mode returns the editing-mode tag.
func (c Cursor) Mode() Mode {
	return c.mode
}

// DesiredCol returns the sticky display column remembered across
// vertical motion, or NoDesiredCol when unset.
func (c Cursor) DesiredCol() int {
	return c.desired
}

// MoveTo returns a cursor at p with the sticky column cleared.
// Horizontal motions use this so the next vertical motion starts fresh.
func (c Cursor) MoveTo(p Point) Cursor {
	c.pos = p
	c.desired = NoDesiredCol
	return c
}

// MoveToSticky returns a cursor at p that remembers desired as its
// sticky column. Vertical motions use this to restore the column on
// longer lines.
func (c Cursor) MoveToSticky(p Point, desired int) Cursor {
	c.pos = p
	c.desired = desired
	return c
}

// WithMode returns a cursor with the given mode tag. It does not clamp;
// call ClampToLine with the current line length after a mode change.
func (c Cursor) WithMode(m Mode) Cursor {
	c.mode = m
	return c
}

// MaxCol returns the largest legal column on a line of the given
// cluster length under mode m: the length itself in insert mode (the
// append slot), one less in normal mode (or 0 on an empty line).
func MaxCol(m Mode, lineLen int) int {
	if m == ModeInsert || lineLen == 0 {
		return lineLen
	}
	return lineLen - 1
}

// ClampToLine returns a cursor whose column obeys the mode's boundary
// rule for a line of the given cluster length.
func (c Cursor) ClampToLine(lineLen int) Cursor {
	if max := MaxCol(c.mode, lineLen); c.pos.Col > max {
		c.pos.Col = max
	}
	if c.pos.Col < 0 {
		c.pos.Col = 0
	}
	return c
}

// String returns a human-readable representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%s %s desired=%d)", c.pos, c.mode, c.desired)
}
