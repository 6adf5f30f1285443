package editor

import (
	"skald/internal/engine/buffer"
	"skald/internal/engine/cursor"
	"skald/internal/grapheme"
)

// Motions never fail: past a boundary they saturate at the last legal
// position and report nothing. Vertical motions keep the sticky
// desired column; every other motion resets it.

// MoveLeft moves the cursor count clusters left on its line.
func (c *Controller) MoveLeft(count int) {
	p := c.cur.Pos()
	p.Col -= count
	if p.Col < 0 {
		p.Col = 0
	}
	c.commit(c.cur.MoveTo(p))
}

// MoveRight moves the cursor count clusters right on its line.
func (c *Controller) MoveRight(count int) {
	snap := c.buf.Snapshot()
	p := c.cur.Pos()
	p.Col = c.clampCol(snap, p.Line, p.Col+count)
	c.commit(c.cur.MoveTo(p))
}

// MoveUp moves count lines up, holding the display column the cursor
// last occupied by explicit horizontal motion.
func (c *Controller) MoveUp(count int) {
	c.moveVertical(-count)
}

// MoveDown moves count lines down, holding the sticky display column.
func (c *Controller) MoveDown(count int) {
	c.moveVertical(count)
}

func (c *Controller) moveVertical(delta int) {
	snap := c.buf.Snapshot()
	p := c.cur.Pos()

	desired := c.cur.DesiredCol()
	if desired == cursor.NoDesiredCol {
		desired = c.index(snap, p.Line).CharToColumn(p.Col)
	}

	p.Line += delta
	if p.Line < 0 {
		p.Line = 0
	}
	if last := snap.LineCount() - 1; p.Line > last {
		p.Line = last
	}

	p.Col = c.clampCol(snap, p.Line, c.index(snap, p.Line).ColumnToChar(desired))
	c.commit(c.cur.MoveToSticky(p, desired))
}

// LineStart moves to column zero.
func (c *Controller) LineStart() {
	p := c.cur.Pos()
	p.Col = 0
	c.commit(c.cur.MoveTo(p))
}

// LineEnd moves to the last legal column of the line.
func (c *Controller) LineEnd() {
	snap := c.buf.Snapshot()
	p := c.cur.Pos()
	p.Col = cursor.MaxCol(c.cur.Mode(), snap.LineLen(p.Line))
	c.commit(c.cur.MoveTo(p))
}

// FirstNonBlank moves to the first non-whitespace cluster of the line,
// or column zero on a blank line.
func (c *Controller) FirstNonBlank() {
	snap := c.buf.Snapshot()
	p := c.cur.Pos()

	p.Col = 0
	for i, cl := range grapheme.Split(snap.LineText(p.Line)) {
		if !grapheme.IsWhitespace(cl) {
			p.Col = i
			break
		}
	}
	p.Col = c.clampCol(snap, p.Line, p.Col)
	c.commit(c.cur.MoveTo(p))
}

// GotoLine moves to the first non-blank of a 1-indexed line, clamped
// into the buffer.
func (c *Controller) GotoLine(line int) {
	snap := c.buf.Snapshot()
	target := line - 1
	if target < 0 {
		target = 0
	}
	if last := snap.LineCount() - 1; target > last {
		target = last
	}
	c.commit(c.cur.MoveTo(buffer.Point{Line: target}))
	c.FirstNonBlank()
}

// BufferStart moves to the first position of the buffer.
func (c *Controller) BufferStart() {
	c.commit(c.cur.MoveTo(buffer.Point{}))
}

// BufferEnd moves to the first non-blank of the last line.
func (c *Controller) BufferEnd() {
	snap := c.buf.Snapshot()
	c.commit(c.cur.MoveTo(buffer.Point{Line: snap.LineCount() - 1}))
	c.FirstNonBlank()
}

// PageDown moves the cursor a window height down, keeping one line of
// overlap with the previous page.
func (c *Controller) PageDown() {
	c.moveVertical(c.geom.Height - 1)
}

// PageUp moves the cursor a window height up with one line of overlap.
func (c *Controller) PageUp() {
	c.moveVertical(-(c.geom.Height - 1))
}

// HalfPageDown moves half a window height down.
func (c *Controller) HalfPageDown() {
	c.moveVertical(c.geom.Height / 2)
}

// HalfPageUp moves half a window height up.
func (c *Controller) HalfPageUp() {
	c.moveVertical(-(c.geom.Height / 2))
}

// charClass partitions clusters for word motions: whitespace separates
// words, and letter/digit/underscore runs form different words than
// punctuation runs.
type charClass int

const (
	classWhitespace charClass = iota
	classWord
	classPunct
)

func classOf(cluster string) charClass {
	switch {
	case grapheme.IsWhitespace(cluster):
		return classWhitespace
	case grapheme.IsWordRune(grapheme.FirstRune(cluster)):
		return classWord
	default:
		return classPunct
	}
}

// WordForward moves count word starts forward, crossing line
// boundaries. An empty line counts as a word.
func (c *Controller) WordForward(count int) {
	snap := c.buf.Snapshot()
	p := c.cur.Pos()
	for i := 0; i < count; i++ {
		p = nextWordStart(snap, p)
	}
	p.Col = c.clampCol(snap, p.Line, p.Col)
	c.commit(c.cur.MoveTo(p))
}

// WordBackward moves count word starts backward.
func (c *Controller) WordBackward(count int) {
	snap := c.buf.Snapshot()
	p := c.cur.Pos()
	for i := 0; i < count; i++ {
		p = prevWordStart(snap, p)
	}
	c.commit(c.cur.MoveTo(p))
}

// WordEndForward moves count word ends forward.
func (c *Controller) WordEndForward(count int) {
	snap := c.buf.Snapshot()
	p := c.cur.Pos()
	for i := 0; i < count; i++ {
		p = nextWordEnd(snap, p)
	}
	p.Col = c.clampCol(snap, p.Line, p.Col)
	c.commit(c.cur.MoveTo(p))
}

func nextWordStart(snap *buffer.Snapshot, p buffer.Point) buffer.Point {
	clusters := grapheme.Split(snap.LineText(p.Line))
	lastLine := snap.LineCount() - 1

	// Leave the current run.
	if p.Col < len(clusters) {
		cls := classOf(clusters[p.Col])
		if cls != classWhitespace {
			for p.Col < len(clusters) && classOf(clusters[p.Col]) == cls {
				p.Col++
			}
		}
	}

	// Skip whitespace to the next word start; an empty line stops the
	// scan.
	for {
		for p.Col < len(clusters) && classOf(clusters[p.Col]) == classWhitespace {
			p.Col++
		}
		if p.Col < len(clusters) {
			return p
		}
		if p.Line >= lastLine {
			return p
		}
		p.Line++
		p.Col = 0
		clusters = grapheme.Split(snap.LineText(p.Line))
		if len(clusters) == 0 {
			return p
		}
	}
}

func prevWordStart(snap *buffer.Snapshot, p buffer.Point) buffer.Point {
	clusters := grapheme.Split(snap.LineText(p.Line))

	// Step off the current position, wrapping to the previous line
	// end.
	for {
		if p.Col > 0 {
			p.Col--
			break
		}
		if p.Line == 0 {
			return p
		}
		p.Line--
		clusters = grapheme.Split(snap.LineText(p.Line))
		p.Col = len(clusters)
		if p.Col == 0 {
			return p
		}
		p.Col--
		break
	}

	// Skip whitespace backward, crossing lines; empty lines stop.
	for classOf(clusters[p.Col]) == classWhitespace {
		if p.Col > 0 {
			p.Col--
			continue
		}
		if p.Line == 0 {
			return p
		}
		p.Line--
		clusters = grapheme.Split(snap.LineText(p.Line))
		if len(clusters) == 0 {
			return buffer.Point{Line: p.Line}
		}
		p.Col = len(clusters) - 1
	}

	// Walk to the start of the run.
	cls := classOf(clusters[p.Col])
	for p.Col > 0 && classOf(clusters[p.Col-1]) == cls {
		p.Col--
	}
	return p
}

func nextWordEnd(snap *buffer.Snapshot, p buffer.Point) buffer.Point {
	clusters := grapheme.Split(snap.LineText(p.Line))
	lastLine := snap.LineCount() - 1

	// Step off the current position, wrapping to the next line.
	for {
		if p.Col+1 < len(clusters) {
			p.Col++
			break
		}
		if p.Line >= lastLine {
			return p
		}
		p.Line++
		p.Col = 0
		clusters = grapheme.Split(snap.LineText(p.Line))
		if len(clusters) > 0 {
			break
		}
	}

	// Skip whitespace forward, crossing lines.
	for {
		if len(clusters) == 0 {
			if p.Line >= lastLine {
				return p
			}
			p.Line++
			p.Col = 0
			clusters = grapheme.Split(snap.LineText(p.Line))
			continue
		}
		if classOf(clusters[p.Col]) != classWhitespace {
			break
		}
		if p.Col+1 < len(clusters) {
			p.Col++
			continue
		}
		if p.Line >= lastLine {
			return p
		}
		p.Line++
		p.Col = 0
		clusters = grapheme.Split(snap.LineText(p.Line))
	}

	// Walk to the end of the run.
	cls := classOf(clusters[p.Col])
	for p.Col+1 < len(clusters) && classOf(clusters[p.Col+1]) == cls {
		p.Col++
	}
	return p
}
