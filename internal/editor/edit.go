package editor

import (
	"strings"

	"skald/internal/engine/buffer"
	"skald/internal/engine/cursor"
	"skald/internal/engine/history"
	"skald/internal/grapheme"
)

// Edits mutate the buffer first, then recompute the cursor in
// character terms and commit it through the same visibility check as
// motions. A rejected edit (read-only buffer, invalid position) leaves
// cursor and anchor untouched and surfaces the buffer's error.

// InsertText inserts text at the cursor. Multi-line text moves the
// cursor to the end of the inserted span.
func (c *Controller) InsertText(text string) error {
	p := c.cur.Pos()
	end, err := c.buf.InsertText(p, text)
	if err != nil {
		return err
	}
	if lines := end.Line - p.Line; lines > 0 {
		c.cache.ShiftLines(p.Line+1, lines)
	}
	c.hist.Push(history.Insert(p, end, text).WithCursor(p, end))
	c.commit(c.cur.MoveTo(end))
	return nil
}

// InsertRune inserts a single rune at the cursor.
func (c *Controller) InsertRune(r rune) error {
	return c.InsertText(string(r))
}

// InsertNewline splits the line at the cursor and moves to the start
// of the new line.
func (c *Controller) InsertNewline() error {
	p := c.cur.Pos()
	if err := c.buf.SplitLine(p); err != nil {
		return err
	}
	c.cache.ShiftLines(p.Line+1, 1)
	after := buffer.Point{Line: p.Line + 1}
	c.hist.Push(history.Insert(p, after, "\n").WithCursor(p, after))
	c.commit(c.cur.MoveTo(after))
	return nil
}

// InsertTab inserts a tab character, or the spaces reaching the next
// tab stop when ExpandTab is set.
func (c *Controller) InsertTab() error {
	if !c.opts.ExpandTab {
		return c.InsertText("\t")
	}
	snap := c.buf.Snapshot()
	p := c.cur.Pos()
	col := c.index(snap, p.Line).CharToColumn(p.Col)
	return c.InsertText(strings.Repeat(" ", grapheme.TabWidth(col, c.opts.TabStop)))
}

// DeleteBackward removes the cluster before the cursor. At column zero
// it joins with the previous line; at the buffer start it is a no-op.
func (c *Controller) DeleteBackward() error {
	p := c.cur.Pos()

	if p.Col == 0 {
		if p.Line == 0 {
			return nil
		}
		snap := c.buf.Snapshot()
		joined := buffer.Point{Line: p.Line - 1, Col: snap.LineLen(p.Line - 1)}
		if err := c.buf.JoinLines(p.Line - 1); err != nil {
			return err
		}
		c.cache.ShiftLines(p.Line, -1)
		c.hist.Push(history.Delete(joined, buffer.Point{Line: p.Line}, "\n").WithCursor(p, joined))
		c.commit(c.cur.MoveTo(joined))
		return nil
	}

	snap := c.buf.Snapshot()
	start := buffer.Point{Line: p.Line, Col: p.Col - 1}
	old := clusterRange(snap, p.Line, start.Col, p.Col)
	if err := c.buf.DeleteRange(start, p); err != nil {
		return err
	}
	c.hist.Push(history.Delete(start, p, old).WithCursor(p, start))
	c.commit(c.cur.MoveTo(start))
	return nil
}

// DeleteForward removes the cluster under the cursor. In insert mode
// the end of line joins with the next line; in normal mode the cursor
// reaches the end-of-line slot only on an empty line, where deleting
// is a no-op rather than a line join.
func (c *Controller) DeleteForward() error {
	snap := c.buf.Snapshot()
	p := c.cur.Pos()

	if p.Col >= snap.LineLen(p.Line) {
		if c.cur.Mode() == cursor.ModeNormal {
			return nil
		}
		if p.Line >= snap.LineCount()-1 {
			return nil
		}
		if err := c.buf.JoinLines(p.Line); err != nil {
			return err
		}
		c.cache.ShiftLines(p.Line+1, -1)
		c.hist.Push(history.Delete(p, buffer.Point{Line: p.Line + 1}, "\n").WithCursor(p, p))
		c.commit(c.cur.MoveTo(p))
		return nil
	}

	end := buffer.Point{Line: p.Line, Col: p.Col + 1}
	old := clusterRange(snap, p.Line, p.Col, end.Col)
	if err := c.buf.DeleteRange(p, end); err != nil {
		return err
	}
	// The cursor column may now sit past the last cluster in normal
	// mode.
	snap = c.buf.Snapshot()
	after := buffer.Point{Line: p.Line, Col: c.clampCol(snap, p.Line, p.Col)}
	c.hist.Push(history.Delete(p, end, old).WithCursor(p, after))
	c.commit(c.cur.MoveTo(after))
	return nil
}

// JoinWithNext joins the cursor line with the following one, cursor
// landing on the seam.
func (c *Controller) JoinWithNext() error {
	snap := c.buf.Snapshot()
	p := c.cur.Pos()
	if p.Line >= snap.LineCount()-1 {
		return nil
	}

	seam := buffer.Point{Line: p.Line, Col: snap.LineLen(p.Line)}
	if err := c.buf.JoinLines(p.Line); err != nil {
		return err
	}
	c.cache.ShiftLines(p.Line+1, -1)

	snap = c.buf.Snapshot()
	after := buffer.Point{Line: seam.Line, Col: c.clampCol(snap, seam.Line, seam.Col)}
	c.hist.Push(history.Delete(seam, buffer.Point{Line: p.Line + 1}, "\n").WithCursor(p, after))
	c.commit(c.cur.MoveTo(after))
	return nil
}

// EnterInsert switches to insert mode and opens a history group, so
// the whole insert session undoes as one edit. With append set the
// cursor steps right one cluster first, which may place it on the
// end-of-line slot.
func (c *Controller) EnterInsert(append bool) {
	c.hist.BeginGroup()
	cur := c.cur.WithMode(cursor.ModeInsert)
	if append {
		snap := c.buf.Snapshot()
		p := cur.Pos()
		if p.Col < snap.LineLen(p.Line) {
			p.Col++
		}
		cur = cur.MoveTo(p)
	}
	c.commit(cur)
}

// ExitInsert returns to normal mode, closing the insert session's
// history group and stepping the cursor back off the end-of-line slot.
func (c *Controller) ExitInsert() {
	c.hist.EndGroup()
	snap := c.buf.Snapshot()
	cur := c.cur.WithMode(cursor.ModeNormal)
	p := cur.Pos()
	if max := cursor.MaxCol(cursor.ModeNormal, snap.LineLen(p.Line)); p.Col > max {
		p.Col = max
		cur = cur.MoveTo(p)
	}
	c.commit(cur)
}

// clusterRange returns the text of clusters [start, end) on a line.
func clusterRange(snap *buffer.Snapshot, line, start, end int) string {
	text := snap.LineText(line)
	return text[grapheme.ByteOffset(text, start):grapheme.ByteOffset(text, end)]
}
