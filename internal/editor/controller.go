package editor

import (
	"skald/internal/engine/buffer"
	"skald/internal/engine/cursor"
	"skald/internal/engine/history"
	"skald/internal/renderer/layout"
	"skald/internal/renderer/viewport"
)

// cacheSize bounds the per-controller layout cache. Large enough that
// a full window plus scroll margin never thrashes.
const cacheSize = 2048

// Controller owns one buffer's editing state: the cursor, the viewport
// anchor, and the resolved display options. All motions and edits go
// through it so the cursor and anchor always agree.
type Controller struct {
	buf    *buffer.Buffer
	cur    cursor.Cursor
	anchor viewport.Anchor
	geom   viewport.Geometry
	opts   viewport.Options
	cache  *layout.Cache
	hist   *history.Stack
}

// NewController wires a controller around an existing buffer.
func NewController(buf *buffer.Buffer, geom viewport.Geometry, opts viewport.Options) *Controller {
	opts = opts.Normalized()
	return &Controller{
		buf:   buf,
		cur:   cursor.New(),
		geom:  geom.Clamped(),
		opts:  opts,
		cache: layout.NewCache(opts.TabStop, cacheSize),
		hist:  history.NewStack(0),
	}
}

// Buffer returns the underlying buffer.
func (c *Controller) Buffer() *buffer.Buffer { return c.buf }

// Cursor returns the current cursor value.
func (c *Controller) Cursor() cursor.Cursor { return c.cur }

// Anchor returns the current viewport anchor.
func (c *Controller) Anchor() viewport.Anchor { return c.anchor }

// Options returns the resolved display options in effect.
func (c *Controller) Options() viewport.Options { return c.opts }

// Geometry returns the window rectangle in effect.
func (c *Controller) Geometry() viewport.Geometry { return c.geom }

// Resize updates the window rectangle. The anchor is re-searched so
// the cursor stays visible in the new geometry.
func (c *Controller) Resize(geom viewport.Geometry) {
	c.geom = geom.Clamped()
	c.commit(c.cur)
}

// SetOptions swaps in newly resolved display options. A tab-stop
// change flushes the layout cache; a wrap-mode change re-anchors.
func (c *Controller) SetOptions(opts viewport.Options) {
	c.opts = opts.Normalized()
	c.cache.SetTabStop(c.opts.TabStop)
	c.commit(c.cur)
}

// Viewport computes the current viewport from the committed anchor.
func (c *Controller) Viewport() (viewport.Viewport, *buffer.Snapshot) {
	snap := c.buf.Snapshot()
	return viewport.Compute(snap, c.cache, c.anchor, c.geom, c.opts), snap
}

// Cache exposes the layout cache for rendering and statistics.
func (c *Controller) Cache() *layout.Cache { return c.cache }

// History exposes the undo/redo stack.
func (c *Controller) History() *history.Stack { return c.hist }

// Undo reverts the newest recorded edit, or an open insert session as
// a whole, restoring the cursor to its pre-edit position.
func (c *Controller) Undo() error {
	return c.hist.Undo(c.applyOps)
}

// Redo reapplies the newest undone edit.
func (c *Controller) Redo() error {
	return c.hist.Redo(c.applyOps)
}

// applyOps replays recorded ops against the buffer in order, then
// commits the cursor the final op carries. Ops come from the history
// stack, so they address positions that exist at each step.
func (c *Controller) applyOps(ops []history.Op) error {
	if len(ops) == 0 {
		return nil
	}
	for _, op := range ops {
		if op.Start != op.OldEnd {
			if err := c.buf.DeleteRange(op.Start, op.OldEnd); err != nil {
				return err
			}
		}
		if op.NewText != "" {
			if _, err := c.buf.InsertText(op.Start, op.NewText); err != nil {
				return err
			}
		}
		if delta := op.LineDelta(); delta != 0 {
			c.cache.ShiftLines(op.Start.Line+1, delta)
		}
	}

	snap := c.buf.Snapshot()
	p := snap.Clamp(ops[len(ops)-1].After)
	p.Col = c.clampCol(snap, p.Line, p.Col)
	c.commit(c.cur.MoveTo(p))
	return nil
}

// ScreenCursor returns the window-relative cursor cell. ok is false
// only in the moment between an external buffer change and the next
// committed motion.
func (c *Controller) ScreenCursor() (row, col int, ok bool) {
	vp, snap := c.Viewport()
	return vp.ScreenPosition(snap, c.cache, c.cur.Pos())
}

// commit stores the cursor and, when its position left the viewport,
// moves the anchor the minimal distance to cover it. Cursor and anchor
// change together or not at all.
func (c *Controller) commit(cur cursor.Cursor) {
	snap := c.buf.Snapshot()
	c.anchor = viewport.EnsureVisible(snap, c.cache, c.anchor, cur.Pos(), c.geom, c.opts)
	c.cur = cur
}

// index returns the display-width index for one line of the snapshot.
func (c *Controller) index(snap *buffer.Snapshot, line int) *layout.LineIndex {
	return c.cache.Get(line, snap.LineText(line), snap.LineGen(line))
}

// clampCol bounds a column to the cursor mode's legal range on the
// given line.
func (c *Controller) clampCol(snap *buffer.Snapshot, line, col int) int {
	max := cursor.MaxCol(c.cur.Mode(), snap.LineLen(line))
	if col > max {
		col = max
	}
	if col < 0 {
		col = 0
	}
	return col
}
