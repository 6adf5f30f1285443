package history

import "skald/internal/engine/buffer"

// Op is a single invertible edit: the text between Start and OldEnd is
// replaced by NewText, which ends at NewEnd. A pure insertion has
// OldEnd == Start; a pure deletion has NewEnd == Start. Before and
// After carry the cursor position around the edit so undo and redo can
// restore it.
type Op struct {
	Start   buffer.Point
	OldEnd  buffer.Point
	NewEnd  buffer.Point
	OldText string
	NewText string
	Before  buffer.Point
	After   buffer.Point
}

// Insert builds the op for inserting text at start, ending at end.
func Insert(start, end buffer.Point, text string) Op {
	return Op{Start: start, OldEnd: start, NewEnd: end, NewText: text}
}

// Delete builds the op for removing the text between start and end.
func Delete(start, end buffer.Point, text string) Op {
	return Op{Start: start, OldEnd: end, NewEnd: start, OldText: text}
}

// WithCursor records the cursor positions bracketing the edit and
// returns the op for chaining.
func (op Op) WithCursor(before, after buffer.Point) Op {
	op.Before = before
	op.After = after
	return op
}

// Invert returns the op that exactly undoes this one.
func (op Op) Invert() Op {
	return Op{
		Start:   op.Start,
		OldEnd:  op.NewEnd,
		NewEnd:  op.OldEnd,
		OldText: op.NewText,
		NewText: op.OldText,
		Before:  op.After,
		After:   op.Before,
	}
}

// IsInsert reports whether the op adds text without removing any.
func (op Op) IsInsert() bool {
	return op.Start == op.OldEnd && op.NewText != ""
}

// IsDelete reports whether the op removes text without adding any.
func (op Op) IsDelete() bool {
	return op.Start != op.OldEnd && op.NewText == ""
}

// IsNoop reports whether the op changes nothing.
func (op Op) IsNoop() bool {
	return op.Start == op.OldEnd && op.NewText == ""
}

// LineDelta returns the change in buffer line count the op causes.
func (op Op) LineDelta() int {
	return op.NewEnd.Line - op.OldEnd.Line
}

// invert produces the inverse of an applied entry: each op inverted,
// in reverse order, so positions stay valid as the ops replay.
func invert(entry []Op) []Op {
	out := make([]Op, len(entry))
	for i, op := range entry {
		out[len(entry)-1-i] = op.Invert()
	}
	return out
}
