// Package history records buffer edits as invertible operations and
// manages the undo/redo stacks built from them.
//
// Every edit reduces to one Op: replace the text between Start and
// OldEnd with NewText. Undoing applies the inverse replacement, so the
// stack never needs buffer snapshots. Ops pushed between BeginGroup
// and EndGroup collapse into a single entry that undoes as a unit; an
// insert-mode session is one such group.
package history
