package history

import (
	"errors"
	"sync"
)

// Errors reported when a stack has nothing left to replay.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// defaultMaxEntries bounds the undo stack when no limit is given.
const defaultMaxEntries = 1000

// Stack holds the undo and redo entries for one buffer. Each entry is
// an ordered slice of ops that applies and reverts as a unit.
type Stack struct {
	mu sync.Mutex

	undo [][]Op
	redo [][]Op

	grouping bool
	group    []Op

	maxEntries int
}

// NewStack creates a stack keeping at most maxEntries undo entries.
// A non-positive limit selects the default.
func NewStack(maxEntries int) *Stack {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &Stack{maxEntries: maxEntries}
}

// Push records an applied op. Inside a group the op joins the pending
// entry; otherwise it becomes an entry of its own. Any recorded edit
// clears the redo stack.
func (s *Stack) Push(op Op) {
	if op.IsNoop() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.grouping {
		s.group = append(s.group, op)
		return
	}
	s.pushLocked([]Op{op})
}

func (s *Stack) pushLocked(entry []Op) {
	s.undo = append(s.undo, entry)
	s.redo = nil

	if len(s.undo) > s.maxEntries {
		s.undo = s.undo[len(s.undo)-s.maxEntries:]
	}
}

// BeginGroup opens a group. Ops pushed until EndGroup form a single
// undo entry. Nested calls are ignored.
func (s *Stack) BeginGroup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.grouping {
		return
	}
	s.grouping = true
	s.group = nil
}

// EndGroup closes the open group and lands it as one entry. An empty
// group leaves the stack untouched.
func (s *Stack) EndGroup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.grouping {
		return
	}
	s.grouping = false

	if len(s.group) == 0 {
		s.group = nil
		return
	}
	s.pushLocked(s.group)
	s.group = nil
}

// Undo pops the newest entry and hands its inverse to apply. On
// success the entry moves to the redo stack; on failure it stays where
// it was. The lock is not held while apply runs.
func (s *Stack) Undo(apply func([]Op) error) error {
	s.mu.Lock()
	if len(s.undo) == 0 {
		s.mu.Unlock()
		return ErrNothingToUndo
	}
	entry := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.mu.Unlock()

	if err := apply(invert(entry)); err != nil {
		s.mu.Lock()
		s.undo = append(s.undo, entry)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.redo = append(s.redo, entry)
	s.mu.Unlock()
	return nil
}

// Redo pops the newest undone entry and hands it to apply as recorded.
// On success the entry moves back to the undo stack.
func (s *Stack) Redo(apply func([]Op) error) error {
	s.mu.Lock()
	if len(s.redo) == 0 {
		s.mu.Unlock()
		return ErrNothingToRedo
	}
	entry := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.mu.Unlock()

	if err := apply(entry); err != nil {
		s.mu.Lock()
		s.redo = append(s.redo, entry)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.undo = append(s.undo, entry)
	s.mu.Unlock()
	return nil
}

// CanUndo reports whether an undo entry is available.
func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) > 0
}

// CanRedo reports whether a redo entry is available.
func (s *Stack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}

// UndoCount returns the number of undo entries.
func (s *Stack) UndoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo)
}

// RedoCount returns the number of redo entries.
func (s *Stack) RedoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo)
}

// Clear drops all recorded entries and any open group.
func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.undo = nil
	s.redo = nil
	s.grouping = false
	s.group = nil
}
