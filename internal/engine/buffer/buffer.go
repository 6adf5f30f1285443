package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"skald/internal/grapheme"
)

// Errors returned by buffer operations. A rejected operation is atomic:
// the buffer is left exactly as it was.
var (
	ErrInvalidPosition = errors.New("position out of range")
	ErrInvalidRange    = errors.New("invalid range")
	ErrReadOnly        = errors.New("buffer is read-only")
)

// Buffer is the line buffer for one document. All methods are
// thread-safe; a single write lock is held for the duration of each
// edit. The buffer always holds at least one line, possibly empty.
type Buffer struct {
	mu         sync.RWMutex
	id         uuid.UUID
	lines      []string
	gens       []uint64
	nextGen    uint64
	revision   RevisionID
	lineEnding LineEnding
	endingSet  bool
	readOnly   bool
}

// NewBuffer creates a new buffer with a single empty line.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		id:         uuid.New(),
		lines:      []string{""},
		gens:       []uint64{1},
		nextGen:    2,
		revision:   NewRevisionID(),
		lineEnding: LineEndingLF,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content. The line
// ending style is detected from the text unless an option overrides it.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	if !b.endingSet {
		b.lineEnding = DetectLineEnding(s)
	}
	b.lines = splitLines(s)
	b.gens = make([]uint64, len(b.lines))
	for i := range b.gens {
		b.gens[i] = b.allocGen()
	}
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader. The reader
// must yield already-decoded UTF-8 text.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// allocGen hands out the next line generation. Caller holds the write
// lock (or owns the buffer exclusively during construction).
func (b *Buffer) allocGen() uint64 {
	g := b.nextGen
	b.nextGen++
	return g
}

// ID returns the buffer's unique identity.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Revision returns the current revision ID.
func (b *Buffer) Revision() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// SetLineEnding sets the serialization line ending style.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}

// ReadOnly returns whether edits are rejected.
func (b *Buffer) ReadOnly() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readOnly
}

// SetReadOnly toggles edit protection.
func (b *Buffer) SetReadOnly(ro bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readOnly = ro
}

// LineCount returns the number of lines; always at least 1.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineText returns the text of a line without its ending, or "" for an
// out-of-range index.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

// LineGen returns the generation counter of a line, or 0 for an
// out-of-range index. A line's generation changes iff its text does.
func (b *Buffer) LineGen(line int) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.gens) {
		return 0
	}
	return b.gens[line]
}

// LineLen returns the number of grapheme clusters in a line, or 0 for
// an out-of-range index.
func (b *Buffer) LineLen(line int) int {
	return grapheme.Count(b.LineText(line))
}

// IsEmpty returns true if the buffer holds a single empty line.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines) == 1 && b.lines[0] == ""
}

// Text serializes the whole buffer using its line ending style.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, b.lineEnding.Sequence())
}

// validatePoint checks that p addresses an existing line and a column
// in [0, LineLen]. Caller holds at least the read lock.
func (b *Buffer) validatePoint(p Point) error {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return ErrInvalidPosition
	}
	if p.Col < 0 || p.Col > grapheme.Count(b.lines[p.Line]) {
		return ErrInvalidPosition
	}
	return nil
}

// InsertText inserts text at the given position and returns the
// position just after the inserted text. Text may contain line endings
// (any style), which split lines. On error the buffer is unchanged.
func (b *Buffer) InsertText(p Point, text string) (Point, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return Point{}, ErrReadOnly
	}
	if err := b.validatePoint(p); err != nil {
		return Point{}, err
	}

	line := b.lines[p.Line]
	at := grapheme.ByteOffset(line, p.Col)
	prefix, suffix := line[:at], line[at:]

	parts := splitLines(text)
	if len(parts) == 1 {
		b.lines[p.Line] = prefix + parts[0] + suffix
		b.gens[p.Line] = b.allocGen()
		b.revision = NewRevisionID()
		return Point{Line: p.Line, Col: p.Col + grapheme.Count(parts[0])}, nil
	}

	// Multi-line insert: first part closes the current line, middle
	// parts become new lines, last part opens the final line.
	newLines := make([]string, 0, len(b.lines)+len(parts)-1)
	newLines = append(newLines, b.lines[:p.Line]...)
	newLines = append(newLines, prefix+parts[0])
	newLines = append(newLines, parts[1:len(parts)-1]...)
	last := parts[len(parts)-1]
	newLines = append(newLines, last+suffix)
	newLines = append(newLines, b.lines[p.Line+1:]...)

	newGens := make([]uint64, 0, len(newLines))
	newGens = append(newGens, b.gens[:p.Line]...)
	for i := 0; i < len(parts); i++ {
		newGens = append(newGens, b.allocGen())
	}
	newGens = append(newGens, b.gens[p.Line+1:]...)

	b.lines = newLines
	b.gens = newGens
	b.revision = NewRevisionID()

	return Point{
		Line: p.Line + len(parts) - 1,
		Col:  grapheme.Count(last),
	}, nil
}

// DeleteRange removes the text between start (inclusive) and end
// (exclusive). The range may span lines; crossing a line boundary joins
// the surrounding lines. On error the buffer is unchanged.
func (b *Buffer) DeleteRange(start, end Point) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return ErrReadOnly
	}
	if err := b.validatePoint(start); err != nil {
		return err
	}
	if err := b.validatePoint(end); err != nil {
		return err
	}
	if start.After(end) {
		return ErrInvalidRange
	}
	if start == end {
		return nil
	}

	startLine := b.lines[start.Line]
	endLine := b.lines[end.Line]
	prefix := startLine[:grapheme.ByteOffset(startLine, start.Col)]
	suffix := endLine[grapheme.ByteOffset(endLine, end.Col):]

	if start.Line == end.Line {
		b.lines[start.Line] = prefix + suffix
		b.gens[start.Line] = b.allocGen()
		b.revision = NewRevisionID()
		return nil
	}

	newLines := make([]string, 0, len(b.lines)-(end.Line-start.Line))
	newLines = append(newLines, b.lines[:start.Line]...)
	newLines = append(newLines, prefix+suffix)
	newLines = append(newLines, b.lines[end.Line+1:]...)

	newGens := make([]uint64, 0, len(newLines))
	newGens = append(newGens, b.gens[:start.Line]...)
	newGens = append(newGens, b.allocGen())
	newGens = append(newGens, b.gens[end.Line+1:]...)

	b.lines = newLines
	b.gens = newGens
	b.revision = NewRevisionID()
	return nil
}

// SplitLine breaks a line in two at the given position. Text before
// the position stays; text at and after it starts the next line.
func (b *Buffer) SplitLine(p Point) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return ErrReadOnly
	}
	if err := b.validatePoint(p); err != nil {
		return err
	}

	line := b.lines[p.Line]
	at := grapheme.ByteOffset(line, p.Col)

	newLines := make([]string, 0, len(b.lines)+1)
	newLines = append(newLines, b.lines[:p.Line]...)
	newLines = append(newLines, line[:at], line[at:])
	newLines = append(newLines, b.lines[p.Line+1:]...)

	newGens := make([]uint64, 0, len(newLines))
	newGens = append(newGens, b.gens[:p.Line]...)
	newGens = append(newGens, b.allocGen(), b.allocGen())
	newGens = append(newGens, b.gens[p.Line+1:]...)

	b.lines = newLines
	b.gens = newGens
	b.revision = NewRevisionID()
	return nil
}

// JoinLines appends the text of line+1 onto line, removing the line
// break between them. Joining the last line is an invalid position.
func (b *Buffer) JoinLines(line int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return ErrReadOnly
	}
	if line < 0 || line+1 >= len(b.lines) {
		return ErrInvalidPosition
	}

	joined := b.lines[line] + b.lines[line+1]

	newLines := make([]string, 0, len(b.lines)-1)
	newLines = append(newLines, b.lines[:line]...)
	newLines = append(newLines, joined)
	newLines = append(newLines, b.lines[line+2:]...)

	newGens := make([]uint64, 0, len(newLines))
	newGens = append(newGens, b.gens[:line]...)
	newGens = append(newGens, b.allocGen())
	newGens = append(newGens, b.gens[line+2:]...)

	b.lines = newLines
	b.gens = newGens
	b.revision = NewRevisionID()
	return nil
}

// Clamp returns the nearest valid position to p. maxCol of a line is
// its length (the end-of-line slot); mode-specific clamping is the
// cursor's concern, not the buffer's.
func (b *Buffer) Clamp(p Point) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(b.lines) {
		p.Line = len(b.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if max := grapheme.Count(b.lines[p.Line]); p.Col > max {
		p.Col = max
	}
	return p
}

// Snapshot returns an immutable view of the current buffer state, safe
// for concurrent reads while the live buffer keeps mutating.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lines := make([]string, len(b.lines))
	copy(lines, b.lines)
	gens := make([]uint64, len(b.gens))
	copy(gens, b.gens)

	return &Snapshot{
		lines:      lines,
		gens:       gens,
		revision:   b.revision,
		lineEnding: b.lineEnding,
	}
}
