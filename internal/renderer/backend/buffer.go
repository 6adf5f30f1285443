package backend

import (
	"strings"
	"sync"

	"skald/internal/renderer/core"
)

// ScreenBuffer is an in-memory Backend for tests and headless use. It
// records every cell and the cursor position, and can print rows back
// as strings for assertions.
type ScreenBuffer struct {
	mu            sync.Mutex
	width, height int
	cells         [][]core.Cell
	cursorX       int
	cursorY       int
	cursorShown   bool
	shows         int
}

// NewScreenBuffer creates a cleared in-memory surface.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	sb := &ScreenBuffer{width: width, height: height, cursorX: -1, cursorY: -1}
	sb.cells = blankGrid(width, height)
	return sb
}

func blankGrid(width, height int) [][]core.Cell {
	g := make([][]core.Cell, height)
	for y := range g {
		g[y] = make([]core.Cell, width)
		for x := range g[y] {
			g[y][x] = core.EmptyCell()
		}
	}
	return g
}

func (sb *ScreenBuffer) Size() (int, int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.width, sb.height
}

// Resize reallocates the grid, dropping previous content.
func (sb *ScreenBuffer) Resize(width, height int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.width, sb.height = width, height
	sb.cells = blankGrid(width, height)
}

func (sb *ScreenBuffer) SetCell(x, y int, cell core.Cell) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return
	}
	sb.cells[y][x] = cell
}

// Cell returns the cell at a position, empty when out of bounds.
func (sb *ScreenBuffer) Cell(x, y int) core.Cell {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return core.EmptyCell()
	}
	return sb.cells[y][x]
}

func (sb *ScreenBuffer) Clear() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cells = blankGrid(sb.width, sb.height)
}

func (sb *ScreenBuffer) ShowCursor(x, y int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorX, sb.cursorY, sb.cursorShown = x, y, true
}

func (sb *ScreenBuffer) HideCursor() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorShown = false
}

// Cursor returns the cursor cell and whether it is shown.
func (sb *ScreenBuffer) Cursor() (x, y int, shown bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.cursorX, sb.cursorY, sb.cursorShown
}

func (sb *ScreenBuffer) Show() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.shows++
}

// Shows returns how many times Show has been called.
func (sb *ScreenBuffer) Shows() int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.shows
}

func (sb *ScreenBuffer) Fini() {}

// Row renders one row as a plain string, continuation cells omitted.
// Trailing blanks are trimmed.
func (sb *ScreenBuffer) Row(y int) string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if y < 0 || y >= sb.height {
		return ""
	}

	var b strings.Builder
	for _, c := range sb.cells[y] {
		if c.IsContinuation() {
			continue
		}
		b.WriteString(c.Text)
	}
	return strings.TrimRight(b.String(), " ")
}

// Rows renders the whole grid, one string per row.
func (sb *ScreenBuffer) Rows() []string {
	_, h := sb.Size()
	out := make([]string, h)
	for y := 0; y < h; y++ {
		out[y] = sb.Row(y)
	}
	return out
}
