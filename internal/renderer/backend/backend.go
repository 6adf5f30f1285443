// Package backend abstracts the drawing surface: a real terminal in
// production, an in-memory grid in tests.
package backend

import "skald/internal/renderer/core"

// Backend is the drawing surface the painter writes into. Positions
// outside the surface are silently ignored.
type Backend interface {
	// Size returns the surface dimensions in cells.
	Size() (width, height int)

	// SetCell writes one cell.
	SetCell(x, y int, cell core.Cell)

	// Clear resets the whole surface to empty cells.
	Clear()

	// ShowCursor places the hardware cursor.
	ShowCursor(x, y int)

	// HideCursor removes the hardware cursor.
	HideCursor()

	// Show flushes pending writes to the display.
	Show()

	// Fini releases the surface and restores terminal state.
	Fini()
}
