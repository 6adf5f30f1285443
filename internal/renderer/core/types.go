// Package core holds the shared cell and style types of the renderer.
// It exists so backend implementations and the painter can share them
// without an import cycle.
package core

import "github.com/gdamore/tcell/v2"

// Style is the visual style of one cell. Colors use tcell's model so
// both backends agree on palette and true-color handling.
type Style struct {
	Fg      tcell.Color
	Bg      tcell.Color
	Bold    bool
	Dim     bool
	Reverse bool
}

// DefaultStyle returns the terminal's default colors with no
// attributes.
func DefaultStyle() Style {
	return Style{Fg: tcell.ColorDefault, Bg: tcell.ColorDefault}
}

// Tcell converts the style to a tcell.Style.
func (s Style) Tcell() tcell.Style {
	st := tcell.StyleDefault.Foreground(s.Fg).Background(s.Bg)
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Dim {
		st = st.Dim(true)
	}
	if s.Reverse {
		st = st.Reverse(true)
	}
	return st
}

// Cell is one terminal cell. Text holds a full grapheme cluster, not a
// single rune, so combining sequences survive the trip to the screen.
// A wide cluster occupies its cell plus a continuation cell to its
// right.
type Cell struct {
	Text  string
	Width int
	Style Style
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{Text: " ", Width: 1, Style: DefaultStyle()}
}

// Continuation marks the trailing cell of a wide cluster.
func Continuation() Cell {
	return Cell{Text: "", Width: 0, Style: DefaultStyle()}
}

// IsContinuation reports whether the cell trails a wide cluster.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Text == ""
}
