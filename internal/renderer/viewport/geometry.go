// Package viewport computes the mapping of buffer content onto the
// window rectangle: which (line, cluster)-ranges are visible for a
// given anchor, geometry, and display options, and where the anchor
// must move to bring a target position into view.
//
// Both entry points, Compute and Search, are pure functions of their
// explicit inputs. They never mutate the buffer and perform no I/O,
// which is what makes them safe to call from any goroutine on an
// immutable snapshot.
package viewport

// Geometry is the window rectangle in terminal cells. X and Y are the
// window origin on the screen; Width and Height bound the visible
// grid.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Clamped returns the geometry with Width and Height forced to at
// least 1 to keep every downstream computation free of underflow.
func (g Geometry) Clamped() Geometry {
	if g.Width < 1 {
		g.Width = 1
	}
	if g.Height < 1 {
		g.Height = 1
	}
	return g
}

// Options are the merged display options the calculator operates
// under. They arrive resolved (window over buffer over global); the
// calculator never consults any other state.
type Options struct {
	// Wrap continues long lines onto following rows instead of
	// truncating at the window edge.
	Wrap bool

	// LineBreak, when Wrap is set, prefers breaking at a word
	// boundary over a mid-line column split.
	LineBreak bool

	// TabStop is the tab column interval, 1..255.
	TabStop int

	// ExpandTab inserts spaces instead of a tab character on edit;
	// it does not affect how existing tabs display.
	ExpandTab bool

	// FileFormat is the line-ending policy name (unix, dos, mac).
	// Carried with the display options; serialization uses it, the
	// calculator does not.
	FileFormat string
}

// DefaultOptions returns the built-in display defaults.
func DefaultOptions() Options {
	return Options{
		Wrap:       true,
		LineBreak:  false,
		TabStop:    8,
		ExpandTab:  false,
		FileFormat: "unix",
	}
}

// Normalized returns the options with TabStop clamped into 1..255.
// Out-of-range values are a config-layer error; the calculator stays
// total by clamping.
func (o Options) Normalized() Options {
	if o.TabStop < 1 {
		o.TabStop = 1
	}
	if o.TabStop > 255 {
		o.TabStop = 255
	}
	return o
}

// Source is the read access the calculator needs from a buffer
// snapshot.
type Source interface {
	LineCount() int
	LineText(line int) string
	LineGen(line int) uint64
}
