// Package buffer implements the line buffer: the ordered collection of
// lines backing one editable document.
//
// Lines store raw UTF-8 text without line endings; the buffer-wide
// LineEnding policy is applied only on serialization. All positions are
// (line, grapheme-cluster) Points. Every line carries a generation
// counter bumped on each mutation of that line, which the layout cache
// uses for invalidation. Edit operations validate before mutating, so a
// rejected edit leaves the buffer unchanged.
package buffer
