// Package editor connects the buffer, cursor, and viewport into one
// editing session: motions and edits move the cursor in character
// terms, and every change runs the same visibility check before the
// cursor and the viewport anchor are committed together.
//
// A Controller is a single-writer object. One goroutine drives it;
// rendering reads the immutable snapshot it hands out.
package editor
