package app

import "errors"

var (
	// ErrQuit signals a normal exit request.
	ErrQuit = errors.New("quit requested")

	// ErrNoFile reports a save with no file path associated.
	ErrNoFile = errors.New("no file name")
)
