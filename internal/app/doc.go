// Package app runs one editing session: it owns the buffer's
// controller, resolves layered options, translates terminal events
// into controller calls, and repaints after every change.
package app
