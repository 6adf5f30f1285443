package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithLineEnding sets the line ending style explicitly, overriding
// detection from loaded content.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
		b.endingSet = true
	}
}

// WithLF configures Unix line endings (\n).
func WithLF() Option {
	return WithLineEnding(LineEndingLF)
}

// WithCRLF configures DOS line endings (\r\n).
func WithCRLF() Option {
	return WithLineEnding(LineEndingCRLF)
}

// WithCR configures old Mac line endings (\r).
func WithCR() Option {
	return WithLineEnding(LineEndingCR)
}

// WithReadOnly marks the buffer non-editable; edit operations return
// ErrReadOnly and callers treat them as no-ops.
func WithReadOnly() Option {
	return func(b *Buffer) {
		b.readOnly = true
	}
}
