package config

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"skald/internal/engine/buffer"
	"skald/internal/renderer/viewport"
)

// Option keys. These are the names used in skald.toml and in :set
// style assignments.
const (
	KeyWrap       = "wrap"
	KeyLineBreak  = "linebreak"
	KeyTabStop    = "tabstop"
	KeyExpandTab  = "expandtab"
	KeyFileFormat = "fileformat"
)

// Scope names the layer an assignment lands on.
type Scope uint8

const (
	// ScopeGlobal is the base layer shared by every buffer and window.
	ScopeGlobal Scope = iota
	// ScopeBuffer overrides the global layer for one buffer.
	ScopeBuffer
	// ScopeWindow overrides both lower layers for one window.
	ScopeWindow
)

// String returns a human-readable scope name.
func (s Scope) String() string {
	switch s {
	case ScopeBuffer:
		return "buffer"
	case ScopeWindow:
		return "window"
	default:
		return "global"
	}
}

// overlay is one sparse layer: only explicitly assigned keys.
type overlay map[string]any

// Store holds the three option layers. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	global  viewport.Options
	buffers map[uuid.UUID]overlay
	windows map[int]overlay
}

// NewStore creates a store seeded with the built-in defaults.
func NewStore() *Store {
	return &Store{
		global:  viewport.DefaultOptions(),
		buffers: make(map[uuid.UUID]overlay),
		windows: make(map[int]overlay),
	}
}

// Global returns the base option layer.
func (s *Store) Global() viewport.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.global
}

// SetGlobal validates and assigns one option on the global layer.
func (s *Store) SetGlobal(key string, value any) error {
	v, err := validate(key, value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	applyKey(&s.global, key, v)
	return nil
}

// SetBuffer validates and assigns one buffer-local option.
func (s *Store) SetBuffer(id uuid.UUID, key string, value any) error {
	v, err := validate(key, value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.buffers[id]
	if o == nil {
		o = make(overlay)
		s.buffers[id] = o
	}
	o[key] = v
	return nil
}

// SetWindow validates and assigns one window-local option.
func (s *Store) SetWindow(win int, key string, value any) error {
	v, err := validate(key, value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.windows[win]
	if o == nil {
		o = make(overlay)
		s.windows[win] = o
	}
	o[key] = v
	return nil
}

// ClearBuffer drops a buffer's overrides, typically on buffer close.
func (s *Store) ClearBuffer(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buffers, id)
}

// ClearWindow drops a window's overrides.
func (s *Store) ClearWindow(win int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, win)
}

// Resolve merges global < buffer < window into one concrete option
// set for the given buffer and window.
func (s *Store) Resolve(bufID uuid.UUID, win int) viewport.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()

	opts := s.global
	for k, v := range s.buffers[bufID] {
		applyKey(&opts, k, v)
	}
	for k, v := range s.windows[win] {
		applyKey(&opts, k, v)
	}
	return opts
}

// validate normalizes a raw value for the given key, or reports why it
// cannot be assigned. TOML integers arrive as int64; both int and
// int64 are accepted.
func validate(key string, value any) (any, error) {
	switch key {
	case KeyWrap, KeyLineBreak, KeyExpandTab:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%s: want boolean, got %T: %w", key, value, ErrInvalidOption)
		}
		return b, nil

	case KeyTabStop:
		n, ok := toInt(value)
		if !ok {
			return nil, fmt.Errorf("%s: want integer, got %T: %w", key, value, ErrInvalidOption)
		}
		if n < 1 || n > 255 {
			return nil, fmt.Errorf("%s: %d out of range 1..255: %w", key, n, ErrInvalidOption)
		}
		return n, nil

	case KeyFileFormat:
		f, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%s: want string, got %T: %w", key, value, ErrInvalidOption)
		}
		if _, ok := buffer.LineEndingFromFileFormat(f); !ok {
			return nil, fmt.Errorf("%s: %q is not unix, dos, or mac: %w", key, f, ErrInvalidOption)
		}
		return f, nil

	default:
		return nil, fmt.Errorf("%s: %w", key, ErrUnknownOption)
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

// applyKey writes one validated value into an option set.
func applyKey(o *viewport.Options, key string, v any) {
	switch key {
	case KeyWrap:
		o.Wrap = v.(bool)
	case KeyLineBreak:
		o.LineBreak = v.(bool)
	case KeyTabStop:
		o.TabStop = v.(int)
	case KeyExpandTab:
		o.ExpandTab = v.(bool)
	case KeyFileFormat:
		o.FileFormat = v.(string)
	}
}
