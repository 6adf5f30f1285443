package app

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"skald/internal/config"
	"skald/internal/editor"
	"skald/internal/engine/buffer"
	"skald/internal/renderer"
	"skald/internal/renderer/backend"
	"skald/internal/renderer/viewport"
)

// EventSource delivers terminal events. The tcell terminal backend
// implements it; headless tests drive the session directly instead.
type EventSource interface {
	PollEvent() tcell.Event
	PostEvent(ev tcell.Event)
}

// Session is one open file in one window: buffer, controller, layered
// options, and the paint path.
type Session struct {
	surface backend.Backend
	events  EventSource
	store   *config.Store
	ctrl    *editor.Controller
	paint   *renderer.Renderer

	path     string
	winID    int
	modified bool

	// count accumulates a numeric prefix in normal mode; pendingG
	// tracks a leading g for gg.
	count    int
	pendingG bool
}

// NewSession opens path (an empty unnamed buffer when path is "") on
// the given surface. Options resolve through the store's layers for
// this buffer and window.
func NewSession(surface backend.Backend, events EventSource, store *config.Store, path string) (*Session, error) {
	buf, err := loadBuffer(path, store.Global().FileFormat)
	if err != nil {
		return nil, err
	}

	width, height := surface.Size()
	geom := viewport.Geometry{Width: width, Height: height}
	opts := store.Resolve(buf.ID(), 0)

	s := &Session{
		surface: surface,
		events:  events,
		store:   store,
		ctrl:    editor.NewController(buf, geom, opts),
		paint:   renderer.New(),
		path:    path,
	}
	log.Info().Str("path", path).Int("lines", buf.LineCount()).Msg("session opened")
	return s, nil
}

func loadBuffer(path, fileformat string) (*buffer.Buffer, error) {
	le, _ := buffer.LineEndingFromFileFormat(fileformat)

	if path == "" {
		return buffer.NewBuffer(buffer.WithLineEnding(le)), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return buffer.NewBuffer(buffer.WithLineEnding(le)), nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	buf, err := buffer.NewBufferFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return buf, nil
}

// ReloadOptions re-resolves the layered options for this buffer and
// window, picking up store changes.
func (s *Session) ReloadOptions() {
	s.ctrl.SetOptions(s.store.Resolve(s.ctrl.Buffer().ID(), s.winID))
}

// Controller exposes the session's controller, mainly for tests.
func (s *Session) Controller() *editor.Controller { return s.ctrl }

// Modified reports unsaved changes.
func (s *Session) Modified() bool { return s.modified }

// Run renders and handles events until an event handler returns an
// error; a quit request surfaces as ErrQuit. Only meaningful with a
// real event source.
func (s *Session) Run() error {
	for {
		s.Render()
		if err := s.HandleEvent(s.events.PollEvent()); err != nil {
			return err
		}
	}
}

// Render paints the current viewport and cursor and flushes.
func (s *Session) Render() {
	vp, snap := s.ctrl.Viewport()
	s.paint.Paint(s.surface, vp, snap, s.ctrl.Cache())

	geom := s.ctrl.Geometry()
	if row, col, ok := s.ctrl.ScreenCursor(); ok {
		s.surface.ShowCursor(geom.X+col, geom.Y+row)
	} else {
		s.surface.HideCursor()
	}
	s.surface.Show()
}

// HandleEvent routes one terminal event. ErrQuit requests exit.
func (s *Session) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		width, height := ev.Size()
		s.resize(width, height)
		return nil
	case *tcell.EventKey:
		return s.handleKey(ev)
	default:
		return nil
	}
}

func (s *Session) resize(width, height int) {
	geom := s.ctrl.Geometry()
	geom.Width, geom.Height = width, height
	s.ctrl.Resize(geom)
	s.surface.Clear()
	log.Debug().Int("width", width).Int("height", height).Msg("resized")
}

// Save writes the buffer back to its file using the buffer's line
// ending.
func (s *Session) Save() error {
	if s.path == "" {
		return ErrNoFile
	}

	snap := s.ctrl.Buffer().Snapshot()
	if err := os.WriteFile(s.path, []byte(snap.Text()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	s.modified = false
	log.Info().Str("path", s.path).Int("lines", snap.LineCount()).Msg("saved")
	return nil
}

// edit runs one buffer mutation, tracking the modified flag and
// logging rejections instead of surfacing them to the event loop.
func (s *Session) edit(op string, fn func() error) {
	if err := fn(); err != nil {
		log.Warn().Err(err).Str("op", op).Msg("edit rejected")
		return
	}
	s.modified = true
}

// replay steps undo or redo n times, stopping quietly when the
// history stack runs out.
func (s *Session) replay(n int, step func() error) {
	for i := 0; i < n; i++ {
		if err := step(); err != nil {
			return
		}
		s.modified = true
	}
}
