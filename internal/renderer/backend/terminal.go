package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"skald/internal/renderer/core"
)

// Terminal draws through a tcell screen. All methods are safe for
// concurrent use; tcell handles the actual terminal protocol.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
}

// NewTerminal allocates and initializes a tcell-backed terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalFromScreen wraps an existing screen, used with tcell's
// simulation screen in tests.
func NewTerminalFromScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	if cell.IsContinuation() {
		// tcell manages wide-rune continuation itself.
		return
	}

	main, comb := splitCluster(cell.Text)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetContent(x, y, main, comb, cell.Style.Tcell())
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.HideCursor()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

// PollEvent blocks for the next terminal event.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// PostEvent queues a synthetic event, waking a blocked PollEvent.
func (t *Terminal) PostEvent(ev tcell.Event) {
	_ = t.screen.PostEvent(ev)
}

// Sync forces a full repaint, used after resume or corruption.
func (t *Terminal) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Sync()
}

// splitCluster breaks a grapheme cluster into the primary rune and the
// combining runes tcell wants separately.
func splitCluster(text string) (rune, []rune) {
	if text == "" {
		return ' ', nil
	}
	runes := []rune(text)
	if len(runes) == 1 {
		return runes[0], nil
	}
	return runes[0], runes[1:]
}
