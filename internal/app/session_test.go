package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"skald/internal/config"
	"skald/internal/engine/cursor"
	"skald/internal/renderer/backend"
)

func newTestSession(t *testing.T, content string) *Session {
	t.Helper()

	path := ""
	if content != "" {
		path = filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	s, err := NewSession(backend.NewScreenBuffer(20, 6), nil, config.NewStore(), path)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func special(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func press(t *testing.T, s *Session, evs ...*tcell.EventKey) {
	t.Helper()
	for _, ev := range evs {
		if err := s.HandleEvent(ev); err != nil {
			t.Fatalf("HandleEvent(%v): %v", ev, err)
		}
	}
}

func TestNormalModeMotionKeys(t *testing.T) {
	s := newTestSession(t, "alpha\nbeta\ngamma\n")

	press(t, s, key('j'), key('l'), key('l'))
	if got := s.Controller().Cursor().Pos(); got.Line != 1 || got.Col != 2 {
		t.Errorf("cursor = %+v, want line 1 col 2", got)
	}

	press(t, s, key('G'))
	if got := s.Controller().Cursor().Pos().Line; got != 3 {
		t.Errorf("G: line = %d, want last line 3", got)
	}

	press(t, s, key('g'), key('g'))
	if got := s.Controller().Cursor().Pos().Line; got != 0 {
		t.Errorf("gg: line = %d, want 0", got)
	}
}

func TestCountPrefix(t *testing.T) {
	s := newTestSession(t, "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\nk\nl\nm\n")

	press(t, s, key('1'), key('2'), key('j'))
	if got := s.Controller().Cursor().Pos().Line; got != 12 {
		t.Errorf("12j: line = %d, want 12", got)
	}

	press(t, s, key('3'), key('G'))
	if got := s.Controller().Cursor().Pos().Line; got != 2 {
		t.Errorf("3G: line = %d, want 2", got)
	}
}

func TestInsertModeRoundTrip(t *testing.T) {
	s := newTestSession(t, "")

	press(t, s, key('i'), key('h'), key('i'), special(tcell.KeyEnter), key('!'), special(tcell.KeyEscape))

	snap := s.Controller().Buffer().Snapshot()
	if snap.LineText(0) != "hi" || snap.LineText(1) != "!" {
		t.Errorf("lines = %q, %q", snap.LineText(0), snap.LineText(1))
	}
	if s.Controller().Cursor().Mode() != cursor.ModeNormal {
		t.Error("still in insert mode after escape")
	}
	if !s.Modified() {
		t.Error("modified flag not set")
	}
}

func TestBackspaceInInsertMode(t *testing.T) {
	s := newTestSession(t, "")

	press(t, s, key('i'), key('a'), key('b'), special(tcell.KeyBackspace2))
	if got := s.Controller().Buffer().Snapshot().LineText(0); got != "a" {
		t.Errorf("line = %q, want %q", got, "a")
	}
}

func TestDeleteKeyInNormalMode(t *testing.T) {
	s := newTestSession(t, "abc\n")

	press(t, s, key('x'))
	if got := s.Controller().Buffer().Snapshot().LineText(0); got != "bc" {
		t.Errorf("line = %q, want %q", got, "bc")
	}

	press(t, s, key('2'), key('x'))
	if got := s.Controller().Buffer().Snapshot().LineText(0); got != "" {
		t.Errorf("line = %q, want empty", got)
	}
}

func TestUndoRedoKeys(t *testing.T) {
	s := newTestSession(t, "one two\n")

	press(t, s, key('x'))
	if got := s.Controller().Buffer().Snapshot().LineText(0); got != "ne two" {
		t.Fatalf("line = %q, want %q", got, "ne two")
	}

	press(t, s, key('u'))
	if got := s.Controller().Buffer().Snapshot().LineText(0); got != "one two" {
		t.Errorf("after u: line = %q, want %q", got, "one two")
	}

	press(t, s, special(tcell.KeyCtrlR))
	if got := s.Controller().Buffer().Snapshot().LineText(0); got != "ne two" {
		t.Errorf("after ctrl-r: line = %q, want %q", got, "ne two")
	}
}

func TestCountedDeleteUndoesAsUnit(t *testing.T) {
	s := newTestSession(t, "abcde\n")

	press(t, s, key('3'), key('x'))
	if got := s.Controller().Buffer().Snapshot().LineText(0); got != "de" {
		t.Fatalf("line = %q, want %q", got, "de")
	}

	press(t, s, key('u'))
	if got := s.Controller().Buffer().Snapshot().LineText(0); got != "abcde" {
		t.Errorf("after u: line = %q, want the whole delete undone", got)
	}
}

func TestUndoInsertSessionKey(t *testing.T) {
	s := newTestSession(t, "start\n")

	press(t, s, key('i'), key('h'), key('i'), special(tcell.KeyEscape))
	if got := s.Controller().Buffer().Snapshot().LineText(0); got != "histart" {
		t.Fatalf("line = %q, want %q", got, "histart")
	}

	press(t, s, key('u'))
	if got := s.Controller().Buffer().Snapshot().LineText(0); got != "start" {
		t.Errorf("after u: line = %q, want %q", got, "start")
	}
}

func TestDeleteKeyOnEmptyLineKeepsLine(t *testing.T) {
	s := newTestSession(t, "a\n\nb\n")

	press(t, s, key('j'), key('x'))
	snap := s.Controller().Buffer().Snapshot()
	if snap.LineText(1) != "" || snap.LineText(2) != "b" {
		t.Errorf("buffer = %q, want the empty line kept", snap.Text())
	}
}

func TestOpenLineBelow(t *testing.T) {
	s := newTestSession(t, "one\ntwo\n")

	press(t, s, key('o'), key('x'), special(tcell.KeyEscape))
	snap := s.Controller().Buffer().Snapshot()
	if snap.LineText(0) != "one" || snap.LineText(1) != "x" || snap.LineText(2) != "two" {
		t.Errorf("lines = %q, %q, %q", snap.LineText(0), snap.LineText(1), snap.LineText(2))
	}
}

func TestOpenLineAbove(t *testing.T) {
	s := newTestSession(t, "one\ntwo\n")

	press(t, s, key('j'), key('O'), key('x'), special(tcell.KeyEscape))
	snap := s.Controller().Buffer().Snapshot()
	if snap.LineText(0) != "one" || snap.LineText(1) != "x" || snap.LineText(2) != "two" {
		t.Errorf("lines = %q, %q, %q", snap.LineText(0), snap.LineText(1), snap.LineText(2))
	}
}

func TestCtrlQQuits(t *testing.T) {
	s := newTestSession(t, "")
	if err := s.HandleEvent(special(tcell.KeyCtrlQ)); err != ErrQuit {
		t.Errorf("Ctrl-Q: err = %v, want ErrQuit", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "save.txt")
	if err := os.WriteFile(path, []byte("start\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewSession(backend.NewScreenBuffer(20, 6), nil, config.NewStore(), path)
	if err != nil {
		t.Fatal(err)
	}

	press(t, s, key('A'), key('!'), special(tcell.KeyEscape))
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	if s.Modified() {
		t.Error("modified flag survived save")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "start!\n" {
		t.Errorf("file = %q, want %q", got, "start!\n")
	}
}

func TestSaveWithoutPath(t *testing.T) {
	s := newTestSession(t, "")
	press(t, s, key('i'), key('z'), special(tcell.KeyEscape))
	if err := s.Save(); err != ErrNoFile {
		t.Errorf("err = %v, want ErrNoFile", err)
	}
}

func TestResizeKeepsCursorVisible(t *testing.T) {
	s := newTestSession(t, "a\nb\nc\nd\ne\nf\ng\nh\n")

	press(t, s, key('G'))
	s.resize(20, 3)
	vp, _ := s.Controller().Viewport()
	if !vp.Visible(s.Controller().Cursor().Pos()) {
		t.Error("cursor left the viewport after resize")
	}
}

func TestRenderPaintsBuffer(t *testing.T) {
	sb := backend.NewScreenBuffer(10, 4)
	s, err := NewSession(sb, nil, config.NewStore(), "")
	if err != nil {
		t.Fatal(err)
	}

	press(t, s, key('i'), key('o'), key('k'), special(tcell.KeyEscape))
	s.Render()

	if got := sb.Row(0); got != "ok" {
		t.Errorf("row 0 = %q, want %q", got, "ok")
	}
	if got := sb.Row(1); got != "~" {
		t.Errorf("row 1 = %q, want filler", got)
	}
	if x, y, shown := sb.Cursor(); !shown || y != 0 || x != 1 {
		t.Errorf("cursor = (%d,%d,%v), want (1,0,true)", x, y, shown)
	}
}
