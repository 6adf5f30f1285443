package app

import (
	"github.com/gdamore/tcell/v2"

	"skald/internal/engine/cursor"
)

// handleKey dispatches one key event by editing mode.
func (s *Session) handleKey(ev *tcell.EventKey) error {
	if s.ctrl.Cursor().Mode() == cursor.ModeInsert {
		return s.handleInsertKey(ev)
	}
	return s.handleNormalKey(ev)
}

// takeCount consumes the accumulated numeric prefix, defaulting to 1.
func (s *Session) takeCount() int {
	n := s.count
	s.count = 0
	if n < 1 {
		n = 1
	}
	return n
}

func (s *Session) handleNormalKey(ev *tcell.EventKey) error {
	// Keys that work regardless of pending state.
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		return ErrQuit
	case tcell.KeyCtrlS:
		if err := s.Save(); err != nil {
			return err
		}
		return nil
	case tcell.KeyLeft:
		s.ctrl.MoveLeft(s.takeCount())
		return nil
	case tcell.KeyRight:
		s.ctrl.MoveRight(s.takeCount())
		return nil
	case tcell.KeyUp:
		s.ctrl.MoveUp(s.takeCount())
		return nil
	case tcell.KeyDown:
		s.ctrl.MoveDown(s.takeCount())
		return nil
	case tcell.KeyPgDn:
		s.ctrl.PageDown()
		return nil
	case tcell.KeyPgUp:
		s.ctrl.PageUp()
		return nil
	case tcell.KeyCtrlD:
		s.ctrl.HalfPageDown()
		return nil
	case tcell.KeyCtrlU:
		s.ctrl.HalfPageUp()
		return nil
	case tcell.KeyHome:
		s.ctrl.LineStart()
		return nil
	case tcell.KeyEnd:
		s.ctrl.LineEnd()
		return nil
	case tcell.KeyDelete:
		s.edit("delete", s.ctrl.DeleteForward)
		return nil
	case tcell.KeyCtrlR:
		s.replay(s.takeCount(), s.ctrl.Redo)
		return nil
	}

	if ev.Key() != tcell.KeyRune {
		s.pendingG = false
		return nil
	}

	r := ev.Rune()

	if s.pendingG {
		s.pendingG = false
		if r == 'g' {
			if s.count > 0 {
				s.ctrl.GotoLine(s.takeCount())
			} else {
				s.ctrl.BufferStart()
			}
		}
		return nil
	}

	// Count prefix: 1-9 always start one, 0 continues one but alone
	// is the line-start motion.
	if r >= '1' && r <= '9' || (r == '0' && s.count > 0) {
		s.count = s.count*10 + int(r-'0')
		return nil
	}

	switch r {
	case 'h':
		s.ctrl.MoveLeft(s.takeCount())
	case 'l':
		s.ctrl.MoveRight(s.takeCount())
	case 'k':
		s.ctrl.MoveUp(s.takeCount())
	case 'j':
		s.ctrl.MoveDown(s.takeCount())
	case 'w':
		s.ctrl.WordForward(s.takeCount())
	case 'b':
		s.ctrl.WordBackward(s.takeCount())
	case 'e':
		s.ctrl.WordEndForward(s.takeCount())
	case '0':
		s.ctrl.LineStart()
	case '$':
		s.ctrl.LineEnd()
	case '^':
		s.ctrl.FirstNonBlank()
	case 'G':
		if s.count > 0 {
			s.ctrl.GotoLine(s.takeCount())
		} else {
			s.ctrl.BufferEnd()
		}
	case 'g':
		s.pendingG = true
	case 'i':
		s.ctrl.EnterInsert(false)
	case 'a':
		s.ctrl.EnterInsert(true)
	case 'I':
		s.ctrl.FirstNonBlank()
		s.ctrl.EnterInsert(false)
	case 'A':
		s.ctrl.LineEnd()
		s.ctrl.EnterInsert(true)
	case 'o':
		s.ctrl.LineEnd()
		s.ctrl.EnterInsert(true)
		s.edit("open", s.ctrl.InsertNewline)
	case 'O':
		s.ctrl.LineStart()
		s.ctrl.EnterInsert(false)
		s.edit("open", s.ctrl.InsertNewline)
		s.ctrl.MoveUp(1)
	case 'u':
		s.replay(s.takeCount(), s.ctrl.Undo)
	case 'x':
		n := s.takeCount()
		if n > 1 {
			s.ctrl.History().BeginGroup()
		}
		for i := n; i > 0; i-- {
			s.edit("delete", s.ctrl.DeleteForward)
		}
		if n > 1 {
			s.ctrl.History().EndGroup()
		}
	case 'J':
		s.edit("join", s.ctrl.JoinWithNext)
	default:
		s.count = 0
	}
	return nil
}

func (s *Session) handleInsertKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape:
		s.ctrl.ExitInsert()
	case tcell.KeyEnter:
		s.edit("newline", s.ctrl.InsertNewline)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		s.edit("backspace", s.ctrl.DeleteBackward)
	case tcell.KeyDelete:
		s.edit("delete", s.ctrl.DeleteForward)
	case tcell.KeyTab:
		s.edit("tab", s.ctrl.InsertTab)
	case tcell.KeyLeft:
		s.ctrl.MoveLeft(1)
	case tcell.KeyRight:
		s.ctrl.MoveRight(1)
	case tcell.KeyUp:
		s.ctrl.MoveUp(1)
	case tcell.KeyDown:
		s.ctrl.MoveDown(1)
	case tcell.KeyRune:
		r := ev.Rune()
		s.edit("insert", func() error { return s.ctrl.InsertRune(r) })
	}
	return nil
}
