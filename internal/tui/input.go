package tui

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/dragboard/internal/dragdrop"
)

func buttonOf(b tea.MouseButton) dragdrop.Button {
	switch b {
	case tea.MouseButtonLeft:
		return dragdrop.ButtonPrimary
	case tea.MouseButtonMiddle:
		return dragdrop.ButtonMiddle
	case tea.MouseButtonRight:
		return dragdrop.ButtonSecondary
	default:
		return dragdrop.ButtonNone
	}
}

func (a *App) handleMouse(m tea.MouseMsg) {
	ev := dragdrop.Event{X: float64(m.X), Y: float64(m.Y), Button: buttonOf(m.Button)}
	if tea.MouseEvent(m).IsWheel() {
		if a.session.State() == dragdrop.Idle && a.mode == modeBoard {
			a.wheel(m)
		}
		return
	}
	switch m.Action {
	case tea.MouseActionPress:
		a.press(ev)
	case tea.MouseActionMotion:
		a.session.Move(ev)
	case tea.MouseActionRelease:
		// X10 reporting does not say which button was released.
		if ev.Button == dragdrop.ButtonNone {
			ev.Button = dragdrop.ButtonPrimary
		}
		a.releaseAt = ev.Point()
		a.session.Release(ev)
	}
}

func (a *App) press(ev dragdrop.Event) {
	if a.session.State() == dragdrop.Dragging {
		_ = a.session.Press(ev, dragdrop.Source{})
		return
	}
	if a.mode != modeBoard {
		return
	}
	ci, idx, ok := a.cardAt(ev.Point())
	if ci < 0 {
		return
	}
	a.colCursor = ci
	if !ok {
		return
	}
	a.cardIdx = idx
	if ev.Button != dragdrop.ButtonPrimary {
		return
	}
	src := dragdrop.Source{
		Channel: a.cfg.Drag.Channel,
		Payload: &cardRef{card: a.data.Columns[ci].Cards[idx]},
		Hooks:   dragdrop.DragHooks{Start: a.dragStart},
	}
	if err := a.session.Press(ev, src); err != nil {
		a.status, a.isErr = "error: "+err.Error(), true
	}
}

// dragStart refuses locked cards.
func (a *App) dragStart(payload any, _ dragdrop.Event) dragdrop.Verdict {
	ref := payload.(*cardRef)
	if ref.card.Locked {
		a.setStatus(fmt.Sprintf("%q is locked", ref.card.Title))
		return dragdrop.Reject
	}
	a.dragging = ref
	a.setStatus("")
	if a.cfg.Log.Debug {
		log.Printf("drag start %s from %s", ref.card.ID, ref.card.ColumnID)
	}
	return dragdrop.Accept
}

func (a *App) wheel(m tea.MouseMsg) {
	pt := dragdrop.Point{X: float64(m.X), Y: float64(m.Y)}
	for _, p := range a.panes {
		if box, ok := p.Bounds(); ok && box.Contains(pt) {
			switch m.Button {
			case tea.MouseButtonWheelUp:
				p.SetScrollTop(p.ScrollTop() - 1)
			case tea.MouseButtonWheelDown:
				p.SetScrollTop(p.ScrollTop() + 1)
			}
			return
		}
	}
}

func (a *App) handleKey(m tea.KeyMsg) tea.Cmd {
	switch a.mode {
	case modeNewCard:
		return a.handleInputKey(m)
	case modeSearch:
		return a.handleSearchKey(m)
	case modeHistory:
		if b := a.keys.Lookup(m.String(), scopeHistory); b != nil {
			if b.Action == actionQuit {
				return tea.Quit
			}
			a.mode = modeBoard
		}
		return nil
	}

	b := a.keys.Lookup(m.String(), scopeBoard)
	if b == nil {
		return nil
	}
	switch b.Action {
	case actionQuit:
		a.session.Abort(dragdrop.Event{})
		return tea.Quit
	case actionHelp:
		a.showHelp = true
		a.help.ShowAll = !a.help.ShowAll
		a.relayout()
	case actionUp:
		a.cardIdx--
		a.clampCursor()
		a.ensureVisible()
	case actionDown:
		a.cardIdx++
		a.clampCursor()
		a.ensureVisible()
	case actionLeft:
		a.colCursor--
		a.clampCursor()
		a.ensureVisible()
	case actionRight:
		a.colCursor++
		a.clampCursor()
		a.ensureVisible()
	case actionMoveLeft, actionMoveRight:
		card := a.selectedCard()
		step := 1
		if b.Action == actionMoveLeft {
			step = -1
		}
		to := a.colCursor + step
		if card == nil || to < 0 || to >= len(a.data.Columns) {
			return nil
		}
		return a.moveCmd(*card, a.data.Columns[to].ID, len(a.data.Columns[to].Cards))
	case actionSearch:
		a.openInput(modeSearch, "search cards")
		a.results, a.resultIdx = nil, 0
	case actionNewCard:
		if len(a.data.Columns) == 0 {
			return nil
		}
		a.openInput(modeNewCard, "card title")
	case actionToggleLock:
		if card := a.selectedCard(); card != nil {
			return a.toggleLockCmd(*card)
		}
	case actionDelete:
		if card := a.selectedCard(); card != nil {
			return a.deleteCardCmd(*card)
		}
	case actionHistory:
		a.mode = modeHistory
		return a.loadHistory()
	case actionCancel:
		a.session.Abort(dragdrop.Event{})
	}
	return nil
}

func (a *App) openInput(m mode, placeholder string) {
	a.mode = m
	a.input.Reset()
	a.input.Placeholder = placeholder
	a.input.Focus()
}

func (a *App) closeInput() {
	a.input.Blur()
	a.mode = modeBoard
}

func (a *App) handleInputKey(m tea.KeyMsg) tea.Cmd {
	if b := a.keys.Lookup(m.String(), scopeInput); b != nil {
		switch b.Action {
		case actionQuit:
			return tea.Quit
		case actionCancel:
			a.closeInput()
		case actionConfirm:
			title := a.input.Value()
			a.closeInput()
			return a.addCardCmd(a.data.Columns[a.colCursor].ID, title)
		}
		return nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return cmd
}

func (a *App) handleSearchKey(m tea.KeyMsg) tea.Cmd {
	if b := a.keys.Lookup(m.String(), scopeSearch); b != nil {
		switch b.Action {
		case actionQuit:
			return tea.Quit
		case actionCancel:
			a.closeInput()
		case actionUp:
			a.resultIdx = max(0, a.resultIdx-1)
		case actionDown:
			a.resultIdx = min(len(a.results)-1, a.resultIdx+1)
		case actionConfirm:
			if a.resultIdx >= 0 && a.resultIdx < len(a.results) {
				if col, idx, ok := a.data.Find(a.results[a.resultIdx].ID); ok {
					a.colCursor, a.cardIdx = col, idx
					a.ensureVisible()
				}
			}
			a.closeInput()
		}
		return nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	a.results = a.finder.Search(a.data.Cards(), a.input.Value(), 8)
	a.resultIdx = 0
	return cmd
}

// ensureVisible scrolls the focused column so the selected card shows.
func (a *App) ensureVisible() {
	if a.colCursor < 0 || a.colCursor >= len(a.panes) {
		return
	}
	p := a.panes[a.colCursor]
	rows := a.visibleRows()
	switch off := p.Offset(); {
	case a.cardIdx < off:
		p.SetScrollTop(float64(a.cardIdx))
	case a.cardIdx >= off+rows:
		p.SetScrollTop(float64(a.cardIdx - rows + 1))
	}
}
