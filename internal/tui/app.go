package tui

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/jask/dragboard/internal/config"
	"github.com/jask/dragboard/internal/database/repository"
	"github.com/jask/dragboard/internal/dragdrop"
	"github.com/jask/dragboard/internal/prefs"
	"github.com/jask/dragboard/internal/service"
)

type mode string

const (
	modeBoard   mode = "board"
	modeNewCard mode = "newCard"
	modeSearch  mode = "search"
	modeHistory mode = "history"
)

// cardRef is the drag payload for a card.
type cardRef struct {
	card repository.Card
}

// App is the board model. Every drag engine callback runs inside Update.
type App struct {
	ctx    context.Context
	cfg    config.Config
	board  *service.BoardService
	finder service.Finder
	keys   *KeyRegistry
	help   help.Model
	input  textinput.Model

	zones   *zone.Manager
	bounds  boundsFunc
	sched   dragdrop.Scheduler
	reg     *dragdrop.Registry
	session *dragdrop.Session

	panes       []*columnPane
	dropRegs    []*dragdrop.Registration
	scrolls     []*dragdrop.AutoScroll
	statusReg   *dragdrop.Registration
	statusHover bool

	data      service.Board
	view      prefs.View
	width     int
	height    int
	colCursor int
	cardIdx   int
	mode      mode
	showHelp  bool
	status    string
	isErr     bool
	results   []repository.Card
	resultIdx int
	history   []repository.Move

	dragging  *cardRef
	rejected  bool
	releaseAt dragdrop.Point
	pending   []tea.Cmd
}

// Option customises App construction.
type Option func(*App)

// WithScheduler sets the timer source for drag polling and autoscroll.
func WithScheduler(s dragdrop.Scheduler) Option {
	return func(a *App) { a.sched = s }
}

// WithView restores a saved layout.
func WithView(v prefs.View) Option {
	return func(a *App) { a.view = v }
}

func withBounds(b boundsFunc) Option {
	return func(a *App) { a.bounds = b }
}

// New builds the board model. The drag session is validated against cfg.
func New(ctx context.Context, cfg config.Config, board *service.BoardService, opts ...Option) (*App, error) {
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		board:    board,
		keys:     NewKeyRegistry(),
		help:     help.New(),
		input:    textinput.New(),
		zones:    zone.New(),
		reg:      dragdrop.NewRegistry(),
		mode:     modeBoard,
		showHelp: cfg.UI.ShowHelp,
		view:     prefs.View{Scroll: map[string]int{}},
	}
	a.bounds = zoneBounds(a.zones)
	for _, opt := range opts {
		opt(a)
	}
	if a.sched == nil {
		a.sched = NewScheduler()
	}
	if a.view.Scroll == nil {
		a.view.Scroll = map[string]int{}
	}

	s, err := dragdrop.NewSession(a.reg, a.sched, paneResolver(func() []*columnPane { return a.panes }), cfg.Session())
	if err != nil {
		return nil, fmt.Errorf("drag session: %w", err)
	}
	s.OnRejectedChange(func(rejected bool) { a.rejected = rejected })
	s.OnEnd(a.dragEnded)
	a.session = s

	a.statusReg = a.reg.AddEventZone(cfg.Drag.Channel, &zoneRegion{id: "status", bounds: a.bounds}, nil, dragdrop.Hooks{
		Enter: func(dragdrop.Event, any, any) dragdrop.Verdict {
			a.statusHover = true
			return dragdrop.Accept
		},
		Leave: func(dragdrop.Event, any) { a.statusHover = false },
	})
	return a, nil
}

type boardMsg service.Board

type historyMsg []repository.Move

type movedMsg struct {
	title string
	to    string
	moved bool
}

type statusMsg string

type errMsg struct{ error }

func (a *App) Init() tea.Cmd {
	return a.loadBoard()
}

func (a *App) loadBoard() tea.Cmd {
	return func() tea.Msg {
		b, err := a.board.Load(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return boardMsg(b)
	}
}

func (a *App) loadHistory() tea.Cmd {
	return func() tea.Msg {
		moves, err := a.board.History(a.ctx, 50)
		if err != nil {
			return errMsg{err}
		}
		return historyMsg(moves)
	}
}

func (a *App) moveCmd(card repository.Card, toColumn string, index int) tea.Cmd {
	to := a.columnName(toColumn)
	return func() tea.Msg {
		moved, err := a.board.MoveCard(a.ctx, card.ID, toColumn, index)
		if err != nil {
			return errMsg{err}
		}
		return movedMsg{title: card.Title, to: to, moved: moved}
	}
}

func (a *App) addCardCmd(columnID, title string) tea.Cmd {
	return func() tea.Msg {
		c, err := a.board.AddCard(a.ctx, columnID, title)
		if err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("added %q", c.Title))
	}
}

func (a *App) toggleLockCmd(card repository.Card) tea.Cmd {
	return func() tea.Msg {
		locked, err := a.board.ToggleLock(a.ctx, card.ID)
		if err != nil {
			return errMsg{err}
		}
		if locked {
			return statusMsg(fmt.Sprintf("locked %q", card.Title))
		}
		return statusMsg(fmt.Sprintf("unlocked %q", card.Title))
	}
}

func (a *App) deleteCardCmd(card repository.Card) tea.Cmd {
	return func() tea.Msg {
		if err := a.board.DeleteCard(a.ctx, card.ID); err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("deleted %q", card.Title))
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		a.relayout()
	case tea.KeyMsg:
		cmd = a.handleKey(m)
	case tea.MouseMsg:
		a.handleMouse(m)
	case timerMsg:
		m.t.fire()
	case boardMsg:
		a.setBoard(service.Board(m))
	case historyMsg:
		a.history = []repository.Move(m)
	case movedMsg:
		if m.moved {
			a.setStatus(fmt.Sprintf("moved %q to %s", m.title, m.to))
		}
		cmd = a.loadBoard()
	case statusMsg:
		a.setStatus(string(m))
		cmd = a.loadBoard()
	case errMsg:
		log.Printf("error: %v", m.error)
		a.status, a.isErr = "error: "+m.Error(), true
		cmd = a.loadBoard()
	}
	return a, a.flush(cmd)
}

// flush batches commands queued by engine callbacks during this Update.
func (a *App) flush(cmd tea.Cmd) tea.Cmd {
	if len(a.pending) == 0 {
		return cmd
	}
	cmds := append(a.pending, cmd)
	a.pending = nil
	return tea.Batch(cmds...)
}

func (a *App) setStatus(s string) {
	a.status, a.isErr = s, false
}

// setBoard swaps in freshly loaded data and re-registers the columns. A
// running drag survives the reload unless its card is gone.
func (a *App) setBoard(b service.Board) {
	if a.dragging != nil {
		if col, idx, ok := b.Find(a.dragging.card.ID); ok {
			a.dragging.card = b.Columns[col].Cards[idx]
		} else {
			a.session.Abort(dragdrop.Event{})
		}
	}
	selected := a.selectedCard()
	a.data = b
	a.rebuildPanes()
	if selected != nil {
		if col, idx, ok := b.Find(selected.ID); ok {
			a.colCursor, a.cardIdx = col, idx
		}
	} else if a.view.Column != "" {
		for i, c := range b.Columns {
			if c.ID == a.view.Column {
				a.colCursor = i
			}
		}
	}
	a.clampCursor()
	a.relayout()
	a.session.Refresh()
}

func (a *App) rebuildPanes() {
	for _, p := range a.panes {
		a.view.Scroll[p.columnID] = p.Offset()
	}
	for _, r := range a.dropRegs {
		r.Dispose()
	}
	for _, s := range a.scrolls {
		s.Dispose()
	}
	a.panes, a.dropRegs, a.scrolls = nil, nil, nil

	channel := a.cfg.Drag.Channel
	scrollOpts := dragdrop.AutoScrollOptions{
		Delay:    a.cfg.Scroll.Delay,
		Interval: a.cfg.Scroll.Interval,
		Scroll:   []dragdrop.ScrollOption{dragdrop.WithScrollDelta(a.cfg.Scroll.MinDelta, a.cfg.Scroll.MaxDelta)},
	}
	for i := range a.data.Columns {
		col := a.data.Columns[i]
		p := newColumnPane(col.ID, a.bounds)
		p.scroll = float64(a.view.Scroll[col.ID])
		a.panes = append(a.panes, p)
		a.dropRegs = append(a.dropRegs, a.reg.AddDropZone(dragdrop.DropZoneSpec{
			Accepts: []string{channel},
			Region:  p,
			Data:    p,
			Hooks:   dragdrop.Hooks{Enter: a.columnEnter},
			Drop:    a.columnDrop,
			State:   func(vs dragdrop.VisualState) { p.visual = vs },
		}))
		a.scrolls = append(a.scrolls, dragdrop.NewAutoScroll(a.reg, channel, p, a.sched, scrollOpts))
	}
}

// columnEnter refuses cards from other columns once the WIP limit is reached.
func (a *App) columnEnter(_ dragdrop.Event, payload, data any) dragdrop.Verdict {
	ref, ok := payload.(*cardRef)
	if !ok {
		return dragdrop.Reject
	}
	p := data.(*columnPane)
	col := a.columnByID(p.columnID)
	if col == nil {
		return dragdrop.Reject
	}
	if ref.card.ColumnID != col.ID && col.Full() {
		return dragdrop.Reject
	}
	return dragdrop.Accept
}

func (a *App) columnDrop(payload, data any) {
	ref := payload.(*cardRef)
	p := data.(*columnPane)
	idx := a.dropIndex(p, a.releaseAt.Y)
	if a.cfg.Log.Debug {
		log.Printf("drop %s into %s at %d", ref.card.ID, p.columnID, idx)
	}
	a.pending = append(a.pending, a.moveCmd(ref.card, p.columnID, idx))
}

func (a *App) dragEnded(o dragdrop.Outcome) {
	if a.cfg.Log.Debug {
		log.Printf("drag end: dropped=%t canceled=%t", o.Dropped, o.Canceled)
	}
	a.dragging = nil
	a.rejected = false
	a.statusHover = false
	switch {
	case o.Canceled:
		a.setStatus("drag canceled")
	case !o.Dropped:
		a.setStatus("no column accepted the card")
	}
}

// dropIndex maps a screen row inside p to a card position.
func (a *App) dropIndex(p *columnPane, y float64) int {
	top, ok := p.bodyTop()
	if !ok {
		return 0
	}
	rel := max(0, int(y-top))
	n := 0
	if col := a.columnByID(p.columnID); col != nil {
		n = len(col.Cards)
	}
	return min(rel+p.Offset(), n)
}

// cardAt returns the column and card index under pt.
func (a *App) cardAt(pt dragdrop.Point) (col, idx int, ok bool) {
	for ci, p := range a.panes {
		box, visible := p.Bounds()
		if !visible || !box.Contains(pt) {
			continue
		}
		top := box.Top + 2
		if pt.Y < top || pt.Y >= box.Bottom() || pt.X <= box.Left || pt.X >= box.Left+box.Width {
			return ci, -1, false
		}
		i := int(pt.Y-top) + p.Offset()
		if i >= len(a.data.Columns[ci].Cards) {
			return ci, -1, false
		}
		return ci, i, true
	}
	return -1, -1, false
}

func (a *App) columnByID(id string) *service.ColumnView {
	for i := range a.data.Columns {
		if a.data.Columns[i].ID == id {
			return &a.data.Columns[i]
		}
	}
	return nil
}

func (a *App) columnName(id string) string {
	if c := a.columnByID(id); c != nil {
		return c.Name
	}
	return id
}

func (a *App) selectedCard() *repository.Card {
	if a.colCursor < 0 || a.colCursor >= len(a.data.Columns) {
		return nil
	}
	cards := a.data.Columns[a.colCursor].Cards
	if a.cardIdx < 0 || a.cardIdx >= len(cards) {
		return nil
	}
	c := cards[a.cardIdx]
	return &c
}

func (a *App) clampCursor() {
	a.colCursor = max(0, min(a.colCursor, len(a.data.Columns)-1))
	if len(a.data.Columns) == 0 {
		a.cardIdx = 0
		return
	}
	a.cardIdx = max(0, min(a.cardIdx, len(a.data.Columns[a.colCursor].Cards)-1))
}

// ScrollOffsets returns the first visible card per column.
func (a *App) ScrollOffsets() prefs.View {
	v := prefs.View{Scroll: make(map[string]int, len(a.panes))}
	for k, off := range a.view.Scroll {
		v.Scroll[k] = off
	}
	for _, p := range a.panes {
		v.Scroll[p.columnID] = p.Offset()
	}
	if a.colCursor >= 0 && a.colCursor < len(a.data.Columns) {
		v.Column = a.data.Columns[a.colCursor].ID
	}
	return v
}
