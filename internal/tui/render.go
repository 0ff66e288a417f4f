package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/dragboard/internal/dragdrop"
	"github.com/jask/dragboard/internal/service"
	"github.com/jask/dragboard/widgets"
)

func (a *App) helpView() string {
	if !a.showHelp {
		return ""
	}
	scope := scopeBoard
	switch a.mode {
	case modeNewCard:
		scope = scopeInput
	case modeSearch:
		scope = scopeSearch
	case modeHistory:
		scope = scopeHistory
	}
	return a.help.View(helpKeyMap{bindings: a.keys.HelpBindings(scope)})
}

func (a *App) boardHeight() int {
	h := a.height - 2
	if v := a.helpView(); v != "" {
		h -= lipgloss.Height(v)
	}
	return max(4, h)
}

// visibleRows is the number of card rows a column shows.
func (a *App) visibleRows() int {
	return max(1, a.boardHeight()-3)
}

// relayout recomputes scroll limits after a size or data change.
func (a *App) relayout() {
	rows := a.visibleRows()
	for i, p := range a.panes {
		if i < len(a.data.Columns) {
			p.setMaxTop(len(a.data.Columns[i].Cards) - rows)
		}
	}
}

// mark tags s with a zone id while the board is interactive.
func (a *App) mark(id, s string) string {
	if a.mode != modeBoard {
		return s
	}
	return a.zones.Mark(id, s)
}

type columnWidget struct {
	app *App
	idx int
}

func (c columnWidget) Render(width, height int) string {
	a := c.app
	col := a.data.Columns[c.idx]
	p := a.panes[c.idx]
	inner := max(1, width-2)
	rows := max(1, height-3)
	off := p.Offset()

	title := fmt.Sprintf("%s (%d", col.Name, len(col.Cards))
	if col.WIPLimit > 0 {
		title += fmt.Sprintf("/%d", col.WIPLimit)
	}
	title += ")"
	if col.Full() {
		title += " " + a.cfg.UI.WIPMarker
	}
	if off > 0 {
		title += " ↑"
	}
	if off+rows < len(col.Cards) {
		title += " ↓"
	}

	lines := make([]string, 0, rows)
	for i := off; i < len(col.Cards) && len(lines) < rows; i++ {
		lines = append(lines, a.cardLine(col, i, inner))
	}

	style := columnStyle
	switch {
	case p.visual.Accepting:
		style = acceptingStyle
	case p.visual.Rejecting:
		style = rejectingStyle
	case c.idx == a.colCursor:
		style = focusedColumn
	}
	box := widgets.Box{
		Title:   headerStyle.Render(ansi.Truncate(title, inner, "…")),
		Content: strings.Join(lines, "\n"),
		Style:   style,
	}
	return a.mark(p.id, box.Render(width, height))
}

func (a *App) cardLine(col service.ColumnView, i, width int) string {
	card := col.Cards[i]
	prefix := "  "
	if card.Locked {
		prefix = "# "
	}
	text := ansi.Truncate(prefix+card.Title, width, "…")
	switch {
	case a.dragging != nil && a.dragging.card.ID == card.ID:
		return draggedStyle.Render(text)
	case a.mode == modeBoard && a.data.Columns[a.colCursor].ID == col.ID && a.cardIdx == i:
		return selectedStyle.Render(text)
	case card.Locked:
		return lockedStyle.Render(text)
	}
	return text
}

func (a *App) statusLine() string {
	var s string
	switch {
	case a.dragging != nil:
		s = fmt.Sprintf("dragging %q", a.dragging.card.Title)
		if a.statusHover {
			s += " · release here to cancel"
		} else if a.rejected {
			s += " · no column will take it here"
		}
		return statusStyle.Render(s)
	case a.isErr:
		return errorStyle.Render(a.status)
	}
	return statusStyle.Render(a.status)
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "loading..."
	}

	header := headerStyle.Render("dragboard")
	if a.session.State() == dragdrop.Dragging {
		header += statusStyle.Render("  drag in progress")
	}

	var body widgets.Widget
	if len(a.data.Columns) == 0 {
		body = widgets.Static("No columns yet.")
	} else {
		ws := make([]widgets.Widget, len(a.data.Columns))
		for i := range a.data.Columns {
			ws[i] = columnWidget{app: a, idx: i}
		}
		body = widgets.HStack{Widgets: ws, Gap: 1}
	}

	status := a.mark("status", lipgloss.NewStyle().Width(a.width).MaxWidth(a.width).Render(a.statusLine()))
	stack := widgets.VStack{
		Widgets: []widgets.Widget{widgets.Static(header), body, widgets.Static(status)},
		Heights: []int{1, a.boardHeight(), 1},
	}
	if h := a.helpView(); h != "" {
		stack.Widgets = append(stack.Widgets, widgets.Static(h))
		stack.Heights = append(stack.Heights, lipgloss.Height(h))
	}
	out := stack.Render(a.width, a.height)

	switch a.mode {
	case modeNewCard:
		out = a.popup("New card in "+a.data.Columns[a.colCursor].Name, a.input.View(), out)
	case modeSearch:
		out = a.popup("Search", a.searchView(), out)
	case modeHistory:
		out = a.popup("History", a.historyView(), out)
	}
	return a.zones.Scan(out)
}

func (a *App) popup(title, body, base string) string {
	return widgets.Popup{Title: title, Body: body, TitleStyle: titleStyle}.Over(base, a.width, a.height)
}

func (a *App) searchView() string {
	items := make([]string, len(a.results))
	for i, c := range a.results {
		items[i] = fmt.Sprintf("%s  (%s)", c.Title, a.columnName(c.ColumnID))
	}
	list := widgets.List{Title: a.input.View(), Items: items, Selected: a.resultIdx}
	return list.Render(max(20, a.width/2), len(items)+1)
}

func (a *App) historyView() string {
	titles := make(map[string]string)
	for _, c := range a.data.Cards() {
		titles[c.ID] = c.Title
	}
	rows := make([][]string, 0, len(a.history))
	for _, m := range a.history {
		name := titles[m.CardID]
		if name == "" {
			name = m.CardID[:min(8, len(m.CardID))]
		}
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%s #%d", a.columnName(m.FromColumn), m.FromPosition+1),
			fmt.Sprintf("%s #%d", a.columnName(m.ToColumn), m.ToPosition+1),
			m.MovedAt.Local().Format(time.DateTime),
		})
	}
	if len(rows) == 0 {
		return "No moves yet."
	}
	height := min(len(rows)+1, max(3, a.height-8))
	table := widgets.Table{Headers: []string{"Card", "From", "To", "When"}, Rows: rows}
	return table.Render(max(40, a.width*2/3), height)
}
