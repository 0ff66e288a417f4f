package widgets

import "github.com/charmbracelet/lipgloss"

// Box draws a bordered pane. Style should carry the border; a zero Style
// gets a rounded one.
type Box struct {
	Title   string
	Content string
	Style   lipgloss.Style
}

func (b Box) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	style := b.Style
	if !style.GetBorderTop() {
		style = style.Border(lipgloss.RoundedBorder())
	}
	style = style.Width(max(1, width-2)).Height(max(1, height-2)).MaxHeight(height)
	return style.Render(b.Title + "\n" + b.Content)
}
