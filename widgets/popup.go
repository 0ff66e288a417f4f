package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Popup is a bordered dialog drawn centred over the board.
type Popup struct {
	Title      string
	Body       string
	TitleStyle lipgloss.Style
}

// Over draws the popup on top of base. Cells of base outside the popup's
// row span are left untouched, so zone markers there survive.
func (p Popup) Over(base string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	content := p.Body
	if p.Title != "" {
		content = p.TitleStyle.Render(p.Title) + "\n" + p.Body
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Render(content)
	top := canvasLines(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card), width, height)
	under := canvasLines(base, width, height)
	for i, line := range top {
		start, end, ok := inkSpan(line, width)
		if !ok {
			top[i] = under[i]
			continue
		}
		left := ansi.Truncate(under[i], start, "")
		mid := ansi.Truncate(skipCells(line, start), end-start, "")
		top[i] = padRight(left+mid+skipCells(under[i], end), width)
	}
	return strings.Join(top, "\n")
}

// inkSpan returns the cell range holding non-blank text on line.
func inkSpan(line string, width int) (start, end int, ok bool) {
	plain := ansi.Strip(ansi.Truncate(line, width, ""))
	end = len(strings.TrimRight(plain, " "))
	start = len(plain) - len(strings.TrimLeft(plain, " "))
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

// canvasLines splits s into exactly height lines of width cells.
func canvasLines(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padRight(lines[i], width)
	}
	return lines
}

func skipCells(s string, n int) string {
	if n <= 0 {
		return s
	}
	return strings.TrimPrefix(s, ansi.Truncate(s, n, ""))
}
