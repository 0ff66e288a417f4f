package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type Table struct {
	Headers []string
	Rows    [][]string
}

// Render aligns cells to the widest entry of each column.
func (t Table) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(t.Headers) == 0 {
		return "No data"
	}
	widths := make([]int, len(t.Headers))
	measure := func(row []string) {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], ansi.StringWidth(row[i]))
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	format := func(row []string) string {
		cells := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = padRight(cell, widths[i])
		}
		return padRight(strings.TrimRight(strings.Join(cells, " | "), " "), width)
	}
	lines := []string{format(t.Headers)}
	for _, row := range t.Rows {
		if len(lines) >= height {
			break
		}
		lines = append(lines, format(row))
	}
	return strings.Join(lines, "\n")
}
