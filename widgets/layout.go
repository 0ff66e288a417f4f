package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Widget renders itself into a width x height cell area.
type Widget interface {
	Render(width, height int) string
}

// Static renders a fixed string.
type Static string

func (s Static) Render(width, height int) string {
	return strings.Join(canvasLines(string(s), width, height), "\n")
}

// VStack stacks widgets top to bottom. Heights gives each widget a fixed
// row count; zero or missing entries share whatever rows remain.
type VStack struct {
	Widgets []Widget
	Heights []int
}

func (v VStack) Render(width, height int) string {
	if len(v.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	rows := make([]int, len(v.Widgets))
	fixed, flex := 0, 0
	for i := range v.Widgets {
		if i < len(v.Heights) && v.Heights[i] > 0 {
			rows[i] = v.Heights[i]
			fixed += rows[i]
		} else {
			flex++
		}
	}
	if flex > 0 {
		shares := splitWidths(max(0, height-fixed), flex)
		for i, j := range rows {
			if j == 0 {
				rows[i], shares = shares[0], shares[1:]
			}
		}
	}
	lines := make([]string, 0, height)
	for i, w := range v.Widgets {
		n := min(rows[i], height-len(lines))
		if n <= 0 {
			continue
		}
		lines = append(lines, canvasLines(w.Render(width, n), width, n)...)
	}
	return strings.Join(lines, "\n")
}

// HStack places widgets side by side in equal-width columns.
type HStack struct {
	Widgets []Widget
	Gap     int
}

func (h HStack) Render(width, height int) string {
	if len(h.Widgets) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gapTotal := max(0, h.Gap*(len(h.Widgets)-1))
	widths := splitWidths(max(1, width-gapTotal), len(h.Widgets))
	rendered := make([][]string, len(h.Widgets))
	maxLines := 0
	for i, w := range h.Widgets {
		part := strings.Split(w.Render(max(1, widths[i]), height), "\n")
		rendered[i] = part
		maxLines = max(maxLines, len(part))
	}
	gap := strings.Repeat(" ", h.Gap)
	out := make([]string, 0, maxLines)
	for line := 0; line < maxLines; line++ {
		cols := make([]string, len(rendered))
		for i := range rendered {
			if line < len(rendered[i]) {
				cols[i] = padRight(rendered[i][line], widths[i])
			} else {
				cols[i] = strings.Repeat(" ", widths[i])
			}
		}
		out = append(out, strings.Join(cols, gap))
	}
	return strings.Join(out, "\n")
}

// splitWidths divides total into n near-equal parts, leftmost parts first
// taking the remainder.
func splitWidths(total, n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = total / n
		if i < total%n {
			out[i]++
		}
	}
	return out
}

func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
