package widgets

import "strings"

// List renders a titled list. Selected is the highlighted item index, or
// -1 for none.
type List struct {
	Title    string
	Items    []string
	Selected int
	Marker   string
}

func (l List) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	marker := l.Marker
	if marker == "" {
		marker = ">"
	}
	pad := strings.Repeat(" ", len(marker))
	rows := make([]string, 0, len(l.Items)+1)
	rows = append(rows, l.Title)
	for i, item := range l.Items {
		prefix := pad
		if i == l.Selected {
			prefix = marker
		}
		rows = append(rows, padRight(prefix+" "+item, width))
	}
	if len(rows) > height {
		rows = rows[:height]
	}
	return strings.Join(rows, "\n")
}
