package tui

import (
	"taskboard/internal/reorder"
)

// Every card occupies exactly cardHeight rows below a fixed header, so the
// rows the mouse reports map directly onto card bounds.
const (
	headerLines = 4
	cardHeight  = 3
	footerLines = 3
)

// layout maps terminal rows to card positions for a list scrolled so that
// card top is the first one shown.
type layout struct {
	top     int
	visible int
}

func newLayout(height, top int) layout {
	visible := (height - headerLines - footerLines) / cardHeight
	return layout{top: top, visible: max(1, visible)}
}

// bounds returns the rows covered by the card at list position i.
func (l layout) bounds(i int) reorder.Bounds {
	return reorder.Bounds{
		Top:    float64(headerLines + (i-l.top)*cardHeight),
		Height: cardHeight,
	}
}

// cardAt returns the list position of the card under row y, or -1.
func (l layout) cardAt(y, n int) int {
	if y < headerLines {
		return -1
	}
	i := (y-headerLines)/cardHeight + l.top
	if i >= n || i >= l.top+l.visible {
		return -1
	}
	return i
}

// slots measures the rendered siblings of the dragged card: every card in
// order except dragged, at the position it is laid out at.
func (l layout) slots(order []int64, dragged int64) []reorder.Slot {
	out := make([]reorder.Slot, 0, len(order))
	for i, id := range order {
		if id == dragged {
			continue
		}
		out = append(out, reorder.Slot{ID: id, Center: l.bounds(i).Center()})
	}
	return out
}

// scrollTo returns the top offset that keeps the card at cursor on screen.
func (l layout) scrollTo(cursor, n int) int {
	top := l.top
	if cursor < top {
		top = cursor
	}
	if cursor >= top+l.visible {
		top = cursor - l.visible + 1
	}
	return max(0, min(top, max(0, n-l.visible)))
}
