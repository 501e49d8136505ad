package reorder

import (
	"fmt"
	"slices"
)

// Drag tracks one drag-and-drop gesture over a rendered list.
// It is not safe for concurrent use; front ends drive it from their event loop.
type Drag struct {
	id      int64
	initial []int64
	order   []int64
}

// Start picks up the card id out of the rendered order.
func Start(order []int64, id int64) (*Drag, error) {
	if !slices.Contains(order, id) {
		return nil, errNotRendered(id)
	}
	return &Drag{
		id:      id,
		initial: slices.Clone(order),
		order:   slices.Clone(order),
	}, nil
}

// ID returns the id of the card being dragged.
func (d *Drag) ID() int64 { return d.id }

// Order returns the current projected order.
func (d *Drag) Order() []int64 { return slices.Clone(d.order) }

// Over moves the dragged card to the insertion point for pointer position y.
// siblings are the other rendered cards, as currently laid out, excluding the
// dragged one. It returns the projected order.
func (d *Drag) Over(siblings []Slot, y float64) []int64 {
	idx := InsertionIndex(siblings, y)

	rest := slices.DeleteFunc(slices.Clone(d.order), func(id int64) bool { return id == d.id })
	pos := len(rest)
	if idx < len(siblings) {
		if p := slices.Index(rest, siblings[idx].ID); p >= 0 {
			pos = p
		}
	}
	d.order = slices.Insert(rest, pos, d.id)
	return d.Order()
}

// Changed reports whether the projected order differs from the order the
// gesture started with.
func (d *Drag) Changed() bool {
	return !slices.Equal(d.initial, d.order)
}

// Drop ends the gesture and returns the full order to submit.
func (d *Drag) Drop() []int64 {
	return d.Order()
}

func errNotRendered(id int64) error {
	return fmt.Errorf("task %d is not rendered", id)
}
