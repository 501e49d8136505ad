// Package reorder turns drag gestures into a task order and submits it.
//
// The insertion algorithm is geometry-independent: front ends measure their
// rendered cards and pass vertical centers in; nothing here knows about
// terminals or pixels.
package reorder

import (
	"fmt"
	"math"
	"slices"
)

// Slot is a rendered sibling card: its task id and vertical center.
type Slot struct {
	ID     int64
	Center float64
}

// Bounds is the vertical extent of a rendered card.
type Bounds struct {
	Top    float64
	Height float64
}

// Center returns the vertical midpoint.
func (b Bounds) Center() float64 {
	return b.Top + b.Height/2
}

// InsertionIndex returns the index of the slot the dragged card should be
// placed before: the slot whose center is the nearest one below y. When no
// center lies below y it returns len(slots), meaning the end of the list.
// On equal offsets the first slot wins.
func InsertionIndex(slots []Slot, y float64) int {
	idx := len(slots)
	closest := math.Inf(-1)
	for i, s := range slots {
		offset := y - s.Center
		if offset < 0 && offset > closest {
			closest = offset
			idx = i
		}
	}
	return idx
}

// Move returns a new order with id removed and reinserted at index, where
// index counts positions among the remaining ids. Indexes past the end
// append. The input is not modified.
func Move(ids []int64, id int64, index int) ([]int64, error) {
	from := slices.Index(ids, id)
	if from < 0 {
		return nil, fmt.Errorf("task %d not in order", id)
	}

	rest := slices.Delete(slices.Clone(ids), from, from+1)
	index = max(0, min(index, len(rest)))
	return slices.Insert(rest, index, id), nil
}

// Validate checks that an order names each id at most once.
func Validate(ids []int64) error {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate task id in order: %d", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
