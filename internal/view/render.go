// Package view projects the task snapshot into display records and owns the
// controller that reacts to user and network events.
package view

import (
	"iter"
	"time"

	"taskboard/internal/task"
)

// Card is the display record of one task.
type Card struct {
	ID          int64
	Title       string
	Description string
	Status      task.Status
	Badge       string
	Due         string
	Overdue     bool
	Created     string
}

// Render projects tasks into cards. It never mutates task data; the overdue
// flag is recomputed from now on every call.
func Render(tasks iter.Seq[task.Task], now time.Time) []Card {
	var cards []Card
	for t := range tasks {
		cards = append(cards, CardOf(t, now))
	}
	return cards
}

// CardOf renders a single task.
func CardOf(t task.Task, now time.Time) Card {
	c := Card{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Badge:       t.Status.Label(),
		Overdue:     t.Overdue(now),
	}
	if t.DueDate != nil {
		c.Due = t.DueDate.String()
	}
	if !t.CreatedAt.IsZero() {
		c.Created = t.CreatedAt.In(now.Location()).Format(task.DateLayout)
	}
	return c
}

// CardIDs returns the ids of cards in rendered order.
func CardIDs(cards []Card) []int64 {
	ids := make([]int64, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}
