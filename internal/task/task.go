package task

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Task is a user-owned to-do item as returned by the API.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      Status
	DueDate     *Date
	CreatedAt   time.Time
	OrderIndex  *int
}

// createdAtLayouts are the accepted wire forms of CreatedAt. The server
// sends a local date-time without a zone.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

type wireTask struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	DueDate     *Date   `json:"dueDate"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	OrderIndex  *int    `json:"orderIndex"`
}

// UnmarshalJSON decodes the API representation of a task.
func (t *Task) UnmarshalJSON(b []byte) error {
	var w wireTask
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	status := Pending
	if w.Status != "" {
		s, err := ParseStatus(w.Status)
		if err != nil {
			return fmt.Errorf("task %d: %w", w.ID, err)
		}
		status = s
	}

	var created time.Time
	if w.CreatedAt != "" {
		c, err := parseCreatedAt(w.CreatedAt)
		if err != nil {
			return fmt.Errorf("task %d: %w", w.ID, err)
		}
		created = c
	}

	*t = Task{
		ID:         w.ID,
		Title:      w.Title,
		Status:     status,
		DueDate:    w.DueDate,
		CreatedAt:  created,
		OrderIndex: w.OrderIndex,
	}
	if w.Description != nil {
		t.Description = *w.Description
	}
	return nil
}

// MarshalJSON encodes the task in its API representation.
func (t Task) MarshalJSON() ([]byte, error) {
	w := wireTask{
		ID:          t.ID,
		Title:       t.Title,
		Description: &t.Description,
		Status:      t.Status.String(),
		DueDate:     t.DueDate,
		OrderIndex:  t.OrderIndex,
	}
	if !t.CreatedAt.IsZero() {
		w.CreatedAt = t.CreatedAt.Format("2006-01-02T15:04:05.999999999")
	}
	return json.Marshal(w)
}

func parseCreatedAt(s string) (time.Time, error) {
	for _, layout := range createdAtLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid createdAt: %s", s)
}

// Overdue reports whether the task is past due at now: the due date lies
// strictly before the start of now's day and the task is not completed.
// It is evaluated on every render; nothing is cached on the task.
func (t Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == Completed {
		return false
	}
	return t.DueDate.Before(now)
}

// Input returns the editable fields of t, ready for an update request.
func (t Task) Input() Input {
	in := Input{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
	}
	if t.DueDate != nil {
		d := *t.DueDate
		in.DueDate = &d
	}
	return in
}

// Compare orders tasks for display. Tasks carrying an OrderIndex come first,
// lowest index first; the rest follow. Within either group, and on equal
// indexes, the higher (newer) ID comes first.
func Compare(a, b Task) int {
	switch {
	case a.OrderIndex != nil && b.OrderIndex != nil:
		if c := cmp.Compare(*a.OrderIndex, *b.OrderIndex); c != 0 {
			return c
		}
	case a.OrderIndex != nil:
		return -1
	case b.OrderIndex != nil:
		return 1
	}
	return cmp.Compare(b.ID, a.ID)
}

// Less reports whether a sorts before b.
func Less(a, b Task) bool {
	return Compare(a, b) < 0
}

// Sort sorts tasks in display order in place.
func Sort(tasks []Task) {
	slices.SortStableFunc(tasks, Compare)
}

// IDs returns the IDs of tasks in slice order.
func IDs(tasks []Task) []int64 {
	ids := make([]int64, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
