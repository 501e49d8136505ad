// Package store holds the most recently fetched task snapshot and answers
// filtered, searched and sorted queries against it.
package store

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"

	"taskboard/internal/task"
)

// Filter selects tasks by status. The zero value matches every task.
type Filter struct {
	status task.Status
	set    bool
}

// All is the sentinel filter that matches every status.
var All = Filter{}

// StatusFilter returns a filter matching only tasks with status s.
func StatusFilter(s task.Status) Filter {
	return Filter{status: s, set: true}
}

// ParseFilter parses "ALL" (case-insensitive, or empty) or a status name.
func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return All, nil
	}
	st, err := task.ParseStatus(s)
	if err != nil {
		return All, fmt.Errorf("invalid filter: %s", s)
	}
	return StatusFilter(st), nil
}

// Status returns the matched status and false for the All filter.
func (f Filter) Status() (task.Status, bool) {
	return f.status, f.set
}

// Match reports whether t passes the filter.
func (f Filter) Match(t task.Task) bool {
	return !f.set || t.Status == f.status
}

func (f Filter) String() string {
	if !f.set {
		return "ALL"
	}
	return f.status.String()
}

// Ticket tags a fetch so that responses arriving out of order can be
// told apart. Tickets increase monotonically per Store.
type Ticket uint64

// Stats counts tasks per status over the whole snapshot.
type Stats struct {
	Pending    int
	InProgress int
	Completed  int
}

// Total returns the number of tasks counted.
func (s Stats) Total() int {
	return s.Pending + s.InProgress + s.Completed
}

// Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	tasks   []task.Task // sorted by task.Compare; replaced, never mutated
	next    Ticket
	applied Ticket
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Load replaces the entire snapshot. There is no merge: the last load wins.
func (s *Store) Load(tasks []task.Task) {
	sorted := slices.Clone(tasks)
	task.Sort(sorted)

	s.mu.Lock()
	s.tasks = sorted
	s.mu.Unlock()
}

// Begin hands out the ticket for a new fetch.
func (s *Store) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

// Apply loads tasks fetched under ticket t, unless a response from a later
// fetch has already been applied. It reports whether the snapshot changed.
func (s *Store) Apply(t Ticket, tasks []task.Task) bool {
	sorted := slices.Clone(tasks)
	task.Sort(sorted)

	s.mu.Lock()
	defer s.mu.Unlock()
	if t <= s.applied {
		return false
	}
	s.applied = t
	s.tasks = sorted
	return true
}

// Applied returns the ticket of the last applied fetch (0 if none).
func (s *Store) Applied() Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied
}

func (s *Store) snapshot() []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks
}

// View returns the tasks matching filter whose title contains search
// (case-insensitive; empty search matches all), in display order.
// The sequence is lazy and may be ranged over repeatedly; every pass walks the
// snapshot that was current when View was called.
func (s *Store) View(filter Filter, search string) iter.Seq[task.Task] {
	snap := s.snapshot()
	needle := strings.ToLower(search)
	return func(yield func(task.Task) bool) {
		for _, t := range snap {
			if !filter.Match(t) {
				continue
			}
			if needle != "" && !strings.Contains(strings.ToLower(t.Title), needle) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Tasks returns a copy of the snapshot in display order.
func (s *Store) Tasks() []task.Task {
	return slices.Clone(s.snapshot())
}

// Len returns the number of tasks in the snapshot.
func (s *Store) Len() int {
	return len(s.snapshot())
}

// Lookup returns the task with the given id.
func (s *Store) Lookup(id int64) (task.Task, bool) {
	for _, t := range s.snapshot() {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

// Stats counts the snapshot per status.
func (s *Store) Stats() Stats {
	var st Stats
	for _, t := range s.snapshot() {
		switch t.Status {
		case task.Pending:
			st.Pending++
		case task.InProgress:
			st.InProgress++
		case task.Completed:
			st.Completed++
		}
	}
	return st
}
