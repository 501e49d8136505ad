// Package task defines the task entity, its status enumeration and ordering.
package task

import (
	"fmt"
	"strings"
)

// Status is the workflow state of a task.
// The zero value is Pending, which is also what the server assigns when
// a create request omits the status.
type Status int

const (
	Pending Status = iota
	InProgress
	Completed
)

// statusNames holds the wire form of each status.
var statusNames = [...]string{
	Pending:    "PENDING",
	InProgress: "IN_PROGRESS",
	Completed:  "COMPLETED",
}

// statusLabels holds the display label of each status.
var statusLabels = [...]string{
	Pending:    "Pending",
	InProgress: "In progress",
	Completed:  "Done",
}

// Statuses returns all statuses in workflow order.
func Statuses() []Status {
	return []Status{Pending, InProgress, Completed}
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	return s >= Pending && s <= Completed
}

// String returns the wire name of the status (e.g. "IN_PROGRESS").
func (s Status) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// Label returns the human-readable badge text for the status.
func (s Status) Label() string {
	if !s.Valid() {
		return s.String()
	}
	return statusLabels[s]
}

// Next returns the following status in workflow order, wrapping around.
func (s Status) Next() Status {
	if !s.Valid() {
		return Pending
	}
	return (s + 1) % Status(len(statusNames))
}

// ParseStatus parses a wire name, case-insensitively.
// Dashes and spaces are accepted in place of underscores ("in-progress").
func ParseStatus(s string) (Status, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for i, name := range statusNames {
		if name == norm {
			return Status(i), nil
		}
	}
	return 0, fmt.Errorf("invalid status: %s", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status: %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
