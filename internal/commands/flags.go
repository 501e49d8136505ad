package commands

import (
	"taskboard/internal/task"
)

// optionalString is a string flag that records whether it was set, so an
// explicit empty value can be told apart from an absent flag.
type optionalString struct {
	value string
	set   bool
}

func (s *optionalString) String() string { return s.value }

func (s *optionalString) Set(v string) error {
	s.value = v
	s.set = true
	return nil
}

// dateFlag parses a YYYY-MM-DD due date.
type dateFlag struct {
	date *task.Date
}

func (d *dateFlag) String() string {
	if d.date == nil {
		return ""
	}
	return d.date.String()
}

func (d *dateFlag) Set(v string) error {
	parsed, err := task.ParseDate(v)
	if err != nil {
		return err
	}
	d.date = &parsed
	return nil
}

// statusFlag parses a task status name.
type statusFlag struct {
	status task.Status
	set    bool
}

func (s *statusFlag) String() string {
	if !s.set {
		return ""
	}
	return s.status.String()
}

func (s *statusFlag) Set(v string) error {
	st, err := task.ParseStatus(v)
	if err != nil {
		return err
	}
	s.status = st
	s.set = true
	return nil
}
