package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

var (
	// ErrTaskIDRequired indicates no task id was provided.
	ErrTaskIDRequired = errors.New("task id required")

	// ErrPositionRequired indicates move was called without a position.
	ErrPositionRequired = errors.New("position required")
)

// ParseTaskID parses the task id in args[0].
// Accepted forms are a positive integer, optionally prefixed with '#'.
func ParseTaskID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	return parseID(args[0])
}

// ParseIDs parses every arg as a task id.
func ParseIDs(args []string) ([]int64, error) {
	if len(args) == 0 {
		return nil, ErrTaskIDRequired
	}
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parsePosition parses a 1-based list position.
func parsePosition(s string) (int, error) {
	if !isAllDigits(s) {
		return 0, fmt.Errorf("invalid position: %s", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position: %s", s)
	}
	return n, nil
}

func parseID(s string) (int64, error) {
	digits := s
	if len(digits) > 1 && digits[0] == '#' {
		digits = digits[1:]
	}
	if !isAllDigits(digits) {
		return 0, fmt.Errorf("invalid task id: %s", s)
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", s)
	}
	return id, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
