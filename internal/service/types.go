package service

import (
	"errors"
	"fmt"
)

// User is the authenticated account, used only for a greeting.
type User struct {
	Username string `json:"username"`
}

var (
	// ErrUnauthorized is returned when the session is missing or expired.
	ErrUnauthorized = errors.New("not logged in")

	// ErrNotFound is returned when the task does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTransport marks network failures: the request got no response.
	ErrTransport = errors.New("transport error")

	// ErrTimeout marks requests that exceeded the API timeout.
	ErrTimeout = errors.New("request timed out")
)

// RejectedError is a non-2xx response to a mutation.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("rejected by server (HTTP %d)", e.StatusCode)
	}
	return fmt.Sprintf("rejected by server (HTTP %d): %s", e.StatusCode, e.Message)
}
