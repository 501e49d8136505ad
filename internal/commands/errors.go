package commands

import (
	"errors"
	"fmt"
	"io"

	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/task"
)

// reportError writes the stderr line for err and returns its exit code.
func reportError(errOut io.Writer, err error) int {
	var verr *task.ValidationError
	var rej *service.RejectedError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintf(errOut, "error: %s\n", verr.Message)
		return exitcode.UserError
	case errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintln(errOut, "error: not logged in")
		return exitcode.AuthError
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintln(errOut, "error: task not found")
		return exitcode.UserError
	case errors.As(err, &rej):
		fmt.Fprintf(errOut, "error: %v\n", rej)
		return exitcode.Rejected
	case errors.Is(err, service.ErrTimeout):
		fmt.Fprintln(errOut, "error: request timed out")
		return exitcode.BackendError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// usageError writes a user error line and returns exitcode.UserError.
func usageError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}
