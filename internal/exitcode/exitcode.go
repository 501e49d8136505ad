// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, validation, not found).
	UserError = 1

	// AuthError indicates missing or rejected credentials.
	AuthError = 2

	// BackendError indicates a transport or server error.
	BackendError = 3

	// Rejected indicates the server refused a mutation.
	Rejected = 4
)
