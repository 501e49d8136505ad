// Package commands implements the taskboard subcommands.
package commands

import (
	"context"
	"flag"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/service"
)

// Command is one taskboard subcommand.
type Command interface {
	// Name is the primary name, e.g. "list".
	Name() string

	// Aliases are alternative names ("ls" for list).
	Aliases() []string

	// Synopsis is the one-line description shown by help.
	Synopsis() string

	// Usage shows the argument syntax.
	Usage() string

	// NeedsAuth reports whether Run talks to the task backend.
	// When false, Run receives a nil svc.
	NeedsAuth() bool

	// RegisterFlags binds command flags. It is called once per invocation,
	// before parsing, so it must also reset state left by an earlier run.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with the positional args left after flag
	// parsing and returns the process exit code. cfg carries the loaded
	// config.yaml, the --quiet/--debug settings and the logger.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}
