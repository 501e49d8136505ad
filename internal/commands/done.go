package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/task"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "taskboard done <id>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		return usageError(errOut, err)
	}

	t, err := findTask(ctx, svc, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			fmt.Fprintf(errOut, "error: task not found: %d\n", id)
			return exitcode.UserError
		}
		return reportError(errOut, err)
	}

	// Already done: nothing to send.
	if t.Status != task.Completed {
		in := t.Input()
		in.Status = task.Completed
		if _, err := svc.UpdateTask(ctx, id, in); err != nil {
			return reportError(errOut, err)
		}
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
