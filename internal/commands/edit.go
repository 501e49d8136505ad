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
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Fields without a flag keep the
// value of the fetched task.
type EditCmd struct {
	title  optionalString
	desc   optionalString
	status statusFlag
	due    dateFlag
	noDue  bool
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "taskboard edit [--title <text>] [--desc <text>] [--status <status>] [--due <YYYY-MM-DD> | --no-due] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	*c = EditCmd{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.desc, "desc", "")
	fs.Var(&c.desc, "d", "")
	fs.Var(&c.status, "status", "")
	fs.Var(&c.due, "due", "")
	fs.BoolVar(&c.noDue, "no-due", false, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		return usageError(errOut, err)
	}
	if c.due.date != nil && c.noDue {
		return usageError(errOut, errors.New("cannot use both --due and --no-due"))
	}

	t, err := findTask(ctx, svc, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			fmt.Fprintf(errOut, "error: task not found: %d\n", id)
			return exitcode.UserError
		}
		return reportError(errOut, err)
	}

	in := t.Input()
	if c.title.set {
		in.Title = c.title.value
	}
	if c.desc.set {
		in.Description = c.desc.value
	}
	if c.status.set {
		in.Status = c.status.status
	}
	switch {
	case c.due.date != nil:
		in.DueDate = c.due.date
	case c.noDue:
		in.DueDate = nil
	}

	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return reportError(errOut, err)
	}
	if _, err := svc.UpdateTask(ctx, id, in); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
