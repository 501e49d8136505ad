package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	desc   string
	due    dateFlag
	status statusFlag
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskboard add [--desc <text>] [--due <YYYY-MM-DD>] [--status <status>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	c.due, c.status = dateFlag{}, statusFlag{}
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.desc, "d", "", "")
	fs.Var(&c.due, "due", "")
	fs.Var(&c.status, "status", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	in := task.Input{
		Title:       strings.Join(args, " "),
		Description: c.desc,
		Status:      c.status.status,
		DueDate:     c.due.date,
	}.Normalize()

	// Validated locally; an invalid title never reaches the server.
	if err := in.Validate(); err != nil {
		return reportError(errOut, err)
	}

	created, err := svc.CreateTask(ctx, in)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok #%d\n", created.ID)
	}
	return exitcode.Success
}
