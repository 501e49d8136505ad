package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/reorder"
	"taskboard/internal/service"
	"taskboard/internal/task"
)

func init() {
	Register(&MoveCmd{})
}

// MoveCmd implements the move command: the keyboard form of a drag. The
// task is moved within the full sorted list and the whole order is saved.
type MoveCmd struct{}

func (c *MoveCmd) Name() string      { return "move" }
func (c *MoveCmd) Aliases() []string { return []string{"mv"} }
func (c *MoveCmd) Synopsis() string  { return "Move a task to a position" }
func (c *MoveCmd) Usage() string     { return "taskboard move <id> <position>" }
func (c *MoveCmd) NeedsAuth() bool   { return true }

func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MoveCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		return usageError(errOut, err)
	}
	if len(args) < 2 {
		return usageError(errOut, ErrPositionRequired)
	}
	pos, err := parsePosition(args[1])
	if err != nil {
		return usageError(errOut, err)
	}

	s, err := loadStore(ctx, svc)
	if err != nil {
		return reportError(errOut, err)
	}

	order, err := reorder.Move(task.IDs(s.Tasks()), id, pos-1)
	if err != nil {
		fmt.Fprintf(errOut, "error: task not found: %d\n", id)
		return exitcode.UserError
	}

	if err := reorder.NewSubmitter(svc, cfg.Logger()).Submit(ctx, order); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
