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
)

func init() {
	Register(&ReorderCmd{})
}

// ReorderCmd implements the reorder command: it saves an explicit order.
type ReorderCmd struct{}

func (c *ReorderCmd) Name() string      { return "reorder" }
func (c *ReorderCmd) Aliases() []string { return nil }
func (c *ReorderCmd) Synopsis() string  { return "Save a full task order" }
func (c *ReorderCmd) Usage() string     { return "taskboard reorder <id...>" }
func (c *ReorderCmd) NeedsAuth() bool   { return true }

func (c *ReorderCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ReorderCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ids, err := ParseIDs(args)
	if err != nil {
		return usageError(errOut, err)
	}
	if err := reorder.Validate(ids); err != nil {
		return usageError(errOut, err)
	}

	if err := reorder.NewSubmitter(svc, cfg.Logger()).Submit(ctx, ids); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
