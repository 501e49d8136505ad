package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
	"taskboard/internal/store"
	"taskboard/internal/view"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskboard` (no args) and `taskboard list --status ...`.
type ListCmd struct {
	status string
	search string

	// now is the clock used for the overdue flag (for testing).
	now func() time.Time
}

// SetNow sets the clock used for the overdue flag (for testing).
func (c *ListCmd) SetNow(now func() time.Time) {
	c.now = now
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks in display order" }
func (c *ListCmd) Usage() string {
	return "taskboard list [--status <status>] [--search <text>]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
	fs.StringVar(&c.search, "search", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	filter, err := store.ParseFilter(c.status)
	if err != nil {
		return usageError(errOut, err)
	}

	s, err := loadStore(ctx, svc)
	if err != nil {
		return reportError(errOut, err)
	}

	now := time.Now
	if c.now != nil {
		now = c.now
	}
	cards := view.Render(s.View(filter, c.search), now())
	if len(cards) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	output.FormatTasks(out, cards, !color.NoColor)
	return exitcode.Success
}
