package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command. Usage lines come from the registry.
type HelpCmd struct {
	registry *Registry
}

// NewHelpCmd returns a help command listing the commands of r.
func NewHelpCmd(r *Registry) *HelpCmd {
	return &HelpCmd{registry: r}
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskboard help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	r := c.registry
	if r == nil {
		r = DefaultRegistry
	}

	fmt.Fprintln(out, "Usage:")
	fmt.Fprintf(out, "  %-28s%s\n", "taskboard", "List all tasks")
	for _, cmd := range r.All() {
		fmt.Fprintf(out, "  %s\n", cmd.Usage())
		fmt.Fprintf(out, "      %s\n", cmd.Synopsis())
	}
	fmt.Fprint(out, commonFlagsText)
	return exitcode.Success
}

const commonFlagsText = `
Statuses: pending, in_progress, completed

Common flags:
  --config <dir>   Override config directory
  --url <url>      Override the server base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
