package commands

import (
	"context"
	"flag"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command.
type StatsCmd struct{}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Count tasks per status" }
func (c *StatsCmd) Usage() string     { return "taskboard stats" }
func (c *StatsCmd) NeedsAuth() bool   { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	s, err := loadStore(ctx, svc)
	if err != nil {
		return reportError(errOut, err)
	}
	output.FormatStats(out, s.Stats())
	return exitcode.Success
}
