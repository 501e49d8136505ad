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
	Register(&WhoamiCmd{})
}

// WhoamiCmd implements the whoami command. The greeting is cosmetic: a
// failed lookup prints nothing and still succeeds.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Greet the logged-in user" }
func (c *WhoamiCmd) Usage() string     { return "taskboard whoami" }
func (c *WhoamiCmd) NeedsAuth() bool   { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	u, err := svc.CurrentUser(ctx)
	if err != nil {
		cfg.Logger().WithError(err).Debug("fetching user failed")
		return exitcode.Success
	}
	output.FormatGreeting(out, u.Username)
	return exitcode.Success
}
