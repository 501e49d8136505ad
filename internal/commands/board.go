package commands

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/tui"
	"taskboard/internal/view"
)

// BoardLogFile receives diagnostics while the board owns the terminal.
const BoardLogFile = "board.log"

func init() {
	Register(&BoardCmd{})
}

// BoardCmd implements the board command: the interactive terminal UI.
type BoardCmd struct{}

func (c *BoardCmd) Name() string      { return "board" }
func (c *BoardCmd) Aliases() []string { return []string{"ui"} }
func (c *BoardCmd) Synopsis() string  { return "Open the interactive board" }
func (c *BoardCmd) Usage() string     { return "taskboard board" }
func (c *BoardCmd) NeedsAuth() bool   { return true }

func (c *BoardCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *BoardCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	log, closeLog := boardLogger(cfg)
	defer closeLog()

	err := tui.Run(ctx, view.NewController(svc, log))
	switch {
	case err == nil, errors.Is(err, tea.ErrProgramKilled), errors.Is(err, context.Canceled):
		return exitcode.Success
	}
	return reportError(errOut, err)
}

// boardLogger opens BoardLogFile in the config directory. When that fails
// diagnostics are discarded.
func boardLogger(cfg *config.Config) (logrus.FieldLogger, func()) {
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return logging.New(io.Discard, cfg.Debug), func() {}
	}
	f, err := os.OpenFile(filepath.Join(cfg.Dir, BoardLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return logging.New(io.Discard, cfg.Debug), func() {}
	}
	return logging.New(f, cfg.Debug), func() { _ = f.Close() }
}
