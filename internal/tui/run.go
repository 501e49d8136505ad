package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/view"
)

// Run shows the board until the user quits, ctx is cancelled, or the
// session turns out to be unauthenticated. The latter is returned as an error.
func Run(ctx context.Context, ctl *view.Controller) error {
	p := tea.NewProgram(New(ctx, ctl),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
