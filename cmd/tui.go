package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tix/internal/shared"
	"github.com/desertthunder/tix/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for ticket booking.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.api == nil {
		return fmt.Errorf("%w: gateway not initialized", shared.ErrServiceUnavailable)
	}
	if r.engine == nil {
		return fmt.Errorf("%w: booking engine not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/tix-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(shared.WithLogger(fileLogger, "component", "tui"))

	model := ui.NewModel(ctx, r.api, r.engine, r.auth.IsAuthenticated)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
