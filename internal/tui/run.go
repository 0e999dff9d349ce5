package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/wizard"
)

// Run starts the interactive wizard and blocks until the user quits or ctx
// is canceled.
func Run(ctx context.Context, backend wizard.Backend, opts ...Option) error {
	if backend == nil {
		return fmt.Errorf("backend is required")
	}

	opts = append(opts, WithContext(ctx))
	model := New(backend, opts...)

	program := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("TUI error: %w", err)
	}

	if m, ok := final.(Model); ok {
		slog.Info("Planner closed",
			"session_id", m.machine.Session().ID,
			"step", m.machine.Step().String())
	}
	return nil
}
