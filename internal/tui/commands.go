package tui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/report"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/wizard"
)

// runTransition performs the network part of a started transition off the
// update loop.
func (m Model) runTransition(p *wizard.Pending) tea.Cmd {
	parent := m.config.Context
	timeout := m.config.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		return transitionDoneMsg{completion: p.Run(ctx)}
	}
}

// exportReport writes the session snapshot to a PDF in the report directory.
func (m Model) exportReport(session wizard.Session) tea.Cmd {
	dir := m.config.ReportDir
	return func() tea.Msg {
		id := session.ID
		if len(id) > 8 {
			id = id[:8]
		}
		path := filepath.Join(dir, fmt.Sprintf("gbi-plan-%s.pdf", id))

		if err := report.WriteFile(path, session); err != nil {
			slog.Error("PDF export failed", "path", path, "error", err)
			return exportDoneMsg{err: err}
		}
		slog.Info("PDF exported", "path", path, "session_id", session.ID)
		return exportDoneMsg{path: path}
	}
}
