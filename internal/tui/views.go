package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/render"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/tui/components"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/wizard"
)

// layout lays out header, banner, step body and footer.
func (m Model) layout() string {
	sections := []string{
		m.renderHeader(),
	}
	if banner := m.renderBanner(); banner != "" {
		sections = append(sections, banner)
	}
	sections = append(sections,
		m.renderStep(),
		m.renderStatusBar(),
		m.help.View(m.keymap),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title and the step progress indicator.
func (m Model) renderHeader() string {
	title := m.theme.Title.Render("GBI goal planner")

	markers := m.machine.Progress()
	parts := make([]string, 0, len(markers))
	for _, mk := range markers {
		text := fmt.Sprintf("%d %s", int(mk.Step), mk.Label)
		switch mk.Status {
		case wizard.MarkerActive:
			parts = append(parts, m.theme.StepActive.Render(text))
		case wizard.MarkerCompleted:
			parts = append(parts, m.theme.StepDone.Render("✓ "+text))
		default:
			parts = append(parts, m.theme.StepUpcoming.Render(text))
		}
	}
	steps := strings.Join(parts, m.theme.Faint.Render("›"))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		steps,
		m.progress.ViewAs(m.completion()),
		"",
	)
}

// completion is the share of session results already stored.
func (m Model) completion() float64 {
	s := m.machine.Session()
	done := 0
	for _, ok := range []bool{s.Goal != nil, s.Gap != nil, s.Optimization != nil, s.Simulation != nil} {
		if ok {
			done++
		}
	}
	return float64(done) / 4
}

func (m Model) renderBanner() string {
	text := m.machine.Banner()
	if text == "" {
		return ""
	}
	hint := m.theme.Faint.Render("x/Esc to dismiss")
	return lipgloss.JoinVertical(lipgloss.Left, m.theme.Banner.Render(text), hint, "")
}

func (m Model) renderStep() string {
	var body string
	switch m.machine.Step() {
	case wizard.Collecting:
		body = m.renderGoalStep()
	case wizard.Reviewing:
		body = m.renderGapStep()
	case wizard.Allocating:
		body = m.renderAllocationStep()
	case wizard.Simulating:
		body = m.renderSimulationStep()
	}
	return m.theme.RoundedBox.Width(m.contentWidth()).Render(body)
}

func (m Model) renderGoalStep() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Bold.Render("Set your goal"),
		"",
		m.form.View(),
		"",
		m.renderButton("Analyze gap", m.machine.SubmitEnabled(), m.machine.Busy(wizard.ActionSubmit)),
	)
}

func (m Model) renderGapStep() string {
	view := m.machine.GapView()
	if view == nil {
		return m.theme.Faint.Render("No gap analysis yet.")
	}

	headline := m.theme.Positive.Render(view.Headline)
	if view.Framing == render.FramingNeedsOptimization {
		headline = m.theme.Negative.Render(view.Headline)
	}

	lines := []string{headline, ""}
	for _, d := range view.Details {
		lines = append(lines, m.theme.Normal.Render(d))
	}
	lines = append(lines, "", m.renderStats(view.Stats), "",
		m.renderButton(view.OptimizeCaption, m.machine.OptimizeEnabled(), m.machine.Busy(wizard.ActionOptimize)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderAllocationStep() string {
	view := m.machine.AllocationView()
	if view == nil {
		return m.theme.Faint.Render("No portfolio yet.")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Bold.Render("Recommended portfolio"),
		"",
		m.renderStats(view.Stats),
		"",
		m.renderTable(view.Table),
		"",
		m.renderChart(view.Chart),
		"",
		m.renderButton("Run rate simulation", m.machine.SimulateEnabled(), m.machine.Busy(wizard.ActionSimulate)),
	)
}

func (m Model) renderSimulationStep() string {
	view := m.machine.SimulationView()
	if view == nil {
		return m.theme.Faint.Render("No simulation yet.")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Bold.Render("Rate sensitivity"),
		m.theme.Subtitle.Render("Base rate "+view.BaseRate),
		"",
		m.renderTable(view.Table),
		"",
		m.renderChart(view.Chart),
	)
}

func (m Model) renderStats(stats []render.Stat) string {
	rows := make([]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			m.theme.Label.Render(s.Label),
			m.theme.Bold.Render(s.Value),
		))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderTable(t render.Table) string {
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, r.Cells)
	}
	last := len(t.Headers) - 1

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(m.theme.Border)).
		Headers(t.Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return m.theme.TableHeader
			}
			if col == last && row >= 0 && row < len(t.Rows) {
				switch t.Rows[row].Tone {
				case render.TonePositive:
					return m.theme.Positive
				case render.ToneNegative:
					return m.theme.Negative
				}
			}
			return m.theme.TableCell
		}).
		String()
}

func (m Model) renderChart(chart render.Chart) string {
	c, ok := chart.(*components.Chart)
	if !ok {
		return ""
	}
	return c.View(m.contentWidth() - 4)
}

func (m Model) renderButton(caption string, enabled, busy bool) string {
	if busy {
		return m.spinner.View() + " " + m.theme.Faint.Render("Working...")
	}
	if enabled {
		return m.theme.Button.Render(caption)
	}
	return m.theme.ButtonOff.Render(caption)
}

// renderStatusBar renders the transient status line.
func (m Model) renderStatusBar() string {
	if m.status == "" {
		return ""
	}
	text := m.status
	if m.exporting {
		text = m.spinner.View() + " " + text
	}
	return m.theme.StatusInfo.Render(text)
}

func (m Model) contentWidth() int {
	w := m.width - 2
	if w < 40 {
		w = 40
	}
	return w
}
