// Package tui is the interactive terminal front end of the planning wizard.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/tui/components"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/tui/themes"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/wizard"
)

// Model holds the main TUI state. The wizard machine is shared between
// copies of the model and only touched from Update.
type Model struct {
	theme     themes.Theme
	machine   *wizard.Machine
	canvas    *components.Canvas
	help      help.Model
	spinner   spinner.Model
	progress  progress.Model
	form      components.GoalFormModel
	status    string
	config    Config
	keymap    KeyMap
	width     int
	height    int
	exporting bool
	quitting  bool
}

// New creates the UI model driving a fresh wizard session.
func New(backend wizard.Backend, opts ...Option) Model {
	cfg := defaultConfig()
	cfg.Backend = backend
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(cfg)
}

func newModel(cfg Config) Model {
	canvas := components.NewCanvas(cfg.Theme)

	s := spinner.New()
	s.Spinner = spinner.Dot

	prog := progress.New(progress.WithSolidFill(string(cfg.Theme.Primary)))
	prog.ShowPercentage = false
	prog.Width = 30

	return Model{
		theme:    cfg.Theme,
		machine:  wizard.New(cfg.Backend, canvas),
		canvas:   canvas,
		help:     help.New(),
		spinner:  s,
		progress: prog,
		form:     components.NewGoalForm(cfg.Theme),
		config:   cfg,
		keymap:   DefaultKeyMap(),
		width:    cfg.Width,
		height:   cfg.Height,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, textinput.Blink)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case transitionDoneMsg:
		out := m.machine.Complete(msg.completion)
		if out.Err == nil && out.Step == wizard.Reviewing && out.Advanced {
			m.form.Lock()
		}
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
		} else {
			m.status = "Report saved to " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		if !m.machine.AnyBusy() && !m.exporting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.editing() {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.layout()
}

// editing reports whether key presses go to the goal form.
func (m Model) editing() bool {
	return m.machine.Step() == wizard.Collecting && !m.form.Locked()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.editing() {
		switch {
		case key.Matches(msg, m.keymap.Submit):
			return m.submit()
		case msg.Type == tea.KeyEsc:
			m.machine.DismissBanner()
			return m, nil
		case msg.Type == tea.KeyCtrlR:
			return m.restart()
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Submit):
		return m.primaryAction()
	case key.Matches(msg, m.keymap.Optimize):
		return m.optimize()
	case key.Matches(msg, m.keymap.Simulate):
		return m.simulate()
	case key.Matches(msg, m.keymap.Restart):
		return m.restart()
	case key.Matches(msg, m.keymap.Back):
		return m.navigate(m.machine.Step() - 1)
	case key.Matches(msg, m.keymap.Jump):
		return m.navigate(wizard.Step(msg.Runes[0] - '0'))
	case key.Matches(msg, m.keymap.Dismiss):
		m.machine.DismissBanner()
	case key.Matches(msg, m.keymap.Export):
		return m.export()
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// primaryAction runs the forward action of the visible step.
func (m Model) primaryAction() (tea.Model, tea.Cmd) {
	switch m.machine.Step() {
	case wizard.Reviewing:
		return m.optimize()
	case wizard.Allocating:
		return m.simulate()
	default:
		return m, nil
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.status = ""
	p, err := m.machine.BeginSubmit(m.form.Value().Goal())
	if err != nil {
		return m, nil
	}
	return m, tea.Batch(m.runTransition(p), m.spinner.Tick)
}

func (m Model) optimize() (tea.Model, tea.Cmd) {
	m.status = ""
	p, err := m.machine.BeginOptimization()
	if err != nil {
		return m, nil
	}
	return m, tea.Batch(m.runTransition(p), m.spinner.Tick)
}

func (m Model) simulate() (tea.Model, tea.Cmd) {
	m.status = ""
	p, err := m.machine.BeginSimulation()
	if err != nil {
		return m, nil
	}
	return m, tea.Batch(m.runTransition(p), m.spinner.Tick)
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	m.machine.Restart()
	m.status = ""
	cmd := m.form.Reset()
	return m, cmd
}

func (m Model) navigate(step wizard.Step) (tea.Model, tea.Cmd) {
	if err := m.machine.NavigateTo(step); err != nil {
		switch {
		case errors.Is(err, wizard.ErrBusy):
			m.status = "Wait for the current request to finish"
		case errors.Is(err, wizard.ErrStepUnavailable) && step.Valid():
			m.status = step.Label() + " is not available yet"
		}
		return m, nil
	}
	m.status = ""
	return m, nil
}

func (m Model) export() (tea.Model, tea.Cmd) {
	if m.exporting {
		return m, nil
	}
	session := m.machine.Snapshot()
	if session.Goal == nil {
		m.status = "Nothing to export yet"
		return m, nil
	}
	m.exporting = true
	m.status = "Exporting report..."
	return m, tea.Batch(m.exportReport(session), m.spinner.Tick)
}

// Machine exposes the wizard state for inspection.
func (m Model) Machine() *wizard.Machine {
	return m.machine
}
