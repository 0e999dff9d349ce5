package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/model"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/render"
)

// Backend is the remote analysis service.
type Backend interface {
	AnalyzeGap(ctx context.Context, goal model.GoalInput) (*model.GapResult, error)
	Optimize(ctx context.Context, goal model.GoalInput) (*model.OptimizationResult, error)
	Simulate(ctx context.Context, goal model.GoalInput) (*model.SimulationResult, error)
}

// Outcome reports the result of an entry point. Err is nil on success.
type Outcome struct {
	Err        error
	Gap        *render.GapView
	Allocation *render.AllocationView
	Simulation *render.SimulationView
	Step       Step
	Advanced   bool
	Restarted  bool
}

// Pending is a started transition. Run performs only the network exchange
// and may be called from another goroutine; its Completion must be handed
// back to Machine.Complete.
type Pending struct {
	call   func(ctx context.Context) (any, error)
	input  model.GoalInput
	action Action
	epoch  uint64
}

// Action reports which transition is pending.
func (p *Pending) Action() Action {
	return p.action
}

// Run performs the backend call.
func (p *Pending) Run(ctx context.Context) Completion {
	result, err := p.call(ctx)
	return Completion{
		action: p.action,
		epoch:  p.epoch,
		input:  p.input,
		result: result,
		err:    err,
	}
}

// Completion is the finished network exchange of a Pending transition.
type Completion struct {
	result any
	err    error
	input  model.GoalInput
	action Action
	epoch  uint64
}

// Action reports which transition finished.
func (c Completion) Action() Action {
	return c.action
}

// Machine owns a wizard session and enforces the order of its steps. It is
// not safe for concurrent use; only Pending.Run may leave the caller's
// goroutine.
type Machine struct {
	backend        Backend
	allocation     *render.AllocationRenderer
	simulation     *render.SimulationRenderer
	gapView        *render.GapView
	allocationView *render.AllocationView
	simulationView *render.SimulationView
	session        Session
	banner         string
	step           Step
	epoch          uint64
	busy           [actionCount]bool
}

// New creates a machine on the first step. Charts are drawn on canvas.
func New(backend Backend, canvas render.Canvas) *Machine {
	return &Machine{
		backend:    backend,
		allocation: render.NewAllocationRenderer(canvas),
		simulation: render.NewSimulationRenderer(canvas),
		session:    newSession(),
		step:       Collecting,
	}
}

// SubmitGoal validates the goal, runs the gap analysis and moves to Reviewing.
func (m *Machine) SubmitGoal(ctx context.Context, goal model.GoalInput) Outcome {
	p, err := m.BeginSubmit(goal)
	if err != nil {
		return m.outcome(err)
	}
	return m.Complete(p.Run(ctx))
}

// RequestOptimization runs the portfolio optimization and moves to Allocating.
func (m *Machine) RequestOptimization(ctx context.Context) Outcome {
	p, err := m.BeginOptimization()
	if err != nil {
		return m.outcome(err)
	}
	return m.Complete(p.Run(ctx))
}

// RequestSimulation runs the rate simulation and moves to Simulating.
func (m *Machine) RequestSimulation(ctx context.Context) Outcome {
	p, err := m.BeginSimulation()
	if err != nil {
		return m.outcome(err)
	}
	return m.Complete(p.Run(ctx))
}

// BeginSubmit starts the gap analysis transition.
func (m *Machine) BeginSubmit(goal model.GoalInput) (*Pending, error) {
	if m.AnyBusy() {
		return nil, ErrBusy
	}
	if m.step != Collecting {
		return nil, m.fail(ErrWrongStep)
	}
	if m.session.Goal != nil {
		return nil, m.fail(ErrGoalLocked)
	}
	goal = goal.Normalize()
	if violations := model.ValidateGoal(goal); len(violations) > 0 {
		return nil, m.fail(&ValidationError{Violations: violations})
	}
	return m.begin(ActionSubmit, goal, func(ctx context.Context) (any, error) {
		return m.backend.AnalyzeGap(ctx, goal)
	}), nil
}

// BeginOptimization starts the optimization transition.
func (m *Machine) BeginOptimization() (*Pending, error) {
	if m.AnyBusy() {
		return nil, ErrBusy
	}
	if m.step != Reviewing || m.session.Gap == nil {
		return nil, m.fail(ErrWrongStep)
	}
	if !m.session.Gap.OptimizationNeeded {
		return nil, m.fail(ErrOptimizationNotNeeded)
	}
	goal := *m.session.Goal
	return m.begin(ActionOptimize, goal, func(ctx context.Context) (any, error) {
		return m.backend.Optimize(ctx, goal)
	}), nil
}

// BeginSimulation starts the simulation transition with the submitted goal.
func (m *Machine) BeginSimulation() (*Pending, error) {
	if m.AnyBusy() {
		return nil, ErrBusy
	}
	if m.step != Allocating || m.session.Optimization == nil {
		return nil, m.fail(ErrWrongStep)
	}
	goal := *m.session.Goal
	return m.begin(ActionSimulate, goal, func(ctx context.Context) (any, error) {
		return m.backend.Simulate(ctx, goal)
	}), nil
}

func (m *Machine) begin(action Action, goal model.GoalInput, call func(context.Context) (any, error)) *Pending {
	m.busy[action] = true
	slog.Debug("Starting wizard transition",
		"session_id", m.session.ID,
		"action", action.String(),
		"step", m.step.String())
	return &Pending{
		action: action,
		epoch:  m.epoch,
		input:  goal,
		call:   call,
	}
}

// Complete applies a finished exchange. The busy flag of the action is
// cleared on every path. Completions from before a Restart are discarded.
func (m *Machine) Complete(c Completion) Outcome {
	if c.epoch != m.epoch {
		slog.Debug("Discarding stale wizard completion", "action", c.action.String())
		return Outcome{Step: m.step, Err: ErrStale}
	}
	m.busy[c.action] = false

	if c.err != nil {
		return m.outcome(m.fail(&ActionError{Action: c.action, Err: c.err}))
	}

	switch c.action {
	case ActionSubmit:
		return m.completeSubmit(c)
	case ActionOptimize:
		return m.completeOptimize(c)
	case ActionSimulate:
		return m.completeSimulate(c)
	default:
		return m.outcome(m.fail(fmt.Errorf("unknown action %v", c.action)))
	}
}

func (m *Machine) completeSubmit(c Completion) Outcome {
	gap, ok := c.result.(*model.GapResult)
	if !ok || gap == nil {
		return m.outcome(m.fail(&ActionError{Action: c.action, Err: errors.New("empty response")}))
	}
	if err := gap.Check(); err != nil {
		slog.Warn("Gap analysis response breaks contract", "session_id", m.session.ID, "error", err)
	}

	goal := c.input
	view := render.Gap(*gap)
	m.session.Goal = &goal
	m.session.Gap = gap
	m.gapView = &view
	m.step = Reviewing

	slog.Info("Gap analysis completed",
		"session_id", m.session.ID,
		"gap", gap.Gap,
		"optimization_needed", gap.OptimizationNeeded)
	return Outcome{Step: m.step, Advanced: true, Gap: &view}
}

func (m *Machine) completeOptimize(c Completion) Outcome {
	result, ok := c.result.(*model.OptimizationResult)
	if !ok || result == nil {
		return m.outcome(m.fail(&ActionError{Action: c.action, Err: errors.New("empty response")}))
	}
	if !result.Success {
		slog.Info("Optimization rejected", "session_id", m.session.ID, "message", result.Message)
		return m.outcome(m.fail(&RejectionError{Message: result.Message}))
	}
	if err := result.Check(); err != nil {
		slog.Warn("Optimization response breaks contract", "session_id", m.session.ID, "error", err)
	}

	view, err := m.allocation.Render(*result)
	if err != nil {
		// The slot already disposed the previous chart; keep its rows only.
		if m.allocationView != nil {
			m.allocationView.Chart = nil
		}
		return m.outcome(m.fail(err))
	}
	m.session.Optimization = result
	m.allocationView = &view
	m.step = Allocating

	slog.Info("Optimization completed",
		"session_id", m.session.ID,
		"allocations", len(result.Allocations),
		"portfolio_return", result.PortfolioReturn)
	return Outcome{Step: m.step, Advanced: true, Allocation: &view}
}

func (m *Machine) completeSimulate(c Completion) Outcome {
	result, ok := c.result.(*model.SimulationResult)
	if !ok || result == nil {
		return m.outcome(m.fail(&ActionError{Action: c.action, Err: errors.New("empty response")}))
	}

	view, err := m.simulation.Render(*result, c.input.GoalAmount)
	if err != nil {
		if m.simulationView != nil {
			m.simulationView.Chart = nil
		}
		return m.outcome(m.fail(err))
	}
	m.session.Simulation = result
	m.simulationView = &view
	m.step = Simulating

	slog.Info("Simulation completed",
		"session_id", m.session.ID,
		"scenarios", len(result.Results))
	return Outcome{Step: m.step, Advanced: true, Simulation: &view}
}

// Restart discards every stored result, disposes both charts and returns to
// the first step. In-flight completions are discarded when they arrive.
func (m *Machine) Restart() Outcome {
	m.allocation.Dispose()
	m.simulation.Dispose()

	previous := m.session.ID
	m.epoch++
	m.busy = [actionCount]bool{}
	m.session = newSession()
	m.gapView = nil
	m.allocationView = nil
	m.simulationView = nil
	m.banner = ""
	m.step = Collecting

	slog.Info("Wizard restarted", "previous_session_id", previous, "session_id", m.session.ID)
	return Outcome{Step: m.step, Restarted: true}
}

// NavigateTo changes the visible step without touching stored data. Only
// steps whose data exists can be shown, and the step cannot change while a
// call is in flight.
func (m *Machine) NavigateTo(step Step) error {
	if m.AnyBusy() {
		return ErrBusy
	}
	if !m.Available(step) {
		return fmt.Errorf("%w: %s", ErrStepUnavailable, step.Label())
	}
	m.step = step
	return nil
}

// Available reports whether step can be shown.
func (m *Machine) Available(step Step) bool {
	switch step {
	case Collecting:
		return true
	case Reviewing:
		return m.session.Gap != nil
	case Allocating:
		return m.session.Optimization != nil
	case Simulating:
		return m.session.Simulation != nil
	default:
		return false
	}
}

// Step returns the visible step.
func (m *Machine) Step() Step {
	return m.step
}

// Snapshot returns a deep copy of the session, safe to hand to exporters.
func (m *Machine) Snapshot() Session {
	return m.session.clone()
}

// Progress returns the progress indicator for the visible step.
func (m *Machine) Progress() []Marker {
	return Progress(m.step)
}

// Session returns the accumulated session data.
func (m *Machine) Session() Session {
	return m.session
}

// Busy reports whether the action's call is in flight.
func (m *Machine) Busy(action Action) bool {
	return m.busy[action]
}

// AnyBusy reports whether any call is in flight.
func (m *Machine) AnyBusy() bool {
	for _, b := range m.busy {
		if b {
			return true
		}
	}
	return false
}

// SubmitEnabled reports whether the goal form can be submitted.
func (m *Machine) SubmitEnabled() bool {
	return m.session.Goal == nil && !m.AnyBusy()
}

// OptimizeEnabled reports whether the optimize action is offered.
func (m *Machine) OptimizeEnabled() bool {
	return m.session.Gap != nil && m.session.Gap.OptimizationNeeded && !m.AnyBusy()
}

// SimulateEnabled reports whether the simulate action is offered.
func (m *Machine) SimulateEnabled() bool {
	return m.session.Optimization != nil && !m.AnyBusy()
}

// GapView returns the latest rendered gap analysis.
func (m *Machine) GapView() *render.GapView {
	return m.gapView
}

// AllocationView returns the latest rendered optimization.
func (m *Machine) AllocationView() *render.AllocationView {
	return m.allocationView
}

// SimulationView returns the latest rendered simulation.
func (m *Machine) SimulationView() *render.SimulationView {
	return m.simulationView
}

// Banner returns the error banner text, empty when none is shown.
func (m *Machine) Banner() string {
	return m.banner
}

// DismissBanner hides the error banner.
func (m *Machine) DismissBanner() {
	m.banner = ""
}

// fail shows err in the banner, replacing any previous one.
func (m *Machine) fail(err error) error {
	if !errors.Is(err, ErrBusy) {
		m.banner = err.Error()
		slog.Debug("Wizard transition failed", "session_id", m.session.ID, "step", m.step.String(), "error", err)
	}
	return err
}

func (m *Machine) outcome(err error) Outcome {
	return Outcome{Step: m.step, Err: err}
}
