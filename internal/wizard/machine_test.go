package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/api"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/model"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/render/rendertest"
)

type fakeBackend struct {
	gap          *model.GapResult
	optimization *model.OptimizationResult
	simulation   *model.SimulationResult
	gapErr       error
	optimizeErr  error
	simulateErr  error
	gapCalls     []model.GoalInput
	optCalls     []model.GoalInput
	simCalls     []model.GoalInput
}

func (f *fakeBackend) AnalyzeGap(_ context.Context, goal model.GoalInput) (*model.GapResult, error) {
	f.gapCalls = append(f.gapCalls, goal)
	if f.gapErr != nil {
		return nil, f.gapErr
	}
	return f.gap, nil
}

func (f *fakeBackend) Optimize(_ context.Context, goal model.GoalInput) (*model.OptimizationResult, error) {
	f.optCalls = append(f.optCalls, goal)
	if f.optimizeErr != nil {
		return nil, f.optimizeErr
	}
	return f.optimization, nil
}

func (f *fakeBackend) Simulate(_ context.Context, goal model.GoalInput) (*model.SimulationResult, error) {
	f.simCalls = append(f.simCalls, goal)
	if f.simulateErr != nil {
		return nil, f.simulateErr
	}
	return f.simulation, nil
}

var scenarioGoal = model.GoalInput{
	GoalAmount:          50_000_000,
	TimeHorizonMonths:   24,
	MonthlyContribution: 1_500_000,
}

func newBackend() *fakeBackend {
	return &fakeBackend{
		gap: &model.GapResult{
			FutureValueSafe:    48_000_000,
			GoalAmount:         50_000_000,
			Gap:                2_000_000,
			OptimizationNeeded: true,
		},
		optimization: &model.OptimizationResult{
			Success:             true,
			PortfolioDuration:   1.9,
			PortfolioReturn:     0.041,
			ExpectedFutureValue: 50_050_000,
			Allocations: []model.Allocation{
				{Name: "ISA deposit", Weight: 0.6, MonthlyAmount: 900_000},
				{Name: "KODEX 3Y bond ETF", Weight: 0.4, MonthlyAmount: 600_000},
			},
		},
		simulation: &model.SimulationResult{
			BaseRate: 0.035,
			Results: []model.ScenarioRow{
				{Label: "Base", SimpleSavingsFV: 48_000_000, PortfolioFV: 50_050_000, Difference: 2_050_000},
			},
		},
	}
}

func newMachine(t *testing.T, backend *fakeBackend) (*Machine, *rendertest.Canvas) {
	t.Helper()
	canvas := &rendertest.Canvas{}
	return New(backend, canvas), canvas
}

func runToSimulation(t *testing.T, m *Machine) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, m.SubmitGoal(ctx, scenarioGoal).Err)
	require.NoError(t, m.RequestOptimization(ctx).Err)
	require.NoError(t, m.RequestSimulation(ctx).Err)
	require.Equal(t, Simulating, m.Step())
}

func TestMachine_InitialState(t *testing.T) {
	m, _ := newMachine(t, newBackend())

	assert.Equal(t, Collecting, m.Step())
	assert.True(t, m.Session().Empty())
	assert.NotEmpty(t, m.Session().ID)
	assert.False(t, m.OptimizeEnabled())
	assert.False(t, m.SimulateEnabled())
	assert.True(t, m.SubmitEnabled())
	assert.Empty(t, m.Banner())
}

func TestMachine_SubmitGoal_Scenario(t *testing.T) {
	backend := newBackend()
	m, _ := newMachine(t, backend)

	out := m.SubmitGoal(context.Background(), scenarioGoal)
	require.NoError(t, out.Err)

	require.Len(t, backend.gapCalls, 1)
	assert.Equal(t, scenarioGoal, backend.gapCalls[0])
	assert.True(t, out.Advanced)
	assert.Equal(t, Reviewing, out.Step)
	assert.Equal(t, Reviewing, m.Step())
	assert.True(t, m.OptimizeEnabled())
	require.NotNil(t, out.Gap)
	assert.Equal(t, "200만원", out.Gap.Stats[2].Value)
	assert.Same(t, out.Gap, m.GapView())
	assert.Equal(t, scenarioGoal, *m.Session().Goal)
	assert.False(t, m.Busy(ActionSubmit))
}

func TestMachine_SubmitGoal_ValidationBlocksNetwork(t *testing.T) {
	tests := []struct {
		name string
		goal model.GoalInput
	}{
		{name: "zero goal", goal: model.GoalInput{TimeHorizonMonths: 12, MonthlyContribution: 1}},
		{name: "zero months", goal: model.GoalInput{GoalAmount: 1, MonthlyContribution: 1}},
		{name: "negative monthly", goal: model.GoalInput{GoalAmount: 1, TimeHorizonMonths: 1, MonthlyContribution: -1}},
		{name: "negative principal", goal: model.GoalInput{GoalAmount: 1, TimeHorizonMonths: 1, MonthlyContribution: 1, InitialPrincipal: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newBackend()
			m, _ := newMachine(t, backend)

			out := m.SubmitGoal(context.Background(), tt.goal)

			var verr *ValidationError
			require.ErrorAs(t, out.Err, &verr)
			assert.NotEmpty(t, verr.Violations)
			assert.Empty(t, backend.gapCalls)
			assert.Equal(t, Collecting, m.Step())
			assert.Equal(t, verr.Error(), m.Banner())
			assert.False(t, m.Busy(ActionSubmit))
		})
	}
}

func TestMachine_SubmitGoal_AllViolationsShownTogether(t *testing.T) {
	m, _ := newMachine(t, newBackend())

	out := m.SubmitGoal(context.Background(), model.GoalInput{InitialPrincipal: -1})
	require.Error(t, out.Err)
	assert.Equal(t,
		model.MsgGoalAmount+"\n"+model.MsgTimeHorizon+"\n"+model.MsgMonthly+"\n"+model.MsgInitialPrincipal,
		m.Banner())
}

func TestMachine_SubmitGoal_BackendFailure(t *testing.T) {
	backend := newBackend()
	backend.gapErr = &api.Error{StatusCode: 429, Message: "rate limit"}
	m, _ := newMachine(t, backend)

	out := m.SubmitGoal(context.Background(), scenarioGoal)

	var apiErr *api.Error
	require.ErrorAs(t, out.Err, &apiErr)
	assert.Equal(t, "Gap analysis failed: rate limit", m.Banner())
	assert.Equal(t, Collecting, m.Step())
	assert.Nil(t, m.Session().Goal)
	assert.False(t, m.Busy(ActionSubmit))

	backend.gapErr = nil
	out = m.SubmitGoal(context.Background(), scenarioGoal)
	require.NoError(t, out.Err)
	assert.Equal(t, Reviewing, m.Step())
}

func TestMachine_GoalMetDisablesOptimize(t *testing.T) {
	backend := newBackend()
	backend.gap = &model.GapResult{
		FutureValueSafe: 52_000_000,
		GoalAmount:      50_000_000,
		Gap:             -2_000_000,
	}
	m, _ := newMachine(t, backend)

	require.NoError(t, m.SubmitGoal(context.Background(), scenarioGoal).Err)
	assert.False(t, m.OptimizeEnabled())

	out := m.RequestOptimization(context.Background())
	assert.ErrorIs(t, out.Err, ErrOptimizationNotNeeded)
	assert.Empty(t, backend.optCalls)
	assert.Equal(t, Reviewing, m.Step())
}

func TestMachine_OptimizationRejected(t *testing.T) {
	backend := newBackend()
	backend.optimization = &model.OptimizationResult{Success: false, Message: "infeasible duration target"}
	m, canvas := newMachine(t, backend)

	require.NoError(t, m.SubmitGoal(context.Background(), scenarioGoal).Err)
	out := m.RequestOptimization(context.Background())

	var rej *RejectionError
	require.ErrorAs(t, out.Err, &rej)
	assert.Equal(t, "infeasible duration target", m.Banner())
	assert.Equal(t, Reviewing, m.Step())
	assert.Nil(t, m.Session().Optimization)
	assert.Nil(t, m.AllocationView())
	assert.Equal(t, 0, canvas.Drawn())
	assert.False(t, m.Busy(ActionOptimize))
	assert.True(t, m.OptimizeEnabled())
}

func TestMachine_SimulationReusesGoal(t *testing.T) {
	backend := newBackend()
	m, canvas := newMachine(t, backend)

	runToSimulation(t, m)

	require.Len(t, backend.optCalls, 1)
	require.Len(t, backend.simCalls, 1)
	assert.Equal(t, scenarioGoal, backend.optCalls[0])
	assert.Equal(t, scenarioGoal, backend.simCalls[0])
	assert.Equal(t, 2, canvas.Live())

	view := m.SimulationView()
	require.NotNil(t, view)
	assert.Equal(t, []float64{50_000_000}, view.Spec.Series[2].Values)
}

func TestMachine_SimulationFailureKeepsAllocation(t *testing.T) {
	backend := newBackend()
	backend.simulateErr = errors.New("connection refused")
	m, _ := newMachine(t, backend)

	require.NoError(t, m.SubmitGoal(context.Background(), scenarioGoal).Err)
	require.NoError(t, m.RequestOptimization(context.Background()).Err)

	out := m.RequestSimulation(context.Background())
	require.Error(t, out.Err)
	assert.Equal(t, "Simulation failed: connection refused", m.Banner())
	assert.Equal(t, Allocating, m.Step())
	assert.NotNil(t, m.Session().Optimization)
	assert.NotNil(t, m.AllocationView())
	assert.True(t, m.SimulateEnabled())
}

func TestMachine_ActionsOnWrongStep(t *testing.T) {
	backend := newBackend()
	m, _ := newMachine(t, backend)

	assert.ErrorIs(t, m.RequestOptimization(context.Background()).Err, ErrWrongStep)
	assert.ErrorIs(t, m.RequestSimulation(context.Background()).Err, ErrWrongStep)
	assert.Empty(t, backend.optCalls)
	assert.Empty(t, backend.simCalls)
}

func TestMachine_BusyPreventsSecondCall(t *testing.T) {
	backend := newBackend()
	m, _ := newMachine(t, backend)

	pending, err := m.BeginSubmit(scenarioGoal)
	require.NoError(t, err)
	assert.True(t, m.Busy(ActionSubmit))
	assert.True(t, m.AnyBusy())
	assert.False(t, m.SubmitEnabled())

	_, err = m.BeginSubmit(scenarioGoal)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Empty(t, m.Banner())

	out := m.Complete(pending.Run(context.Background()))
	require.NoError(t, out.Err)
	assert.False(t, m.AnyBusy())
	assert.Len(t, backend.gapCalls, 1)

	pending, err = m.BeginOptimization()
	require.NoError(t, err)
	assert.False(t, m.OptimizeEnabled())
	_, err = m.BeginOptimization()
	assert.ErrorIs(t, err, ErrBusy)

	backend.optimizeErr = errors.New("timeout")
	m.Complete(pending.Run(context.Background()))
	assert.False(t, m.Busy(ActionOptimize))
	assert.True(t, m.OptimizeEnabled())
}

func TestMachine_InFlightCallBlocksEverythingElse(t *testing.T) {
	backend := newBackend()
	m, _ := newMachine(t, backend)
	ctx := context.Background()
	require.NoError(t, m.SubmitGoal(ctx, scenarioGoal).Err)
	require.NoError(t, m.RequestOptimization(ctx).Err)

	pending, err := m.BeginSimulation()
	require.NoError(t, err)

	assert.ErrorIs(t, m.NavigateTo(Reviewing), ErrBusy)
	assert.Equal(t, Allocating, m.Step())
	_, err = m.BeginOptimization()
	assert.ErrorIs(t, err, ErrBusy)
	_, err = m.BeginSubmit(scenarioGoal)
	assert.ErrorIs(t, err, ErrBusy)
	assert.False(t, m.OptimizeEnabled())
	assert.False(t, m.SimulateEnabled())
	assert.Empty(t, m.Banner())

	out := m.Complete(pending.Run(ctx))
	require.NoError(t, out.Err)
	assert.Equal(t, Simulating, m.Step())
	assert.Len(t, backend.optCalls, 1)
	assert.Len(t, backend.simCalls, 1)

	require.NoError(t, m.NavigateTo(Reviewing))
	assert.Equal(t, Reviewing, m.Step())
	assert.NotNil(t, m.Session().Simulation)
}

func TestMachine_RedrawFailureDropsDisposedChart(t *testing.T) {
	m, canvas := newMachine(t, newBackend())
	ctx := context.Background()
	require.NoError(t, m.SubmitGoal(ctx, scenarioGoal).Err)
	require.NoError(t, m.RequestOptimization(ctx).Err)
	require.NotNil(t, m.AllocationView().Chart)

	require.NoError(t, m.NavigateTo(Reviewing))
	canvas.Err = errors.New("no terminal")
	out := m.RequestOptimization(ctx)
	require.Error(t, out.Err)

	view := m.AllocationView()
	require.NotNil(t, view)
	assert.Nil(t, view.Chart)
	assert.Len(t, view.Table.Rows, 2)
	assert.Equal(t, 0, canvas.Live())
	assert.Equal(t, Reviewing, m.Step())
	assert.Contains(t, m.Banner(), "no terminal")
}

func TestMachine_GoalLockedAfterSubmit(t *testing.T) {
	m, _ := newMachine(t, newBackend())
	require.NoError(t, m.SubmitGoal(context.Background(), scenarioGoal).Err)

	require.NoError(t, m.NavigateTo(Collecting))
	out := m.SubmitGoal(context.Background(), model.GoalInput{GoalAmount: 1, TimeHorizonMonths: 1, MonthlyContribution: 1})
	assert.ErrorIs(t, out.Err, ErrGoalLocked)
	assert.Equal(t, scenarioGoal, *m.Session().Goal)
	assert.False(t, m.SubmitEnabled())
}

func TestMachine_Restart(t *testing.T) {
	for _, step := range Steps {
		t.Run(step.String(), func(t *testing.T) {
			m, canvas := newMachine(t, newBackend())
			runToSimulation(t, m)
			require.NoError(t, m.NavigateTo(step))
			firstID := m.Session().ID

			out := m.Restart()

			assert.True(t, out.Restarted)
			assert.Equal(t, Collecting, m.Step())
			assert.True(t, m.Session().Empty())
			assert.NotEqual(t, firstID, m.Session().ID)
			assert.Equal(t, 0, canvas.Live())
			assert.False(t, m.OptimizeEnabled())
			assert.Nil(t, m.GapView())
			assert.Nil(t, m.AllocationView())
			assert.Nil(t, m.SimulationView())
			assert.True(t, m.SubmitEnabled())
		})
	}
}

func TestMachine_RestartDiscardsInFlightCompletion(t *testing.T) {
	backend := newBackend()
	m, canvas := newMachine(t, backend)
	require.NoError(t, m.SubmitGoal(context.Background(), scenarioGoal).Err)

	pending, err := m.BeginOptimization()
	require.NoError(t, err)
	m.Restart()
	assert.False(t, m.AnyBusy())

	out := m.Complete(pending.Run(context.Background()))
	assert.ErrorIs(t, out.Err, ErrStale)
	assert.Equal(t, Collecting, m.Step())
	assert.Nil(t, m.Session().Optimization)
	assert.Equal(t, 0, canvas.Live())
}

func TestMachine_RerenderKeepsOneChartPerSlot(t *testing.T) {
	m, canvas := newMachine(t, newBackend())
	runToSimulation(t, m)

	require.NoError(t, m.NavigateTo(Reviewing))
	require.NoError(t, m.RequestOptimization(context.Background()).Err)
	require.NoError(t, m.RequestSimulation(context.Background()).Err)

	assert.Equal(t, 4, canvas.Drawn())
	assert.Equal(t, 2, canvas.Live())
}

func TestMachine_NavigateTo(t *testing.T) {
	m, _ := newMachine(t, newBackend())

	assert.ErrorIs(t, m.NavigateTo(Reviewing), ErrStepUnavailable)
	assert.ErrorIs(t, m.NavigateTo(Step(9)), ErrStepUnavailable)
	require.NoError(t, m.NavigateTo(Collecting))

	require.NoError(t, m.SubmitGoal(context.Background(), scenarioGoal).Err)
	require.NoError(t, m.RequestOptimization(context.Background()).Err)

	require.NoError(t, m.NavigateTo(Collecting))
	assert.Equal(t, Collecting, m.Step())
	assert.NotNil(t, m.Session().Optimization)
	assert.ErrorIs(t, m.NavigateTo(Simulating), ErrStepUnavailable)
	require.NoError(t, m.NavigateTo(Allocating))
}

func TestMachine_BannerReplacedAndDismissed(t *testing.T) {
	backend := newBackend()
	backend.gapErr = &api.Error{StatusCode: 503, Message: "HTTP 503"}
	m, _ := newMachine(t, backend)

	m.SubmitGoal(context.Background(), model.GoalInput{})
	first := m.Banner()
	require.NotEmpty(t, first)

	m.SubmitGoal(context.Background(), scenarioGoal)
	assert.Equal(t, "Gap analysis failed: HTTP 503", m.Banner())

	m.DismissBanner()
	assert.Empty(t, m.Banner())
}

func TestProgress(t *testing.T) {
	markers := Progress(Allocating)
	require.Len(t, markers, 4)
	assert.Equal(t, MarkerCompleted, markers[0].Status)
	assert.Equal(t, MarkerCompleted, markers[1].Status)
	assert.Equal(t, MarkerActive, markers[2].Status)
	assert.Equal(t, MarkerUpcoming, markers[3].Status)
	assert.Equal(t, "Portfolio", markers[2].Label)

	for _, m := range Progress(Collecting)[1:] {
		assert.Equal(t, MarkerUpcoming, m.Status)
	}
}

func TestMachine_SnapshotIsDetached(t *testing.T) {
	m, _ := newMachine(t, newBackend())
	runToSimulation(t, m)

	snap := m.Snapshot()
	require.NotNil(t, snap.Optimization)
	snap.Optimization.Allocations[0].Name = "changed"
	snap.Goal.GoalAmount = 1

	assert.Equal(t, "ISA deposit", m.Session().Optimization.Allocations[0].Name)
	assert.Equal(t, scenarioGoal.GoalAmount, m.Session().Goal.GoalAmount)
	assert.Equal(t, m.Session().ID, snap.ID)
}
