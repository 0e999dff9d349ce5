package render

import (
	"github.com/geneeuchoi/GBI-robot-advisor/internal/format"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/model"
)

// SimulationHeaders are the column titles of the scenario table.
var SimulationHeaders = []string{"Scenario", "Rate shift", "New rate", "Simple savings", "GBI portfolio", "Difference"}

// Series labels of the simulation chart.
const (
	SeriesSavings   = "Simple savings"
	SeriesPortfolio = "GBI portfolio"
	SeriesGoal      = "Goal amount"
)

// SimulationView is the rendered sensitivity simulation.
type SimulationView struct {
	Chart    Chart
	BaseRate string
	Table    Table
	Spec     ChartSpec
}

// SimulationRenderer owns the simulation chart slot.
type SimulationRenderer struct {
	slot *Slot
}

// NewSimulationRenderer creates a renderer drawing on canvas.
func NewSimulationRenderer(canvas Canvas) *SimulationRenderer {
	return &SimulationRenderer{slot: NewSlot("simulation", canvas)}
}

// Render replaces the previous rows and chart with ones built from r.
// goalAmount is drawn as a reference line across every scenario.
func (sr *SimulationRenderer) Render(r model.SimulationResult, goalAmount float64) (SimulationView, error) {
	view := SimulationView{
		BaseRate: format.Percent(r.BaseRate),
		Table:    SimulationTable(r),
		Spec:     SimulationChart(r, goalAmount),
	}
	chart, err := sr.slot.Render(view.Spec)
	if err != nil {
		return view, err
	}
	view.Chart = chart
	return view, nil
}

// Dispose releases the live chart.
func (sr *SimulationRenderer) Dispose() {
	sr.slot.Dispose()
}

// Slot exposes the chart slot.
func (sr *SimulationRenderer) Slot() *Slot {
	return sr.slot
}

// SimulationTable lists every scenario in backend order.
func SimulationTable(r model.SimulationResult) Table {
	rows := make([]Row, 0, len(r.Results))
	for _, s := range r.Results {
		tone := TonePositive
		if s.Difference < 0 {
			tone = ToneNegative
		}
		rows = append(rows, Row{
			Cells: []string{
				s.Label,
				format.PointShift(s.RateShift),
				format.Percent(s.NewRate),
				format.KRW(s.SimpleSavingsFV),
				format.KRW(s.PortfolioFV),
				format.SignedKRW(s.Difference),
			},
			Tone: tone,
		})
	}
	return Table{Headers: SimulationHeaders, Rows: rows}
}

// SimulationChart builds the grouped bar chart with a dashed goal line.
func SimulationChart(r model.SimulationResult, goalAmount float64) ChartSpec {
	n := len(r.Results)
	labels := make([]string, 0, n)
	savings := make([]float64, 0, n)
	portfolio := make([]float64, 0, n)
	goal := make([]float64, 0, n)
	for _, s := range r.Results {
		labels = append(labels, s.Label)
		savings = append(savings, s.SimpleSavingsFV)
		portfolio = append(portfolio, s.PortfolioFV)
		goal = append(goal, goalAmount)
	}
	return ChartSpec{
		Kind:   ChartBar,
		Title:  "Rate sensitivity",
		Labels: labels,
		Unit:   UnitKRW,
		Series: []Series{
			{Label: SeriesSavings, Values: savings, Role: RoleSavings},
			{Label: SeriesPortfolio, Values: portfolio, Role: RolePortfolio},
			{Label: SeriesGoal, Values: goal, Role: RoleGoal, Line: true, Dashed: true},
		},
	}
}
