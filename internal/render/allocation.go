package render

import (
	"fmt"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/format"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/model"
)

// AllocationHeaders are the column titles of the allocation table.
var AllocationHeaders = []string{"Asset", "Weight", "Monthly", "Duration", "After-tax return"}

// AllocationView is the rendered optimization result.
type AllocationView struct {
	Chart Chart
	Stats []Stat
	Table Table
	Spec  ChartSpec
}

// AllocationRenderer owns the allocation chart slot.
type AllocationRenderer struct {
	slot *Slot
}

// NewAllocationRenderer creates a renderer drawing on canvas.
func NewAllocationRenderer(canvas Canvas) *AllocationRenderer {
	return &AllocationRenderer{slot: NewSlot("allocation", canvas)}
}

// Render replaces the previous rows and chart with ones built from r.
func (ar *AllocationRenderer) Render(r model.OptimizationResult) (AllocationView, error) {
	view := AllocationView{
		Stats: AllocationStats(r),
		Table: AllocationTable(r),
		Spec:  AllocationChart(r),
	}
	chart, err := ar.slot.Render(view.Spec)
	if err != nil {
		return view, err
	}
	view.Chart = chart
	return view, nil
}

// Dispose releases the live chart.
func (ar *AllocationRenderer) Dispose() {
	ar.slot.Dispose()
}

// Slot exposes the chart slot.
func (ar *AllocationRenderer) Slot() *Slot {
	return ar.slot
}

// AllocationStats summarizes the portfolio.
func AllocationStats(r model.OptimizationResult) []Stat {
	return []Stat{
		{Label: "Portfolio duration", Value: format.Years(r.PortfolioDuration)},
		{Label: "Portfolio return", Value: format.Percent(r.PortfolioReturn)},
		{Label: "Expected future value", Value: format.KRW(r.ExpectedFutureValue)},
	}
}

// AllocationTable lists every allocation in backend order.
func AllocationTable(r model.OptimizationResult) Table {
	rows := make([]Row, 0, len(r.Allocations))
	for _, a := range r.Allocations {
		rows = append(rows, Row{Cells: []string{
			a.Name,
			format.Weight(a.Weight),
			format.KRW(a.MonthlyAmount),
			format.Years(a.DurationContribution),
			format.Percent(a.AfterTaxReturn),
		}})
	}
	return Table{Headers: AllocationHeaders, Rows: rows}
}

// AllocationChart builds the weight doughnut. Colors cycle through the
// allocation palette.
func AllocationChart(r model.OptimizationResult) ChartSpec {
	n := len(r.Allocations)
	labels := make([]string, 0, n)
	values := make([]float64, 0, n)
	roles := make([]ColorRole, 0, n)
	tips := make([]string, 0, n)
	for i, a := range r.Allocations {
		labels = append(labels, a.Name)
		values = append(values, a.Weight)
		roles = append(roles, AllocationRoles[i%len(AllocationRoles)])
		tips = append(tips, fmt.Sprintf("%s: %s (monthly %s)", a.Name, format.Weight(a.Weight), format.KRW(a.MonthlyAmount)))
	}
	return ChartSpec{
		Kind:   ChartDoughnut,
		Title:  "Allocation",
		Labels: labels,
		Unit:   UnitPercent,
		Series: []Series{{
			Label:       "Weight",
			Values:      values,
			Roles:       roles,
			PointLabels: tips,
		}},
	}
}
