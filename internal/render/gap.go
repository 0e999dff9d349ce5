package render

import (
	"github.com/geneeuchoi/GBI-robot-advisor/internal/format"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/model"
)

// Framing is the presentation mode of the gap step.
type Framing int

// Framings.
const (
	FramingNeedsOptimization Framing = iota
	FramingGoalMet
)

// GapView is the rendered gap analysis.
type GapView struct {
	Headline        string
	Details         []string
	OptimizeCaption string
	Stats           []Stat
	Framing         Framing
	OptimizeEnabled bool
}

// Gap renders a gap analysis result. It branches on OptimizationNeeded only;
// the sign of Gap does not affect whether optimization is offered.
func Gap(r model.GapResult) GapView {
	view := GapView{
		Stats: []Stat{
			{Label: "Safe-asset future value", Value: format.KRW(r.FutureValueSafe)},
			{Label: "Goal amount", Value: format.KRW(r.GoalAmount)},
			{Label: "Gap", Value: format.KRW(r.Gap)},
			{Label: "Required annual return", Value: format.OptionalPercent(r.RequiredAnnualReturn)},
		},
	}

	if r.OptimizationNeeded {
		view.Framing = FramingNeedsOptimization
		view.Headline = "Optimization needed"
		view.Details = []string{
			"Safe assets alone fall short of the goal by " + format.KRW(r.Gap) + ".",
			"A duration-matched portfolio can help close the gap.",
		}
		view.OptimizeEnabled = true
		view.OptimizeCaption = "Optimize portfolio"
		return view
	}

	view.Framing = FramingGoalMet
	view.Headline = "Goal already met"
	view.Details = []string{
		"Safe assets (deposits) alone reach the goal.",
		"Expected future value: " + format.KRW(r.FutureValueSafe),
	}
	view.OptimizeCaption = "Optimization not needed"
	return view
}
