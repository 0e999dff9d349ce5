package wizard

import (
	"github.com/google/uuid"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/model"
)

// Session is the data accumulated by one pass through the wizard. Fields are
// nil until the step producing them succeeds.
type Session struct {
	Goal         *model.GoalInput
	Gap          *model.GapResult
	Optimization *model.OptimizationResult
	Simulation   *model.SimulationResult
	ID           string
}

func newSession() Session {
	return Session{ID: uuid.NewString()}
}

// Empty reports whether no data has been stored yet.
func (s Session) Empty() bool {
	return s.Goal == nil && s.Gap == nil && s.Optimization == nil && s.Simulation == nil
}

// clone copies every stored result so the copy shares no memory with s.
func (s Session) clone() Session {
	out := Session{ID: s.ID}
	if s.Goal != nil {
		g := *s.Goal
		out.Goal = &g
	}
	if s.Gap != nil {
		g := *s.Gap
		if g.RequiredAnnualReturn != nil {
			r := *g.RequiredAnnualReturn
			g.RequiredAnnualReturn = &r
		}
		out.Gap = &g
	}
	if s.Optimization != nil {
		o := *s.Optimization
		o.Allocations = append([]model.Allocation(nil), o.Allocations...)
		out.Optimization = &o
	}
	if s.Simulation != nil {
		sim := *s.Simulation
		sim.Results = append([]model.ScenarioRow(nil), sim.Results...)
		out.Simulation = &sim
	}
	return out
}
