// Package wizard holds the four-step planning session and the transitions
// between its steps.
package wizard

import "fmt"

// Step is a wizard state; its number is the visible step.
type Step int

// Steps, in order.
const (
	Collecting Step = iota + 1
	Reviewing
	Allocating
	Simulating
)

// Steps lists every step in order.
var Steps = []Step{Collecting, Reviewing, Allocating, Simulating}

var stepLabels = map[Step]string{
	Collecting: "Goal",
	Reviewing:  "Gap analysis",
	Allocating: "Portfolio",
	Simulating: "Simulation",
}

// Label is the short name shown in the progress indicator.
func (s Step) Label() string {
	if l, ok := stepLabels[s]; ok {
		return l
	}
	return fmt.Sprintf("Step %d", int(s))
}

func (s Step) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Reviewing:
		return "reviewing"
	case Allocating:
		return "allocating"
	case Simulating:
		return "simulating"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Valid reports whether s is one of the four steps.
func (s Step) Valid() bool {
	return s >= Collecting && s <= Simulating
}

// Action is a forward transition that calls the backend.
type Action int

// Actions.
const (
	ActionSubmit Action = iota
	ActionOptimize
	ActionSimulate
	actionCount
)

func (a Action) String() string {
	switch a {
	case ActionSubmit:
		return "submit"
	case ActionOptimize:
		return "optimize"
	case ActionSimulate:
		return "simulate"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// failurePrefix is shown before backend error messages in the banner.
func (a Action) failurePrefix() string {
	switch a {
	case ActionSubmit:
		return "Gap analysis failed"
	case ActionOptimize:
		return "Portfolio optimization failed"
	case ActionSimulate:
		return "Simulation failed"
	default:
		return "Request failed"
	}
}
