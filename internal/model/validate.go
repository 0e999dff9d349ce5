package model

import (
	"errors"
	"math"
)

// ErrContractViolation marks a backend response that breaks an invariant the
// client relies on.
var ErrContractViolation = errors.New("backend contract violation")

// Violation messages returned by ValidateGoal.
const (
	MsgGoalAmount       = "Goal amount must be greater than 0."
	MsgTimeHorizon      = "Time horizon must be at least 1 month."
	MsgMonthly          = "Monthly contribution must be greater than 0."
	MsgInitialPrincipal = "Initial principal must be 0 or more."
)

// ValidateGoal checks every rule independently and returns all violations.
// An empty result means the goal may be submitted.
func ValidateGoal(in GoalInput) []string {
	violations := []string{}
	if !positive(in.GoalAmount) {
		violations = append(violations, MsgGoalAmount)
	}
	if in.TimeHorizonMonths <= 0 {
		violations = append(violations, MsgTimeHorizon)
	}
	if !positive(in.MonthlyContribution) {
		violations = append(violations, MsgMonthly)
	}
	// Absent or non-finite principal counts as zero.
	if finite(in.InitialPrincipal) && in.InitialPrincipal < 0 {
		violations = append(violations, MsgInitialPrincipal)
	}
	return violations
}

// Normalize returns a copy with a non-finite initial principal replaced by zero.
func (g GoalInput) Normalize() GoalInput {
	if !finite(g.InitialPrincipal) {
		g.InitialPrincipal = 0
	}
	return g
}

func positive(v float64) bool {
	return finite(v) && v > 0
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
