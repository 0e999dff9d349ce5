package model

import (
	"fmt"
	"math"
)

// gapTolerance absorbs the backend rounding both amounts to whole won.
const gapTolerance = 1.0

// GapResult is the outcome of comparing a safe-asset-only plan with the goal.
type GapResult struct {
	// RequiredAnnualReturn is nil when the backend could not solve for a rate.
	RequiredAnnualReturn *float64 `json:"required_annual_return"`
	FutureValueSafe      float64  `json:"future_value_safe"`
	GoalAmount           float64  `json:"goal_amount"`
	Gap                  float64  `json:"gap"`
	OptimizationNeeded   bool     `json:"optimization_needed"`
}

// Check verifies the backend contract for a gap result: optimization is needed
// exactly when the gap is positive, and a positive gap equals the goal minus
// the safe future value.
func (r GapResult) Check() error {
	if r.OptimizationNeeded != (r.Gap > 0) {
		return fmt.Errorf("%w: optimization_needed=%t but gap=%.0f",
			ErrContractViolation, r.OptimizationNeeded, r.Gap)
	}
	if !r.OptimizationNeeded {
		return nil
	}
	if r.Gap < 0 {
		return fmt.Errorf("%w: negative gap %.0f", ErrContractViolation, r.Gap)
	}
	want := r.GoalAmount - r.FutureValueSafe
	if math.Abs(r.Gap-want) > gapTolerance {
		return fmt.Errorf("%w: gap %.0f does not match goal - safe value %.0f",
			ErrContractViolation, r.Gap, want)
	}
	return nil
}
