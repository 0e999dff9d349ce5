package model

import (
	"fmt"
	"math"
)

const weightTolerance = 1e-6

// Allocation is one asset's share of the recommended monthly contribution.
type Allocation struct {
	AssetClass           AssetClass `json:"asset_class,omitempty"`
	Name                 string     `json:"name"`
	Weight               float64    `json:"weight"`
	MonthlyAmount        float64    `json:"monthly_amount"`
	DurationContribution float64    `json:"duration_contribution"`
	AfterTaxReturn       float64    `json:"after_tax_return"`
}

// OptimizationResult is the duration-matched portfolio proposed by the backend.
// Message is only meaningful when Success is false.
type OptimizationResult struct {
	Message             string       `json:"message"`
	Allocations         []Allocation `json:"allocations"`
	PortfolioDuration   float64      `json:"portfolio_duration"`
	PortfolioReturn     float64      `json:"portfolio_return"`
	ExpectedFutureValue float64      `json:"expected_future_value"`
	Success             bool         `json:"success"`
}

// TotalWeight sums the allocation weights.
func (r OptimizationResult) TotalWeight() float64 {
	var total float64
	for _, a := range r.Allocations {
		total += a.Weight
	}
	return total
}

// Check verifies that a successful result carries weights in [0, 1] summing to 1.
func (r OptimizationResult) Check() error {
	if !r.Success || len(r.Allocations) == 0 {
		return nil
	}
	for _, a := range r.Allocations {
		if a.Weight < 0 || a.Weight > 1 {
			return fmt.Errorf("%w: weight %.4f for %q out of range", ErrContractViolation, a.Weight, a.Name)
		}
	}
	if total := r.TotalWeight(); math.Abs(total-1) > weightTolerance {
		return fmt.Errorf("%w: allocation weights sum to %.6f", ErrContractViolation, total)
	}
	return nil
}
