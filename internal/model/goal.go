package model

// GoalInput is the savings goal collected on the first step of the wizard.
// It is sent verbatim as the body of every backend call.
type GoalInput struct {
	GoalAmount           float64 `json:"goal_amount"`
	TimeHorizonMonths    int     `json:"time_horizon_months"`
	MonthlyContribution  float64 `json:"monthly_contribution"`
	InitialPrincipal     float64 `json:"initial_principal"`
	EligibleYouthSavings bool    `json:"eligible_youth_savings"`
}
