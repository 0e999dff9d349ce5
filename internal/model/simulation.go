package model

// ScenarioRow is one rate-shift assumption's projected outcome.
// Difference is PortfolioFV - SimpleSavingsFV as computed by the backend.
type ScenarioRow struct {
	Label           string  `json:"label"`
	RateShift       float64 `json:"rate_shift"`
	NewRate         float64 `json:"new_rate"`
	SimpleSavingsFV float64 `json:"simple_savings_fv"`
	PortfolioFV     float64 `json:"portfolio_fv"`
	Difference      float64 `json:"difference"`
}

// SimulationResult holds the rate sensitivity scenarios in backend order.
type SimulationResult struct {
	Results  []ScenarioRow `json:"results"`
	BaseRate float64       `json:"base_rate"`
}
