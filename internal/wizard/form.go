package wizard

import (
	"math"
	"strconv"
	"strings"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/model"
)

// GoalForm is the raw text entered on the first step.
type GoalForm struct {
	GoalAmount           string
	TimeHorizonMonths    string
	MonthlyContribution  string
	InitialPrincipal     string
	EligibleYouthSavings bool
}

// Goal parses the form. Unparsable required fields become NaN or zero so the
// validator reports them; an unparsable or empty principal becomes zero.
func (f GoalForm) Goal() model.GoalInput {
	principal := parseAmount(f.InitialPrincipal)
	if math.IsNaN(principal) || math.IsInf(principal, 0) {
		principal = 0
	}
	return model.GoalInput{
		GoalAmount:           parseAmount(f.GoalAmount),
		TimeHorizonMonths:    parseMonths(f.TimeHorizonMonths),
		MonthlyContribution:  parseAmount(f.MonthlyContribution),
		InitialPrincipal:     principal,
		EligibleYouthSavings: f.EligibleYouthSavings,
	}
}

// FormFromGoal fills a form with a previously submitted goal.
func FormFromGoal(g model.GoalInput) GoalForm {
	return GoalForm{
		GoalAmount:           strconv.FormatFloat(g.GoalAmount, 'f', -1, 64),
		TimeHorizonMonths:    strconv.Itoa(g.TimeHorizonMonths),
		MonthlyContribution:  strconv.FormatFloat(g.MonthlyContribution, 'f', -1, 64),
		InitialPrincipal:     strconv.FormatFloat(g.InitialPrincipal, 'f', -1, 64),
		EligibleYouthSavings: g.EligibleYouthSavings,
	}
}

var amountCleaner = strings.NewReplacer(",", "", "_", "", " ", "", "원", "", "₩", "")

func parseAmount(s string) float64 {
	s = amountCleaner.Replace(strings.TrimSpace(s))
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseMonths(s string) int {
	v := parseAmount(s)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0
	}
	return int(v)
}
