package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/model"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/wizard"
)

func fullSession() wizard.Session {
	rate := 0.052
	return wizard.Session{
		ID: "4b8f7c1e-0000-4000-8000-000000000000",
		Goal: &model.GoalInput{
			GoalAmount:          50_000_000,
			TimeHorizonMonths:   24,
			MonthlyContribution: 1_500_000,
		},
		Gap: &model.GapResult{
			RequiredAnnualReturn: &rate,
			FutureValueSafe:      48_000_000,
			GoalAmount:           50_000_000,
			Gap:                  2_000_000,
			OptimizationNeeded:   true,
		},
		Optimization: &model.OptimizationResult{
			Success:             true,
			PortfolioDuration:   1.95,
			PortfolioReturn:     0.043,
			ExpectedFutureValue: 50_120_000,
			Allocations: []model.Allocation{
				{Name: "청년도약계좌", Weight: 0.5, MonthlyAmount: 750_000, DurationContribution: 1, AfterTaxReturn: 0.06},
				{Name: "KODEX bond ETF", Weight: 0.5, MonthlyAmount: 750_000, DurationContribution: 0.95, AfterTaxReturn: 0.031},
			},
		},
		Simulation: &model.SimulationResult{
			BaseRate: 0.035,
			Results: []model.ScenarioRow{
				{Label: "Rate -1.0%p", RateShift: -0.01, NewRate: 0.025, SimpleSavingsFV: 47_000_000, PortfolioFV: 49_800_000, Difference: 2_800_000},
				{Label: "Rate +1.0%p", RateShift: 0.01, NewRate: 0.045, SimpleSavingsFV: 49_000_000, PortfolioFV: 48_900_000, Difference: -100_000},
			},
		},
	}
}

func TestWritePDF(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*wizard.Session)
	}{
		{name: "complete session", mutate: func(*wizard.Session) {}},
		{name: "gap only", mutate: func(s *wizard.Session) { s.Optimization, s.Simulation = nil, nil }},
		{name: "goal met", mutate: func(s *wizard.Session) {
			s.Gap.OptimizationNeeded = false
			s.Gap.RequiredAnnualReturn = nil
			s.Optimization, s.Simulation = nil, nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := fullSession()
			tt.mutate(&session)

			var buf bytes.Buffer
			require.NoError(t, write(&buf, session, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
			assert.Greater(t, buf.Len(), 500)
		})
	}
}

func TestWritePDF_EmptySession(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, wizard.Session{ID: "x"})
	require.ErrorIs(t, err, ErrEmptySession)
	assert.Zero(t, buf.Len())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "plan.pdf")

	require.NoError(t, WriteFile(path, fullSession()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	empty := filepath.Join(t.TempDir(), "empty.pdf")
	assert.ErrorIs(t, WriteFile(empty, wizard.Session{ID: "x"}), ErrEmptySession)
	assert.NoFileExists(t, empty)
}

func TestPDFText(t *testing.T) {
	assert.Equal(t, "KODEX 200", pdfText("KODEX 200"))
	assert.Equal(t, "ISA ??", pdfText("ISA 예금"))
}
