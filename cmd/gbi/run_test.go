package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/api"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/common"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/model"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/wizard"
)

const (
	gapShort = `{"future_value_safe":48000000,"goal_amount":50000000,"gap":2000000,"required_annual_return":0.052,"optimization_needed":true}`
	gapMet   = `{"future_value_safe":52000000,"goal_amount":50000000,"gap":-2000000,"optimization_needed":false}`
	optimum  = `{"success":true,"message":"ok","portfolio_return":0.052,"portfolio_duration":1.9,"expected_future_value":50600000,
		"allocations":[
			{"asset_class":"isa_deposit","name":"ISA deposit","weight":0.7,"monthly_amount":1050000,"duration_contribution":1.4,"after_tax_return":0.048},
			{"asset_class":"bond_etf_3y","name":"Short bond ETF","weight":0.3,"monthly_amount":450000,"duration_contribution":0.5,"after_tax_return":0.061}]}`
	scenarios = `{"base_rate":0.035,"results":[
			{"label":"Rate -1%p","rate_shift":-0.01,"new_rate":0.025,"simple_savings_fv":47000000,"portfolio_fv":49400000,"difference":2400000},
			{"label":"Rate +1%p","rate_shift":0.01,"new_rate":0.045,"simple_savings_fv":49000000,"portfolio_fv":48900000,"difference":-100000}]}`
)

type backendReplies map[string]string

func newBackend(t *testing.T, replies backendReplies) (*api.Client, *[]string) {
	t.Helper()
	var calls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		body, ok := replies[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if body == "" {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"detail":"rate limit"}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return api.New(server.URL), &calls
}

func scenarioForm() wizard.GoalForm {
	return wizard.GoalForm{
		GoalAmount:          "50,000,000",
		TimeHorizonMonths:   "24",
		MonthlyContribution: "1,500,000",
		InitialPrincipal:    "0",
	}
}

func TestExecutePlan_Table(t *testing.T) {
	tests := []struct {
		name      string
		replies   backendReplies
		opts      runOptions
		wantCalls []string
		wantOut   []string
		notOut    []string
	}{
		{
			name:      "gap only",
			replies:   backendReplies{"/api/v1/gap-analysis": gapShort},
			opts:      runOptions{format: formatTable},
			wantCalls: []string{"/api/v1/gap-analysis"},
			wantOut:   []string{"Optimization needed", "200만원", "5.20%"},
			notOut:    []string{"Portfolio"},
		},
		{
			name: "optimize",
			replies: backendReplies{
				"/api/v1/gap-analysis": gapShort,
				"/api/v1/optimize":     optimum,
			},
			opts:      runOptions{format: formatTable, optimize: true},
			wantCalls: []string{"/api/v1/gap-analysis", "/api/v1/optimize"},
			wantOut:   []string{"Portfolio", "ISA deposit", "Short bond ETF", "70.0%"},
			notOut:    []string{"Rate simulation"},
		},
		{
			name: "simulate implies optimize",
			replies: backendReplies{
				"/api/v1/gap-analysis": gapShort,
				"/api/v1/optimize":     optimum,
				"/api/v1/simulate":     scenarios,
			},
			opts:      runOptions{format: formatTable, simulate: true},
			wantCalls: []string{"/api/v1/gap-analysis", "/api/v1/optimize", "/api/v1/simulate"},
			wantOut:   []string{"Rate simulation", "Rate -1%p", "+240만원", "-10만원"},
		},
		{
			name:      "goal met stops after gap",
			replies:   backendReplies{"/api/v1/gap-analysis": gapMet},
			opts:      runOptions{format: formatTable, simulate: true},
			wantCalls: []string{"/api/v1/gap-analysis"},
			wantOut:   []string{"Goal already met", "no portfolio is needed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, calls := newBackend(t, tt.replies)
			tt.opts.form = scenarioForm()

			var out, errOut bytes.Buffer
			var steps []string
			err := executePlan(context.Background(), &out, &errOut, client, tt.opts, func(s string) {
				steps = append(steps, s)
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantCalls, *calls)
			assert.Len(t, steps, len(tt.wantCalls))
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
			for _, unwanted := range tt.notOut {
				assert.NotContains(t, out.String(), unwanted)
			}
		})
	}
}

func TestExecutePlan_JSON(t *testing.T) {
	client, _ := newBackend(t, backendReplies{
		"/api/v1/gap-analysis": gapShort,
		"/api/v1/optimize":     optimum,
	})

	var out, errOut bytes.Buffer
	err := executePlan(context.Background(), &out, &errOut, client,
		runOptions{form: scenarioForm(), format: formatJSON, optimize: true}, nil)
	require.NoError(t, err)

	var got struct {
		Goal         model.GoalInput           `json:"goal"`
		Gap          model.GapResult           `json:"gap"`
		Optimization *model.OptimizationResult `json:"optimization"`
		Simulation   *model.SimulationResult   `json:"simulation"`
		SessionID    string                    `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 50_000_000.0, got.Goal.GoalAmount)
	assert.Equal(t, 24, got.Goal.TimeHorizonMonths)
	assert.True(t, got.Gap.OptimizationNeeded)
	require.NotNil(t, got.Optimization)
	assert.Len(t, got.Optimization.Allocations, 2)
	assert.Nil(t, got.Simulation)
	assert.NotEmpty(t, got.SessionID)
}

func TestExecutePlan_Failures(t *testing.T) {
	tests := []struct {
		name        string
		replies     backendReplies
		form        wizard.GoalForm
		opts        runOptions
		wantMessage string
		wantCalls   int
	}{
		{
			name:        "validation blocks the request",
			form:        wizard.GoalForm{GoalAmount: "0", TimeHorizonMonths: "24", MonthlyContribution: "1500000"},
			opts:        runOptions{format: formatTable},
			wantMessage: "Goal amount must be greater than 0.",
			wantCalls:   0,
		},
		{
			name:        "backend error",
			replies:     backendReplies{"/api/v1/gap-analysis": ""},
			form:        scenarioForm(),
			opts:        runOptions{format: formatTable},
			wantMessage: "Gap analysis failed: rate limit",
			wantCalls:   1,
		},
		{
			name: "infeasible optimization",
			replies: backendReplies{
				"/api/v1/gap-analysis": gapShort,
				"/api/v1/optimize":     `{"success":false,"message":"infeasible duration target"}`,
			},
			form:        scenarioForm(),
			opts:        runOptions{format: formatTable, optimize: true},
			wantMessage: "infeasible duration target",
			wantCalls:   2,
		},
		{
			name:        "unknown format",
			form:        scenarioForm(),
			opts:        runOptions{format: "yaml"},
			wantMessage: `unknown output format "yaml" (use table or json)`,
			wantCalls:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, calls := newBackend(t, tt.replies)
			tt.opts.form = tt.form

			var out, errOut bytes.Buffer
			err := executePlan(context.Background(), &out, &errOut, client, tt.opts, nil)
			require.Error(t, err)

			var userErr *common.UserError
			require.True(t, errors.As(err, &userErr))
			assert.Contains(t, common.UserMessage(err), tt.wantMessage)
			assert.Len(t, *calls, tt.wantCalls)
		})
	}
}

func TestExecutePlan_PDF(t *testing.T) {
	client, _ := newBackend(t, backendReplies{"/api/v1/gap-analysis": gapShort})
	path := filepath.Join(t.TempDir(), "reports", "plan.pdf")

	var out, errOut bytes.Buffer
	err := executePlan(context.Background(), &out, &errOut, client,
		runOptions{form: scenarioForm(), format: formatTable, pdf: path}, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, errOut.String(), "Report saved to")
}
