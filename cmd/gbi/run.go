package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/cli"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/common"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/config"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/model"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/render"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/report"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/tui/components"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/tui/themes"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/wizard"
)

const chartWidth = 72

// Output formats of gbi run.
const (
	formatTable = "table"
	formatJSON  = "json"
)

type runOptions struct {
	form     wizard.GoalForm
	format   string
	pdf      string
	optimize bool
	simulate bool
}

// planOutput is the JSON document printed by gbi run --format json.
type planOutput struct {
	Goal         *model.GoalInput          `json:"goal"`
	Gap          *model.GapResult          `json:"gap"`
	Optimization *model.OptimizationResult `json:"optimization,omitempty"`
	Simulation   *model.SimulationResult   `json:"simulation,omitempty"`
	SessionID    string                    `json:"session_id"`
}

func runCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Plan a savings goal without the interactive wizard",
		Long: `Walk the planning steps from flags and print each result.

The gap analysis always runs. --optimize continues to the portfolio step and
--simulate continues to the rate simulation (it implies --optimize). When safe
deposits alone reach the goal the run stops after the gap analysis.`,
		Example: `  gbi run --goal-amount 50,000,000 --months 24 --monthly 1,500,000
  gbi run --goal-amount 50000000 --months 24 --monthly 1500000 --simulate --pdf plan.pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx := handler.HandleInterrupts(cmd.Context())

			err := executePlan(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), newClient(appConfig), opts, handler.SetStep)
			if err != nil && handler.WasInterrupted() {
				return common.ErrInterrupted
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.form.GoalAmount, "goal-amount", "", "target amount in won (required)")
	cmd.Flags().StringVar(&opts.form.TimeHorizonMonths, "months", "", "time horizon in months (required)")
	cmd.Flags().StringVar(&opts.form.MonthlyContribution, "monthly", "", "monthly contribution in won (required)")
	cmd.Flags().StringVar(&opts.form.InitialPrincipal, "principal", "0", "initial principal in won")
	cmd.Flags().BoolVar(&opts.form.EligibleYouthSavings, "youth", false, "eligible for youth savings products")
	cmd.Flags().BoolVar(&opts.optimize, "optimize", false, "optimize a portfolio after the gap analysis")
	cmd.Flags().BoolVar(&opts.simulate, "simulate", false, "run the rate simulation (implies --optimize)")
	cmd.Flags().StringVar(&opts.format, "format", formatTable, "output format (table, json)")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "also write a PDF report to this file")

	return cmd
}

// executePlan drives a wizard machine through the requested steps. Each
// backend call runs under a spinner on errOut; onStep is told which step is
// in flight.
func executePlan(ctx context.Context, out, errOut io.Writer, backend wizard.Backend, opts runOptions, onStep func(string)) error {
	if opts.format != formatTable && opts.format != formatJSON {
		return common.NewUserError(fmt.Sprintf("unknown output format %q (use table or json)", opts.format), nil)
	}
	if onStep == nil {
		onStep = func(string) {}
	}
	tables := opts.format == formatTable

	machine := wizard.New(backend, components.NewCanvas(themes.Default))
	slog.Debug("Starting non-interactive plan", "session_id", machine.Session().ID)

	step := func(s wizard.Step, description string, fn func() wizard.Outcome) (wizard.Outcome, error) {
		onStep(s.Label())
		var outcome wizard.Outcome
		err := cli.WithSpinner(errOut, description, func() error {
			outcome = fn()
			return outcome.Err
		})
		if err != nil {
			return outcome, failure(machine, err)
		}
		return outcome, nil
	}

	outcome, err := step(wizard.Reviewing, "Analyzing gap", func() wizard.Outcome {
		return machine.SubmitGoal(ctx, opts.form.Goal())
	})
	if err != nil {
		return err
	}
	if tables {
		if err := cli.PrintGap(out, *outcome.Gap); err != nil {
			return err
		}
	}

	if opts.optimize || opts.simulate {
		if !machine.OptimizeEnabled() {
			if tables {
				fmt.Fprintln(out, cli.FormatInfo("Safe assets alone reach the goal; no portfolio is needed."))
			}
		} else {
			outcome, err = step(wizard.Allocating, "Optimizing portfolio", func() wizard.Outcome {
				return machine.RequestOptimization(ctx)
			})
			if err != nil {
				return err
			}
			if tables {
				if err := cli.PrintAllocation(out, *outcome.Allocation); err != nil {
					return err
				}
				printChart(out, outcome.Allocation.Chart)
			}

			if opts.simulate {
				outcome, err = step(wizard.Simulating, "Simulating rate shifts", func() wizard.Outcome {
					return machine.RequestSimulation(ctx)
				})
				if err != nil {
					return err
				}
				if tables {
					if err := cli.PrintSimulation(out, *outcome.Simulation); err != nil {
						return err
					}
					printChart(out, outcome.Simulation.Chart)
				}
			}
		}
	}

	session := machine.Snapshot()
	if !tables {
		if err := writeJSON(out, session); err != nil {
			return err
		}
	}

	if opts.pdf != "" {
		path := config.ExpandPath(opts.pdf)
		if err := report.WriteFile(path, session); err != nil {
			return common.NewUserError("Export failed", err)
		}
		fmt.Fprintln(errOut, cli.FormatSuccess("Report saved to "+path))
	}

	slog.Info("Plan finished", "session_id", session.ID, "step", machine.Step().String())
	return nil
}

// failure turns a machine error into the message the wizard would show.
func failure(machine *wizard.Machine, err error) error {
	banner := machine.Banner()
	if banner == "" {
		banner = err.Error()
	}
	return common.NewUserError(banner, err)
}

func printChart(out io.Writer, chart render.Chart) {
	if c, ok := chart.(*components.Chart); ok {
		fmt.Fprintln(out, c.View(chartWidth))
	}
}

func writeJSON(out io.Writer, session wizard.Session) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(planOutput{
		SessionID:    session.ID,
		Goal:         session.Goal,
		Gap:          session.Gap,
		Optimization: session.Optimization,
		Simulation:   session.Simulation,
	}); err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	return nil
}
