package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/config"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/tui"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/tui/themes"
)

func planCmd() *cobra.Command {
	var themeName string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a savings goal interactively",
		Long: `Open the four-step planning wizard: enter a goal, review the gap left by
safe deposits, optimize a portfolio and simulate rate shifts.

Press ? inside the wizard for the key bindings.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := appConfig

			err := tui.Run(ctx, newClient(cfg),
				tui.WithTheme(themes.GetTheme(themeName)),
				tui.WithTimeout(cfg.API.Timeout),
				tui.WithReportDir(cfg.Report.Dir),
			)
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("planner failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&themeName, "theme", "default", "color theme (default, catppuccin-mocha)")
	cmd.Flags().String("report-dir", ".", "directory for exported PDF reports")
	_ = viper.BindPFlag(config.KeyReportDir, cmd.Flags().Lookup("report-dir"))

	return cmd
}
