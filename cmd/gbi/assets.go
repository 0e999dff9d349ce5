package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/geneeuchoi/GBI-robot-advisor/internal/cli"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/common"
	"github.com/geneeuchoi/GBI-robot-advisor/internal/model"
)

// assetLister is the part of the backend gbi assets needs.
type assetLister interface {
	ListAssets(ctx context.Context, eligibleYouthSavings bool) ([]model.Asset, error)
}

func assetsCmd() *cobra.Command {
	var (
		youth  bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "assets",
		Short: "List the products the optimizer can allocate to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listAssets(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), newClient(appConfig), youth, format)
		},
	}

	cmd.Flags().BoolVar(&youth, "youth", false, "include youth savings products")
	cmd.Flags().StringVar(&format, "format", formatTable, "output format (table, json)")

	return cmd
}

func listAssets(ctx context.Context, out, errOut io.Writer, lister assetLister, youth bool, format string) error {
	if format != formatTable && format != formatJSON {
		return common.NewUserError(fmt.Sprintf("unknown output format %q (use table or json)", format), nil)
	}

	var assets []model.Asset
	err := cli.WithSpinner(errOut, "Loading assets", func() error {
		var err error
		assets, err = lister.ListAssets(ctx, youth)
		return err
	})
	if err != nil {
		return common.NewUserError("Could not load assets: "+err.Error(), err)
	}

	if format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(assets)
	}
	return cli.PrintAssets(out, assets)
}
