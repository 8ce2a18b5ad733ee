package main

import (
	"github.com/spf13/cobra"

	"stitcher/internal/preflight"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external binaries and directory access",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cfg)
			rows := make([][]string, 0, len(results))
			for _, result := range results {
				status := "ok"
				if !result.Passed {
					status = "failed"
				}
				rows = append(rows, []string{result.Name, status, result.Detail})
			}

			renderRows(cmd.OutOrStdout(), []string{"CHECK", "STATUS", "DETAIL"}, rows, nil)
			return nil
		},
	}
}
