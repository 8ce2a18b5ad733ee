package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"stitcher/internal/config"
	"stitcher/internal/journal"
	"stitcher/internal/logging"
	"stitcher/internal/pipeline"
)

func newConcatCommand(ctx *commandContext) *cobra.Command {
	var inputDir string
	var outputFile string

	cmd := &cobra.Command{
		Use:   "concat",
		Short: "Concatenate the input directory's videos in filename-number order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *base
			if inputDir != "" {
				expanded, err := config.ExpandPath(inputDir)
				if err != nil {
					return fmt.Errorf("resolve input directory: %w", err)
				}
				cfg.Paths.InputDir = expanded
			}
			if outputFile != "" {
				expanded, err := config.ExpandPath(outputFile)
				if err != nil {
					return fmt.Errorf("resolve output file: %w", err)
				}
				cfg.Paths.OutputDir = filepath.Dir(expanded)
				cfg.Concat.OutputName = filepath.Base(expanded)
			}

			logger, err := logging.NewFromConfig(&cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			store, err := journal.Open(&cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			runCtx, stop := signalContext(cmd.Context())
			defer stop()

			result, err := pipeline.NewConcatenator(&cfg, store, logger).Run(runCtx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Concatenated %d videos into %s\n", len(result.Inputs), result.OutputPath)
			if result.DurationSeconds > 0 {
				fmt.Fprintf(out, "Duration %.1fs, size %d bytes, finished in %s\n",
					result.DurationSeconds, result.SizeBytes, result.Elapsed.Round(time.Millisecond))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory of videos to concatenate (default from config)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Concatenated output file (default from config)")
	return cmd
}
