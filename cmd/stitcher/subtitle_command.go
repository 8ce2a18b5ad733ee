package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"stitcher/internal/config"
	"stitcher/internal/journal"
	"stitcher/internal/logging"
	"stitcher/internal/pipeline"
)

func newSubtitleCommand(ctx *commandContext) *cobra.Command {
	var videosDir string
	var transcriptsDir string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "subtitle",
		Short: "Generate and burn speech-aligned subtitles for each video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *base
			for _, override := range []struct {
				value  string
				target *string
				label  string
			}{
				{videosDir, &cfg.Paths.OutputDir, "videos directory"},
				{transcriptsDir, &cfg.Paths.TranscriptDir, "transcripts directory"},
				{outputDir, &cfg.Paths.SubtitledDir, "output directory"},
			} {
				if override.value == "" {
					continue
				}
				expanded, err := config.ExpandPath(override.value)
				if err != nil {
					return fmt.Errorf("resolve %s: %w", override.label, err)
				}
				*override.target = expanded
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

			results, err := pipeline.NewSubtitler(&cfg, store, logger).Run(runCtx)
			if err != nil {
				return err
			}

			// Per-video failures are reported in the summary, not the exit
			// code; only directory-level errors make the command fail.
			out := cmd.OutOrStdout()
			for _, result := range results {
				name := filepath.Base(result.Video)
				switch result.Status {
				case pipeline.StatusSucceeded:
					fmt.Fprintf(out, "succeeded  %s: %d cues -> %s\n", name, result.Cues, result.OutputPath)
				case pipeline.StatusSkipped:
					fmt.Fprintf(out, "skipped    %s: %s\n", name, result.Detail)
				default:
					fmt.Fprintf(out, "failed     %s: %s\n", name, result.Detail)
				}
			}
			summary := pipeline.Summarize(results)
			fmt.Fprintf(out, "\n%d succeeded, %d failed, %d skipped\n",
				summary.Succeeded, summary.Failed, summary.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&videosDir, "videos", "", "Directory of videos to subtitle (default from config)")
	cmd.Flags().StringVar(&transcriptsDir, "transcripts", "", "Directory of transcript files (default from config)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Directory for subtitled videos (default from config)")
	return cmd
}
