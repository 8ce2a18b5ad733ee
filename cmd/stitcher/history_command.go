package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stitcher/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recent pipeline runs recorded in the journal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := journal.Open(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			if len(args) == 1 {
				return printRunVideos(cmd, store, args[0])
			}
			return printRecentRuns(cmd, store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum runs to list")
	return cmd
}

func printRecentRuns(cmd *cobra.Command, store *journal.Store, limit int) error {
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			run.Kind,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			runElapsed(run),
			strconv.Itoa(run.Succeeded),
			strconv.Itoa(run.Failed),
			strconv.Itoa(run.Skipped),
			run.Detail,
		})
	}
	renderRows(out,
		[]string{"RUN", "KIND", "STARTED", "ELAPSED", "OK", "FAIL", "SKIP", "DETAIL"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft})
	return nil
}

func printRunVideos(cmd *cobra.Command, store *journal.Store, idArg string) error {
	run, err := resolveRun(cmd.Context(), store, idArg)
	if err != nil {
		return err
	}
	videos, err := store.RunVideos(cmd.Context(), run.ID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s (%s), started %s\n",
		run.ID, run.Kind, run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if len(videos) == 0 {
		fmt.Fprintln(out, "No videos recorded for this run.")
		return nil
	}
	rows := make([][]string, 0, len(videos))
	for _, video := range videos {
		rows = append(rows, []string{
			filepath.Base(video.Video),
			video.Status,
			strconv.Itoa(video.Cues),
			video.Elapsed.Round(time.Millisecond).String(),
			video.Detail,
		})
	}
	renderRows(out,
		[]string{"VIDEO", "STATUS", "CUES", "ELAPSED", "DETAIL"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft})
	return nil
}

// resolveRun accepts a full run ID or a unique prefix of one.
func resolveRun(ctx context.Context, store *journal.Store, idArg string) (*journal.Run, error) {
	idArg = strings.TrimSpace(idArg)
	if run, err := store.GetRun(ctx, idArg); err != nil {
		return nil, err
	} else if run != nil {
		return run, nil
	}
	runs, err := store.RecentRuns(ctx, 100)
	if err != nil {
		return nil, err
	}
	var match *journal.Run
	for i := range runs {
		if strings.HasPrefix(runs[i].ID, idArg) {
			if match != nil {
				return nil, fmt.Errorf("run id prefix %q is ambiguous", idArg)
			}
			match = &runs[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no run matches %q", idArg)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runElapsed(run journal.Run) string {
	if run.FinishedAt == nil {
		return "-"
	}
	return run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
}
