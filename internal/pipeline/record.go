package pipeline

import (
	"context"
	"log/slog"

	"stitcher/internal/journal"
	"stitcher/internal/logging"
)

// recordVideo writes one per-video outcome to the journal. Journal failures
// never abort a run; they are logged and processing continues.
func recordVideo(ctx context.Context, store *journal.Store, logger *slog.Logger, runID string, result VideoResult) {
	rec := journal.VideoRecord{
		RunID:        runID,
		Video:        result.Video,
		Title:        result.Title,
		Status:       result.Status,
		Detail:       result.Detail,
		Cues:         result.Cues,
		SubtitlePath: result.SubtitlePath,
		OutputPath:   result.OutputPath,
		Elapsed:      result.Elapsed,
	}
	if err := store.RecordVideo(ctx, rec); err != nil {
		logger.Warn("journal write failed", logging.Error(err))
	}
}

func finishRun(ctx context.Context, store *journal.Store, logger *slog.Logger, runID string, summary journal.Summary) {
	if err := store.FinishRun(ctx, runID, summary); err != nil {
		logger.Warn("journal finish failed", logging.Error(err))
	}
}
