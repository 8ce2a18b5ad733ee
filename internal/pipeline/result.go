package pipeline

import (
	"time"

	"stitcher/internal/journal"
)

// Per-video outcome statuses. These also appear in journal rows and CLI
// summaries.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// VideoResult captures the outcome of processing one video.
type VideoResult struct {
	Video        string // source path
	Title        string // display title derived from the filename
	Status       string
	Detail       string // failure or skip reason, empty on success
	Sentences    int    // transcript sentences parsed
	Spans        int    // speech spans detected
	Cues         int    // subtitle cues written
	SubtitlePath string
	OutputPath   string
	Elapsed      time.Duration
}

// Summarize tallies per-video results into journal run counters.
func Summarize(results []VideoResult) journal.Summary {
	var summary journal.Summary
	for _, result := range results {
		switch result.Status {
		case StatusSucceeded:
			summary.Succeeded++
		case StatusSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
	}
	return summary
}
