package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"stitcher/internal/config"
	"stitcher/internal/journal"
	"stitcher/internal/logging"
	"stitcher/internal/media/ffmpeg"
	"stitcher/internal/media/ffprobe"
	"stitcher/internal/preflight"
	"stitcher/internal/textutil"
)

// ConcatResult summarizes a completed concatenation run.
type ConcatResult struct {
	Inputs          []string
	OutputPath      string
	DurationSeconds float64
	SizeBytes       int64
	Elapsed         time.Duration
}

// Concatenator drives the concatenation pipeline: scan, order, encode.
type Concatenator struct {
	cfg    *config.Config
	store  *journal.Store
	logger *slog.Logger
}

// NewConcatenator wires the concatenation driver.
func NewConcatenator(cfg *config.Config, store *journal.Store, logger *slog.Logger) *Concatenator {
	return &Concatenator{cfg: cfg, store: store, logger: logging.NewComponentLogger(logger, "concat")}
}

// Run concatenates every video in the input directory into a single output
// file. Unlike subtitling there is no per-video partial success here: a
// missing directory, an empty scan, or a failed encode aborts the run with
// an error.
func (c *Concatenator) Run(ctx context.Context) (*ConcatResult, error) {
	start := time.Now()

	if err := preflight.RequireBinaries(c.cfg); err != nil {
		return nil, err
	}
	lock, err := acquireRunLock(c.cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Unlock() }()

	inputs, err := ScanConcatInputs(c.cfg)
	if err != nil {
		return nil, err
	}
	if err := c.cfg.EnsureOutputDirectories(); err != nil {
		return nil, err
	}

	output := filepath.Join(c.cfg.Paths.OutputDir, c.cfg.Concat.OutputName)
	c.logger.Info("concatenating videos",
		logging.Int("inputs", len(inputs)),
		logging.String("output", output))
	for i, input := range inputs {
		c.logger.Info("queued input",
			logging.Int("position", i+1),
			logging.String("video", filepath.Base(input)))
	}

	// Journal writes survive cancellation so interrupted runs still finish
	// with a recorded outcome.
	jctx := context.WithoutCancel(ctx)
	run, err := c.store.StartRun(jctx, journal.KindConcat)
	if err != nil {
		return nil, fmt.Errorf("start journal run: %w", err)
	}

	spec := ffmpeg.ConcatSpec{
		Inputs:     inputs,
		Output:     output,
		FrameRate:  c.cfg.Concat.FrameRate,
		VideoCodec: c.cfg.Concat.VideoCodec,
		AudioCodec: c.cfg.Concat.AudioCodec,
	}
	if err := ffmpeg.Concat(ctx, c.cfg.FFmpegBinary(), spec); err != nil {
		finishRun(jctx, c.store, c.logger, run.ID, journal.Summary{Failed: 1, Detail: err.Error()})
		return nil, err
	}

	result := &ConcatResult{Inputs: inputs, OutputPath: output}
	if probe, err := ffprobe.Inspect(ctx, c.cfg.FFprobeBinary(), output); err != nil {
		c.logger.Warn("output inspection failed", logging.Error(err))
	} else {
		result.DurationSeconds = probe.DurationSeconds()
		result.SizeBytes = probe.SizeBytes()
	}
	result.Elapsed = time.Since(start)

	recordVideo(jctx, c.store, c.logger, run.ID, VideoResult{
		Video:      output,
		Title:      textutil.TitleFromFilename(output),
		Status:     StatusSucceeded,
		OutputPath: output,
		Elapsed:    result.Elapsed,
	})
	finishRun(jctx, c.store, c.logger, run.ID, journal.Summary{
		Succeeded: 1,
		Detail:    fmt.Sprintf("%d videos concatenated", len(inputs)),
	})

	c.logger.Info("concatenation complete",
		logging.String("output", output),
		logging.Float64("duration_seconds", result.DurationSeconds),
		logging.Int64("size_bytes", result.SizeBytes),
		logging.Duration("elapsed", result.Elapsed))
	return result, nil
}
