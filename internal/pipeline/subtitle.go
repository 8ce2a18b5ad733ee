package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"stitcher/internal/align"
	"stitcher/internal/audio"
	"stitcher/internal/config"
	"stitcher/internal/journal"
	"stitcher/internal/logging"
	"stitcher/internal/media/ffmpeg"
	"stitcher/internal/media/ffprobe"
	"stitcher/internal/preflight"
	"stitcher/internal/srt"
	"stitcher/internal/textutil"
	"stitcher/internal/transcript"
)

// Subtitler drives the subtitle generation pipeline: per video it extracts
// audio, detects speech, aligns the transcript, writes an SRT file, and
// burns the subtitles into a new copy of the video.
type Subtitler struct {
	cfg    *config.Config
	store  *journal.Store
	logger *slog.Logger
}

// NewSubtitler wires the subtitling driver.
func NewSubtitler(cfg *config.Config, store *journal.Store, logger *slog.Logger) *Subtitler {
	return &Subtitler{cfg: cfg, store: store, logger: logging.NewComponentLogger(logger, "subtitle")}
}

// Run subtitles every eligible video in the output directory. Per-video
// failures are captured in the returned results and the batch continues;
// only directory-level problems and context cancellation abort the run.
func (s *Subtitler) Run(ctx context.Context) ([]VideoResult, error) {
	if err := preflight.RequireBinaries(s.cfg); err != nil {
		return nil, err
	}
	lock, err := acquireRunLock(s.cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = lock.Unlock() }()

	videos, err := ScanSubtitleInputs(s.cfg)
	if err != nil {
		return nil, err
	}
	if err := s.cfg.EnsureOutputDirectories(); err != nil {
		return nil, err
	}

	s.logger.Info("subtitling videos", logging.Int("videos", len(videos)))

	// Journal writes survive cancellation so interrupted runs still finish
	// with a recorded outcome.
	jctx := context.WithoutCancel(ctx)
	run, err := s.store.StartRun(jctx, journal.KindSubtitle)
	if err != nil {
		return nil, fmt.Errorf("start journal run: %w", err)
	}

	results := make([]VideoResult, 0, len(videos))
	for _, video := range videos {
		result := s.processVideo(ctx, video)
		results = append(results, result)
		recordVideo(jctx, s.store, s.logger, run.ID, result)
		if err := ctx.Err(); err != nil {
			summary := Summarize(results)
			summary.Detail = "run cancelled"
			finishRun(jctx, s.store, s.logger, run.ID, summary)
			return results, err
		}
	}

	summary := Summarize(results)
	finishRun(jctx, s.store, s.logger, run.ID, summary)
	s.logger.Info("subtitle run complete",
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped))
	return results, nil
}

// processVideo runs the full subtitle flow for one video. All failures are
// converted into a failed result; nothing here aborts the batch.
func (s *Subtitler) processVideo(ctx context.Context, video string) VideoResult {
	start := time.Now()
	name := stem(video)
	result := VideoResult{Video: video, Title: textutil.TitleFromFilename(video)}
	logger := s.logger.With(logging.String("video", filepath.Base(video)))
	fail := func(err error) VideoResult {
		result.Status = StatusFailed
		result.Detail = err.Error()
		result.Elapsed = time.Since(start)
		logger.Error("video failed", logging.Error(err))
		return result
	}

	transcriptPath := filepath.Join(s.cfg.Paths.TranscriptDir, name+".txt")
	sentences, err := transcript.ParseFile(transcriptPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Status = StatusSkipped
			result.Detail = "no transcript at " + transcriptPath
			result.Elapsed = time.Since(start)
			logger.Warn("no transcript found, skipping", logging.String("transcript", transcriptPath))
			return result
		}
		return fail(err)
	}
	result.Sentences = len(sentences)

	wavPath := filepath.Join(s.cfg.TempDir(), name+".wav")
	if err := ffmpeg.ExtractAudio(ctx, s.cfg.FFmpegBinary(), video, wavPath); err != nil {
		return fail(err)
	}
	defer func() {
		if err := os.Remove(wavPath); err != nil {
			logger.Debug("temp audio cleanup failed", logging.Error(err))
		}
	}()

	track, err := audio.ReadTrack(wavPath)
	if err != nil {
		return fail(err)
	}
	spans := audio.DetectSpeech(track, audio.SilenceOptions{
		MinSilenceMS:  s.cfg.Silence.MinSilenceMS,
		ThresholdDBFS: s.cfg.Silence.ThresholdDBFS,
		SeekStepMS:    s.cfg.Silence.SeekStepMS,
	})
	result.Spans = len(spans)
	logger.Info("speech detected",
		logging.Int("spans", len(spans)),
		logging.Int("sentences", len(sentences)),
		logging.Int64("audio_ms", track.DurationMS()))

	cues := align.Align(sentences, spans, align.Options{
		MergeGapMS:            int64(s.cfg.Subtitles.MergeGapMS),
		OverSegmentationRatio: s.cfg.Subtitles.OverSegmentationRatio,
	})
	result.Cues = len(cues)
	if len(cues) == 0 {
		logger.Warn("no cues produced; output will carry no subtitles")
	}

	srtPath := filepath.Join(s.cfg.SubtitleDir(), name+".srt")
	if err := srt.WriteFile(srtPath, cues); err != nil {
		return fail(err)
	}
	result.SubtitlePath = srtPath

	var videoSeconds float64
	if probe, err := ffprobe.Inspect(ctx, s.cfg.FFprobeBinary(), video); err != nil {
		logger.Warn("video inspection failed", logging.Error(err))
	} else {
		videoSeconds = probe.DurationSeconds()
	}
	if issues, err := srt.Validate(srtPath, videoSeconds); err != nil {
		logger.Warn("subtitle validation failed", logging.Error(err))
	} else {
		for _, issue := range issues {
			logger.Warn("subtitle issue", logging.String("issue", issue))
		}
	}

	output := filepath.Join(s.cfg.Paths.SubtitledDir, name+"_subtitled.mp4")
	burn := ffmpeg.BurnSpec{
		Source:       video,
		SubtitlePath: srtPath,
		Output:       output,
		VideoCodec:   s.cfg.Concat.VideoCodec,
		AudioCodec:   s.cfg.Concat.AudioCodec,
		Style: ffmpeg.SubtitleStyle{
			FontName:     s.cfg.Subtitles.FontName,
			FontSize:     s.cfg.Subtitles.FontSize,
			OutlineWidth: s.cfg.Subtitles.OutlineWidth,
			MarginBottom: s.cfg.Subtitles.MarginBottom,
		},
	}
	if err := ffmpeg.BurnSubtitles(ctx, s.cfg.FFmpegBinary(), burn); err != nil {
		return fail(err)
	}

	result.OutputPath = output
	result.Status = StatusSucceeded
	result.Elapsed = time.Since(start)
	logger.Info("video subtitled",
		logging.Int("cues", result.Cues),
		logging.String("output", output),
		logging.Duration("elapsed", result.Elapsed))
	return result
}
