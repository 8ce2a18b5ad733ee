package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateConcat(); err != nil {
		return err
	}
	if err := c.validateSilence(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	for key, value := range map[string]string{
		"paths.input_dir":      c.Paths.InputDir,
		"paths.output_dir":     c.Paths.OutputDir,
		"paths.transcript_dir": c.Paths.TranscriptDir,
		"paths.subtitled_dir":  c.Paths.SubtitledDir,
		"paths.log_dir":        c.Paths.LogDir,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}
	return nil
}

func (c *Config) validateConcat() error {
	if c.Concat.FrameRate <= 0 {
		return errors.New("concat.frame_rate must be positive")
	}
	if len(c.Concat.Extensions) == 0 {
		return errors.New("concat.extensions must include at least one extension")
	}
	for _, ext := range c.Concat.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("concat.extensions entry %q must start with a dot", ext)
		}
	}
	return nil
}

func (c *Config) validateSilence() error {
	if err := ensurePositiveMap(map[string]int{
		"silence.min_silence_ms": c.Silence.MinSilenceMS,
		"silence.seek_step_ms":   c.Silence.SeekStepMS,
	}); err != nil {
		return err
	}
	if c.Silence.ThresholdDBFS >= 0 {
		return errors.New("silence.threshold_dbfs must be negative (dBFS, 0 is full scale)")
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.MergeGapMS < 0 {
		return errors.New("subtitles.merge_gap_ms must be >= 0")
	}
	if c.Subtitles.OverSegmentationRatio <= 0 {
		return errors.New("subtitles.over_segmentation_ratio must be positive")
	}
	if c.Subtitles.FontSize <= 0 {
		return errors.New("subtitles.font_size must be positive")
	}
	if c.Subtitles.OutlineWidth < 0 {
		return errors.New("subtitles.outline_width must be >= 0")
	}
	if c.Subtitles.MarginBottom < 0 {
		return errors.New("subtitles.margin_bottom must be >= 0")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
