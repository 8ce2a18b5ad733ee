package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeConcat()
	c.normalizeSubtitles()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.TranscriptDir, err = expandPath(c.Paths.TranscriptDir); err != nil {
		return fmt.Errorf("paths.transcript_dir: %w", err)
	}
	if c.Paths.SubtitledDir, err = expandPath(c.Paths.SubtitledDir); err != nil {
		return fmt.Errorf("paths.subtitled_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeConcat() {
	c.Concat.OutputName = strings.TrimSpace(c.Concat.OutputName)
	if c.Concat.OutputName == "" {
		c.Concat.OutputName = defaultConcatOutputName
	}
	c.Concat.VideoCodec = strings.TrimSpace(c.Concat.VideoCodec)
	if c.Concat.VideoCodec == "" {
		c.Concat.VideoCodec = defaultVideoCodec
	}
	c.Concat.AudioCodec = strings.TrimSpace(c.Concat.AudioCodec)
	if c.Concat.AudioCodec == "" {
		c.Concat.AudioCodec = defaultAudioCodec
	}
	c.Concat.Extensions = normalizeExtensions(c.Concat.Extensions)
}

// normalizeExtensions lowercases entries, guarantees a leading dot, and drops
// duplicates while preserving order. A list that normalizes to nothing falls
// back to the defaults.
func normalizeExtensions(values []string) []string {
	normalized := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		ext := strings.ToLower(strings.TrimSpace(value))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		normalized = append(normalized, ext)
	}
	if len(normalized) == 0 {
		return defaultExtensions()
	}
	return normalized
}

func (c *Config) normalizeSubtitles() {
	c.Subtitles.FontName = strings.TrimSpace(c.Subtitles.FontName)
	if c.Subtitles.FontName == "" {
		c.Subtitles.FontName = defaultFontName
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
