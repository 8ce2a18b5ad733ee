package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the directory layout both pipelines operate on.
type Paths struct {
	InputDir      string `toml:"input_dir"`
	OutputDir     string `toml:"output_dir"`
	TranscriptDir string `toml:"transcript_dir"`
	SubtitledDir  string `toml:"subtitled_dir"`
	LogDir        string `toml:"log_dir"`
}

// Concat contains configuration for the concatenation pipeline.
type Concat struct {
	OutputName string   `toml:"output_name"`
	FrameRate  int      `toml:"frame_rate"`
	VideoCodec string   `toml:"video_codec"`
	AudioCodec string   `toml:"audio_codec"`
	Extensions []string `toml:"extensions"`
}

// Silence contains thresholds for speech segment detection.
type Silence struct {
	MinSilenceMS  int     `toml:"min_silence_ms"`
	ThresholdDBFS float64 `toml:"threshold_dbfs"`
	SeekStepMS    int     `toml:"seek_step_ms"`
}

// Subtitles contains alignment tuning and burn-in render style.
type Subtitles struct {
	MergeGapMS            int     `toml:"merge_gap_ms"`
	OverSegmentationRatio float64 `toml:"over_segmentation_ratio"`
	FontName              string  `toml:"font_name"`
	FontSize              int     `toml:"font_size"`
	OutlineWidth          float64 `toml:"outline_width"`
	MarginBottom          int     `toml:"margin_bottom"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for stitcher.
//
// Configuration sections by subsystem:
//   - Paths: input/output/transcript directories and the log directory
//   - Concat: output name, frame rate, codecs, and the extension allow-list
//   - Silence: native silence detection thresholds
//   - Subtitles: segment merge tuning and burn-in style
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Concat    Concat    `toml:"concat"`
	Silence   Silence   `toml:"silence"`
	Subtitles Subtitles `toml:"subtitles"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/stitcher/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized. When no file exists at the
// resolved location the compiled defaults are returned with exists=false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("stitcher.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// SubtitleDir returns the directory that receives generated SRT files.
func (c *Config) SubtitleDir() string {
	return filepath.Join(c.Paths.SubtitledDir, "subtitles")
}

// TempDir returns the scratch directory for extracted audio.
func (c *Config) TempDir() string {
	return filepath.Join(c.Paths.SubtitledDir, "temp")
}

// EnsureOutputDirectories creates the directories a pipeline writes into.
// Input directories are deliberately left alone so a missing source tree
// surfaces as a pipeline error instead of an empty run.
func (c *Config) EnsureOutputDirectories() error {
	dirs := []string{
		c.Paths.OutputDir,
		c.Paths.SubtitledDir,
		c.SubtitleDir(),
		c.TempDir(),
		c.Paths.LogDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name used for media processing.
func (c *Config) FFmpegBinary() string {
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media validation.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
