// Package testsupport provides helpers shared by tests: temp-dir configs,
// journal stores, stub binaries, and synthesized media fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"stitcher/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "input_videos")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output_video")
	cfgVal.Paths.TranscriptDir = filepath.Join(base, "transcripts")
	cfgVal.Paths.SubtitledDir = filepath.Join(base, "output_video_with_subtitles")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithStubbedBinaries writes exit-0 stub executables for the provided names
// and prepends them to PATH. With no names the external media binaries are
// stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		for _, name := range names {
			StubBinary(b.t, binDir, name, "#!/bin/sh\nexit 0\n")
		}
		PrependPath(b.t, binDir)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InputDir)
}
