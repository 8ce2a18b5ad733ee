// Package preflight verifies runtime prerequisites before a pipeline run:
// external binaries on PATH and read/write access to the configured
// directories.
package preflight

import (
	"fmt"
	"strings"

	"stitcher/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check for the given config: binary availability
// followed by directory access for each configured path. Output directories
// that have not been created yet report as failures; they are created on the
// first run.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range CheckSystemDeps(cfg) {
		results = append(results, Result{Name: status.Name, Passed: status.Available, Detail: status.Detail})
	}

	results = append(results,
		CheckDirectoryAccess("Input directory", cfg.Paths.InputDir),
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
		CheckDirectoryAccess("Transcript directory", cfg.Paths.TranscriptDir),
		CheckDirectoryAccess("Subtitled directory", cfg.Paths.SubtitledDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	)
	return results
}

// RequireBinaries returns an error when any required binary is unavailable.
func RequireBinaries(cfg *config.Config) error {
	var missing []string
	for _, status := range CheckSystemDeps(cfg) {
		if !status.Optional && !status.Available {
			missing = append(missing, status.Command)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required binaries: %s (run 'stitcher deps' for details)", strings.Join(missing, ", "))
	}
	return nil
}

// RequireDirWritable returns an error when path is not an accessible
// directory.
func RequireDirWritable(name, path string) error {
	result := CheckDirectoryAccess(name, path)
	if !result.Passed {
		return fmt.Errorf("%s: %s", strings.ToLower(name), result.Detail)
	}
	return nil
}
