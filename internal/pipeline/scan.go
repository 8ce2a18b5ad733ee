package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"stitcher/internal/config"
)

// ScanConcatInputs returns the videos to concatenate, ordered by the number
// embedded in each filename (smallest first). Files without a number sort
// after all numbered files; ties keep directory order.
func ScanConcatInputs(cfg *config.Config) ([]string, error) {
	files, err := listVideos(cfg.Paths.InputDir, cfg.Concat.Extensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", cfg.Paths.InputDir, ErrNoMatchingFiles)
	}
	sortByEmbeddedNumber(files)
	return files, nil
}

// ScanSubtitleInputs returns the videos to subtitle in lexical order.
// Outputs of previous runs (stems ending in "_subtitled") and the
// concatenation output are excluded so reruns never feed on their own
// results.
func ScanSubtitleInputs(cfg *config.Config) ([]string, error) {
	files, err := listVideos(cfg.Paths.OutputDir, cfg.Concat.Extensions)
	if err != nil {
		return nil, err
	}
	concatStem := stem(cfg.Concat.OutputName)
	kept := files[:0]
	for _, file := range files {
		s := stem(file)
		if strings.HasSuffix(s, "_subtitled") || s == concatStem {
			continue
		}
		kept = append(kept, file)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%s: %w", cfg.Paths.OutputDir, ErrNoMatchingFiles)
	}
	return kept, nil
}

// listVideos returns the full paths of regular files in dir whose extension
// matches the allow-list (case-insensitive), in lexical filename order.
func listVideos(dir string, extensions []string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dir, ErrDirectoryNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", dir, ErrDirectoryNotFound)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := allowed[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// sortByEmbeddedNumber orders paths by the first run of decimal digits in
// each filename stem. The sort is stable, so files with equal keys (and
// files with no digits at all) keep their relative order.
func sortByEmbeddedNumber(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		ki, iok := numericKey(stem(paths[i]))
		kj, jok := numericKey(stem(paths[j]))
		switch {
		case iok && jok:
			return ki < kj
		case iok:
			return true
		default:
			return false
		}
	})
}

// numericKey extracts the first run of decimal digits in name. The second
// return is false when name contains no digits.
func numericKey(name string) (int64, bool) {
	for i := 0; i < len(name); i++ {
		if name[i] < '0' || name[i] > '9' {
			continue
		}
		j := i
		for j < len(name) && name[j] >= '0' && name[j] <= '9' {
			j++
		}
		n, err := strconv.ParseInt(name[i:j], 10, 64)
		if err != nil {
			// Digit run too long for int64; order it after sane keys.
			return math.MaxInt64, true
		}
		return n, true
	}
	return 0, false
}

// stem returns the filename without directory or extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
