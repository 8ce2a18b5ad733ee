package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"stitcher/internal/config"
)

// acquireRunLock takes the flock that serializes batch runs sharing an
// output tree. Callers must Unlock the returned lock when the run ends.
func acquireRunLock(cfg *config.Config) (*flock.Flock, error) {
	if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	lock := flock.New(filepath.Join(cfg.Paths.LogDir, "stitcher.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another stitcher run is already active")
	}
	return lock, nil
}
