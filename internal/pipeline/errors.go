package pipeline

import "errors"

var (
	// ErrDirectoryNotFound indicates a configured scan directory is missing.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrNoMatchingFiles indicates a scan found no videos to process.
	ErrNoMatchingFiles = errors.New("no matching video files")
)
