package pipeline

import (
	"strings"
	"testing"

	"stitcher/internal/testsupport"
)

func TestAcquireRunLockConflicts(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	first, err := acquireRunLock(cfg)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	defer func() { _ = first.Unlock() }()

	if _, err := acquireRunLock(cfg); err == nil {
		t.Fatal("expected second acquire to fail while lock is held")
	} else if !strings.Contains(err.Error(), "already active") {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	second, err := acquireRunLock(cfg)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	_ = second.Unlock()
}
