package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stitcher/internal/journal"
	"stitcher/internal/logging"
	"stitcher/internal/pipeline"
	"stitcher/internal/testsupport"
)

func TestConcatenatorRun(t *testing.T) {
	requireUnixShell(t)
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "Video10.mov"), 4)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "Video2.MOV"), 4)

	argsFile := filepath.Join(testsupport.BaseDir(cfg), "ffmpeg_args.txt")
	listCopy := filepath.Join(testsupport.BaseDir(cfg), "list_copy.txt")
	stubMediaBinaries(t, cfg, concatStubScript(argsFile, listCopy), probeStubScript)
	store := testsupport.MustOpenJournal(t, cfg)

	driver := pipeline.NewConcatenator(cfg, store, logging.NewNop())
	result, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantOutput := filepath.Join(cfg.Paths.OutputDir, "concatenated_output.mp4")
	if result.OutputPath != wantOutput {
		t.Fatalf("OutputPath = %s, want %s", result.OutputPath, wantOutput)
	}
	if _, err := os.Stat(wantOutput); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if result.DurationSeconds != 4.5 {
		t.Errorf("DurationSeconds = %v, want 4.5", result.DurationSeconds)
	}
	if result.SizeBytes != 2048 {
		t.Errorf("SizeBytes = %d, want 2048", result.SizeBytes)
	}

	list, err := os.ReadFile(listCopy)
	if err != nil {
		t.Fatalf("read list copy: %v", err)
	}
	wantList := "file '" + filepath.Join(cfg.Paths.InputDir, "Video2.MOV") + "'\n" +
		"file '" + filepath.Join(cfg.Paths.InputDir, "Video10.mov") + "'\n"
	if string(list) != wantList {
		t.Fatalf("concat list = %q, want %q", list, wantList)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "concat_list.txt")); !os.IsNotExist(err) {
		t.Fatalf("concat list should be removed after the run, stat err = %v", err)
	}

	args, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read args: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(args)), "\n")
	if lines[len(lines)-1] != wantOutput {
		t.Fatalf("last ffmpeg arg = %s, want %s", lines[len(lines)-1], wantOutput)
	}

	runs, err := store.RecentRuns(context.Background(), 5)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 journal run, got %d", len(runs))
	}
	run := runs[0]
	if run.Kind != journal.KindConcat {
		t.Errorf("run kind = %s, want %s", run.Kind, journal.KindConcat)
	}
	if run.Succeeded != 1 || run.Failed != 0 {
		t.Errorf("run counts = %d/%d, want 1/0", run.Succeeded, run.Failed)
	}
	if run.FinishedAt == nil {
		t.Error("run should be finished")
	}
	if run.Detail != "2 videos concatenated" {
		t.Errorf("run detail = %q", run.Detail)
	}

	videos, err := store.RunVideos(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("RunVideos: %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("expected 1 video row, got %d", len(videos))
	}
	if videos[0].Status != pipeline.StatusSucceeded {
		t.Errorf("video status = %s", videos[0].Status)
	}
	if videos[0].OutputPath != wantOutput {
		t.Errorf("video output = %s, want %s", videos[0].OutputPath, wantOutput)
	}
}

func TestConcatenatorFFmpegFailure(t *testing.T) {
	requireUnixShell(t)
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "Video1.mp4"), 4)

	failScript := "#!/bin/sh\necho \"demuxer exploded\" >&2\nexit 1\n"
	stubMediaBinaries(t, cfg, failScript, probeStubScript)
	store := testsupport.MustOpenJournal(t, cfg)

	driver := pipeline.NewConcatenator(cfg, store, logging.NewNop())
	_, err := driver.Run(context.Background())
	if err == nil {
		t.Fatal("expected error when ffmpeg fails")
	}
	if !strings.Contains(err.Error(), "ffmpeg concat") || !strings.Contains(err.Error(), "demuxer exploded") {
		t.Fatalf("unexpected error: %v", err)
	}

	runs, err := store.RecentRuns(context.Background(), 5)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 journal run, got %d", len(runs))
	}
	if runs[0].Failed != 1 || runs[0].Succeeded != 0 {
		t.Errorf("run counts = %d/%d, want 0 succeeded 1 failed", runs[0].Succeeded, runs[0].Failed)
	}
	if runs[0].FinishedAt == nil {
		t.Error("failed run should still be finished")
	}
}

func TestConcatenatorMissingInputDirectory(t *testing.T) {
	requireUnixShell(t)
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	store := testsupport.MustOpenJournal(t, cfg)

	driver := pipeline.NewConcatenator(cfg, store, logging.NewNop())
	_, err := driver.Run(context.Background())
	if !errors.Is(err, pipeline.ErrDirectoryNotFound) {
		t.Fatalf("err = %v, want ErrDirectoryNotFound", err)
	}

	runs, err := store.RecentRuns(context.Background(), 5)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("scan failures should not create journal runs, got %d", len(runs))
	}
}

func TestConcatenatorNoMatchingFiles(t *testing.T) {
	requireUnixShell(t)
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "notes.txt"), 4)
	store := testsupport.MustOpenJournal(t, cfg)

	driver := pipeline.NewConcatenator(cfg, store, logging.NewNop())
	_, err := driver.Run(context.Background())
	if !errors.Is(err, pipeline.ErrNoMatchingFiles) {
		t.Fatalf("err = %v, want ErrNoMatchingFiles", err)
	}
}

func TestConcatenatorRequiresBinaries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.InputDir, "Video1.mp4"), 4)
	store := testsupport.MustOpenJournal(t, cfg)
	t.Setenv("PATH", t.TempDir())

	driver := pipeline.NewConcatenator(cfg, store, logging.NewNop())
	_, err := driver.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "missing required binaries") {
		t.Fatalf("err = %v, want missing binaries error", err)
	}
}
