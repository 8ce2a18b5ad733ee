package pipeline

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"stitcher/internal/testsupport"
)

func touchFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func baseNames(paths []string) []string {
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		names = append(names, filepath.Base(path))
	}
	return names
}

func TestScanConcatInputsOrdersByEmbeddedNumber(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	touchFiles(t, cfg.Paths.InputDir, "Video10.mov", "Video2.MOV", "VideoA.mp4", "notes.txt")

	files, err := ScanConcatInputs(cfg)
	if err != nil {
		t.Fatalf("ScanConcatInputs: %v", err)
	}

	// Numeric keys 2 and 10 come first; the digit-free stem sorts last.
	want := []string{"Video2.MOV", "Video10.mov", "VideoA.mp4"}
	if got := baseNames(files); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestScanConcatInputsFiltersExtensions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	touchFiles(t, cfg.Paths.InputDir, "a.mp4", "b.MKV", "c.avi", "d.mov", "skip.txt", "skip.wav")
	if err := os.MkdirAll(filepath.Join(cfg.Paths.InputDir, "folder.mp4"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	files, err := ScanConcatInputs(cfg)
	if err != nil {
		t.Fatalf("ScanConcatInputs: %v", err)
	}
	want := []string{"a.mp4", "b.MKV", "c.avi", "d.mov"}
	if got := baseNames(files); !reflect.DeepEqual(got, want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
}

func TestScanConcatInputsMissingDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	_, err := ScanConcatInputs(cfg)
	if !errors.Is(err, ErrDirectoryNotFound) {
		t.Fatalf("err = %v, want ErrDirectoryNotFound", err)
	}
}

func TestScanConcatInputsNoVideos(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	touchFiles(t, cfg.Paths.InputDir, "readme.txt")

	_, err := ScanConcatInputs(cfg)
	if !errors.Is(err, ErrNoMatchingFiles) {
		t.Fatalf("err = %v, want ErrNoMatchingFiles", err)
	}
}

func TestScanSubtitleInputsSkipsPriorOutputs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	touchFiles(t, cfg.Paths.OutputDir,
		"clip1.mp4",
		"clip0.mkv",
		"clip1_subtitled.mp4",
		"concatenated_output.mp4",
	)

	files, err := ScanSubtitleInputs(cfg)
	if err != nil {
		t.Fatalf("ScanSubtitleInputs: %v", err)
	}
	want := []string{"clip0.mkv", "clip1.mp4"}
	if got := baseNames(files); !reflect.DeepEqual(got, want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
}

func TestScanSubtitleInputsOnlyPriorOutputs(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	touchFiles(t, cfg.Paths.OutputDir, "clip1_subtitled.mp4", "concatenated_output.mp4")

	_, err := ScanSubtitleInputs(cfg)
	if !errors.Is(err, ErrNoMatchingFiles) {
		t.Fatalf("err = %v, want ErrNoMatchingFiles", err)
	}
}

func TestScanSubtitleInputsMissingDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	_, err := ScanSubtitleInputs(cfg)
	if !errors.Is(err, ErrDirectoryNotFound) {
		t.Fatalf("err = %v, want ErrDirectoryNotFound", err)
	}
}

func TestNumericKey(t *testing.T) {
	tests := []struct {
		name   string
		want   int64
		wantOK bool
	}{
		{name: "Video2", want: 2, wantOK: true},
		{name: "part10of12", want: 10, wantOK: true},
		{name: "007-intro", want: 7, wantOK: true},
		{name: "no-digits", wantOK: false},
		{name: "", wantOK: false},
		{name: "99999999999999999999", want: math.MaxInt64, wantOK: true},
	}
	for _, tc := range tests {
		got, ok := numericKey(tc.name)
		if ok != tc.wantOK {
			t.Errorf("numericKey(%q) ok = %v, want %v", tc.name, ok, tc.wantOK)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("numericKey(%q) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestSortByEmbeddedNumberTiesKeepOrder(t *testing.T) {
	paths := []string{"z1.mov", "a1.mov", "m0.mov", "b.mov"}
	sortByEmbeddedNumber(paths)
	want := []string{"m0.mov", "z1.mov", "a1.mov", "b.mov"}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("order = %v, want %v", paths, want)
	}
}
