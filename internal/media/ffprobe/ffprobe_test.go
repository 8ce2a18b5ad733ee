package ffprobe

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video"},
			{CodecType: "audio"},
			{CodecType: "audio"},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
		},
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
		},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
}

func TestInspectDecodesStubOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries use shell scripts")
	}
	payload := `{"streams":[{"index":0,"codec_type":"video","codec_name":"h264"},{"index":1,"codec_type":"audio","codec_name":"aac"}],"format":{"filename":"clip.mp4","nb_streams":2,"duration":"12.5","size":"2048","format_name":"mov,mp4"}}`
	binary := filepath.Join(t.TempDir(), "ffprobe")
	script := fmt.Sprintf("#!/bin/sh\ncat <<'EOF'\n%s\nEOF\n", payload)
	if err := os.WriteFile(binary, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	result, err := Inspect(context.Background(), binary, "clip.mp4")
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}

	if result.VideoStreamCount() != 1 || result.AudioStreamCount() != 1 {
		t.Fatalf("unexpected stream counts: %+v", result.Streams)
	}
	if result.DurationSeconds() != 12.5 {
		t.Fatalf("DurationSeconds() = %v, want 12.5", result.DurationSeconds())
	}
	if result.Format.FormatName != "mov,mp4" {
		t.Fatalf("FormatName = %q", result.Format.FormatName)
	}
}

func TestInspectWrapsFailures(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries use shell scripts")
	}
	binary := filepath.Join(t.TempDir(), "ffprobe")
	script := "#!/bin/sh\necho 'clip.mp4: No such file or directory' >&2\nexit 1\n"
	if err := os.WriteFile(binary, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	_, err := Inspect(context.Background(), binary, "clip.mp4")
	if err == nil {
		t.Fatal("expected error from failing stub")
	}
	if !strings.Contains(err.Error(), "No such file") {
		t.Fatalf("error should carry stderr output, got: %v", err)
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
