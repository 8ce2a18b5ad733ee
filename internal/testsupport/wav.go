package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ToneSpan is one stretch of synthesized test audio. Amplitude 0 produces
// silence; a non-zero amplitude produces a square wave with that RMS level.
type ToneSpan struct {
	DurationMS int
	Amplitude  int
}

// WriteWAV writes a mono 16 kHz 16-bit WAV assembled from spans, in order.
func WriteWAV(t testing.TB, path string, spans ...ToneSpan) {
	t.Helper()

	const sampleRate = 16000
	var samples []int
	for _, span := range spans {
		count := span.DurationMS * sampleRate / 1000
		for i := 0; i < count; i++ {
			v := span.Amplitude
			if i%2 == 1 {
				v = -span.Amplitude
			}
			samples = append(samples, v)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	encoder := wav.NewEncoder(file, sampleRate, 16, 1, 1)
	buf := &gaudio.IntBuffer{
		Format: &gaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:   samples,
	}
	if err := encoder.Write(buf); err != nil {
		t.Fatalf("write wav %s: %v", path, err)
	}
	if err := encoder.Close(); err != nil {
		t.Fatalf("close wav encoder: %v", err)
	}
}
