package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/wav"
)

// Track is a decoded PCM audio track. Samples are interleaved when the track
// has more than one channel.
type Track struct {
	Samples    []int
	SampleRate int
	Channels   int
	BitDepth   int
}

// ReadTrack decodes a WAV file into memory. The subtitling pipeline extracts
// mono 16 kHz 16-bit tracks, but any PCM WAV the decoder understands is
// accepted.
func ReadTrack(path string) (*Track, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio track: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("decode %s: not a valid wav file", filepath.Base(path))
	}
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("decode %s: missing sample rate", filepath.Base(path))
	}

	track := &Track{
		Samples:    buf.Data,
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
		BitDepth:   buf.SourceBitDepth,
	}
	if track.Channels < 1 {
		track.Channels = 1
	}
	if track.BitDepth <= 0 {
		track.BitDepth = 16
	}
	return track, nil
}

// DurationMS returns the track length rounded to the nearest millisecond.
func (t *Track) DurationMS() int64 {
	if t == nil || t.SampleRate <= 0 || t.Channels <= 0 {
		return 0
	}
	frames := len(t.Samples) / t.Channels
	return int64(math.Round(float64(frames) * 1000 / float64(t.SampleRate)))
}

// sampleIndex maps a millisecond offset to an index into Samples, aligned to
// a frame boundary and clamped to the track bounds.
func (t *Track) sampleIndex(ms int64) int {
	frame := ms * int64(t.SampleRate) / 1000
	idx := int(frame) * t.Channels
	if idx > len(t.Samples) {
		idx = len(t.Samples)
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
