// Package audio decodes the WAV tracks the extractor produces and locates
// speech in them by sliding an RMS window across the samples.
package audio

import (
	"math"

	"stitcher/internal/segments"
)

// SilenceOptions control speech detection. Window and step values below one
// millisecond are clamped to one.
type SilenceOptions struct {
	// MinSilenceMS is the window length; a quiet stretch shorter than this
	// never counts as silence.
	MinSilenceMS int
	// ThresholdDBFS is the RMS level, in dBFS, at or below which a window
	// counts as silent.
	ThresholdDBFS float64
	// SeekStepMS is the distance the window advances per probe.
	SeekStepMS int
}

// DetectSpeech returns the non-silent ranges of the track in milliseconds.
// A track with no detectable silence comes back as one full-length span; a
// fully silent track yields no spans. Tracks shorter than the silence window
// are returned whole, since no silent range of window length can exist in
// them.
func DetectSpeech(t *Track, opts SilenceOptions) []segments.Span {
	durMS := t.DurationMS()
	if durMS <= 0 {
		return nil
	}

	silent := detectSilentRanges(t, durMS, opts)
	if len(silent) == 0 {
		return []segments.Span{{StartMS: 0, EndMS: durMS}}
	}
	if silent[0].StartMS == 0 && silent[0].EndMS == durMS {
		return nil
	}

	speech := make([]segments.Span, 0, len(silent)+1)
	var cursor int64
	for _, s := range silent {
		speech = append(speech, segments.Span{StartMS: cursor, EndMS: s.StartMS})
		cursor = s.EndMS
	}
	if cursor != durMS {
		speech = append(speech, segments.Span{StartMS: cursor, EndMS: durMS})
	}
	if speech[0].StartMS == 0 && speech[0].EndMS == 0 {
		speech = speech[1:]
	}
	return speech
}

func detectSilentRanges(t *Track, durMS int64, opts SilenceOptions) []segments.Span {
	window := int64(opts.MinSilenceMS)
	if window < 1 {
		window = 1
	}
	step := int64(opts.SeekStepMS)
	if step < 1 {
		step = 1
	}
	if durMS < window {
		return nil
	}

	threshold := linearThreshold(opts.ThresholdDBFS, t.BitDepth)
	sums := newSquareSums(t.Samples)
	silentAt := func(startMS int64) bool {
		start := t.sampleIndex(startMS)
		end := t.sampleIndex(startMS + window)
		return sums.rms(start, end) <= threshold
	}

	lastStart := durMS - window
	var starts []int64
	for i := int64(0); i <= lastStart; i += step {
		if silentAt(i) {
			starts = append(starts, i)
		}
	}
	// The stepped probes can stop short of the end of the track; the final
	// window position always gets probed.
	if lastStart%step != 0 && silentAt(lastStart) {
		starts = append(starts, lastStart)
	}
	if len(starts) == 0 {
		return nil
	}

	var ranges []segments.Span
	current := starts[0]
	prev := starts[0]
	for _, start := range starts[1:] {
		continuous := start == prev+step
		// Two silent probes can be separated by non-silent probes while
		// their windows still overlap; only a gap wider than the window
		// splits the range.
		hasGap := start > prev+window
		if !continuous && hasGap {
			ranges = append(ranges, segments.Span{StartMS: current, EndMS: prev + window})
			current = start
		}
		prev = start
	}
	return append(ranges, segments.Span{StartMS: current, EndMS: prev + window})
}

func linearThreshold(dbfs float64, bitDepth int) float64 {
	fullScale := math.Pow(2, float64(bitDepth-1))
	return math.Pow(10, dbfs/20) * fullScale
}

// squareSums holds prefix sums of squared samples so any window RMS is two
// lookups. The sums are exact for 16-bit audio at any practical length.
type squareSums []uint64

func newSquareSums(samples []int) squareSums {
	sums := make(squareSums, len(samples)+1)
	for i, s := range samples {
		v := int64(s)
		sums[i+1] = sums[i] + uint64(v*v)
	}
	return sums
}

func (s squareSums) rms(start, end int) float64 {
	if start < 0 {
		start = 0
	}
	if end > len(s)-1 {
		end = len(s) - 1
	}
	if end <= start {
		return 0
	}
	total := s[end] - s[start]
	return math.Sqrt(float64(total) / float64(end-start))
}
