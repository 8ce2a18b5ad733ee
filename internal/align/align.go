// Package align distributes transcript sentences across detected speech
// segments to produce timed subtitle cues.
//
// No ground-truth audio-to-text correspondence exists, so the mapping is a
// proportional walk: a fractional cursor advances across the longer side in
// steps of the length ratio. The cursor is evaluated as an exact integer
// rational (index*M/S) rather than a floating accumulator so bucket
// boundaries never drift between platforms.
package align

import (
	"strings"

	"stitcher/internal/segments"
	"stitcher/internal/srt"
)

// Options tunes the alignment heuristic. Both values come from the
// [subtitles] config section.
type Options struct {
	// MergeGapMS coalesces segments separated by gaps at or below this
	// threshold before alignment, when over-segmentation is detected.
	MergeGapMS int64
	// OverSegmentationRatio triggers the pre-merge when segments outnumber
	// sentences by more than this factor. Non-positive disables the merge.
	OverSegmentationRatio float64
}

// Align maps sentences onto spans and returns subtitle cues in sentence
// order. Spans must be sorted and non-overlapping (segments.Validate).
// An empty sentence list or span list yields no cues.
func Align(sentences []string, spans []segments.Span, opts Options) []srt.Cue {
	if len(sentences) == 0 || len(spans) == 0 {
		return nil
	}

	// Rapid speech produces more silence gaps than sentence boundaries, so
	// over-segmentation is corrected before alignment. Under-segmentation
	// never is.
	if opts.OverSegmentationRatio > 0 && float64(len(spans)) > opts.OverSegmentationRatio*float64(len(sentences)) {
		spans = segments.MergeClose(spans, opts.MergeGapMS)
	}

	if len(spans) >= len(sentences) {
		return alignSpansToSentences(sentences, spans)
	}
	return alignSentencesToSpans(sentences, spans)
}

// alignSpansToSentences handles M >= S: sentence i spans the segment index
// range [floor(i*M/S), min(floor((i+1)*M/S), M-1)] and takes the start of its
// first segment and the end of its last. Every sentence yields exactly one
// cue and the walk consumes all M segments.
func alignSpansToSentences(sentences []string, spans []segments.Span) []srt.Cue {
	s := len(sentences)
	m := len(spans)

	cues := make([]srt.Cue, 0, s)
	for i, sentence := range sentences {
		startSeg := (i * m) / s
		endSeg := ((i + 1) * m) / s
		if endSeg > m-1 {
			endSeg = m - 1
		}
		cues = append(cues, srt.Cue{
			Start: float64(spans[startSeg].StartMS) / 1000.0,
			End:   float64(spans[endSeg].EndMS) / 1000.0,
			Text:  sentence,
		})
	}
	return cues
}

// alignSentencesToSpans handles M < S: segment j carries the space-joined
// sentence range [floor(j*S/M), min(floor((j+1)*S/M)+1, S)). The +1 lets a
// boundary sentence bleed into the next cue rather than be dropped, so
// adjacent cues may repeat one sentence but none ever goes missing.
func alignSentencesToSpans(sentences []string, spans []segments.Span) []srt.Cue {
	s := len(sentences)
	m := len(spans)

	cues := make([]srt.Cue, 0, m)
	for j, span := range spans {
		startSent := (j * s) / m
		endSent := ((j+1)*s)/m + 1
		if endSent > s {
			endSent = s
		}
		combined := strings.Join(sentences[startSent:endSent], " ")
		if combined == "" {
			continue
		}
		cues = append(cues, srt.Cue{
			Start: float64(span.StartMS) / 1000.0,
			End:   float64(span.EndMS) / 1000.0,
			Text:  combined,
		})
	}
	return cues
}
