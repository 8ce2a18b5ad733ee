// Package segments defines the speech segment type produced by silence
// detection and the operations the alignment step applies to it.
package segments

import "fmt"

// Span is one detected speech range, in milliseconds from the start of the
// audio track. StartMS <= EndMS always holds for spans produced by this
// module.
type Span struct {
	StartMS int64
	EndMS   int64
}

// DurationMS returns the span length in milliseconds.
func (s Span) DurationMS() int64 {
	return s.EndMS - s.StartMS
}

// Validate checks the invariants alignment relies on: non-negative bounds,
// StartMS <= EndMS per span, ascending order, and no overlap between
// neighbours.
func Validate(spans []Span) error {
	for i, span := range spans {
		if span.StartMS < 0 {
			return fmt.Errorf("segment %d: negative start %dms", i, span.StartMS)
		}
		if span.EndMS < span.StartMS {
			return fmt.Errorf("segment %d: end %dms before start %dms", i, span.EndMS, span.StartMS)
		}
		if i > 0 && span.StartMS < spans[i-1].EndMS {
			return fmt.Errorf("segment %d: overlaps previous segment ending at %dms", i, spans[i-1].EndMS)
		}
	}
	return nil
}

// MergeClose coalesces neighbouring spans whose gap is at or below maxGapMS.
// The walk is a single pass: a merge extends the current span, so a chain of
// small gaps collapses into one span, but the pass is never re-run on its own
// output. The input is not modified.
func MergeClose(spans []Span, maxGapMS int64) []Span {
	if len(spans) == 0 {
		return nil
	}

	merged := make([]Span, 0, len(spans))
	current := spans[0]

	for _, span := range spans[1:] {
		if span.StartMS-current.EndMS <= maxGapMS {
			current.EndMS = span.EndMS
			continue
		}
		merged = append(merged, current)
		current = span
	}

	return append(merged, current)
}
