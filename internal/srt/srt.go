// Package srt writes, reads, and validates the numbered-cue subtitle files
// produced by the alignment step and consumed by the burn-in renderer.
package srt

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Cue is one timed subtitle entry. Start and End are in seconds.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// FormatTimestamp renders seconds as the SRT timestamp form HH:MM:SS,mmm.
// Precision beyond milliseconds is truncated, not rounded, after the float
// input is first rounded to whole microseconds to absorb representation
// noise (0.6s must become 600ms, never 599ms).
func FormatTimestamp(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	us := int64(math.Round(seconds * 1e6))
	ms := us / 1000
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	secs := (ms % 60_000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// ParseTimestamp converts an SRT timestamp back into seconds. A period is
// accepted in place of the standard comma millisecond separator.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || seconds < 0 || millis < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// WriteFile writes cues as a numbered SRT file: a 1-based index line, a
// timing line, the text, then a blank separator after every entry. Cue
// indices in the input are ignored; numbering always restarts at 1.
func WriteFile(path string, cues []Cue) error {
	var sb strings.Builder
	for i, cue := range cues {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteByte('\n')
		sb.WriteString(FormatTimestamp(cue.Start))
		sb.WriteString(" --> ")
		sb.WriteString(FormatTimestamp(cue.End))
		sb.WriteByte('\n')
		sb.WriteString(cue.Text)
		sb.WriteString("\n\n")
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// ReadFile parses an SRT file back into cues. Malformed blocks are skipped
// rather than failing the whole file.
func ReadFile(path string) ([]Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}

	content := strings.TrimSpace(strings.ReplaceAll(string(data), "\r\n", "\n"))
	if content == "" {
		return nil, nil
	}

	blocks := strings.Split(content, "\n\n")
	var cues []Cue

	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			continue
		}

		index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			continue
		}

		parts := strings.Split(lines[1], "-->")
		if len(parts) != 2 {
			continue
		}
		start, err := ParseTimestamp(parts[0])
		if err != nil {
			continue
		}
		end, err := ParseTimestamp(parts[1])
		if err != nil {
			continue
		}

		cues = append(cues, Cue{
			Index: index,
			Start: start,
			End:   end,
			Text:  strings.Join(lines[2:], "\n"),
		})
	}

	return cues, nil
}

// cuePastEndToleranceSeconds allows encoder duration jitter before a cue
// ending after the video counts as a mismatch.
const cuePastEndToleranceSeconds = 1.0

// Validate checks an SRT file for format issues. Returns a list of issues
// found; an empty slice means validation passed. videoSeconds of zero skips
// the duration comparison.
func Validate(path string, videoSeconds float64) ([]string, error) {
	cues, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	var issues []string
	if len(cues) == 0 {
		issues = append(issues, "empty_subtitle_file")
		return issues, nil
	}

	last := 0.0
	for _, cue := range cues {
		if cue.End < cue.Start {
			issues = append(issues, fmt.Sprintf("cue_%d_ends_before_start", cue.Index))
		}
		if cue.End > last {
			last = cue.End
		}
	}

	if videoSeconds > 0 && last > videoSeconds+cuePastEndToleranceSeconds {
		issues = append(issues, fmt.Sprintf("cue_past_video_end: last=%.1fs video=%.1fs", last, videoSeconds))
	}

	return issues, nil
}
