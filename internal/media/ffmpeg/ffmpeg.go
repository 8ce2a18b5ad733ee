// Package ffmpeg builds and runs the ffmpeg invocations the pipelines use:
// concat-demuxer encodes, audio extraction, and subtitle burn-in.
package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ConcatSpec describes one concatenation encode. Inputs must already be in
// playback order.
type ConcatSpec struct {
	Inputs     []string
	Output     string
	FrameRate  int
	VideoCodec string
	AudioCodec string
}

// WriteConcatList writes a concat-demuxer list file. Input paths are made
// absolute first because the demuxer resolves relative entries against the
// list file's directory, not the working directory.
func WriteConcatList(path string, inputs []string) error {
	var b strings.Builder
	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", input, err)
		}
		fmt.Fprintf(&b, "file '%s'\n", escapeConcatPath(abs))
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}

// escapeConcatPath escapes single quotes for the concat list grammar: close
// the quoted string, emit an escaped quote, reopen it.
func escapeConcatPath(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}

// ConcatArgs returns the argument list for a concat-demuxer encode. Inputs
// are re-encoded because they may come from heterogeneous containers.
func ConcatArgs(listPath string, spec ConcatSpec) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c:v", spec.VideoCodec,
		"-c:a", spec.AudioCodec,
		"-r", strconv.Itoa(spec.FrameRate),
		spec.Output,
	}
}

// Concat concatenates spec.Inputs into spec.Output. The list file is written
// next to the output and removed afterwards.
func Concat(ctx context.Context, binary string, spec ConcatSpec) error {
	if len(spec.Inputs) == 0 {
		return errors.New("ffmpeg concat: no inputs")
	}

	listPath := filepath.Join(filepath.Dir(spec.Output), "concat_list.txt")
	if err := WriteConcatList(listPath, spec.Inputs); err != nil {
		return err
	}
	defer os.Remove(listPath)

	cmd := exec.CommandContext(ctx, binary, ConcatArgs(listPath, spec)...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg concat: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// ExtractAudioArgs returns the argument list that extracts the default audio
// stream as a mono 16 kHz pcm_s16le WAV.
func ExtractAudioArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}

// ExtractAudio extracts the audio track of source into dest.
func ExtractAudio(ctx context.Context, binary, source, dest string) error {
	cmd := exec.CommandContext(ctx, binary, ExtractAudioArgs(source, dest)...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// SubtitleStyle carries the burn-in rendering options. The zero value is not
// useful; callers fill it from configuration.
type SubtitleStyle struct {
	FontName     string
	FontSize     int
	OutlineWidth float64
	MarginBottom int
}

// forceStyle renders the style as an ASS force_style override: bold white
// text with a black outline, bottom-centered MarginBottom pixels above the
// lower edge.
func (s SubtitleStyle) forceStyle() string {
	return fmt.Sprintf("FontName=%s,Bold=1,FontSize=%d,PrimaryColour=&H00FFFFFF,OutlineColour=&H00000000,Outline=%s,Alignment=2,MarginV=%d",
		s.FontName, s.FontSize, strconv.FormatFloat(s.OutlineWidth, 'g', -1, 64), s.MarginBottom)
}

// BurnSpec describes one subtitle burn-in encode.
type BurnSpec struct {
	Source       string
	SubtitlePath string
	Output       string
	VideoCodec   string
	AudioCodec   string
	Style        SubtitleStyle
}

// BurnSubtitlesArgs returns the argument list that renders the subtitle file
// into the video stream. The source frame rate is kept.
func BurnSubtitlesArgs(spec BurnSpec) []string {
	filter := fmt.Sprintf("subtitles=%s:force_style='%s'", escapeFilterPath(spec.SubtitlePath), spec.Style.forceStyle())
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", spec.Source,
		"-vf", filter,
		"-c:v", spec.VideoCodec,
		"-c:a", spec.AudioCodec,
		spec.Output,
	}
}

// BurnSubtitles renders spec.SubtitlePath into spec.Source, writing
// spec.Output.
func BurnSubtitles(ctx context.Context, binary string, spec BurnSpec) error {
	cmd := exec.CommandContext(ctx, binary, BurnSubtitlesArgs(spec)...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg burn: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// escapeFilterPath escapes a path for use inside a filtergraph description,
// where backslash, quote, and the separator characters are structural.
func escapeFilterPath(path string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`[`, `\[`,
		`]`, `\]`,
		`,`, `\,`,
		`;`, `\;`,
	)
	return replacer.Replace(path)
}
