package config

const (
	defaultInputDir      = "input_videos"
	defaultOutputDir     = "output_video"
	defaultTranscriptDir = "transcripts"
	defaultSubtitledDir  = "output_video_with_subtitles"
	defaultLogDir        = "~/.local/share/stitcher/logs"

	defaultConcatOutputName = "concatenated_output.mp4"
	defaultFrameRate        = 30
	defaultVideoCodec       = "libx264"
	defaultAudioCodec       = "aac"

	defaultMinSilenceMS  = 400
	defaultThresholdDBFS = -45.0
	defaultSeekStepMS    = 10

	defaultMergeGapMS            = 400
	defaultOverSegmentationRatio = 1.5
	defaultFontName              = "Arial"
	defaultFontSize              = 42
	defaultOutlineWidth          = 2.5
	defaultMarginBottom          = 100

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

func defaultExtensions() []string {
	return []string{".mov", ".mp4", ".avi", ".mkv"}
}

// Default returns a Config populated with repository defaults. The directory
// defaults are relative so a bare invocation operates on the conventional
// layout beneath the current working directory.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:      defaultInputDir,
			OutputDir:     defaultOutputDir,
			TranscriptDir: defaultTranscriptDir,
			SubtitledDir:  defaultSubtitledDir,
			LogDir:        defaultLogDir,
		},
		Concat: Concat{
			OutputName: defaultConcatOutputName,
			FrameRate:  defaultFrameRate,
			VideoCodec: defaultVideoCodec,
			AudioCodec: defaultAudioCodec,
			Extensions: defaultExtensions(),
		},
		Silence: Silence{
			MinSilenceMS:  defaultMinSilenceMS,
			ThresholdDBFS: defaultThresholdDBFS,
			SeekStepMS:    defaultSeekStepMS,
		},
		Subtitles: Subtitles{
			MergeGapMS:            defaultMergeGapMS,
			OverSegmentationRatio: defaultOverSegmentationRatio,
			FontName:              defaultFontName,
			FontSize:              defaultFontSize,
			OutlineWidth:          defaultOutlineWidth,
			MarginBottom:          defaultMarginBottom,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
