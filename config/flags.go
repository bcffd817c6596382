package config

import (
	"flag"
	"fmt"
	"os"
)

// MergeFromFlags parses command-line flags and overrides config values
func (c *Config) MergeFromFlags() error {
	fs := flag.NewFlagSet("vsplit", flag.ContinueOnError)
	fs.Usage = printUsage

	// Required fields
	input := fs.String("input", "", "Input video file path (required)")

	// Config file override (handled by LoadConfig before this function is called)
	_ = fs.String("config", "", "Path to config file (default: search standard locations)")

	// Splitting settings
	maxSize := fs.Float64("max-size", -1, "Maximum segment size in MB (default: from config)")
	timeout := fs.Float64("timeout", -1, "Per-segment processing timeout in minutes (default: from config)")

	// Tool locations
	ffmpegPath := fs.String("ffmpeg", "", "Path to the ffmpeg executable (default: from config)")
	ffprobePath := fs.String("ffprobe", "", "Path to the ffprobe executable (default: from config)")

	// Encoding settings
	videoCodec := fs.String("video-codec", "", "Video codec (default: from config)")
	crf := fs.Int("crf", -1, "Video CRF (0-51, lower = better quality) (default: from config)")
	preset := fs.String("preset", "", "Video preset: ultrafast, fast, medium, slow, veryslow (default: from config)")
	audioCodec := fs.String("audio-codec", "", "Audio codec (default: from config)")
	audioBitrate := fs.String("audio-bitrate", "", "Audio bitrate, e.g., 128k (default: from config)")

	// Behavioral flags
	verbose := fs.Bool("verbose", false, "Enable verbose logging")
	dryRun := fs.Bool("dry-run", false, "Show the encode command without running it")

	// Parse flags
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	// Override with flag values (only if explicitly set)
	if *input != "" {
		c.Input = *input
	}

	// Splitting settings (-1 means not set)
	if *maxSize > 0 {
		c.MaxSizeMB = *maxSize
	}
	if *timeout > 0 {
		c.TimeoutMinutes = *timeout
	}

	// Tool locations
	if *ffmpegPath != "" {
		c.FFmpegPath = *ffmpegPath
	}
	if *ffprobePath != "" {
		c.FFprobePath = *ffprobePath
	}

	// Encoding settings
	if *videoCodec != "" {
		c.Encode.VideoCodec = *videoCodec
	}
	if *crf >= 0 {
		c.Encode.CRF = *crf
	}
	if *preset != "" {
		c.Encode.Preset = *preset
	}
	if *audioCodec != "" {
		c.Encode.AudioCodec = *audioCodec
	}
	if *audioBitrate != "" {
		c.Encode.AudioBitrate = *audioBitrate
	}

	// Behavioral flags
	if *verbose {
		c.Verbose = true
	}
	if *dryRun {
		c.DryRun = true
	}

	return nil
}

// printUsage prints command-line usage help
func printUsage() {
	fmt.Fprintf(os.Stderr, `vsplit - split a large video into size-bounded segments by re-encoding

Usage:
  vsplit -input <file> [options]

The source is re-encoded in successive windows; each produced segment is
capped at the configured byte size and the next window resumes from the
measured end of the previous segment. Output files are written next to
the source as <name>_vNN_partMM<ext> and existing files are never
overwritten.

Options:
  -input string         Input video file path (required)
  -config string        Path to YAML config file
  -max-size float       Maximum segment size in MB (default 200)
  -timeout float        Per-segment timeout in minutes (default 60)
  -ffmpeg string        Path to the ffmpeg executable (default "ffmpeg")
  -ffprobe string       Path to the ffprobe executable (default "ffprobe")
  -video-codec string   Video codec (default "libx264")
  -crf int              Video CRF 0-51 (default 23)
  -preset string        Video preset (default "medium")
  -audio-codec string   Audio codec (default "aac")
  -audio-bitrate string Audio bitrate (default "128k")
  -verbose              Enable verbose logging
  -dry-run              Show the encode command without running it
`)
}
