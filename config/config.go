package config

import "time"

// Config holds all splitter configuration options
type Config struct {
	// Required fields
	Input string `yaml:"input"`

	// Splitting settings
	MaxSizeMB      float64 `yaml:"max_size_mb"`     // byte ceiling per segment, in megabytes
	TimeoutMinutes float64 `yaml:"timeout_minutes"` // per-segment encode budget, in minutes

	// Tool locations (bare names resolve via PATH)
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	// Encoding settings applied to every segment
	Encode EncodeConfig `yaml:"encode"`

	// Behavioral flags
	Verbose bool `yaml:"verbose"` // Show debug logs
	DryRun  bool `yaml:"dry_run"` // Show the first encode command without running it
}

// EncodeConfig holds the fixed per-segment encoding settings
type EncodeConfig struct {
	VideoCodec   string `yaml:"video_codec"`   // e.g., "libx264", "libx265"
	CRF          int    `yaml:"crf"`           // Constant Rate Factor (0-51, lower = better quality)
	Preset       string `yaml:"preset"`        // e.g., "ultrafast", "medium", "slow"
	AudioCodec   string `yaml:"audio_codec"`   // e.g., "aac", "libopus"
	AudioBitrate string `yaml:"audio_bitrate"` // e.g., "128k", "192k"
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		// Required - must be provided by user
		Input: "",

		// Splitting defaults: 200 MB segments, 60 minute encode budget
		MaxSizeMB:      200,
		TimeoutMinutes: 60,

		// Tool locations
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",

		// Encoding defaults (H.264/AAC for broad player compatibility)
		Encode: EncodeConfig{
			VideoCodec:   "libx264",
			CRF:          23,
			Preset:       "medium",
			AudioCodec:   "aac",
			AudioBitrate: "128k",
		},

		// Behavioral defaults
		Verbose: false,
		DryRun:  false,
	}
}

// MaxSegmentBytes converts the configured megabyte ceiling to bytes
func (c *Config) MaxSegmentBytes() int64 {
	return int64(c.MaxSizeMB * 1024 * 1024)
}

// PerSegmentTimeout converts the configured minute budget to a duration
func (c *Config) PerSegmentTimeout() time.Duration {
	return time.Duration(c.TimeoutMinutes * float64(time.Minute))
}
