package config

import (
	"fmt"
	"os"
	"strings"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	// Required fields
	if c.Input == "" {
		errors = append(errors, "input file is required")
	} else {
		stat, err := os.Stat(c.Input)
		switch {
		case os.IsNotExist(err):
			errors = append(errors, fmt.Sprintf("input file does not exist: %s", c.Input))
		case err != nil:
			errors = append(errors, fmt.Sprintf("input file is not readable: %v", err))
		case stat.IsDir():
			errors = append(errors, fmt.Sprintf("input is a directory: %s", c.Input))
		case stat.Size() == 0:
			errors = append(errors, fmt.Sprintf("input file is empty: %s", c.Input))
		}
	}

	// Splitting settings
	if c.MaxSizeMB <= 0 {
		errors = append(errors, "max segment size must be greater than 0 MB")
	}
	if c.TimeoutMinutes <= 0 {
		errors = append(errors, "timeout must be greater than 0 minutes")
	}

	// Tool locations
	if c.FFmpegPath == "" {
		errors = append(errors, "ffmpeg path is required")
	}
	if c.FFprobePath == "" {
		errors = append(errors, "ffprobe path is required")
	}

	// Validate encoding config
	if err := c.Encode.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("encode config: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Validate checks if encoding configuration is valid
func (ec *EncodeConfig) Validate() error {
	var errors []string

	if ec.VideoCodec == "" {
		errors = append(errors, "video codec is required")
	}

	if ec.CRF < 0 || ec.CRF > 51 {
		errors = append(errors, "crf must be between 0 and 51")
	}

	if ec.Preset == "" {
		errors = append(errors, "preset is required")
	}

	if ec.AudioCodec == "" {
		errors = append(errors, "audio codec is required")
	}

	if ec.AudioBitrate == "" {
		errors = append(errors, "audio bitrate is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}

	return nil
}
