package models

import (
	"fmt"
	"strings"
)

// SegmentResult represents one successfully produced segment file.
//
// A result is created after an encode+probe pair completes and is
// consumed immediately by the controller to advance its cursor. The
// measured duration is what the probe reported for the produced file,
// never an estimate derived from the requested window.
type SegmentResult struct {
	OutputPath      string `json:"output_path"`
	SizeBytes       int64  `json:"size_bytes"`
	DurationSeconds int    `json:"duration_seconds"`
}

// NewSegmentResult creates a new SegmentResult with validation.
//
// Returns an error if:
//   - OutputPath is empty or whitespace-only
//   - SizeBytes is not positive
//   - DurationSeconds is negative
//
// A zero duration is valid: it is how the encoder signals that the
// requested start offset was already at or past end of stream.
func NewSegmentResult(outputPath string, sizeBytes int64, durationSeconds int) (*SegmentResult, error) {
	r := &SegmentResult{
		OutputPath:      outputPath,
		SizeBytes:       sizeBytes,
		DurationSeconds: durationSeconds,
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid segment result: %w", err)
	}
	return r, nil
}

// Validate checks if the SegmentResult has consistent state.
func (r *SegmentResult) Validate() error {
	if strings.TrimSpace(r.OutputPath) == "" {
		return fmt.Errorf("output_path cannot be empty")
	}

	if r.SizeBytes <= 0 {
		return fmt.Errorf("size_bytes must be greater than 0")
	}

	if r.DurationSeconds < 0 {
		return fmt.Errorf("duration_seconds cannot be negative")
	}

	return nil
}
