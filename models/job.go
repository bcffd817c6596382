// Package models provides core data structures for the splitter system.
package models

import (
	"fmt"
	"strings"
	"time"
)

// SplitJob describes one splitting run over a single source file.
//
// A job is created once from validated user input and is immutable for
// the lifetime of the run. The byte ceiling applies to every produced
// segment; the timeout applies to each individual encode invocation,
// not to the run as a whole.
//
// Use NewSplitJob to create a validated SplitJob instance.
type SplitJob struct {
	SourcePath        string        `json:"source_path"`
	MaxSegmentBytes   int64         `json:"max_segment_bytes"`
	PerSegmentTimeout time.Duration `json:"per_segment_timeout"`
}

// NewSplitJob creates a new SplitJob with validation.
//
// Returns an error if the job parameters are invalid:
//   - SourcePath cannot be empty or whitespace-only
//   - MaxSegmentBytes must be greater than 0
//   - PerSegmentTimeout must be greater than 0
//
// Example:
//
//	job, err := models.NewSplitJob("/path/to/video.mp4", 200<<20, time.Hour)
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewSplitJob(sourcePath string, maxSegmentBytes int64, perSegmentTimeout time.Duration) (*SplitJob, error) {
	j := &SplitJob{
		SourcePath:        sourcePath,
		MaxSegmentBytes:   maxSegmentBytes,
		PerSegmentTimeout: perSegmentTimeout,
	}
	if err := j.Validate(); err != nil {
		return nil, fmt.Errorf("invalid split job: %w", err)
	}
	return j, nil
}

// Validate checks if the SplitJob has valid data.
func (j *SplitJob) Validate() error {
	if strings.TrimSpace(j.SourcePath) == "" {
		return fmt.Errorf("source_path cannot be empty")
	}

	if j.MaxSegmentBytes <= 0 {
		return fmt.Errorf("max_segment_bytes must be greater than 0")
	}

	if j.PerSegmentTimeout <= 0 {
		return fmt.Errorf("per_segment_timeout must be greater than 0")
	}

	return nil
}
