package splitter

import (
	"context"
	"time"
)

// EncodeRequest describes one segment encode invocation.
type EncodeRequest struct {
	// SourcePath is the file being split.
	SourcePath string

	// StartOffsetSeconds is the seek position into the source.
	StartOffsetSeconds float64

	// MaxBytes is the byte-size ceiling for the produced segment.
	MaxBytes int64

	// OutputPath is the segment file to create. The encoder must fail
	// rather than overwrite an existing file at this path.
	OutputPath string

	// Timeout bounds this single invocation. It resets for every
	// segment; it is not a whole-run budget.
	Timeout time.Duration

	// Segment is the 1-based index of the segment being produced,
	// carried so failures can name the offending segment.
	Segment int
}

// MediaProcessor is the minimal capability the controller needs from
// the external media tools.
//
// This interface decouples the control loop from specific tool
// implementations (ffmpeg/ffprobe, test doubles), making the loop
// testable without any external process.
type MediaProcessor interface {
	// Duration returns the container-level duration of the file in
	// whole seconds, rounded up. A zero return with a nil error means
	// the file contains no playable stream time.
	Duration(ctx context.Context, path string) (int, error)

	// Encode produces one segment file according to the request.
	// It blocks until the encoder exits or the request timeout expires.
	Encode(ctx context.Context, req EncodeRequest) error
}
