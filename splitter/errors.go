package splitter

import (
	"fmt"

	"vsplit/internal/timeutil"
)

// Stage identifies the controller stage where a failure originated.
type Stage string

const (
	StageProbe   Stage = "probe"   // measuring the source's total duration
	StageEncode  Stage = "encode"  // producing a segment file
	StageVerify  Stage = "verify"  // checking the produced file's integrity
	StageMeasure Stage = "measure" // measuring a produced segment's duration
)

// StageError attributes a fatal run error to the stage and segment
// where it occurred. Segment is 0 for failures outside the loop.
type StageError struct {
	Stage   Stage
	Segment int
	Err     error
}

func (e *StageError) Error() string {
	if e.Segment > 0 {
		return fmt.Sprintf("%s failed for segment %d: %v", e.Stage, e.Segment, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// IntegrityError reports a segment file that is missing or smaller than
// the minimum integrity threshold after a reported-successful encode.
// This protects against encoders that exit 0 but write a truncated or
// empty file, e.g., on disk exhaustion.
type IntegrityError struct {
	Path      string
	SizeBytes int64
	MinBytes  int64
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("segment file %s is empty or corrupted (%s on disk, need at least %s)",
		e.Path, timeutil.FormatBytes(e.SizeBytes), timeutil.FormatBytes(e.MinBytes))
}
