// Package splitter implements the segmentation control loop that splits
// a video file into size-bounded segments by repeatedly re-encoding
// successive time windows of the source.
//
// The encoder is only told a byte-size ceiling, never a duration, so
// after each segment the controller measures how long the produced file
// actually is and resumes the next segment from that exact point.
package splitter

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"vsplit/internal/timeutil"
	"vsplit/models"
)

const (
	// MinSegmentBytes is the integrity floor: a produced file smaller
	// than this is treated as corrupt even if the encoder exited 0.
	MinSegmentBytes = 1024

	// sizeCeilingTolerance detects end of stream: a segment under 99%
	// of the byte ceiling means the encoder ran out of source before
	// hitting -fs. Encoders rarely land exactly on the requested
	// ceiling, hence the 1% slack.
	sizeCeilingTolerance = 0.99
)

// Outcome is the terminal result of a successful run.
type Outcome struct {
	RunID                uuid.UUID
	SegmentsCreated      int
	BatchPrefix          string
	OutputDir            string
	TotalDurationSeconds int
	Elapsed              time.Duration
}

// Controller owns the run state of one splitting run and drives the
// segmentation loop. A Controller may be reused for sequential runs but
// never runs concurrently with itself: every segment's start offset is
// the measured end of the previous one.
type Controller struct {
	proc            MediaProcessor
	reporter        *Reporter
	minSegmentBytes int64
}

// NewController creates a controller using the given media processor.
// A nil reporter gets a default-sized one; retrieve it with Reporter.
func NewController(proc MediaProcessor, reporter *Reporter) *Controller {
	if reporter == nil {
		reporter = NewReporter(0)
	}
	return &Controller{
		proc:            proc,
		reporter:        reporter,
		minSegmentBytes: MinSegmentBytes,
	}
}

// Reporter returns the event stream owner for this controller.
func (c *Controller) Reporter() *Reporter {
	return c.reporter
}

// SetMinSegmentBytes overrides the integrity threshold.
func (c *Controller) SetMinSegmentBytes(n int64) *Controller {
	c.minSegmentBytes = n
	return c
}

// Run executes one splitting run to completion.
//
// It probes the source's total duration, resolves a collision-free
// batch prefix, then loops: name the next segment, encode it with the
// byte ceiling, verify the file's integrity, measure its real duration,
// and advance the cursor by that measurement. The loop ends when the
// cursor reaches the total duration, a segment comes in under the size
// ceiling, or a produced segment measures zero seconds.
//
// Any error is fatal to the run: no segment is retried, and segments
// already produced are left on disk. The returned error is a
// *StageError naming the stage and segment that failed.
//
// Cancelling ctx is honored between segments only; an in-flight encode
// finishes (or times out) first.
func (c *Controller) Run(ctx context.Context, job *models.SplitJob) (*Outcome, error) {
	if job == nil {
		return nil, fmt.Errorf("job cannot be nil")
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	runID := uuid.New()

	absSource, err := filepath.Abs(job.SourcePath)
	if err != nil {
		absSource = job.SourcePath
	}
	outputDir := filepath.Dir(absSource)
	ext := filepath.Ext(absSource)
	base := strings.TrimSuffix(filepath.Base(absSource), ext)

	slog.Info("run starting",
		"run_id", runID,
		"source", absSource,
		"max_segment_bytes", job.MaxSegmentBytes,
		"segment_timeout", job.PerSegmentTimeout)

	c.reporter.indeterminateStart()
	total, err := c.proc.Duration(ctx, job.SourcePath)
	c.reporter.indeterminateStop()
	if err != nil {
		return nil, c.fail(StageProbe, 0, err)
	}

	// A zero-length source produces no output; that is a degenerate
	// success, not an error.
	if total == 0 {
		outcome := &Outcome{
			RunID:     runID,
			OutputDir: outputDir,
			Elapsed:   time.Since(started),
		}
		c.reporter.completed(outcome)
		return outcome, nil
	}

	prefix := ResolveBatchPrefix(outputDir, base, ext)
	slog.Debug("batch prefix resolved", "run_id", runID, "prefix", prefix)

	var (
		cursor  float64 // seconds of source consumed so far
		index   = 1     // 1-based segment counter
		created int
	)

	for cursor < float64(total) {
		// The only supported interruption point: between segments,
		// keeping everything already produced.
		if err := ctx.Err(); err != nil {
			ierr := fmt.Errorf("run interrupted before segment %d (%d segments kept): %w", index, created, err)
			c.reporter.failed(ierr)
			return nil, ierr
		}

		outputPath := filepath.Join(outputDir, SegmentFileName(base, prefix, index, ext))

		c.reporter.infof("Processing segment %d: start %s", index, timeutil.FormatClock(int(cursor)))
		c.reporter.indeterminateStart()
		err := c.proc.Encode(ctx, EncodeRequest{
			SourcePath:         job.SourcePath,
			StartOffsetSeconds: cursor,
			MaxBytes:           job.MaxSegmentBytes,
			OutputPath:         outputPath,
			Timeout:            job.PerSegmentTimeout,
			Segment:            index,
		})
		c.reporter.indeterminateStop()
		if err != nil {
			return nil, c.fail(StageEncode, index, err)
		}

		stat, statErr := os.Stat(outputPath)
		if statErr != nil || stat.Size() < c.minSegmentBytes {
			var size int64
			if statErr == nil {
				size = stat.Size()
			}
			return nil, c.fail(StageVerify, index, &IntegrityError{
				Path:      outputPath,
				SizeBytes: size,
				MinBytes:  c.minSegmentBytes,
			})
		}
		created++

		duration, err := c.proc.Duration(ctx, outputPath)
		if err != nil {
			return nil, c.fail(StageMeasure, index, err)
		}
		if duration == 0 {
			// The seek landed at or past end of stream.
			break
		}

		result, err := models.NewSegmentResult(outputPath, stat.Size(), duration)
		if err != nil {
			return nil, c.fail(StageMeasure, index, err)
		}
		slog.Debug("segment produced",
			"run_id", runID,
			"segment", index,
			"path", result.OutputPath,
			"size_bytes", result.SizeBytes,
			"duration_seconds", result.DurationSeconds)

		// The cursor advances only by measured duration, never by an
		// estimate of what the window should have covered.
		cursor += float64(result.DurationSeconds)
		c.reporter.progress(math.Min(1.0, cursor/float64(total)))

		if result.SizeBytes < int64(sizeCeilingTolerance*float64(job.MaxSegmentBytes)) {
			// Under the ceiling: the encoder ran out of source.
			break
		}
		index++
	}

	outcome := &Outcome{
		RunID:                runID,
		SegmentsCreated:      created,
		BatchPrefix:          prefix,
		OutputDir:            outputDir,
		TotalDurationSeconds: total,
		Elapsed:              time.Since(started),
	}

	slog.Info("run complete",
		"run_id", runID,
		"segments", outcome.SegmentsCreated,
		"batch_prefix", outcome.BatchPrefix,
		"elapsed", outcome.Elapsed)

	c.reporter.completed(outcome)
	return outcome, nil
}

func (c *Controller) fail(stage Stage, segment int, err error) error {
	serr := &StageError{Stage: stage, Segment: segment, Err: err}
	slog.Error("run failed", "stage", stage, "segment", segment, "error", err)
	c.reporter.failed(serr)
	return serr
}
