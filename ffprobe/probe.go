package ffprobe

// Package ffprobe provides duration and file metadata probing for media
// files using the ffprobe command-line tool.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the fixed budget for a single probe invocation.
// Probing reads container-level metadata only, so it completes quickly
// even on very large files.
const DefaultTimeout = 15 * time.Second

// ExitError reports an ffprobe invocation that ran but exited non-zero.
type ExitError struct {
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("ffprobe exited with code %d: %s", e.ExitCode, e.Stderr)
}

// FileInfo holds the summary metadata for a media file.
type FileInfo struct {
	DurationSeconds int
	SizeBytes       int64
	BitrateKbps     float64
}

// Prober executes duration probes against a configurable ffprobe binary.
//
// The zero value is not usable; construct with NewProber. The probe
// timeout is fixed per invocation and independent of any caller context
// deadline (whichever expires first wins).
type Prober struct {
	binPath string
	timeout time.Duration
}

// NewProber creates a Prober that invokes the given ffprobe binary.
//
// The binary path may be a bare name (resolved via PATH) or an absolute
// path to a pinned executable.
func NewProber(binPath string) *Prober {
	return &Prober{
		binPath: binPath,
		timeout: DefaultTimeout,
	}
}

// SetTimeout overrides the per-invocation probe timeout.
func (p *Prober) SetTimeout(timeout time.Duration) *Prober {
	p.timeout = timeout
	return p
}

// Duration returns the container-level duration of the file in whole
// seconds, rounded up.
//
// Rounding up guarantees that a cursor advanced by measured durations
// never under-shoots the true end of the stream. A fractional duration
// of 0.04 seconds therefore reports as 1, and only a true zero-length
// stream reports 0.
//
// Failure modes:
//   - the ffprobe executable is missing: the error wraps exec.ErrNotFound
//   - the probe exceeded the timeout: the error wraps context.DeadlineExceeded
//   - ffprobe exited non-zero: the error is an *ExitError with the
//     captured stderr
func (p *Prober) Duration(ctx context.Context, sourcePath string) (int, error) {
	if sourcePath == "" {
		return 0, fmt.Errorf("source path cannot be empty")
	}

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		sourcePath,
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.binPath, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return 0, fmt.Errorf("ffprobe did not respond within %s: %w", p.timeout, context.DeadlineExceeded)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return 0, &ExitError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		// exec.Error wrapping exec.ErrNotFound, permission problems, etc.
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	raw := strings.TrimSpace(stdout.String())
	duration, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe duration %q: %w", raw, err)
	}

	return int(math.Ceil(duration)), nil
}

// FileInfo probes the duration of the file and combines it with its
// on-disk size and the derived average bitrate in kbps.
//
// Bitrate is zero when either duration or size is zero.
func (p *Prober) FileInfo(ctx context.Context, sourcePath string) (*FileInfo, error) {
	duration, err := p.Duration(ctx, sourcePath)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", sourcePath, err)
	}

	info := &FileInfo{
		DurationSeconds: duration,
		SizeBytes:       stat.Size(),
	}

	if duration > 0 && stat.Size() > 0 {
		info.BitrateKbps = float64(stat.Size()*8) / float64(duration) / 1000
	}

	return info, nil
}
