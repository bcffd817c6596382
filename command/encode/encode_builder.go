// Package encode builds and executes the FFmpeg command that produces
// one size-capped segment of the source file.
package encode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ExitError reports an ffmpeg invocation that ran but exited non-zero.
type ExitError struct {
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("ffmpeg exited with code %d: %s", e.ExitCode, e.Stderr)
}

// Builder assembles a single segment re-encode command.
//
// The command seeks the source to a start offset, re-encodes video and
// audio with fixed quality parameters, stops writing when the output
// reaches the byte ceiling (-fs), maps all source streams, and refuses
// to overwrite an existing output path (-n).
type Builder struct {
	binPath    string
	sourcePath string
	outputPath string

	startOffsetSeconds float64
	maxBytes           int64

	// Encoding settings
	videoCodec   string
	crf          int
	preset       string
	audioCodec   string
	audioBitrate string
}

// NewBuilder creates a new segment encode command builder with default
// encoding settings (H.264 CRF 23 medium, AAC 128k).
func NewBuilder(sourcePath, outputPath string) *Builder {
	return &Builder{
		binPath:      "ffmpeg",
		sourcePath:   sourcePath,
		outputPath:   outputPath,
		videoCodec:   "libx264",
		crf:          23,
		preset:       "medium",
		audioCodec:   "aac",
		audioBitrate: "128k",
	}
}

// SetBinary sets the ffmpeg binary path (bare name or absolute path).
func (b *Builder) SetBinary(path string) *Builder {
	b.binPath = path
	return b
}

// SetStartOffset sets the seek position into the source in seconds.
func (b *Builder) SetStartOffset(seconds float64) *Builder {
	b.startOffsetSeconds = seconds
	return b
}

// SetMaxBytes sets the output byte-size ceiling (-fs).
func (b *Builder) SetMaxBytes(maxBytes int64) *Builder {
	b.maxBytes = maxBytes
	return b
}

// SetVideoCodec sets the video codec (e.g., "libx264", "libx265").
func (b *Builder) SetVideoCodec(codec string) *Builder {
	b.videoCodec = codec
	return b
}

// SetCRF sets the Constant Rate Factor (0-51, lower is better quality).
func (b *Builder) SetCRF(crf int) *Builder {
	b.crf = crf
	return b
}

// SetPreset sets the encoding preset (ultrafast..veryslow).
func (b *Builder) SetPreset(preset string) *Builder {
	b.preset = preset
	return b
}

// SetAudioCodec sets the audio codec (e.g., "aac", "libopus").
func (b *Builder) SetAudioCodec(codec string) *Builder {
	b.audioCodec = codec
	return b
}

// SetAudioBitrate sets the audio bitrate (e.g., "128k").
func (b *Builder) SetAudioBitrate(bitrate string) *Builder {
	b.audioBitrate = bitrate
	return b
}

// BuildArgs constructs the ffmpeg arguments for one segment.
//
// Example return value for a 200 MB ceiling starting at 120 seconds:
//
//	["-i", "in.mp4", "-ss", "120", "-c:v", "libx264", "-crf", "23",
//	 "-preset", "medium", "-c:a", "aac", "-b:a", "128k",
//	 "-fs", "209715200", "-map", "0", "-n", "out.mp4"]
func (b *Builder) BuildArgs() []string {
	return []string{
		"-i", b.sourcePath,
		"-ss", strconv.FormatFloat(b.startOffsetSeconds, 'f', -1, 64),
		"-c:v", b.videoCodec,
		"-crf", strconv.Itoa(b.crf),
		"-preset", b.preset,
		"-c:a", b.audioCodec,
		"-b:a", b.audioBitrate,
		"-fs", strconv.FormatInt(b.maxBytes, 10),
		"-map", "0",
		"-n", // never overwrite an existing output path
		b.outputPath,
	}
}

// Run executes the encode command, blocking until it completes or the
// context expires.
//
// Stdout is discarded; stderr is captured for diagnostics. Failure
// modes mirror the prober:
//   - missing executable: the error wraps exec.ErrNotFound
//   - context deadline hit: the error wraps context.DeadlineExceeded
//   - non-zero exit: the error is an *ExitError with captured stderr
func (b *Builder) Run(ctx context.Context) error {
	args := b.BuildArgs()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, b.binPath, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("ffmpeg timed out: %w", context.DeadlineExceeded)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return fmt.Errorf("failed to run ffmpeg: %w", err)
	}

	return nil
}

// DryRun returns the command as a string without executing it.
func (b *Builder) DryRun() string {
	return b.binPath + " " + strings.Join(b.BuildArgs(), " ")
}
