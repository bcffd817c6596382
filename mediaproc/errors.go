package mediaproc

import "fmt"

// maxDetailBytes caps the diagnostic output carried in error messages.
// Encoder stderr can run to many kilobytes; the first lines name the
// actual problem.
const maxDetailBytes = 500

// ProbeFailure classifies why a duration probe failed.
type ProbeFailure int

const (
	// ProbeNotFound means the ffprobe executable is missing.
	ProbeNotFound ProbeFailure = iota

	// ProbeTimeout means the probe exceeded its fixed time budget.
	ProbeTimeout

	// ProbeFailed means ffprobe ran but exited non-zero.
	ProbeFailed
)

// ProbeError describes a failed duration probe.
type ProbeError struct {
	Kind     ProbeFailure
	Path     string
	ExitCode int
	Detail   string
	Err      error
}

func (e *ProbeError) Error() string {
	switch e.Kind {
	case ProbeNotFound:
		return "ffprobe not found: place the executable on PATH or set ffprobe_path"
	case ProbeTimeout:
		return fmt.Sprintf("ffprobe did not respond while analyzing %s", e.Path)
	default:
		return fmt.Sprintf("ffprobe error (%d): analysis of %s failed. Details: %s", e.ExitCode, e.Path, e.Detail)
	}
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// EncodeFailure classifies why a segment encode failed.
type EncodeFailure int

const (
	// EncodeNotFound means the ffmpeg executable is missing.
	EncodeNotFound EncodeFailure = iota

	// EncodeTimeout means the encode exceeded the per-segment timeout.
	EncodeTimeout

	// EncodeFailed means ffmpeg ran but exited non-zero.
	EncodeFailed

	// EncodeSystem covers anything else (permissions, disk full, ...).
	EncodeSystem
)

// EncodeError describes a failed segment encode, naming the offending
// segment.
type EncodeError struct {
	Segment  int
	Kind     EncodeFailure
	ExitCode int
	Detail   string
	Err      error
}

func (e *EncodeError) Error() string {
	switch e.Kind {
	case EncodeNotFound:
		return "ffmpeg not found: place the executable on PATH or set ffmpeg_path"
	case EncodeTimeout:
		return fmt.Sprintf("timeout: segment %d processing exceeded the per-segment limit", e.Segment)
	case EncodeFailed:
		return fmt.Sprintf("ffmpeg (segment %d) failed. Code: %d. Details: %s", e.Segment, e.ExitCode, e.Detail)
	default:
		return fmt.Sprintf("ffmpeg (segment %d) system error: %s", e.Segment, e.Detail)
	}
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// truncateDetail limits diagnostic text to maxDetailBytes.
func truncateDetail(s string) string {
	if len(s) <= maxDetailBytes {
		return s
	}
	return s[:maxDetailBytes] + "..."
}
