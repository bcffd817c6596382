// Package mediaproc adapts the ffprobe and ffmpeg executables to the
// splitter.MediaProcessor capability, mapping process-level failures
// onto the error taxonomy the controller reports.
package mediaproc

import (
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"time"

	"vsplit/command/encode"
	"vsplit/ffprobe"
	"vsplit/splitter"
)

// EncodeSettings holds the fixed encoding parameters applied to every
// segment of a run.
type EncodeSettings struct {
	VideoCodec   string
	CRF          int
	Preset       string
	AudioCodec   string
	AudioBitrate string
}

// Processor implements splitter.MediaProcessor over the two external
// tools. Both executable paths are explicit configuration, not ambient
// state.
type Processor struct {
	ffmpegPath string
	prober     *ffprobe.Prober
	settings   EncodeSettings
}

var _ splitter.MediaProcessor = (*Processor)(nil)

// NewProcessor creates a Processor using the given executable paths and
// encoding settings.
func NewProcessor(ffmpegPath, ffprobePath string, settings EncodeSettings) *Processor {
	return &Processor{
		ffmpegPath: ffmpegPath,
		prober:     ffprobe.NewProber(ffprobePath),
		settings:   settings,
	}
}

// SetProbeTimeout overrides the fixed per-probe time budget.
func (p *Processor) SetProbeTimeout(timeout time.Duration) *Processor {
	p.prober.SetTimeout(timeout)
	return p
}

// Duration probes the container-level duration of the file in whole
// seconds, rounded up. Failures are reported as *ProbeError.
func (p *Processor) Duration(ctx context.Context, path string) (int, error) {
	duration, err := p.prober.Duration(ctx, path)
	if err != nil {
		return 0, p.mapProbe(path, err)
	}
	return duration, nil
}

// FileInfo probes duration, size and derived bitrate for the pre-run
// summary. Failures are reported as *ProbeError.
func (p *Processor) FileInfo(ctx context.Context, path string) (*ffprobe.FileInfo, error) {
	info, err := p.prober.FileInfo(ctx, path)
	if err != nil {
		return nil, p.mapProbe(path, err)
	}
	return info, nil
}

func (p *Processor) mapProbe(path string, err error) error {
	perr := &ProbeError{Path: path, Err: err}
	var exitErr *ffprobe.ExitError
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		perr.Kind = ProbeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		perr.Kind = ProbeTimeout
	case errors.As(err, &exitErr):
		perr.Kind = ProbeFailed
		perr.ExitCode = exitErr.ExitCode
		perr.Detail = truncateDetail(exitErr.Stderr)
	default:
		perr.Kind = ProbeFailed
		perr.Detail = truncateDetail(err.Error())
	}
	return perr
}

// Encode produces one segment with the request's byte ceiling and
// timeout. Failures are reported as *EncodeError naming the segment.
//
// Cancelling the caller's context does not abort an in-flight encode:
// the request timeout is the only thing that can interrupt one, and
// the controller honors cancellation between segments.
func (p *Processor) Encode(_ context.Context, req splitter.EncodeRequest) error {
	builder := encode.NewBuilder(req.SourcePath, req.OutputPath).
		SetBinary(p.ffmpegPath).
		SetStartOffset(req.StartOffsetSeconds).
		SetMaxBytes(req.MaxBytes).
		SetVideoCodec(p.settings.VideoCodec).
		SetCRF(p.settings.CRF).
		SetPreset(p.settings.Preset).
		SetAudioCodec(p.settings.AudioCodec).
		SetAudioBitrate(p.settings.AudioBitrate)

	ctx, cancel := context.WithTimeout(context.Background(), req.Timeout)
	defer cancel()

	err := builder.Run(ctx)
	if err == nil {
		return nil
	}

	eerr := &EncodeError{Segment: req.Segment, Err: err}
	var exitErr *encode.ExitError
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		eerr.Kind = EncodeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		eerr.Kind = EncodeTimeout
	case errors.As(err, &exitErr):
		eerr.Kind = EncodeFailed
		eerr.ExitCode = exitErr.ExitCode
		eerr.Detail = truncateDetail(exitErr.Stderr)
	default:
		eerr.Kind = EncodeSystem
		eerr.Detail = truncateDetail(err.Error())
	}
	return eerr
}

// DryRunCommand returns the ffmpeg command line that Encode would run
// for the given request, without executing anything.
func (p *Processor) DryRunCommand(req splitter.EncodeRequest) string {
	return encode.NewBuilder(req.SourcePath, req.OutputPath).
		SetBinary(p.ffmpegPath).
		SetStartOffset(req.StartOffsetSeconds).
		SetMaxBytes(req.MaxBytes).
		SetVideoCodec(p.settings.VideoCodec).
		SetCRF(p.settings.CRF).
		SetPreset(p.settings.Preset).
		SetAudioCodec(p.settings.AudioCodec).
		SetAudioBitrate(p.settings.AudioBitrate).
		DryRun()
}
