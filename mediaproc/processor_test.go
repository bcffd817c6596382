package mediaproc

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vsplit/splitter"
)

var testSettings = EncodeSettings{
	VideoCodec:   "libx264",
	CRF:          23,
	Preset:       "medium",
	AudioCodec:   "aac",
	AudioBitrate: "128k",
}

func writeStub(t *testing.T, name, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func missingBinary(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing-binary")
}

func encodeRequest(timeout time.Duration) splitter.EncodeRequest {
	return splitter.EncodeRequest{
		SourcePath: "in.mp4",
		MaxBytes:   4096,
		OutputPath: "out.mp4",
		Timeout:    timeout,
		Segment:    3,
	}
}

func TestDurationSuccess(t *testing.T) {
	proc := NewProcessor("ffmpeg", writeStub(t, "ffprobe", "echo 90.5"), testSettings)
	got, err := proc.Duration(context.Background(), "in.mp4")
	require.NoError(t, err)
	assert.Equal(t, 91, got)
}

func TestDurationMapsMissingBinary(t *testing.T) {
	proc := NewProcessor("ffmpeg", missingBinary(t), testSettings)
	_, err := proc.Duration(context.Background(), "in.mp4")

	var perr *ProbeError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ProbeNotFound, perr.Kind)
	assert.Contains(t, perr.Error(), "ffprobe not found")
}

func TestDurationMapsExitError(t *testing.T) {
	stub := writeStub(t, "ffprobe", `echo "moov atom not found" >&2; exit 2`)
	proc := NewProcessor("ffmpeg", stub, testSettings)
	_, err := proc.Duration(context.Background(), "in.mp4")

	var perr *ProbeError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ProbeFailed, perr.Kind)
	assert.Equal(t, 2, perr.ExitCode)
	assert.Contains(t, perr.Detail, "moov atom not found")
	assert.Equal(t, "in.mp4", perr.Path)
}

func TestDurationMapsTimeout(t *testing.T) {
	stub := writeStub(t, "ffprobe", "exec sleep 1")
	proc := NewProcessor("ffmpeg", stub, testSettings).
		SetProbeTimeout(50 * time.Millisecond)
	_, err := proc.Duration(context.Background(), "in.mp4")

	var perr *ProbeError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ProbeTimeout, perr.Kind)
}

func TestFileInfoMapsProbeError(t *testing.T) {
	proc := NewProcessor("ffmpeg", missingBinary(t), testSettings)
	_, err := proc.FileInfo(context.Background(), "in.mp4")

	var perr *ProbeError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ProbeNotFound, perr.Kind)
}

func TestEncodeSuccess(t *testing.T) {
	proc := NewProcessor(writeStub(t, "ffmpeg", "exit 0"), "ffprobe", testSettings)
	err := proc.Encode(context.Background(), encodeRequest(time.Minute))
	assert.NoError(t, err)
}

func TestEncodeMapsMissingBinary(t *testing.T) {
	proc := NewProcessor(missingBinary(t), "ffprobe", testSettings)
	err := proc.Encode(context.Background(), encodeRequest(time.Minute))

	var eerr *EncodeError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, EncodeNotFound, eerr.Kind)
	assert.Equal(t, 3, eerr.Segment)
}

func TestEncodeMapsExitError(t *testing.T) {
	stub := writeStub(t, "ffmpeg", `echo "Conversion failed!" >&2; exit 1`)
	proc := NewProcessor(stub, "ffprobe", testSettings)
	err := proc.Encode(context.Background(), encodeRequest(time.Minute))

	var eerr *EncodeError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, EncodeFailed, eerr.Kind)
	assert.Equal(t, 1, eerr.ExitCode)
	assert.Equal(t, 3, eerr.Segment)
	assert.Contains(t, eerr.Detail, "Conversion failed!")
}

func TestEncodeSurvivesCallerCancellation(t *testing.T) {
	stub := writeStub(t, "ffmpeg", "sleep 0.3; exit 0")
	proc := NewProcessor(stub, "ffprobe", testSettings)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	started := time.Now()
	err := proc.Encode(ctx, encodeRequest(time.Minute))

	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(started), 300*time.Millisecond)
}

func TestEncodeIgnoresAlreadyCancelledContext(t *testing.T) {
	proc := NewProcessor(writeStub(t, "ffmpeg", "exit 0"), "ffprobe", testSettings)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, proc.Encode(ctx, encodeRequest(time.Minute)))
}

func TestEncodeMapsTimeout(t *testing.T) {
	stub := writeStub(t, "ffmpeg", "exec sleep 1")
	proc := NewProcessor(stub, "ffprobe", testSettings)
	err := proc.Encode(context.Background(), encodeRequest(50*time.Millisecond))

	var eerr *EncodeError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, EncodeTimeout, eerr.Kind)
	assert.Contains(t, eerr.Error(), "segment 3")
}

func TestEncodeTruncatesLongStderr(t *testing.T) {
	stub := writeStub(t, "ffmpeg", `head -c 2000 /dev/zero | tr '\0' x >&2; exit 1`)
	proc := NewProcessor(stub, "ffprobe", testSettings)
	err := proc.Encode(context.Background(), encodeRequest(time.Minute))

	var eerr *EncodeError
	require.ErrorAs(t, err, &eerr)
	assert.Len(t, eerr.Detail, maxDetailBytes+len("..."))
	assert.True(t, strings.HasSuffix(eerr.Detail, "..."))
}

func TestTruncateDetail(t *testing.T) {
	assert.Equal(t, "short", truncateDetail("short"))

	long := strings.Repeat("x", maxDetailBytes+1)
	got := truncateDetail(long)
	assert.Len(t, got, maxDetailBytes+len("..."))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestDryRunCommand(t *testing.T) {
	proc := NewProcessor("/usr/bin/ffmpeg", "ffprobe", testSettings)
	cmd := proc.DryRunCommand(encodeRequest(time.Minute))

	assert.True(t, strings.HasPrefix(cmd, "/usr/bin/ffmpeg -i in.mp4"))
	assert.Contains(t, cmd, "-fs 4096")
	assert.Contains(t, cmd, "-n out.mp4")
}
