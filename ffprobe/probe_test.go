package ffprobe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeStub creates an executable shell script standing in for ffprobe.
func writeStub(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffprobe-stub")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("failed to write stub: %v", err)
	}
	return path
}

func TestDurationRoundsUp(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   int
	}{
		{"fractional rounds up", "125.3", 126},
		{"whole seconds unchanged", "60.000000", 60},
		{"sub-second rounds to one", "0.04", 1},
		{"zero stays zero", "0.000000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := NewProber(writeStub(t, "echo "+tt.output))
			got, err := prober.Duration(context.Background(), "input.mp4")
			if err != nil {
				t.Fatalf("Duration() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Duration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDurationEmptySourcePath(t *testing.T) {
	prober := NewProber("ffprobe")
	_, err := prober.Duration(context.Background(), "")
	if err == nil {
		t.Fatal("Duration() expected error for empty source path")
	}
}

func TestDurationExitError(t *testing.T) {
	prober := NewProber(writeStub(t, `echo "input.mp4: Invalid data found" >&2; exit 1`))
	_, err := prober.Duration(context.Background(), "input.mp4")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Duration() error = %v, want *ExitError", err)
	}
	if exitErr.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", exitErr.ExitCode)
	}
	if !strings.Contains(exitErr.Stderr, "Invalid data found") {
		t.Errorf("Stderr = %q, want captured diagnostic", exitErr.Stderr)
	}
}

func TestDurationMissingBinary(t *testing.T) {
	prober := NewProber(filepath.Join(t.TempDir(), "no-such-ffprobe"))
	_, err := prober.Duration(context.Background(), "input.mp4")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Duration() error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestDurationTimeout(t *testing.T) {
	prober := NewProber(writeStub(t, "exec sleep 1")).SetTimeout(50 * time.Millisecond)
	_, err := prober.Duration(context.Background(), "input.mp4")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Duration() error = %v, want wrapped context.DeadlineExceeded", err)
	}
}

func TestDurationUnparsableOutput(t *testing.T) {
	prober := NewProber(writeStub(t, "echo not-a-number"))
	_, err := prober.Duration(context.Background(), "input.mp4")
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("Duration() error = %v, want parse failure", err)
	}
}

func TestFileInfo(t *testing.T) {
	source := filepath.Join(t.TempDir(), "input.mp4")
	if err := os.WriteFile(source, make([]byte, 10000), 0o644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	prober := NewProber(writeStub(t, "echo 10.0"))
	info, err := prober.FileInfo(context.Background(), source)
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if info.DurationSeconds != 10 {
		t.Errorf("DurationSeconds = %d, want 10", info.DurationSeconds)
	}
	if info.SizeBytes != 10000 {
		t.Errorf("SizeBytes = %d, want 10000", info.SizeBytes)
	}
	if info.BitrateKbps != 8.0 {
		t.Errorf("BitrateKbps = %f, want 8.0", info.BitrateKbps)
	}
}

func TestFileInfoStatFailure(t *testing.T) {
	prober := NewProber(writeStub(t, "echo 10.0"))
	_, err := prober.FileInfo(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	if err == nil {
		t.Fatal("FileInfo() expected error for missing source file")
	}
}
