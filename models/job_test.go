package models

import (
	"testing"
	"time"
)

func TestNewSplitJob(t *testing.T) {
	job, err := NewSplitJob("/videos/lecture.mp4", 200<<20, time.Hour)
	if err != nil {
		t.Fatalf("NewSplitJob() error = %v", err)
	}
	if job.SourcePath != "/videos/lecture.mp4" {
		t.Errorf("SourcePath = %q, want %q", job.SourcePath, "/videos/lecture.mp4")
	}
	if job.MaxSegmentBytes != 200<<20 {
		t.Errorf("MaxSegmentBytes = %d, want %d", job.MaxSegmentBytes, 200<<20)
	}
	if job.PerSegmentTimeout != time.Hour {
		t.Errorf("PerSegmentTimeout = %v, want %v", job.PerSegmentTimeout, time.Hour)
	}
}

func TestNewSplitJobInvalid(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		bytes   int64
		timeout time.Duration
	}{
		{"empty source path", "", 4096, time.Minute},
		{"whitespace source path", "   ", 4096, time.Minute},
		{"zero max bytes", "in.mp4", 0, time.Minute},
		{"negative max bytes", "in.mp4", -1, time.Minute},
		{"zero timeout", "in.mp4", 4096, 0},
		{"negative timeout", "in.mp4", 4096, -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSplitJob(tt.source, tt.bytes, tt.timeout); err == nil {
				t.Error("NewSplitJob() error = nil, want error")
			}
		})
	}
}
