package timeutil

import "testing"

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{90, "01:30"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{7325, "02:02:05"},
		{-10, "00:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "N/A"},
		{-5, "N/A"},
		{1, "1 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1.00 KB"},
		{2048, "2.00 KB"},
		{1536, "1.50 KB"},
		{209715200, "200.00 MB"},
		{1 << 30, "1.00 GB"},
		{1 << 40, "1.00 TB"},
		{1 << 50, "1.00 PB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.size); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
