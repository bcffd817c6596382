// Package timeutil provides time and size formatting utilities for
// status messages.
package timeutil

import "fmt"

// FormatClock converts whole seconds to HH:MM:SS format, dropping the
// hour component for durations under one hour.
//
// Example:
//
//	FormatClock(0)     // "00:00"
//	FormatClock(90)    // "01:30"
//	FormatClock(3661)  // "01:01:01"
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatBytes converts a byte count into a human-readable string.
//
// Example:
//
//	FormatBytes(0)          // "N/A"
//	FormatBytes(2048)       // "2.00 KB"
//	FormatBytes(209715200)  // "200.00 MB"
func FormatBytes(size int64) string {
	if size <= 0 {
		return "N/A"
	}

	units := []string{"Bytes", "KB", "MB", "GB", "TB", "PB"}

	value := float64(size)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d Bytes", size)
	}
	return fmt.Sprintf("%.2f %s", value, units[unit])
}
