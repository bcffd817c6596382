package splitter

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// ResolveBatchPrefix selects the versioned prefix for a new run so its
// output files never collide with a previous run's set.
//
// It scans dir for existing names matching
//
//	<base>_v<NN>_part<MM><ext>
//
// takes the highest version found and returns "_v<NN+1>" zero-padded to
// two digits. Files from unrelated sources in the same directory do not
// influence the result.
//
// If the directory cannot be listed the first-run prefix "_v01" is
// returned rather than failing; the no-overwrite flag on each encode
// call is the backstop if that assumption is wrong.
func ResolveBatchPrefix(dir, base, ext string) string {
	pattern := regexp.MustCompile(
		"^" + regexp.QuoteMeta(base) + `_v(\d+)_part\d{2,}` + regexp.QuoteMeta(ext) + "$")

	maxVersion := 0

	entries, err := os.ReadDir(dir)
	if err == nil {
		for _, entry := range entries {
			matches := pattern.FindStringSubmatch(entry.Name())
			if matches == nil {
				continue
			}
			version, err := strconv.Atoi(matches[1])
			if err == nil && version > maxVersion {
				maxVersion = version
			}
		}
	}

	return fmt.Sprintf("_v%02d", maxVersion+1)
}

// SegmentFileName builds the output file name for one segment:
// <base><prefix>_part<MM><ext> with the index zero-padded to two digits.
func SegmentFileName(base, prefix string, index int, ext string) string {
	return fmt.Sprintf("%s%s_part%02d%s", base, prefix, index, ext)
}
