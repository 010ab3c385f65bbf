package services

import (
	"strings"

	"github.com/my2a/courseselect/internal/domain/enrollment"
)

// ComputeCompatibility returns the courses of all that clash with no taken
// course. Two courses clash when their semesters nest, they share a day and
// their time ranges overlap; touching ranges count as overlapping. A course
// never clashes with itself and untimed courses never clash.
func ComputeCompatibility(all, taken []enrollment.Course) enrollment.IDSet {
	ids := make([]int64, 0, len(all))
	for _, c := range all {
		if !clashesWithAny(c, taken) {
			ids = append(ids, c.ID)
		}
	}
	return enrollment.NewIDSet(ids...)
}

func clashesWithAny(c enrollment.Course, taken []enrollment.Course) bool {
	for _, t := range taken {
		if t.ID != c.ID && clash(c, t) {
			return true
		}
	}
	return false
}

func clash(a, b enrollment.Course) bool {
	if !a.Timed() || !b.Timed() {
		return false
	}
	if a.Slot.Day != b.Slot.Day || !semestersNest(a.Semester, b.Semester) {
		return false
	}
	minStart, maxStart := a.Slot.Start, b.Slot.Start
	if maxStart < minStart {
		minStart, maxStart = maxStart, minStart
	}
	minEnd := a.Slot.End
	if b.Slot.End < minEnd {
		minEnd = b.Slot.End
	}
	return minStart <= maxStart && maxStart <= minEnd
}

// semestersNest reports whether one semester code contains the other, so S3
// nests with S3, S3A and S3B but S3A does not nest with S3B
func semestersNest(a, b string) bool {
	wide, narrow := a, b
	if narrow < wide {
		wide, narrow = narrow, wide
	}
	return strings.Contains(narrow, wide)
}
