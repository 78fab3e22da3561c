package service

import (
	"math"
)

// ProgressSummary is the read model the course viewer's progress bar and the
// certificate issuer are driven by.
type ProgressSummary struct {
	CompletedCount int  `json:"completedCount"`
	Percentage     int  `json:"percentage"`
	IsComplete     bool `json:"isComplete"`
}

// ComputeProgress derives completion state from a total lesson count and a
// fresh completed-lesson set. Pure function, no I/O.
//
// The percentage rounds half up (66.5 -> 67). A course with zero lessons is
// never complete, so an empty course can't be certified.
func ComputeProgress(totalLessons int, completedLessonIDs []string) ProgressSummary {
	completed := len(completedLessonIDs)

	percentage := 0
	if totalLessons > 0 {
		percentage = int(math.Round(float64(completed*100) / float64(totalLessons)))
	}

	return ProgressSummary{
		CompletedCount: completed,
		Percentage:     percentage,
		IsComplete:     totalLessons > 0 && completed == totalLessons,
	}
}
