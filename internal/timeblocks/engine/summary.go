package engine

import (
	"fmt"
	"strings"

	"timegrid/pkg/model"
)

// FallbackContext carries the locally known quantities a partially filled
// upstream response is completed from. Every response counter is independently
// optional, so each one falls back on its own.
type FallbackContext struct {
	SubmittedCount  int
	DuplicateBlocks int
	PriorCount      int
	ReplaceExisting bool
}

// ApplyFallbacks resolves an upstream bulk-create response into concrete
// counts. Absent fields default as follows: created to the number of slots
// submitted, skipped to the duplicate count (zero when replacing, since a
// replacement run skips nothing), removed_timeslots to the prior persisted
// count when replacing (zero otherwise), removed_course_schedules to zero.
func ApplyFallbacks(result *model.BulkGenerationResult, fb FallbackContext) model.GenerationCounts {
	counts := model.GenerationCounts{
		Created: fb.SubmittedCount,
	}
	if !fb.ReplaceExisting {
		counts.Skipped = fb.DuplicateBlocks
	}
	if fb.ReplaceExisting {
		counts.RemovedTimeslots = fb.PriorCount
	}

	if result == nil {
		return counts
	}
	if result.Created != nil {
		counts.Created = *result.Created
	}
	if result.Skipped != nil {
		counts.Skipped = *result.Skipped
	}
	if result.RemovedTimeslots != nil {
		counts.RemovedTimeslots = *result.RemovedTimeslots
	}
	if result.RemovedCourseSchedules != nil {
		counts.RemovedCourseSchedules = *result.RemovedCourseSchedules
	}
	return counts
}

// Summarize composes a one-sentence human-readable report from the resolved
// counts. Only non-zero counters contribute a fragment, each with correct
// singular or plural wording. All-zero counts yield a fixed no-change
// sentence. Total for any non-negative input, no side effects.
func Summarize(counts model.GenerationCounts) string {
	fragments := make([]string, 0, 4)
	if counts.Created > 0 {
		fragments = append(fragments, pluralize(counts.Created, "time block created", "time blocks created"))
	}
	if counts.Skipped > 0 {
		fragments = append(fragments, pluralize(counts.Skipped, "existing block skipped", "existing blocks skipped"))
	}
	if counts.RemovedTimeslots > 0 {
		fragments = append(fragments, pluralize(counts.RemovedTimeslots, "prior block removed", "prior blocks removed"))
	}
	if counts.RemovedCourseSchedules > 0 {
		fragments = append(fragments, pluralize(counts.RemovedCourseSchedules, "dependent course schedule removed", "dependent course schedules removed"))
	}

	if len(fragments) == 0 {
		return "No changes were made to the weekly schedule."
	}
	return strings.Join(fragments, ", ") + "."
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
