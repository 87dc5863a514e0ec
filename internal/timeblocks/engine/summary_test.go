package engine

import (
	"testing"

	"timegrid/pkg/model"
)

func intPtr(n int) *int { return &n }

func TestApplyFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		result *model.BulkGenerationResult
		fb     FallbackContext
		want   model.GenerationCounts
	}{
		{
			name:   "nil response, not replacing",
			result: nil,
			fb:     FallbackContext{SubmittedCount: 7, DuplicateBlocks: 3, PriorCount: 12},
			want:   model.GenerationCounts{Created: 7, Skipped: 3},
		},
		{
			name:   "nil response, replacing",
			result: nil,
			fb:     FallbackContext{SubmittedCount: 10, DuplicateBlocks: 3, PriorCount: 12, ReplaceExisting: true},
			want:   model.GenerationCounts{Created: 10, RemovedTimeslots: 12},
		},
		{
			name:   "full response overrides every fallback",
			result: &model.BulkGenerationResult{Created: intPtr(5), Skipped: intPtr(2), RemovedTimeslots: intPtr(9), RemovedCourseSchedules: intPtr(4)},
			fb:     FallbackContext{SubmittedCount: 7, DuplicateBlocks: 3, PriorCount: 12, ReplaceExisting: true},
			want:   model.GenerationCounts{Created: 5, Skipped: 2, RemovedTimeslots: 9, RemovedCourseSchedules: 4},
		},
		{
			name:   "partial response falls back per field",
			result: &model.BulkGenerationResult{Created: intPtr(6)},
			fb:     FallbackContext{SubmittedCount: 7, DuplicateBlocks: 3, PriorCount: 12},
			want:   model.GenerationCounts{Created: 6, Skipped: 3},
		},
		{
			name:   "explicit zero beats fallback",
			result: &model.BulkGenerationResult{Created: intPtr(0), Skipped: intPtr(0)},
			fb:     FallbackContext{SubmittedCount: 7, DuplicateBlocks: 3, PriorCount: 12},
			want:   model.GenerationCounts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFallbacks(tt.result, tt.fb)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		counts model.GenerationCounts
		want   string
	}{
		{
			name:   "all zero",
			counts: model.GenerationCounts{},
			want:   "No changes were made to the weekly schedule.",
		},
		{
			name:   "singular created",
			counts: model.GenerationCounts{Created: 1},
			want:   "1 time block created.",
		},
		{
			name:   "plural created with skipped",
			counts: model.GenerationCounts{Created: 7, Skipped: 3},
			want:   "7 time blocks created, 3 existing blocks skipped.",
		},
		{
			name:   "replacement run",
			counts: model.GenerationCounts{Created: 10, RemovedTimeslots: 12, RemovedCourseSchedules: 1},
			want:   "10 time blocks created, 12 prior blocks removed, 1 dependent course schedule removed.",
		},
		{
			name:   "zero counters contribute nothing",
			counts: model.GenerationCounts{Skipped: 2},
			want:   "2 existing blocks skipped.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.counts); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
