package engine

import (
	"errors"

	"timegrid/pkg/model"
)

var (
	// ErrNoBlocks means the configuration produced no slots at all, so there
	// is nothing a submission could ever create.
	ErrNoBlocks = errors.New("configuration produced no blocks")

	// ErrAllBlocksExist means every computed slot already exists upstream and
	// the caller did not ask to replace, so the submission would be a no-op.
	ErrAllBlocksExist = errors.New("all computed blocks already exist")
)

// PlanSubmission turns a reconciled preview into the bulk request for the
// timetable service, or refuses when the submission could not change anything.
//
// With replaceExisting set, every slot is submitted, duplicates included: the
// upstream service recreates the week from scratch and cascades deletion of
// dependent course schedules. Without it, only slots not yet persisted are
// submitted. An empty payload is never sent; the refusal distinguishes a
// configuration that yields no blocks from one whose blocks all exist.
func PlanSubmission(preview model.SchedulePreview, replaceExisting bool) (*model.BulkGenerationRequest, error) {
	if preview.TotalBlocks == 0 {
		return nil, ErrNoBlocks
	}
	if !replaceExisting && preview.NewBlocks == 0 {
		return nil, ErrAllBlocksExist
	}

	capacity := preview.TotalBlocks
	if !replaceExisting {
		capacity = preview.NewBlocks
	}

	slots := make([]model.TimeslotRecord, 0, capacity)
	for _, day := range preview.Days {
		for _, entry := range day.Slots {
			if !replaceExisting && entry.Exists {
				continue
			}
			slots = append(slots, model.TimeslotRecord{
				DayOfWeek: int(entry.Slot.Day),
				StartTime: entry.Slot.Start.ClockSeconds(),
				EndTime:   entry.Slot.End.ClockSeconds(),
			})
		}
	}

	return &model.BulkGenerationRequest{
		ReplaceExisting: replaceExisting,
		Slots:           slots,
	}, nil
}
