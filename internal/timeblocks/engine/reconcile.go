package engine

import "timegrid/pkg/model"

// ExistingIndex builds the lookup set for reconciliation from the persisted
// timeslot list. Keys are the exact (day, start, end) identity triples.
func ExistingIndex(records []model.TimeslotRecord) map[string]struct{} {
	index := make(map[string]struct{}, len(records))
	for _, r := range records {
		index[r.Key()] = struct{}{}
	}
	return index
}

// Reconcile marks every slot in the preview that already exists upstream and
// fills the preview counters. The input preview is modified in place and
// returned for convenience. Reconciling twice against the same index is a
// no-op beyond the first pass.
func Reconcile(preview model.SchedulePreview, existing map[string]struct{}) model.SchedulePreview {
	total, duplicates := 0, 0

	for di := range preview.Days {
		slots := preview.Days[di].Slots
		for si := range slots {
			total++
			_, found := existing[slots[si].Slot.Key()]
			slots[si].Exists = found
			if found {
				duplicates++
			}
		}
	}

	preview.TotalBlocks = total
	preview.DuplicateBlocks = duplicates
	preview.NewBlocks = total - duplicates
	return preview
}
