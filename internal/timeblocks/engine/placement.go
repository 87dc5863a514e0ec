package engine

import "timegrid/pkg/model"

// weekdayCount and weekendCutoff pick the generated weekday set: Monday
// through Friday by default, Monday through Sunday when weekends are in.
const (
	weekdaysOnly = 5
	fullWeek     = 7
)

// BuildPreview derives the weekly grid from a configuration. It is a pure
// function: same configuration in, same preview out, no clock and no state.
// A configuration whose time fields do not parse yields an empty preview;
// callers are expected to validate first.
func BuildPreview(cfg *model.BlockConfig) model.SchedulePreview {
	start, err := model.ParseTimeOfDay(cfg.StartTime)
	if err != nil {
		return model.SchedulePreview{}
	}

	var lunchStart, lunchEnd model.TimeOfDay
	if cfg.Lunch.Enabled {
		lunchStart, err = model.ParseTimeOfDay(cfg.Lunch.Start)
		if err != nil {
			return model.SchedulePreview{}
		}
		lunchEnd = lunchStart.AddMinutes(cfg.Lunch.DurationMin)
	}

	dayCount := weekdaysOnly
	if cfg.IncludeWeekends {
		dayCount = fullWeek
	}

	preview := model.SchedulePreview{
		Days: make([]model.DaySchedule, 0, dayCount),
	}

	// Every day runs the same one-dimensional placement loop independently;
	// the weekly grid is just the per-day grid stamped across the week.
	for day := model.Weekday(0); day < model.Weekday(dayCount); day++ {
		daySchedule, overflow := placeDay(cfg, day, start, lunchStart, lunchEnd)
		preview.Days = append(preview.Days, daySchedule)
		if overflow {
			preview.Overflow = true
		}
	}

	return preview
}

// placeDay walks one weekday block by block. Overflow means the day ended
// before all configured blocks were placed; the partial block that crossed
// midnight is discarded, not truncated.
func placeDay(cfg *model.BlockConfig, day model.Weekday, start, lunchStart, lunchEnd model.TimeOfDay) (model.DaySchedule, bool) {
	duration := cfg.BlockDurationMin
	cursor := start
	consecutiveSinceBreak := 0
	overflow := false

	slots := make([]model.SlotEntry, 0, cfg.BlocksPerDay)

	for i := 0; i < cfg.BlocksPerDay; i++ {
		if cursor >= model.MinutesPerDay {
			overflow = true
			break
		}

		blockStart := cursor
		if cfg.Lunch.Enabled && straddlesLunch(blockStart, blockStart.AddMinutes(duration), lunchStart, lunchEnd) {
			blockStart = lunchEnd
		}

		blockEnd := blockStart.AddMinutes(duration)
		if blockEnd > model.MinutesPerDay {
			overflow = true
			break
		}

		slots = append(slots, model.SlotEntry{
			Slot: model.GeneratedSlot{Day: day, Start: blockStart, End: blockEnd},
		})

		next := blockEnd
		if cfg.ShortBreak.Enabled {
			next = next.AddMinutes(cfg.ShortBreak.Minutes)
		}

		consecutiveSinceBreak++
		lastBlock := i == cfg.BlocksPerDay-1
		if cfg.LongBreak.Enabled && consecutiveSinceBreak >= cfg.LongBreak.EveryNBlocks && !lastBlock {
			next = next.AddMinutes(cfg.LongBreak.Minutes)
			consecutiveSinceBreak = 0
		}

		// Lunch is applied once, after all break minutes for this boundary:
		// a break that lands the cursor inside the lunch window resumes at
		// lunch end.
		if cfg.Lunch.Enabled && next >= lunchStart && next < lunchEnd {
			next = lunchEnd
		}

		cursor = next
	}

	return model.DaySchedule{Day: day, Slots: slots}, overflow
}

// straddlesLunch reports whether a candidate block may not occupy its window
// because of the lunch exclusion: either the window overlaps the lunch
// interval, or the candidate start itself sits inside it.
func straddlesLunch(blockStart, blockEnd, lunchStart, lunchEnd model.TimeOfDay) bool {
	if blockStart >= lunchStart && blockStart < lunchEnd {
		return true
	}
	return blockStart < lunchEnd && blockEnd > lunchStart
}
