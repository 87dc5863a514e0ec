package model

import "fmt"

// Weekday indexes days 0=Monday through 6=Sunday. This convention is shared
// with the upstream timetable service's day_of_week column and must not be
// remapped to time.Weekday (which starts at Sunday).
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

type ShortBreakConfig struct {
	Enabled bool `json:"enabled"`
	Minutes int  `json:"minutes"`
}

type LongBreakConfig struct {
	Enabled      bool `json:"enabled"`
	EveryNBlocks int  `json:"every_n_blocks"`
	Minutes      int  `json:"minutes"`
}

type LunchConfig struct {
	Enabled     bool   `json:"enabled"`
	Start       string `json:"start"`
	DurationMin int    `json:"duration_min"`
}

// BlockConfig is the full set of rules a weekly grid is derived from. Field
// order matches the order validation rules are checked in, so the first
// reported failure is deterministic.
type BlockConfig struct {
	StartTime        string           `json:"start_time" validate:"required,clock_time"`
	BlockDurationMin int              `json:"block_duration_min" validate:"gt=0"`
	BlocksPerDay     int              `json:"blocks_per_day" validate:"gt=0"`
	ShortBreak       ShortBreakConfig `json:"short_break"`
	LongBreak        LongBreakConfig  `json:"long_break"`
	Lunch            LunchConfig      `json:"lunch"`
	IncludeWeekends  bool             `json:"include_weekends"`
	ReplaceExisting  bool             `json:"replace_existing"`
}

// GeneratedSlot is one candidate lecture block on one weekday.
// Invariant: End == Start + BlockDurationMin and End <= MinutesPerDay.
type GeneratedSlot struct {
	Day   Weekday   `json:"day"`
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Key renders the identity triple used when comparing against persisted
// timeslots: exact (day, start, end) match at seconds precision.
func (s GeneratedSlot) Key() string {
	return SlotKey(int(s.Day), s.Start.ClockSeconds(), s.End.ClockSeconds())
}

// SlotKey builds the identity key for a (day, start, end) triple. Both sides
// of the reconciliation must go through this function so the comparison is
// positional equality and nothing fuzzier.
func SlotKey(day int, start, end string) string {
	return fmt.Sprintf("%d|%s|%s", day, start, end)
}

// SlotEntry pairs a generated slot with its reconciliation verdict.
type SlotEntry struct {
	Slot   GeneratedSlot `json:"slot"`
	Exists bool          `json:"exists"`
}

// DaySchedule holds one weekday's slots, ordered strictly by start time.
type DaySchedule struct {
	Day   Weekday     `json:"day"`
	Slots []SlotEntry `json:"slots"`
}

// SchedulePreview is the derived weekly grid. Overflow means at least one day
// could not fit all configured blocks before midnight; that day's slot list is
// truncated at the first block that did not fit. The counters are filled by
// reconciliation and are zero on a freshly placed preview.
type SchedulePreview struct {
	Overflow bool          `json:"overflow"`
	Days     []DaySchedule `json:"days"`

	TotalBlocks     int `json:"total_blocks"`
	DuplicateBlocks int `json:"duplicate_blocks"`
	NewBlocks       int `json:"new_blocks"`
}

// TimeslotRecord is the wire shape of a persisted timeslot at the upstream
// timetable service. Times carry seconds precision.
type TimeslotRecord struct {
	ID        string `json:"id,omitempty"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Key renders the record's identity triple for reconciliation.
func (r TimeslotRecord) Key() string {
	return SlotKey(r.DayOfWeek, r.StartTime, r.EndTime)
}

// BulkGenerationRequest is the payload submitted to the upstream bulk-create
// endpoint. Built fresh per generation run, never persisted locally.
type BulkGenerationRequest struct {
	ReplaceExisting bool             `json:"replace_existing"`
	Slots           []TimeslotRecord `json:"slots"`
}

// BulkGenerationResult is the upstream bulk-create response. Every counter is
// independently optional; absent fields get locally computed fallbacks.
type BulkGenerationResult struct {
	Created                *int `json:"created,omitempty"`
	Skipped                *int `json:"skipped,omitempty"`
	RemovedTimeslots       *int `json:"removed_timeslots,omitempty"`
	RemovedCourseSchedules *int `json:"removed_course_schedules,omitempty"`
}

// GenerationCounts is a BulkGenerationResult after fallback application, with
// every counter concrete.
type GenerationCounts struct {
	Created                int `json:"created"`
	Skipped                int `json:"skipped"`
	RemovedTimeslots       int `json:"removed_timeslots"`
	RemovedCourseSchedules int `json:"removed_course_schedules"`
}

// GenerationOutcome is what a successful generation run returns to the caller.
type GenerationOutcome struct {
	RunID   string           `json:"run_id"`
	Counts  GenerationCounts `json:"counts"`
	Summary string           `json:"summary"`
	Preview SchedulePreview  `json:"preview"`
}
