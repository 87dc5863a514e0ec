package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MinutesPerDay is the exclusive upper bound for a TimeOfDay value. A slot
// end of exactly MinutesPerDay (midnight) is still representable and formats
// back to "00:00".
const MinutesPerDay = 1440

// TimeOfDay is a clock time expressed as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Seconds, when present, are truncated; the upstream timetable service stores
// times at seconds precision while user input carries minute precision.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)

	var hours, minutes, seconds int
	switch strings.Count(s, ":") {
	case 1:
		if _, err := fmt.Sscanf(s, "%d:%d", &hours, &minutes); err != nil {
			return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
		}
	case 2:
		if _, err := fmt.Sscanf(s, "%d:%d:%d", &hours, &minutes, &seconds); err != nil {
			return 0, fmt.Errorf("invalid time %q: expected HH:MM:SS", s)
		}
	default:
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}

	if hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid time %q: hours must be between 0 and 23", s)
	}
	if minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: minutes must be between 0 and 59", s)
	}
	if seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("invalid time %q: seconds must be between 0 and 59", s)
	}

	return TimeOfDay(hours*60 + minutes), nil
}

// AddMinutes returns the time shifted forward by n minutes. The result may
// exceed MinutesPerDay; callers decide how to treat day overflow.
func (t TimeOfDay) AddMinutes(n int) TimeOfDay {
	return t + TimeOfDay(n)
}

// Clock renders the time as "HH:MM". Values at or past midnight wrap, so a
// slot ending at minute 1440 renders as "00:00".
func (t TimeOfDay) Clock() string {
	m := int(t) % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ClockSeconds renders the time as "HH:MM:SS", the precision the upstream
// timetable service persists and compares at.
func (t TimeOfDay) ClockSeconds() string {
	return t.Clock() + ":00"
}

func (t TimeOfDay) String() string {
	return t.Clock()
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Clock())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
