package timeutil

import (
	"fmt"
	"time"
)

// DefaultTimezone is the operating timezone every date in the system is
// interpreted in. All of the bot's users are in Italy.
const DefaultTimezone = "Europe/Rome"

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// ResolveLocation returns the location for a timezone name with UTC fallback.
// The second return value reports whether the fallback was used.
func ResolveLocation(timezone string) (*time.Location, bool) {
	if timezone == "" {
		timezone = DefaultTimezone
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC, true
	}
	return loc, false
}

// ParseDateTime parses a datetime in either RFC3339 (with explicit offset) or
// naive local layouts in the provided location.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("time value is required")
	}

	// If an offset is present, preserve it.
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	layouts := []string{
		DateTimeLayout,
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse time: %s", value)
}

// ParseDate parses a date-only string in the provided location at midnight.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("date value is required")
	}

	d, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", value)
	}
	return d, nil
}

// TimeOfDay formats the clock time of t in the provided location as "HH:MM:SS".
func TimeOfDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04:05")
}
