package utils

import (
	"fmt"
	"psymate-service/internal/pkg/constvars"
	"time"
)

// ParseStartTime tries each accepted layout in order and returns the first
// match converted to UTC. Layouts without an offset are read as UTC.
func ParseStartTime(value string) (time.Time, error) {
	for _, layout := range constvars.AcceptedStartTimeLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("value %q does not match any accepted layout", value)
}

// FormatSlotLabel renders the human-readable slot string
// "HH:mm - HH:mm,YYYY-MM-DD" in the requested timezone. The date component
// stays on the UTC calendar date of the start instant, matching how labels
// have always been produced.
func FormatSlotLabel(start, end time.Time, location *time.Location) string {
	return fmt.Sprintf("%s - %s,%s",
		start.In(location).Format(constvars.SlotTimeFormat),
		end.In(location).Format(constvars.SlotTimeFormat),
		start.UTC().Format(constvars.SlotDateFormat),
	)
}

// LoadTimezone resolves an IANA zone name, falling back to the application
// default when the header is empty or unparseable.
func LoadTimezone(name string) *time.Location {
	if name == "" {
		name = constvars.DefaultTimezone
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		location, err = time.LoadLocation(constvars.DefaultTimezone)
		if err != nil {
			return time.UTC
		}
	}
	return location
}

// WeekdayName returns the English weekday of a UTC instant, e.g. "Monday".
func WeekdayName(t time.Time) string {
	return t.UTC().Weekday().String()
}

// ProjectTimeOfDay lifts a session's time-of-day onto the calendar date of
// the given instant, both read in UTC.
func ProjectTimeOfDay(date, timeOfDay time.Time) time.Time {
	d := date.UTC()
	tod := timeOfDay.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), tod.Hour(), tod.Minute(), tod.Second(), 0, time.UTC)
}
