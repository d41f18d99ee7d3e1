package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "Europe/Brussels"

const (
	DateLayout = "2006-01-02"
	HourLayout = "15:04"
)

var location = load()

func load() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Location() *time.Location {
	return location
}

func Now() time.Time {
	return time.Now().In(Location())
}

// ParseDate parses YYYY-MM-DD as midnight local time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, Location())
}

// ParseDateTime parses a date plus HH:MM in local time.
func ParseDateTime(date, hm string) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+HourLayout, date+" "+hm, Location())
}

// DayBounds returns [start of day, start of next day) for t in local time.
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.In(Location())
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
