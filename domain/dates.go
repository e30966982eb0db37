package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Calendar dates are stored as UTC midnight of the local day so that equality
// and range queries compare the same representation on every driver.

// CalendarDate returns the calendar day of t in loc.
func CalendarDate(t time.Time, loc *time.Location) datatypes.Date {
	l := t.In(loc)
	return datatypes.Date(time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t.UTC()), nil
}

// FormatDate renders d as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// DateBefore reports whether a falls on an earlier day than b.
func DateBefore(a, b datatypes.Date) bool {
	return time.Time(a).Before(time.Time(b))
}

// ISOWeekday returns Monday=1 through Sunday=7.
func ISOWeekday(d datatypes.Date) int {
	return (int(time.Time(d).Weekday())+6)%7 + 1
}

// DayBounds returns the UTC instants that start and end the calendar day of t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	l := t.In(loc)
	start := time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}
