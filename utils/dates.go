package utils

import (
	"fmt"
	"strings"
	"time"
)

// CalendarDateLayout is the accepted layout for date filters
const CalendarDateLayout = "2006-01-02"

// DateError represents an invalid calendar date input
type DateError struct {
	Value   string
	Message string
}

func (e *DateError) Error() string {
	return e.Message
}

// ParseCalendarDate parses a YYYY-MM-DD date as midnight in loc.
// Values carrying a time component are rejected.
func ParseCalendarDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, &DateError{Value: value, Message: "date is empty"}
	}
	if loc == nil {
		loc = time.Local
	}

	day, err := time.ParseInLocation(CalendarDateLayout, value, loc)
	if err != nil {
		return time.Time{}, &DateError{
			Value:   value,
			Message: fmt.Sprintf("date %q must be formatted as %s", value, CalendarDateLayout),
		}
	}

	return day, nil
}

// DayBounds returns the inclusive window [00:00:00.000, 23:59:59.999] of the
// calendar day containing t, in t's location. DST days are 23 or 25 hours long.
func DayBounds(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end = time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Add(-time.Millisecond)
	return start, end
}
