package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ClockLayout is the wire format of slot start and end times.
const ClockLayout = "15:04"

// ParseDate reads a calendar date. Both YYYY-MM-DD and RFC3339 timestamps
// are accepted; the result is always midnight UTC of the date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatDate renders a date in DateLayout.
func FormatDate(d time.Time) string {
	return d.UTC().Format(DateLayout)
}

// ParseClock validates an HH:MM wall-clock string.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t, nil
}

// ValidSlotWindow checks that start and end are HH:MM and start is before end.
func ValidSlotWindow(start, end string) error {
	st, err := ParseClock(start)
	if err != nil {
		return err
	}
	et, err := ParseClock(end)
	if err != nil {
		return err
	}
	if !st.Before(et) {
		return fmt.Errorf("start time %s must be before end time %s", start, end)
	}
	return nil
}
