package utils

import (
	"fmt"
	"time"
)

const (
	FormatDate    = "2006-01-02"
	FormatClock   = "15:04"
	FormatClockHM = "15:04:05"
)

// ParseDate parses a calendar date in ISO form (2006-01-02).
func ParseDate(input string) (time.Time, error) {
	date, err := time.Parse(FormatDate, input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", input)
	}
	return date, nil
}

// ParseClock parses a wall-clock time, accepting HH:MM and HH:MM:SS.
func ParseClock(input string) (time.Time, error) {
	if clock, err := time.Parse(FormatClock, input); err == nil {
		return clock, nil
	}
	clock, err := time.Parse(FormatClockHM, input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected HH:MM", input)
	}
	return clock, nil
}
