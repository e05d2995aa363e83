package utils

import (
	"regexp"
	"time"
)

type DateFormat string

const (
	FormatISO8601Date DateFormat = "2006-01-02"
	FormatTime24Short DateFormat = "15:04"
	FormatLongDate    DateFormat = "Monday 2 January 2006"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ParseDate accepts only zero padded YYYY-MM-DD calendar dates and returns
// midnight UTC of that day.
func ParseDate(input string) (time.Time, error) {
	if !datePattern.MatchString(input) {
		return time.Time{}, invalid("date %q must be YYYY-MM-DD", input)
	}

	parsed, err := time.Parse(string(FormatISO8601Date), input)
	if err != nil {
		return time.Time{}, invalid("date %q is not a calendar date", input)
	}
	return parsed, nil
}

func ValidateDate(input string) error {
	_, err := ParseDate(input)
	return err
}

// ValidateTime accepts HH:MM between 00:00 and 23:59.
func ValidateTime(input string) error {
	if !timePattern.MatchString(input) {
		return invalid("time %q must be HH:MM", input)
	}
	return nil
}

// DaysBetween counts whole calendar days from `from` to `to`; negative when
// `to` is earlier.
func DaysBetween(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
