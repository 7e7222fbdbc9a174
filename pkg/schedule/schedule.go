// Package schedule contains validation and derivation logic for daily rule schedules.
//
// A rule fires once a day at the hour and minute taken from a caller-supplied
// wall-clock date; the calendar part of the date is ignored, only the time of
// day is meaningful.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/umisama/go-regexpcache"
)

// NamePattern is the pattern a rule name must fully match.
// No wildcards, no whitespace.
const NamePattern = `[.\-_A-Za-z0-9]+`

// DateFormat is the expected layout of a caller-supplied date,
// local time, no timezone designator.
const DateFormat = "2006-01-02 15:04:05"

// ValidNameError is returned by ValidateName, the message mirrors
// the API's documented constraint.
type ValidNameError struct {
	Name string
}

func (e ValidNameError) Error() string {
	return fmt.Sprintf(`the rule's id must satisfy regular expression pattern: %s`, NamePattern)
}

// ValidateName checks that the rule name fully matches NamePattern.
func ValidateName(name string) error {
	if !regexpcache.MustCompile(`^` + NamePattern + `$`).MatchString(name) {
		return ValidNameError{Name: name}
	}
	return nil
}

// ParseDate parses a caller-supplied date in the DateFormat layout.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateFormat, value)
	if err != nil {
		return time.Time{}, errors.New(`there was an issue reading the date, provide a date with a valid format e.g. yyyy-mm-dd HH:MM:ss`)
	}
	return t, nil
}

// CronExpression derives the daily cron expression from the time of day.
// Seconds are ignored, day-of-month/month/day-of-week/year are wildcarded.
func CronExpression(t time.Time) string {
	return fmt.Sprintf("cron(%d %d * * ? *)", t.Minute(), t.Hour())
}
