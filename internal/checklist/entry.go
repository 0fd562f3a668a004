// Package checklist defines the task entry and its flat-file line codec.
package checklist

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the only date format the checklist file accepts.
const DateLayout = "2006-01-02"

var (
	ErrMalformed       = errors.New("malformed record")
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidInterval = errors.New("invalid interval")
	ErrDateRange       = errors.New("date out of range")
)

// Entry is one row of the checklist file: a named task, the date it is due,
// and how many days after completion it comes back. Interval 0 means the
// task is one-off and disappears when checked.
type Entry struct {
	Name     string
	Due      time.Time
	Interval int
}

// New builds an Entry from raw command arguments. The interval argument
// accepts the literal word "once" as a synonym for 0.
func New(name, due, interval string) (Entry, error) {
	if strings.TrimSpace(name) == "" {
		return Entry{}, fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.Contains(name, ",") {
		return Entry{}, fmt.Errorf("%w: %q must not contain commas", ErrInvalidName, name)
	}
	d, err := ParseDate(due)
	if err != nil {
		return Entry{}, err
	}
	iv, err := ParseInterval(interval)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, Due: d, Interval: iv}, nil
}

// Decode parses one checklist file line.
func Decode(line string) (Entry, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return Entry{}, fmt.Errorf("%w: expected 3 fields, got %d", ErrMalformed, len(fields))
	}
	due, err := ParseDate(fields[1])
	if err != nil {
		return Entry{}, err
	}
	interval, err := parseIntervalNumeric(fields[2])
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: fields[0], Due: due, Interval: interval}, nil
}

// Encode renders the entry as one checklist file line.
func (e Entry) Encode() string {
	return fmt.Sprintf("%s,%s,%d", e.Name, e.Due.Format(DateLayout), e.Interval)
}

// Recurring reports whether the task comes back after being checked.
func (e Entry) Recurring() bool {
	return e.Interval > 0
}

// IntervalLabel is the interval as shown in tables: "once" for 0, the plain
// day count otherwise.
func (e Entry) IntervalLabel() string {
	if e.Interval == 0 {
		return "once"
	}
	return strconv.Itoa(e.Interval)
}

// Overdue reports whether the entry's due date is strictly before today's
// calendar date. A task due exactly today is not overdue.
func (e Entry) Overdue(today time.Time) bool {
	return e.Due.Before(midnight(today))
}

// NextDue computes the rescheduled due date after checking a recurring task:
// today plus the interval, counted from today rather than the old due date.
func (e Entry) NextDue(today time.Time) (time.Time, error) {
	next := midnight(today).AddDate(0, 0, e.Interval)
	if next.Year() > 9999 {
		return time.Time{}, fmt.Errorf("%w: %d days from %s", ErrDateRange, e.Interval, today.Format(DateLayout))
	}
	return next, nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseInterval parses a recurrence interval argument: "once" or a
// non-negative day count.
func ParseInterval(s string) (int, error) {
	if s == "once" {
		return 0, nil
	}
	return parseIntervalNumeric(s)
}

func parseIntervalNumeric(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q is not a non-negative day count", ErrInvalidInterval, s)
	}
	return n, nil
}

// midnight truncates a moment to its calendar date, normalized to UTC so it
// compares cleanly with decoded due dates.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
