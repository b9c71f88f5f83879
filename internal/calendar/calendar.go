// Package calendar provides pure date helpers for budget months: period-key
// parsing, month boundaries, display names, and weekday occurrence counting.
package calendar

import (
	"fmt"
	"regexp"
	"time"
)

// KeyFormat is the canonical period key layout, e.g. "2025-03".
const KeyFormat = "2006-01"

var keyPattern = regexp.MustCompile(`^(\d{4})-(0[1-9]|1[0-2])$`)

// ParseKey parses a "YYYY-MM" period key into its year and month.
func ParseKey(key string) (year int, month int, err error) {
	if !keyPattern.MatchString(key) {
		return 0, 0, fmt.Errorf("invalid period key %q", key)
	}
	if _, err := fmt.Sscanf(key, "%4d-%2d", &year, &month); err != nil {
		return 0, 0, fmt.Errorf("invalid period key %q", key)
	}
	return year, month, nil
}

// Key returns the period key for the month containing t.
func Key(t time.Time) string {
	return t.Format(KeyFormat)
}

// Bounds returns the first and last day of the given month, both at
// midnight UTC. The end date is the inclusive last day, matching how
// month rows are stored.
func Bounds(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// DisplayName returns the human-readable month name, e.g. "March 2025".
func DisplayName(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// PreviousKey returns the period key of the month immediately before the
// month starting at start.
func PreviousKey(start time.Time) string {
	return start.AddDate(0, 0, -1).Format(KeyFormat)
}

// MonthStart returns midnight UTC on the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Occurrences counts how many days of the given month fall on the given
// ISO weekday (1=Monday .. 7=Sunday). Every day of the month counts,
// including the 29th-31st, so a weekday can occur four or five times.
func Occurrences(year, month, weekday int) (int, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("month must be 1-12, got %d", month)
	}
	if weekday < 1 || weekday > 7 {
		return 0, fmt.Errorf("weekday must be 1-7, got %d", weekday)
	}

	start, end := Bounds(year, month)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if isoWeekday(d) == weekday {
			count++
		}
	}
	return count, nil
}

// isoWeekday maps time.Weekday (Sunday=0) onto ISO numbering (Monday=1).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
