// ABOUTME: Calendar-date helpers for archive partitions and the recency window
// ABOUTME: Dates travel as YYYY-MM-DD strings; these helpers convert and compare them

package timeutil

import (
	"fmt"
	"time"
)

// DateLayout is the partition key format.
const DateLayout = "2006-01-02"

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current local date as YYYY-MM-DD.
func Today() string {
	return FormatDate(time.Now())
}

// ParseDate parses a YYYY-MM-DD string in local time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// IsDate reports whether s is a valid YYYY-MM-DD date.
func IsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// Year returns the four-digit year prefix of a YYYY-MM-DD date.
func Year(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// Cutoff returns the first calendar date inside a window of the last days days
// ending at today (inclusive of both ends), as YYYY-MM-DD in today's location.
func Cutoff(today time.Time, days int) string {
	return FormatDate(StartOfDay(today).AddDate(0, 0, -days))
}

// OnOrAfter reports whether date is a valid date not before the cutoff date.
// YYYY-MM-DD strings order lexically, so no time zone is involved.
func OnOrAfter(date, cutoff string) bool {
	return IsDate(date) && date >= cutoff
}
