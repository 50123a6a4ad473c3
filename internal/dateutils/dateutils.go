// Package dateutils provides the ISO 8601 date and date-time handling used by
// camt.053 documents.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts used by ISO 20022 messages
const (
	DateLayoutISO     = "2006-01-02"
	DateTimeLayoutISO = "2006-01-02T15:04:05"
	// DateTimeLayoutZoned accepts both "Z" and a numeric offset.
	DateTimeLayoutZoned = "2006-01-02T15:04:05Z07:00"
	DateLayoutSwiss     = "02.01.2006"
)

// dateTimeLayouts are tried in order; fractional seconds are accepted by
// time.Parse after the seconds field even though the layouts omit them.
var dateTimeLayouts = []string{
	DateTimeLayoutISO,
	DateTimeLayoutZoned,
}

// ParseISODate parses an ISODate value (YYYY-MM-DD).
func ParseISODate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayoutISO, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("not an ISO date (YYYY-MM-DD): %s", dateStr)
	}
	return t, nil
}

// ParseISODateTime parses an ISODateTime value such as 2024-05-16T16:05:00,
// 2024-05-16T16:05:00.123 or 2024-05-16T16:05:00+02:00.
func ParseISODateTime(dateTimeStr string) (time.Time, error) {
	if !strings.Contains(dateTimeStr, "T") {
		return time.Time{}, fmt.Errorf("not an ISO date-time (missing 'T' separator): %s", dateTimeStr)
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, dateTimeStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO date-time: %s", dateTimeStr)
}

// IsISODate reports whether s is a valid ISODate.
func IsISODate(s string) bool {
	_, err := ParseISODate(s)
	return err == nil
}

// IsISODateTime reports whether s is a valid ISODateTime.
func IsISODateTime(s string) bool {
	_, err := ParseISODateTime(s)
	return err == nil
}

// FormatISODateTime formats t as an ISODateTime without fractional seconds.
// Times in UTC are rendered with a trailing "Z"; others with their offset.
func FormatISODateTime(t time.Time) string {
	return t.Format(DateTimeLayoutZoned)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// ToSwissFormat formats a time.Time as DD.MM.YYYY (Swiss format)
func ToSwissFormat(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutSwiss)
}

// CompareDates compares two dates and returns:
//
//	-1 if date1 is before date2
//	 0 if date1 is equal to date2
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	// Normalize dates to remove time component
	date1 = time.Date(date1.Year(), date1.Month(), date1.Day(), 0, 0, 0, 0, time.UTC)
	date2 = time.Date(date2.Year(), date2.Month(), date2.Day(), 0, 0, 0, 0, time.UTC)

	if date1.Before(date2) {
		return -1
	} else if date1.After(date2) {
		return 1
	}
	return 0
}
