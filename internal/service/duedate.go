package service

import (
	"strconv"
	"time"
)

const dateLayoutLen = len("2006-01-02")

// NormalizeDueDate parses a due-date value into a UTC midnight instant for
// its calendar day. Only the first ten characters are considered, so both
// plain dates ("2026-03-15") and full timestamps in RFC 3339 form are
// accepted. Impossible calendar dates (2025-02-30) are rejected rather than
// rolled over, and unless allowPast is set, days strictly before now's
// calendar day fail with a PAST_DUE_DATE error.
func NormalizeDueDate(value string, allowPast bool, now time.Time) (time.Time, error) {
	if len(value) < dateLayoutLen {
		return time.Time{}, NewInvalidDate("expected YYYY-MM-DD")
	}

	datePart := value[:dateLayoutLen]
	for i, c := range datePart {
		if i == 4 || i == 7 {
			if c != '-' {
				return time.Time{}, NewInvalidDate("expected YYYY-MM-DD")
			}
			continue
		}
		if c < '0' || c > '9' {
			return time.Time{}, NewInvalidDate("expected YYYY-MM-DD")
		}
	}

	year, _ := strconv.Atoi(datePart[0:4])
	month, _ := strconv.Atoi(datePart[5:7])
	day, _ := strconv.Atoi(datePart[8:10])

	if month < 1 || month > 12 {
		return time.Time{}, NewInvalidDate("month out of range")
	}
	if day < 1 || day > 31 {
		return time.Time{}, NewInvalidDate("day out of range")
	}

	candidate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// time.Date normalizes overflow (Feb 30 becomes Mar 1/2); reading the
	// components back catches that.
	if candidate.Year() != year || candidate.Month() != time.Month(month) || candidate.Day() != day {
		return time.Time{}, NewInvalidDate("no such calendar day")
	}

	if !allowPast {
		today := StartOfDayUTC(now)
		if candidate.Before(today) {
			return time.Time{}, NewPastDueDate()
		}
	}

	return candidate, nil
}

// StartOfDayUTC truncates an instant to UTC midnight of its calendar day.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
