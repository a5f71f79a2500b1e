// Package birthday implements the calendar arithmetic behind the bot: ages,
// next occurrences and the number of days until a birthday.
//
// All functions work on calendar dates. Callers obtain "today" through Today,
// which strips the wall-clock time and normalises the date to midnight UTC so
// that subtracting two dates always yields a whole number of days.
//
// People born on February 29 have their birthday observed on March 1 in
// non-leap years.
package birthday

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the user-facing date format (DD.MM.YYYY).
const DateLayout = "02.01.2006"

// StorageLayout is the ISO date format used for persistence.
const StorageLayout = "2006-01-02"

const day = 24 * time.Hour

// Today returns the calendar date of now in now's location, as midnight UTC.
func Today(now time.Time) time.Time {
	return Date(now)
}

// Date drops the time of day from t, keeping the calendar date as seen in t's
// location, and returns it as midnight UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Age returns the number of full years between birth and today.
// The year is counted once (today.Month, today.Day) reaches (birth.Month, birth.Day).
func Age(birth, today time.Time) int {
	years := today.Year() - birth.Year()
	if monthDayBefore(today, birth) {
		years--
	}
	return years
}

// NextOccurrence returns the next date, on or after today, on which the
// birthday falls. A February 29 birthday resolves to March 1 in non-leap years.
func NextOccurrence(birth, today time.Time) time.Time {
	today = Date(today)
	candidate := occurrenceIn(birth, today.Year())
	if candidate.Before(today) {
		candidate = occurrenceIn(birth, today.Year()+1)
	}
	return candidate
}

// DaysUntil returns how many days remain until the next occurrence of the
// birthday. It is 0 on the birthday itself.
func DaysUntil(birth, today time.Time) int {
	today = Date(today)
	next := NextOccurrence(birth, today)
	if next.Equal(today) {
		return 0
	}
	return int(next.Sub(today) / day)
}

// IsLeapYear reports whether year has a February 29.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// ParseDate parses a DD.MM.YYYY string into a calendar date.
func ParseDate(text string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", text, err)
	}
	return t, nil
}

// FormatDate renders a date as DD.MM.YYYY.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// occurrenceIn builds the birthday date in year. time.Date normalises
// February 29 of a non-leap year to March 1, which is the observed day.
func occurrenceIn(birth time.Time, year int) time.Time {
	return time.Date(year, birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
}

func monthDayBefore(a, b time.Time) bool {
	if a.Month() != b.Month() {
		return a.Month() < b.Month()
	}
	return a.Day() < b.Day()
}
