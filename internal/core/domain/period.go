package domain

import (
	"strings"
	"time"
)

// PeriodKind is a budget cadence.
type PeriodKind string

const (
	Monthly PeriodKind = "monthly"
	Weekly  PeriodKind = "weekly"
	Yearly  PeriodKind = "yearly"
)

// ParsePeriodKind maps a raw period string to a PeriodKind.
// Empty or unknown values become Monthly.
func ParsePeriodKind(raw string) PeriodKind {
	switch PeriodKind(strings.ToLower(strings.TrimSpace(raw))) {
	case Weekly:
		return Weekly
	case Yearly:
		return Yearly
	default:
		return Monthly
	}
}

// PeriodBounds returns the inclusive calendar-date window of the given kind
// that contains ref. Both bounds are midnight UTC.
func PeriodBounds(ref time.Time, kind PeriodKind) (time.Time, time.Time) {
	day := DateOnly(ref)
	switch kind {
	case Weekly:
		// Monday is day 0.
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 6)
	case Yearly:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	default:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	}
}

// MonthStart returns the first day of ref's month, shifted by offset months.
func MonthStart(ref time.Time, offset int) time.Time {
	return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
}
