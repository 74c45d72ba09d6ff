package model

import "time"

// ComputeDueDate returns the calendar date an installment falls due.
//
// The first installment is due in the month after the start month; each
// following installment one month later. When payDay exceeds the length of
// the target month the day is clamped to the month's last day. The result is
// midnight in the start date's location.
func ComputeDueDate(start time.Time, payDay, installmentNumber int) time.Time {
	// Normalising to day 1 first keeps AddDate from overflowing into the
	// following month (Jan 31 + 1 month would otherwise land on Mar 2/3).
	anchor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	target := anchor.AddDate(0, installmentNumber, 0)

	day := payDay
	if last := daysIn(target.Year(), target.Month()); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, start.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateOnly truncates t to midnight in loc.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// CalendarDate keeps t's year, month and day and places them at midnight in
// loc, without converting the instant.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
