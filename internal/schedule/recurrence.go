package schedule

import (
	"time"

	"github.com/staffbridge/availability/internal/model"
)

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Covers reports whether slot covers the calendar day containing day.
// Day boundaries are taken in the slot's location so that a calendar
// rendered by the owner and one rendered by the server agree.
//
// A day is covered when it falls inside [startOfDay(start), startOfDay(end)]
// and, for recurring slots, the pattern matches:
//
//	daily   — every day in range
//	weekly  — same weekday as the slot's start
//	monthly — same day-of-month as the slot's start
//
// A monthly slot starting on the 29th-31st has no occurrence in months that
// are too short. That is intended; the occurrence is skipped, not clamped.
//
// Unknown patterns on a recurring slot match every day in range. Validation
// makes that unreachable for new input; resolution reports it as a
// data-integrity warning when it shows up in stored data.
func Covers(slot model.AvailabilitySlot, day time.Time) bool {
	d := StartOfDay(day.In(slot.StartTime.Location()))
	startDay := StartOfDay(slot.StartTime)
	endDay := StartOfDay(slot.EndTime)

	if d.Before(startDay) || d.After(endDay) {
		return false
	}
	if !slot.IsRecurring {
		return true
	}

	switch slot.RecurrencePattern {
	case model.RecurrenceDaily:
		return true
	case model.RecurrenceWeekly:
		return d.Weekday() == startDay.Weekday()
	case model.RecurrenceMonthly:
		return d.Day() == startDay.Day()
	default:
		return true
	}
}

// hasUnknownPattern reports whether a recurring slot carries a pattern the
// engine does not recognize (including "none", which validation forbids on
// recurring slots).
func hasUnknownPattern(slot model.AvailabilitySlot) bool {
	if !slot.IsRecurring {
		return false
	}
	return slot.RecurrencePattern == model.RecurrenceNone || !slot.RecurrencePattern.Valid()
}

// DefaultDaySlot returns the start and end for a slot created from a single
// calendar-day click: 09:00-17:00 in the day's location. Both are editable
// before submission.
func DefaultDaySlot(day time.Time) (start, end time.Time) {
	d := StartOfDay(day)
	return d.Add(9 * time.Hour), d.Add(17 * time.Hour)
}
