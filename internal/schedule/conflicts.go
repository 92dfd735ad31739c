package schedule

import (
	"github.com/staffbridge/availability/internal/model"
)

// FindConflicts returns the booked contracts whose day span intersects the
// candidate slot's effective coverage.
//
// Conflicts are advisory: a booked contract legitimately coexists with a
// wider availability declaration, so the write path warns and proceeds.
// Only calendar display resolves the precedence (booked wins).
//
// The check walks the contract's days against Covers rather than comparing
// raw intervals: a weekly Monday slot spanning three months conflicts with
// a one-day contract on any Monday inside that span, even though the raw
// ranges barely relate.
func FindConflicts(candidate model.AvailabilitySlot, contracts []model.BookedContract) []model.BookedContract {
	var conflicts []model.BookedContract
	loc := candidate.StartTime.Location()
	for _, c := range contracts {
		if c.EndTime.Before(c.StartTime) {
			continue
		}
		cEnd := StartOfDay(c.EndTime.In(loc))
		for d := StartOfDay(c.StartTime.In(loc)); !d.After(cEnd); d = d.AddDate(0, 0, 1) {
			if Covers(candidate, d) {
				conflicts = append(conflicts, c)
				break
			}
		}
	}
	return conflicts
}
