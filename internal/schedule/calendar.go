package schedule

import (
	"time"

	"github.com/staffbridge/availability/internal/model"
)

// DayKey is the map key format for resolved calendars.
const DayKey = "2006-01-02"

// ResolveCalendar classifies every day in [rangeStart, rangeEnd]. Days with
// no matching slots or contracts still appear with empty lists; callers may
// not assume sparse output.
//
// Corrupt stored records (zero timestamps, inverted ranges, unknown
// recurrence patterns) never abort resolution: the record is skipped — or,
// for an unknown pattern, included permissively — and reported in the
// returned warnings.
func ResolveCalendar(
	rangeStart, rangeEnd time.Time,
	slots []model.AvailabilitySlot,
	contracts []model.BookedContract,
) (map[string]model.DayClassification, []DataIntegrityWarning) {
	var warnings []DataIntegrityWarning

	usable := slots[:0:0]
	for _, s := range slots {
		if s.StartTime.IsZero() || s.EndTime.IsZero() {
			warnings = append(warnings, DataIntegrityWarning{Kind: "slot", ID: s.ID.String(), Reason: "missing start or end timestamp"})
			continue
		}
		if s.EndTime.Before(s.StartTime) {
			warnings = append(warnings, DataIntegrityWarning{Kind: "slot", ID: s.ID.String(), Reason: "end before start"})
			continue
		}
		if hasUnknownPattern(s) {
			// Still resolvable (Covers is permissive), but the stored
			// pattern should have been impossible to write.
			warnings = append(warnings, DataIntegrityWarning{Kind: "slot", ID: s.ID.String(), Reason: "unrecognized recurrence pattern " + string(s.RecurrencePattern)})
		}
		usable = append(usable, s)
	}

	usableContracts := contracts[:0:0]
	for _, c := range contracts {
		if c.StartTime.IsZero() || c.EndTime.IsZero() {
			warnings = append(warnings, DataIntegrityWarning{Kind: "contract", ID: c.ID, Reason: "missing start or end timestamp"})
			continue
		}
		if c.EndTime.Before(c.StartTime) {
			warnings = append(warnings, DataIntegrityWarning{Kind: "contract", ID: c.ID, Reason: "end before start"})
			continue
		}
		usableContracts = append(usableContracts, c)
	}

	days := make(map[string]model.DayClassification)
	endDay := StartOfDay(rangeEnd)
	for d := StartOfDay(rangeStart); !d.After(endDay); d = d.AddDate(0, 0, 1) {
		var cls model.DayClassification
		for _, s := range usable {
			if Covers(s, d) {
				cls.AvailabilitySlots = append(cls.AvailabilitySlots, s)
			}
		}
		for _, c := range usableContracts {
			cStart := StartOfDay(c.StartTime.In(d.Location()))
			cEnd := StartOfDay(c.EndTime.In(d.Location()))
			if !d.Before(cStart) && !d.After(cEnd) {
				cls.BookedContracts = append(cls.BookedContracts, c)
			}
		}
		days[d.Format(DayKey)] = cls
	}
	return days, warnings
}

// CalendarSummary counts days per display status over a resolved range.
type CalendarSummary struct {
	Available int `json:"available"`
	Blocked   int `json:"blocked"`
	Booked    int `json:"booked"`
	Empty     int `json:"empty"`
}

func Summarize(days map[string]model.DayClassification) CalendarSummary {
	var sum CalendarSummary
	for _, cls := range days {
		switch cls.Status() {
		case model.DayStatusBooked:
			sum.Booked++
		case model.DayStatusBlocked:
			sum.Blocked++
		case model.DayStatusAvailable:
			sum.Available++
		default:
			sum.Empty++
		}
	}
	return sum
}
