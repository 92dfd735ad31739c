package schedule

import (
	"testing"
	"time"

	"github.com/staffbridge/availability/internal/model"
)

func TestFindConflicts_NonRecurringOverlap(t *testing.T) {
	slot := model.AvailabilitySlot{
		StartTime: time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 2, 9, 17, 0, 0, 0, time.UTC),
	}
	contracts := []model.BookedContract{
		{ID: "inside", StartTime: time.Date(2024, 2, 6, 10, 0, 0, 0, time.UTC), EndTime: time.Date(2024, 2, 6, 12, 0, 0, 0, time.UTC)},
		{ID: "before", StartTime: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), EndTime: time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC)},
		{ID: "straddles-end", StartTime: time.Date(2024, 2, 9, 10, 0, 0, 0, time.UTC), EndTime: time.Date(2024, 2, 11, 12, 0, 0, 0, time.UTC)},
	}

	got := FindConflicts(slot, contracts)
	if len(got) != 2 {
		t.Fatalf("expected 2 conflicts, got %d", len(got))
	}
	if got[0].ID != "inside" || got[1].ID != "straddles-end" {
		t.Fatalf("unexpected conflicts: %+v", got)
	}
}

func TestFindConflicts_WeeklyPatternChecksExpandedDays(t *testing.T) {
	// Weekly Monday slot spanning three months. A short contract on any
	// Monday inside the span conflicts; one on a Tuesday does not, even
	// though both sit inside the raw [start, end] range.
	slot := model.AvailabilitySlot{
		StartTime:         time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), // Monday
		EndTime:           time.Date(2024, 4, 1, 17, 0, 0, 0, time.UTC),
		IsRecurring:       true,
		RecurrencePattern: model.RecurrenceWeekly,
	}

	monday := model.BookedContract{
		ID:        "on-monday",
		StartTime: time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC),
	}
	tuesday := model.BookedContract{
		ID:        "on-tuesday",
		StartTime: time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 3, 12, 12, 0, 0, 0, time.UTC),
	}

	got := FindConflicts(slot, []model.BookedContract{monday, tuesday})
	if len(got) != 1 || got[0].ID != "on-monday" {
		t.Fatalf("expected only the Monday contract to conflict, got %+v", got)
	}
}

func TestFindConflicts_MultiDayContractHitsPattern(t *testing.T) {
	slot := model.AvailabilitySlot{
		StartTime:         time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), // Monday
		EndTime:           time.Date(2024, 3, 31, 17, 0, 0, 0, time.UTC),
		IsRecurring:       true,
		RecurrencePattern: model.RecurrenceWeekly,
	}
	// Tuesday through Thursday: no Monday touched.
	miss := model.BookedContract{
		ID:        "tue-thu",
		StartTime: time.Date(2024, 2, 6, 0, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 2, 8, 23, 0, 0, 0, time.UTC),
	}
	// Saturday through Tuesday: crosses a Monday.
	hit := model.BookedContract{
		ID:        "sat-tue",
		StartTime: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 2, 13, 23, 0, 0, 0, time.UTC),
	}

	got := FindConflicts(slot, []model.BookedContract{miss, hit})
	if len(got) != 1 || got[0].ID != "sat-tue" {
		t.Fatalf("expected only the Monday-crossing contract, got %+v", got)
	}
}

func TestFindConflicts_NoContracts(t *testing.T) {
	slot := model.AvailabilitySlot{
		StartTime: time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 2, 5, 17, 0, 0, 0, time.UTC),
	}
	if got := FindConflicts(slot, nil); len(got) != 0 {
		t.Fatalf("expected no conflicts, got %+v", got)
	}
}
