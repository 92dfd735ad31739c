package schedule

import (
	"fmt"
	"time"

	"github.com/staffbridge/availability/internal/model"
)

// SlotInput is the raw create/edit payload before validation. Timestamps
// arrive as RFC 3339 strings with explicit offsets so day boundaries stay
// consistent between client and server.
type SlotInput struct {
	Start             string `json:"start"`
	End               string `json:"end"`
	IsRecurring       bool   `json:"is_recurring"`
	RecurrencePattern string `json:"recurrence_pattern,omitempty"`
	Status            string `json:"status,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// ValidateSlot checks and normalizes in. On success the returned slot has
// no id, owner, or audit fields; the lifecycle layer fills those in. No
// storage or network access happens here.
func ValidateSlot(in SlotInput) (model.AvailabilitySlot, error) {
	var slot model.AvailabilitySlot

	if in.Start == "" {
		return slot, missingField("start")
	}
	if in.End == "" {
		return slot, missingField("end")
	}

	// An unparseable timestamp counts as missing: the field carries no
	// usable value.
	start, err := time.Parse(time.RFC3339, in.Start)
	if err != nil {
		return slot, &ValidationError{Field: "start", Code: CodeMissingField, Message: fmt.Sprintf("not a valid RFC 3339 timestamp: %q", in.Start)}
	}
	end, err := time.Parse(time.RFC3339, in.End)
	if err != nil {
		return slot, &ValidationError{Field: "end", Code: CodeMissingField, Message: fmt.Sprintf("not a valid RFC 3339 timestamp: %q", in.End)}
	}

	if !end.After(start) {
		return slot, &ValidationError{Field: "end", Code: CodeInvalidRange, Message: "end must be after start"}
	}

	pattern := model.RecurrenceNone
	if in.IsRecurring {
		if in.RecurrencePattern == "" {
			return slot, &ValidationError{
				Field:   "recurrence_pattern",
				Code:    CodeMissingRecurrencePattern,
				Message: "recurring slots require a recurrence pattern",
			}
		}
		pattern = model.RecurrencePattern(in.RecurrencePattern)
		switch pattern {
		case model.RecurrenceDaily, model.RecurrenceWeekly, model.RecurrenceMonthly:
		default:
			return slot, invalidValue("recurrence_pattern", fmt.Sprintf("unknown pattern %q", in.RecurrencePattern))
		}
	}
	// A pattern on a non-recurring slot is normalized away, not rejected.

	status := model.SlotStatusAvailable
	if in.Status != "" {
		status = model.SlotStatus(in.Status)
		if status != model.SlotStatusAvailable && status != model.SlotStatusBlocked {
			return slot, invalidValue("status", fmt.Sprintf("unknown status %q", in.Status))
		}
	}

	slot = model.AvailabilitySlot{
		StartTime:         start,
		EndTime:           end,
		IsRecurring:       in.IsRecurring,
		RecurrencePattern: pattern,
		Status:            status,
		Notes:             in.Notes,
	}
	return slot, nil
}
