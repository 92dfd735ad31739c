package schedule

import (
	"testing"
	"time"

	"github.com/staffbridge/availability/internal/model"
)

func TestValidateSlot_Valid(t *testing.T) {
	slot, err := ValidateSlot(SlotInput{
		Start: "2024-02-05T09:00:00Z",
		End:   "2024-02-05T17:00:00Z",
		Notes: "morning shift",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot.Status != model.SlotStatusAvailable {
		t.Errorf("expected status to default to available, got %q", slot.Status)
	}
	if slot.RecurrencePattern != model.RecurrenceNone {
		t.Errorf("expected pattern none, got %q", slot.RecurrencePattern)
	}
	if slot.Notes != "morning shift" {
		t.Errorf("notes must pass through unmodified, got %q", slot.Notes)
	}
	if !slot.StartTime.Equal(time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start: %s", slot.StartTime)
	}
}

func TestValidateSlot_Errors(t *testing.T) {
	tests := []struct {
		name  string
		in    SlotInput
		field string
		code  ErrorCode
	}{
		{
			name:  "missing start",
			in:    SlotInput{End: "2024-02-05T17:00:00Z"},
			field: "start",
			code:  CodeMissingField,
		},
		{
			name:  "missing end",
			in:    SlotInput{Start: "2024-02-05T09:00:00Z"},
			field: "end",
			code:  CodeMissingField,
		},
		{
			name:  "unparseable start",
			in:    SlotInput{Start: "02/05/2024", End: "2024-02-05T17:00:00Z"},
			field: "start",
			code:  CodeMissingField,
		},
		{
			name:  "unparseable end",
			in:    SlotInput{Start: "2024-02-05T09:00:00Z", End: "five pm"},
			field: "end",
			code:  CodeMissingField,
		},
		{
			name:  "end equals start",
			in:    SlotInput{Start: "2024-02-05T09:00:00Z", End: "2024-02-05T09:00:00Z"},
			field: "end",
			code:  CodeInvalidRange,
		},
		{
			name:  "end before start",
			in:    SlotInput{Start: "2024-02-05T17:00:00Z", End: "2024-02-05T09:00:00Z"},
			field: "end",
			code:  CodeInvalidRange,
		},
		{
			name:  "recurring without pattern",
			in:    SlotInput{Start: "2024-02-05T09:00:00Z", End: "2024-02-06T17:00:00Z", IsRecurring: true},
			field: "recurrence_pattern",
			code:  CodeMissingRecurrencePattern,
		},
		{
			name: "recurring with unknown pattern",
			in: SlotInput{
				Start: "2024-02-05T09:00:00Z", End: "2024-02-06T17:00:00Z",
				IsRecurring: true, RecurrencePattern: "yearly",
			},
			field: "recurrence_pattern",
			code:  CodeInvalidValue,
		},
		{
			name: "unknown status",
			in: SlotInput{
				Start: "2024-02-05T09:00:00Z", End: "2024-02-05T17:00:00Z",
				Status: "busy",
			},
			field: "status",
			code:  CodeInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateSlot(tt.in)
			ve, ok := AsValidationError(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if ve.Field != tt.field || ve.Code != tt.code {
				t.Fatalf("expected %s/%s, got %s/%s", tt.field, tt.code, ve.Field, ve.Code)
			}
		})
	}
}

func TestValidateSlot_NormalizesPatternForNonRecurring(t *testing.T) {
	// A leftover pattern on a non-recurring slot is normalized away, not
	// rejected.
	slot, err := ValidateSlot(SlotInput{
		Start:             "2024-02-05T09:00:00Z",
		End:               "2024-02-05T17:00:00Z",
		IsRecurring:       false,
		RecurrencePattern: "weekly",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot.RecurrencePattern != model.RecurrenceNone {
		t.Fatalf("expected pattern forced to none, got %q", slot.RecurrencePattern)
	}
}

func TestValidateSlot_BlockedStatus(t *testing.T) {
	slot, err := ValidateSlot(SlotInput{
		Start:  "2024-02-05T09:00:00Z",
		End:    "2024-02-05T17:00:00Z",
		Status: "blocked",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot.Status != model.SlotStatusBlocked {
		t.Fatalf("expected blocked, got %q", slot.Status)
	}
}
