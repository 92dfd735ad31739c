package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/staffbridge/availability/internal/model"
	"github.com/staffbridge/availability/internal/schedule"
)

// SlotStore is the persistence collaborator. Implementations must serialize
// concurrent writes to the same slot id (the pgx repository does this with
// a row lock).
type SlotStore interface {
	Create(ctx context.Context, slot *model.AvailabilitySlot) error
	GetByID(ctx context.Context, ownerID int64, id uuid.UUID) (*model.AvailabilitySlot, error)
	GetByOwner(ctx context.Context, ownerID int64, from, to time.Time) ([]model.AvailabilitySlot, error)
	Update(ctx context.Context, slot *model.AvailabilitySlot) (bool, error)
	Delete(ctx context.Context, ownerID int64, id uuid.UUID) (bool, error)
}

// ContractFeed is the read-only booked-contract system of record.
type ContractFeed interface {
	ListForOwner(ctx context.Context, ownerID int64, from, to time.Time) ([]model.BookedContract, error)
}

type AvailabilityService struct {
	slots     SlotStore
	contracts ContractFeed
	logger    *zap.Logger
}

func NewAvailabilityService(slots SlotStore, contracts ContractFeed, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		slots:     slots,
		contracts: contracts,
		logger:    logger,
	}
}

// SlotResult carries a persisted slot together with advisory conflicts.
// Conflicts never block the write; the caller decides how loudly to warn.
type SlotResult struct {
	Slot      model.AvailabilitySlot `json:"slot"`
	Conflicts []model.BookedContract `json:"conflicts,omitempty"`
}

// Calendar is one resolved date range for an owner.
type Calendar struct {
	Days     map[string]model.DayClassification `json:"days"`
	Summary  schedule.CalendarSummary           `json:"summary"`
	Warnings []schedule.DataIntegrityWarning    `json:"warnings,omitempty"`
}

// CreateSlot validates input, applies the recurrence auto-extension,
// gathers advisory conflicts, and persists. Validation failures return
// before any collaborator is touched.
func (s *AvailabilityService) CreateSlot(ctx context.Context, ownerID int64, in schedule.SlotInput) (*SlotResult, error) {
	slot, err := schedule.ValidateSlot(in)
	if err != nil {
		return nil, err
	}

	// Creating a slot that is already recurring sets its pattern for the
	// first time, which triggers the extension default.
	if slot.IsRecurring {
		slot.EndTime = extendedEnd(slot.StartTime, slot.EndTime, slot.RecurrencePattern)
	}
	slot.OwnerID = ownerID

	conflicts := s.advisoryConflicts(ctx, ownerID, slot)

	if err := s.slots.Create(ctx, &slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}

	s.logger.Info("Availability slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.Int64("owner_id", ownerID),
		zap.Bool("recurring", slot.IsRecurring),
		zap.String("pattern", string(slot.RecurrencePattern)),
		zap.Int("conflicts", len(conflicts)),
	)

	return &SlotResult{Slot: slot, Conflicts: conflicts}, nil
}

// UpdateSlot replaces the editable fields of an existing slot. The end date
// is recomputed only on the recurrence transition: turning recurrence on,
// or changing the pattern while already recurring. Any other edit leaves
// the submitted end untouched.
func (s *AvailabilityService) UpdateSlot(ctx context.Context, ownerID int64, id uuid.UUID, in schedule.SlotInput) (*SlotResult, error) {
	slot, err := schedule.ValidateSlot(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.slots.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if existing == nil {
		return nil, schedule.ErrNotFound
	}

	if slot.IsRecurring && (!existing.IsRecurring || existing.RecurrencePattern != slot.RecurrencePattern) {
		slot.EndTime = extendedEnd(slot.StartTime, slot.EndTime, slot.RecurrencePattern)
	}

	slot.ID = existing.ID
	slot.OwnerID = existing.OwnerID
	slot.CreatedAt = existing.CreatedAt

	conflicts := s.advisoryConflicts(ctx, ownerID, slot)

	found, err := s.slots.Update(ctx, &slot)
	if err != nil {
		return nil, fmt.Errorf("update slot: %w", err)
	}
	if !found {
		// Deleted between the read and the locked write.
		return nil, schedule.ErrNotFound
	}

	s.logger.Info("Availability slot updated",
		zap.String("slot_id", id.String()),
		zap.Int64("owner_id", ownerID),
		zap.Bool("recurring", slot.IsRecurring),
		zap.String("pattern", string(slot.RecurrencePattern)),
		zap.Int("conflicts", len(conflicts)),
	)

	return &SlotResult{Slot: slot, Conflicts: conflicts}, nil
}

// DeleteSlot removes a slot by id. Deleting an id that does not exist is a
// success: duplicate client retries must not surface errors.
func (s *AvailabilityService) DeleteSlot(ctx context.Context, ownerID int64, id uuid.UUID) error {
	deleted, err := s.slots.Delete(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	s.logger.Info("Availability slot deleted",
		zap.String("slot_id", id.String()),
		zap.Int64("owner_id", ownerID),
		zap.Bool("existed", deleted),
	)
	return nil
}

// GetCalendar resolves the owner's calendar for [from, to]. Data-quality
// warnings ride along with the result instead of failing it; one corrupt
// row must not blank the whole calendar.
func (s *AvailabilityService) GetCalendar(ctx context.Context, ownerID int64, from, to time.Time) (*Calendar, error) {
	slots, err := s.slots.GetByOwner(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load slots: %w", err)
	}

	contracts, err := s.contracts.ListForOwner(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load booked contracts: %w", err)
	}

	days, warnings := schedule.ResolveCalendar(from, to, slots, contracts)
	for _, w := range warnings {
		s.logger.Warn("Skipping unresolvable record in calendar",
			zap.Int64("owner_id", ownerID),
			zap.String("kind", w.Kind),
			zap.String("record_id", w.ID),
			zap.String("reason", w.Reason),
		)
	}

	return &Calendar{
		Days:     days,
		Summary:  schedule.Summarize(days),
		Warnings: warnings,
	}, nil
}

// CheckConflicts validates a candidate slot and reports overlapping booked
// contracts without persisting anything.
func (s *AvailabilityService) CheckConflicts(ctx context.Context, ownerID int64, in schedule.SlotInput) ([]model.BookedContract, error) {
	slot, err := schedule.ValidateSlot(in)
	if err != nil {
		return nil, err
	}
	if slot.IsRecurring {
		slot.EndTime = extendedEnd(slot.StartTime, slot.EndTime, slot.RecurrencePattern)
	}

	contracts, err := s.contracts.ListForOwner(ctx, ownerID, slot.StartTime, slot.EndTime)
	if err != nil {
		return nil, fmt.Errorf("load booked contracts: %w", err)
	}
	return schedule.FindConflicts(slot, contracts), nil
}

// advisoryConflicts fetches the contract feed and runs conflict detection.
// A feed failure downgrades to a log line: conflicts are advisory, and a
// flaky booking system must not block the owner's own calendar edits.
func (s *AvailabilityService) advisoryConflicts(ctx context.Context, ownerID int64, slot model.AvailabilitySlot) []model.BookedContract {
	contracts, err := s.contracts.ListForOwner(ctx, ownerID, slot.StartTime, slot.EndTime)
	if err != nil {
		s.logger.Warn("Booked-contract feed unavailable, skipping conflict check",
			zap.Int64("owner_id", ownerID),
			zap.Error(err),
		)
		return nil
	}
	return schedule.FindConflicts(slot, contracts)
}

// extendedEnd implements the auto-extension defaults applied when a slot
// becomes recurring or changes pattern: daily extends one month from the
// start, weekly three months, monthly a year. The new end keeps the
// submitted end's time of day; only the date is recomputed. The extension
// overwrites whatever end date the owner had entered — it is a convenience
// default, not a cap, and the owner can edit the end afterwards.
func extendedEnd(start, submitted time.Time, pattern model.RecurrencePattern) time.Time {
	var d time.Time
	switch pattern {
	case model.RecurrenceWeekly:
		d = start.AddDate(0, 3, 0)
	case model.RecurrenceMonthly:
		d = start.AddDate(1, 0, 0)
	default:
		// daily, or a pattern not yet chosen
		d = start.AddDate(0, 1, 0)
	}
	return time.Date(d.Year(), d.Month(), d.Day(),
		submitted.Hour(), submitted.Minute(), submitted.Second(), submitted.Nanosecond(),
		submitted.Location())
}
