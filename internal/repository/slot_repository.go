package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staffbridge/availability/internal/model"
	"github.com/staffbridge/availability/internal/repository/base"
)

const slotColumns = `id, owner_id, start_time, end_time, is_recurring, recurrence_pattern, status, notes, created_at, updated_at`

type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

// Create inserts a new slot and fills in id and audit fields.
func (r *SlotRepository) Create(ctx context.Context, slot *model.AvailabilitySlot) error {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}

	query := `
		INSERT INTO availability_slots (id, owner_id, start_time, end_time, is_recurring, recurrence_pattern, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		slot.ID,
		slot.OwnerID,
		slot.StartTime,
		slot.EndTime,
		slot.IsRecurring,
		slot.RecurrencePattern,
		slot.Status,
		slot.Notes,
	).Scan(&slot.CreatedAt, &slot.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create availability slot: %w", err)
	}
	return nil
}

// GetByID fetches one slot scoped to its owner. Returns (nil, nil) when no
// row matches.
func (r *SlotRepository) GetByID(ctx context.Context, ownerID int64, id uuid.UUID) (*model.AvailabilitySlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM availability_slots
		WHERE id = $1 AND owner_id = $2
	`

	slot, err := scanSlot(r.QueryRow(ctx, query, id, ownerID))
	if base.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get availability slot by id: %w", err)
	}
	return slot, nil
}

// GetByOwner returns the owner's slots whose raw range overlaps [from, to].
// Recurrence is resolved by the engine, not in SQL, so the raw range is the
// right filter here.
func (r *SlotRepository) GetByOwner(ctx context.Context, ownerID int64, from, to time.Time) ([]model.AvailabilitySlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM availability_slots
		WHERE owner_id = $1
		  AND start_time <= $3
		  AND end_time >= $2
		ORDER BY start_time
	`

	rows, err := r.Query(ctx, query, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("get availability slots by owner: %w", err)
	}
	defer rows.Close()

	var slots []model.AvailabilitySlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan availability slot: %w", err)
		}
		slots = append(slots, *slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read availability slots: %w", err)
	}
	return slots, nil
}

// Update replaces the editable fields of a slot. The row is locked first so
// that two concurrent edits to the same slot serialize instead of
// interleaving. Returns false when the slot no longer exists.
func (r *SlotRepository) Update(ctx context.Context, slot *model.AvailabilitySlot) (bool, error) {
	tx, err := r.Pool().Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var locked uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT id FROM availability_slots WHERE id = $1 AND owner_id = $2 FOR UPDATE`,
		slot.ID, slot.OwnerID,
	).Scan(&locked)
	if base.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lock availability slot: %w", err)
	}

	query := `
		UPDATE availability_slots
		SET start_time = $3,
		    end_time = $4,
		    is_recurring = $5,
		    recurrence_pattern = $6,
		    status = $7,
		    notes = $8,
		    updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING updated_at
	`

	err = tx.QueryRow(
		ctx, query,
		slot.ID,
		slot.OwnerID,
		slot.StartTime,
		slot.EndTime,
		slot.IsRecurring,
		slot.RecurrencePattern,
		slot.Status,
		slot.Notes,
	).Scan(&slot.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("update availability slot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}
	return true, nil
}

// Delete removes a slot by id. Reports whether a row was actually deleted;
// deleting a missing id is not an error.
func (r *SlotRepository) Delete(ctx context.Context, ownerID int64, id uuid.UUID) (bool, error) {
	affected, err := r.ExecAffected(ctx,
		`DELETE FROM availability_slots WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("delete availability slot: %w", err)
	}
	return affected > 0, nil
}

func scanSlot(row pgx.Row) (*model.AvailabilitySlot, error) {
	var slot model.AvailabilitySlot
	err := row.Scan(
		&slot.ID,
		&slot.OwnerID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsRecurring,
		&slot.RecurrencePattern,
		&slot.Status,
		&slot.Notes,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}
