package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staffbridge/availability/internal/model"
	"github.com/staffbridge/availability/internal/repository/base"
)

// ContractRepository reads the booked-contract feed. The rows are owned by
// the external booking system; this repository never writes them.
type ContractRepository struct {
	*base.Repository
}

func NewContractRepository(pool *pgxpool.Pool) *ContractRepository {
	return &ContractRepository{Repository: base.NewRepository(pool)}
}

// ListForOwner returns the owner's booked contracts overlapping [from, to].
// Contract intervals are inclusive on both ends.
func (r *ContractRepository) ListForOwner(ctx context.Context, ownerID int64, from, to time.Time) ([]model.BookedContract, error) {
	query := `
		SELECT id, owner_id, start_time, end_time
		FROM booked_contracts
		WHERE owner_id = $1
		  AND start_time <= $3
		  AND end_time >= $2
		ORDER BY start_time
	`

	rows, err := r.Query(ctx, query, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list booked contracts: %w", err)
	}
	defer rows.Close()

	var contracts []model.BookedContract
	for rows.Next() {
		var c model.BookedContract
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.StartTime, &c.EndTime); err != nil {
			return nil, fmt.Errorf("scan booked contract: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read booked contracts: %w", err)
	}
	return contracts, nil
}
