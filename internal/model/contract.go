package model

import "time"

// BookedContract is owned by the external booking system. The engine only
// reads these; it never creates, mutates, or deletes them.
type BookedContract struct {
	ID        string    `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	StartTime time.Time `json:"start_time"` // inclusive
	EndTime   time.Time `json:"end_time"`   // inclusive
}
