package model

type DayStatus string

const (
	DayStatusEmpty     DayStatus = "empty"
	DayStatusAvailable DayStatus = "available"
	DayStatusBlocked   DayStatus = "blocked"
	DayStatusBooked    DayStatus = "booked"
)

// DayClassification is the derived view of one calendar day. It is never
// persisted. Both lists are kept even when a booked contract wins the
// display: classification is a display convention, not data loss.
type DayClassification struct {
	AvailabilitySlots []AvailabilitySlot `json:"availability_slots"`
	BookedContracts   []BookedContract   `json:"booked_contracts"`
}

// Status resolves the display status for the day. Booked wins over any
// availability declaration; a blocked slot wins over an available one.
func (d DayClassification) Status() DayStatus {
	if len(d.BookedContracts) > 0 {
		return DayStatusBooked
	}
	if len(d.AvailabilitySlots) == 0 {
		return DayStatusEmpty
	}
	for _, s := range d.AvailabilitySlots {
		if s.Status == SlotStatusBlocked {
			return DayStatusBlocked
		}
	}
	return DayStatusAvailable
}
