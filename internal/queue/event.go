// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types published on the reservation.events queue.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published when a reservation is created or
// cancelled.  It contains enough information for downstream consumers
// to log, notify, or feed analytics without querying the store.
type ReservationEvent struct {
	Type          string   `json:"type"`
	ReservationID string   `json:"reservation_id"`
	FacilityID    string   `json:"facility_id"`
	FacilityName  string   `json:"facility_name"`
	Date          string   `json:"date"`
	TimeSlots     []string `json:"time_slots"`
	Status        string   `json:"status"`
	OccurredAt    string   `json:"occurred_at"`
}
