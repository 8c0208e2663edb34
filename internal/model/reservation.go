package model

import "time"

// Reservation status values.  A reservation is created as confirmed and
// the only further transition is to cancelled, which is terminal.  The
// pending value exists for forward compatibility with an approval step.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// DateLayout is the canonical calendar-date form used everywhere a
// reservation date crosses a boundary (JSON, persistence, query params).
// Dates in this form compare correctly as plain strings.
const DateLayout = "2006-01-02"

// Reservation is a user's claim on one or more time slots at a facility
// on a specific date.  Reservations are never physically deleted; a
// cancellation only flips the status so history remains queryable.
//
// Fields:
//  ID         – unique identifier (UUID), assigned at creation time.
//  FacilityID – reference to a Facility known to the catalog at creation.
//  Date       – calendar date of the booking in DateLayout form.
//  TimeSlots  – non-empty set of distinct slot labels (e.g. "18:00"),
//               each drawn from the facility's published slot catalog.
//  Status     – one of the status constants above.
//  CreatedAt  – creation timestamp (UTC).
type Reservation struct {
	ID         string    `json:"id"`
	FacilityID string    `json:"facility_id"`
	Date       string    `json:"date"`
	TimeSlots  []string  `json:"time_slots"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Cancelled reports whether the reservation is in the terminal state.
func (r *Reservation) Cancelled() bool { return r.Status == StatusCancelled }
