package model

import "time"

// Facility represents a bookable sports space (a "cancha") owned by a
// user.  A facility publishes a fixed catalog of hourly time slots that
// customers reserve per calendar date.  This struct corresponds to a row
// in the `facilities` table.
//
// Fields:
//  ID        – unique identifier (UUID), stable within the catalog.
//  OwnerID   – identifier of the facility owner (auth provider subject).
//  Name      – display name of the facility.
//  Address   – display address of the facility.
//  Rating    – numeric score in the range 0–10.
//  ImageRef  – opaque reference to a display asset.
//  CreatedAt – timestamp when the facility was created.
//  UpdatedAt – timestamp of last update.
type Facility struct {
	ID        string    `json:"id"`         // facilities.id
	OwnerID   string    `json:"-"`          // facilities.owner_id (never exposed publicly)
	Name      string    `json:"name"`       // facilities.name
	Address   string    `json:"address"`    // facilities.address
	Rating    float64   `json:"rating"`     // facilities.rating
	ImageRef  string    `json:"image_ref"`  // facilities.image_ref
	CreatedAt time.Time `json:"created_at"` // facilities.created_at
	UpdatedAt time.Time `json:"updated_at"` // facilities.updated_at
}
