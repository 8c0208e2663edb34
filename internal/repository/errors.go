// Package repository contains data access logic separated from HTTP
// handlers.  These sentinel values allow higher layers to distinguish
// failure scenarios: ErrFacilityNotFound signals a lookup miss, while
// ErrForbidden indicates that the current owner is not authorized to
// modify a facility owned by someone else.
package repository

import "errors"

// ErrFacilityNotFound is returned when a facility cannot be found.
// Handlers translate this into an HTTP 404 response.
var ErrFacilityNotFound = errors.New("facility not found")

// ErrForbidden is returned when an owner attempts an operation on a
// facility they do not own.  Handlers translate this into an HTTP 403
// response.
var ErrForbidden = errors.New("forbidden")
