// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios: for
// example, ErrForbidden indicates that the current user is not
// authorized to touch another owner's hotel, while ErrConflict signals
// that a write lost a race on a room assignment and must be reported.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// hotel they do not own. Handlers should translate this into an HTTP
// 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot be performed because of
// conflicting state, such as a compare-and-swap room reassignment
// losing to a concurrent writer. Handlers should translate this into
// an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrNotFound is returned when a reservation, hotel or room type does
// not exist under the given key. Handlers should translate this into
// an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicateKey is returned when inserting a reservation whose key
// already exists for the hotel. OTA ingestion treats this as "already
// imported" and responds idempotently instead of failing.
var ErrDuplicateKey = errors.New("duplicate reservation key")
