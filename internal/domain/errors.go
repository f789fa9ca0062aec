package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. a participation period outside trip bounds, or payer
// amounts that do not sum to the expense amount).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a participant cannot be deleted because they
// are still referenced by an expense payer entry, an included expense share,
// or an advance contribution. No partial mutation takes place.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")
