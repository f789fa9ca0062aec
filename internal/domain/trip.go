// Package domain contains the core data types for the TripLedger application.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (ledger, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the root aggregate: a date-bounded group expense-sharing exercise.
// It exclusively owns its participants, expenses, and advance contributions;
// deleting a trip destroys everything beneath it.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Currency    string    `json:"currency"` // display tag only — no conversion arithmetic
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
