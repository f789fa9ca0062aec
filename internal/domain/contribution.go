package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contribution is money a participant puts into the shared travel fund ahead
// of time. Fund-paid expenses draw the fund down; the difference is the fund
// balance.
type Contribution struct {
	ID            uuid.UUID `json:"id"`
	TripID        uuid.UUID `json:"trip_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
