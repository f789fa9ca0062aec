package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a member of a trip. DonatedRefund records that the
// participant elected to leave their refund in the group rather than receive
// it; it is a presentation/export annotation and never changes any balance
// arithmetic.
type Participant struct {
	ID            uuid.UUID             `json:"id"`
	TripID        uuid.UUID             `json:"trip_id"`
	Name          string                `json:"name"`
	Email         string                `json:"email,omitempty"`
	DonatedRefund bool                  `json:"donated_refund"`
	Periods       []ParticipationPeriod `json:"periods"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// ParticipationPeriod is a sub-range of the trip during which a participant
// is considered present. Both bounds are inclusive, date-only granularity.
// A participant may have zero, one, or many periods; they may overlap.
type ParticipationPeriod struct {
	ID        uuid.UUID `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// WithinTrip reports whether the period lies entirely inside the trip window.
// All four operands are compared at day granularity, so time-of-day and
// timezone components cannot cause off-by-one rejections.
func (p ParticipationPeriod) WithinTrip(trip Trip) bool {
	start, end := DateOnly(p.StartDate), DateOnly(p.EndDate)
	tripStart, tripEnd := DateOnly(trip.StartDate), DateOnly(trip.EndDate)
	if end.Before(start) {
		return false
	}
	return !start.Before(tripStart) && !end.After(tripEnd)
}

// DateOnly truncates t to midnight UTC, discarding time-of-day and timezone.
// All date comparisons in the ledger go through this so that values persisted
// as dates and values parsed from JSON compare equal.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
