package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExpenseCategory is the enumerated tag for an expense. CategoryCustom
// requires a CustomLabel on the expense.
type ExpenseCategory string

const (
	CategoryMeal   ExpenseCategory = "meal"
	CategoryFuel   ExpenseCategory = "fuel"
	CategoryHotel  ExpenseCategory = "hotel"
	CategoryCustom ExpenseCategory = "custom"
)

// Valid reports whether c is one of the known categories.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryMeal, CategoryFuel, CategoryHotel, CategoryCustom:
		return true
	}
	return false
}

// Expense is a single shared cost on a trip.
//
// PaidBy lists who advanced the money and how much of it; it is meaningful
// only when PaidFromFund is false, in which case the payer amounts must sum
// to Amount within Epsilon. When PaidFromFund is true the amount is drawn
// from the travel fund and PaidBy is empty.
//
// SharedAmong covers every participant of the trip, including excluded ones
// (Included=false), so that toggling inclusion in a client is idempotent.
type Expense struct {
	ID           uuid.UUID       `json:"id"`
	TripID       uuid.UUID       `json:"trip_id"`
	Amount       float64         `json:"amount"`
	Date         time.Time       `json:"date"`
	Category     ExpenseCategory `json:"category"`
	CustomLabel  string          `json:"custom_label,omitempty"`
	Comment      string          `json:"comment,omitempty"`
	PaidFromFund bool            `json:"paid_from_fund"`
	PaidBy       []ExpensePayer  `json:"paid_by"`
	SharedAmong  []ExpenseShare  `json:"shared_among"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ExpensePayer is one (participant, amount) pair of a multi-payer expense.
type ExpensePayer struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	Amount        float64   `json:"amount"`
}

// ExpenseShare records whether a participant shares in an expense and with
// what weight. Weight is a positive real; fractional weights (0.5 for a child
// attending half the meal) are valid.
type ExpenseShare struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	Included      bool      `json:"included"`
	Weight        float64   `json:"weight"`
}
