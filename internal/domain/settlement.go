package domain

import "github.com/google/uuid"

// Settlement is the derived per-participant view of a trip's ledger. It is
// never persisted — it is recomputed on demand from the current snapshot.
//
// DueAmount and RefundAmount are both non-negative and at most one of them is
// non-zero: due means the participant still owes the group, refund means the
// group owes them.
type Settlement struct {
	ParticipantID  uuid.UUID `json:"participant_id"`
	Name           string    `json:"name"`
	AdvancePaid    float64   `json:"advance_paid"`
	PersonallyPaid float64   `json:"personally_paid"`
	ExpenseShare   float64   `json:"expense_share"`
	DueAmount      float64   `json:"due_amount"`
	RefundAmount   float64   `json:"refund_amount"`
	Donated        bool      `json:"donated"`
}

// ParticipantBalance is a signed net balance: positive means the group owes
// the participant, negative means the participant owes the group. Balances
// are carried as an ordered slice (participant insertion order) so that the
// settlement minimizer is deterministic.
type ParticipantBalance struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	Amount        float64   `json:"amount"`
}

// Transfer is one minimized pairwise payment: From pays To the given amount.
type Transfer struct {
	From   uuid.UUID `json:"from"`
	To     uuid.UUID `json:"to"`
	Amount float64   `json:"amount"`
}

// TripSummary bundles everything the summary view and exports need: the
// per-participant settlements (the primary settlement view), the minimized
// transfer list, and the trip-level totals.
type TripSummary struct {
	TripID        uuid.UUID    `json:"trip_id"`
	Settlements   []Settlement `json:"settlements"`
	Transfers     []Transfer   `json:"transfers"`
	TotalExpenses float64      `json:"total_expenses"`
	FundBalance   float64      `json:"fund_balance"`
	TotalDue      float64      `json:"total_due"`
	TotalRefund   float64      `json:"total_refund"`
	TotalDonated  float64      `json:"total_donated"`
}
