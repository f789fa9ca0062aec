package domain

// TripSnapshot is an immutable view of one trip and everything beneath it.
// The ledger functions operate only on snapshots: the caller loads a
// consistent snapshot first, then computes. The ledger never mutates one.
//
// Participants are in insertion order; derived settlement output preserves
// that order.
type TripSnapshot struct {
	Trip          Trip
	Participants  []Participant
	Expenses      []Expense
	Contributions []Contribution
}
