package ledger

import (
	"github.com/google/uuid"

	"github.com/jhartmann/tripledger/internal/domain"
)

// Epsilon is the tolerance, in currency units, under which two monetary
// values are considered equal. It absorbs float64 drift in share sums and
// stops the minimizer from emitting phantom fractional-cent transfers.
const Epsilon = 0.01

// ComputeShares returns each included participant's monetary share of the
// expense: amount * weight / totalWeight over the included entries.
//
// If no entry is included, or the total included weight is zero, every share
// is zero — a zero-participation expense is valid, not an error, and the
// guard avoids dividing by zero. Participants missing from SharedAmong are
// simply absent from the result, which callers treat as a zero share.
//
// Rounding drift across shares is tolerated up to Epsilon; shares are not
// reconciled to integer cents.
func ComputeShares(e domain.Expense) map[uuid.UUID]float64 {
	var totalWeight float64
	for _, s := range e.SharedAmong {
		if s.Included {
			totalWeight += s.Weight
		}
	}

	shares := make(map[uuid.UUID]float64)
	if totalWeight <= 0 {
		return shares
	}
	for _, s := range e.SharedAmong {
		if s.Included {
			shares[s.ParticipantID] = e.Amount * s.Weight / totalWeight
		}
	}
	return shares
}
