package ledger

import (
	"math"
	"sort"

	"github.com/jhartmann/tripledger/internal/domain"
)

// MinimizeSettlements reduces signed balances to a small list of pairwise
// transfers that zeroes every balance: the classic greedy largest-debtor
// against largest-creditor matching.
//
// Balances are stable-sorted ascending, so the biggest debtor sits at the
// front and the biggest creditor at the back; two cursors walk inward,
// emitting min(owed, receivable) at each step and advancing whichever side
// reached zero. Remainders within Epsilon count as settled, which keeps
// float64 drift from producing phantom fractional-cent transfers or an
// endless loop.
//
// The result has at most n−1 transfers for n non-zero balances. It is a
// deterministic greedy approximation, not a guaranteed minimum-transaction
// solution. The input slice is not modified.
func MinimizeSettlements(balances []domain.ParticipantBalance) []domain.Transfer {
	sorted := make([]domain.ParticipantBalance, len(balances))
	copy(sorted, balances)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Amount < sorted[b].Amount
	})

	transfers := []domain.Transfer{}
	i, j := 0, len(sorted)-1
	for i < j {
		// owed is what the debtor still owes; receivable is what the
		// creditor still expects.
		owed := -sorted[i].Amount
		receivable := sorted[j].Amount
		if owed <= Epsilon {
			i++
			continue
		}
		if receivable <= Epsilon {
			j--
			continue
		}

		amount := math.Min(owed, receivable)
		transfers = append(transfers, domain.Transfer{
			From:   sorted[i].ParticipantID,
			To:     sorted[j].ParticipantID,
			Amount: amount,
		})
		sorted[i].Amount += amount
		sorted[j].Amount -= amount
	}
	return transfers
}
