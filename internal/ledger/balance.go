package ledger

import (
	"math"

	"github.com/jhartmann/tripledger/internal/domain"
)

// CalculateSettlements folds every expense and advance contribution of the
// snapshot into one settlement per participant, in participant insertion
// order. For each participant:
//
//	advancePaid    = Σ their contributions
//	personallyPaid = Σ their payer entries over non-fund expenses
//	expenseShare   = Σ their weighted share over all expenses (fund-paid too)
//	net            = advancePaid + personallyPaid − expenseShare
//	dueAmount      = max(0, −net)   refundAmount = max(0, net)
//
// A participant with no expenses, contributions, or shares yields all-zero
// fields. An empty snapshot yields an empty slice — callers treat that as
// "nothing to show", never as an error.
func CalculateSettlements(snap domain.TripSnapshot) []domain.Settlement {
	settlements := make([]domain.Settlement, 0, len(snap.Participants))

	for _, p := range snap.Participants {
		var advancePaid float64
		for _, c := range snap.Contributions {
			if c.ParticipantID == p.ID {
				advancePaid += c.Amount
			}
		}

		var personallyPaid float64
		for _, e := range snap.Expenses {
			if e.PaidFromFund {
				continue
			}
			for _, payer := range e.PaidBy {
				if payer.ParticipantID == p.ID {
					personallyPaid += payer.Amount
				}
			}
		}

		var expenseShare float64
		for _, e := range snap.Expenses {
			expenseShare += ComputeShares(e)[p.ID]
		}

		net := advancePaid + personallyPaid - expenseShare
		settlements = append(settlements, domain.Settlement{
			ParticipantID:  p.ID,
			Name:           p.Name,
			AdvancePaid:    advancePaid,
			PersonallyPaid: personallyPaid,
			ExpenseShare:   expenseShare,
			DueAmount:      math.Max(0, -net),
			RefundAmount:   math.Max(0, net),
			Donated:        p.DonatedRefund,
		})
	}

	return settlements
}

// BalancesFromSettlements converts settlements into the ordered signed
// balances the minimizer consumes: refund − due, positive when the group owes
// the participant.
func BalancesFromSettlements(settlements []domain.Settlement) []domain.ParticipantBalance {
	balances := make([]domain.ParticipantBalance, 0, len(settlements))
	for _, s := range settlements {
		balances = append(balances, domain.ParticipantBalance{
			ParticipantID: s.ParticipantID,
			Amount:        s.RefundAmount - s.DueAmount,
		})
	}
	return balances
}

// FundBalance returns what remains in the shared travel fund: total advance
// contributions minus the total of fund-paid expenses. Negative means the
// fund was overdrawn.
func FundBalance(snap domain.TripSnapshot) float64 {
	var balance float64
	for _, c := range snap.Contributions {
		balance += c.Amount
	}
	for _, e := range snap.Expenses {
		if e.PaidFromFund {
			balance -= e.Amount
		}
	}
	return balance
}

// TotalExpenses returns the sum of all expense amounts on the trip,
// fund-paid or not.
func TotalExpenses(snap domain.TripSnapshot) float64 {
	var total float64
	for _, e := range snap.Expenses {
		total += e.Amount
	}
	return total
}
