package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhartmann/tripledger/internal/domain"
	"github.com/jhartmann/tripledger/internal/ledger"
	"github.com/jhartmann/tripledger/internal/repo"
)

// SummaryService assembles a consistent snapshot of one trip and runs the
// ledger engine over it. The engine itself is pure; this service is the
// boundary that loads state before computing, so the core never sees an
// in-flight mutation.
type SummaryService struct {
	trips         repo.TripRepo
	participants  repo.ParticipantRepo
	expenses      repo.ExpenseRepo
	contributions repo.ContributionRepo
}

// NewSummaryService constructs a SummaryService backed by the provided repos.
func NewSummaryService(trips repo.TripRepo, participants repo.ParticipantRepo, expenses repo.ExpenseRepo, contributions repo.ContributionRepo) *SummaryService {
	return &SummaryService{
		trips:         trips,
		participants:  participants,
		expenses:      expenses,
		contributions: contributions,
	}
}

// Snapshot loads the trip and all of its children in one place.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *SummaryService) Snapshot(ctx context.Context, tripID uuid.UUID) (domain.TripSnapshot, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripSnapshot{}, fmt.Errorf("service.SummaryService.Snapshot: %w", err)
	}

	snap := domain.TripSnapshot{Trip: trip}
	if snap.Participants, err = s.participants.ListByTripID(ctx, tripID); err != nil {
		return domain.TripSnapshot{}, fmt.Errorf("service.SummaryService.Snapshot: %w", err)
	}
	if snap.Expenses, err = s.expenses.ListByTripID(ctx, tripID); err != nil {
		return domain.TripSnapshot{}, fmt.Errorf("service.SummaryService.Snapshot: %w", err)
	}
	if snap.Contributions, err = s.contributions.ListByTripID(ctx, tripID); err != nil {
		return domain.TripSnapshot{}, fmt.Errorf("service.SummaryService.Snapshot: %w", err)
	}
	return snap, nil
}

// Summary computes the full derived view of a trip: per-participant
// settlements in insertion order, the minimized transfer list, and the
// trip-level totals. A trip with no participants or expenses yields empty
// lists and zero totals, never an error.
func (s *SummaryService) Summary(ctx context.Context, tripID uuid.UUID) (domain.TripSummary, error) {
	snap, err := s.Snapshot(ctx, tripID)
	if err != nil {
		return domain.TripSummary{}, err
	}
	return deriveSummary(snap), nil
}

// deriveSummary runs the ledger engine over an already-loaded snapshot.
func deriveSummary(snap domain.TripSnapshot) domain.TripSummary {
	settlements := ledger.CalculateSettlements(snap)
	transfers := ledger.MinimizeSettlements(ledger.BalancesFromSettlements(settlements))

	summary := domain.TripSummary{
		TripID:        snap.Trip.ID,
		Settlements:   settlements,
		Transfers:     transfers,
		TotalExpenses: ledger.TotalExpenses(snap),
		FundBalance:   ledger.FundBalance(snap),
	}
	for _, st := range settlements {
		summary.TotalDue += st.DueAmount
		summary.TotalRefund += st.RefundAmount
		if st.Donated {
			summary.TotalDonated += st.RefundAmount
		}
	}
	return summary
}

// Presence reports whether the participant is present on the given date.
// Clients use it to default-include participants on new expenses and to show
// a "(not present)" hint; it never overrides an explicit inclusion choice.
func (s *SummaryService) Presence(ctx context.Context, tripID, participantID uuid.UUID, date time.Time) (bool, error) {
	p, err := s.participants.GetByID(ctx, tripID, participantID)
	if err != nil {
		return false, fmt.Errorf("service.SummaryService.Presence: %w", err)
	}
	return ledger.IsPresent(p, date), nil
}
