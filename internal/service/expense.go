package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/jhartmann/tripledger/internal/domain"
	"github.com/jhartmann/tripledger/internal/ledger"
	"github.com/jhartmann/tripledger/internal/repo"
)

// ExpenseService implements business logic for Expense operations. It holds
// the participants repo because payer and share entries must reference
// participants of the same trip, and share lists are normalized to cover the
// full participant set.
type ExpenseService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	expenses     repo.ExpenseRepo
}

// NewExpenseService constructs an ExpenseService backed by the provided repos.
func NewExpenseService(trips repo.TripRepo, participants repo.ParticipantRepo, expenses repo.ExpenseRepo) *ExpenseService {
	return &ExpenseService{trips: trips, participants: participants, expenses: expenses}
}

// Create normalizes, validates, and persists a new expense.
// Returns domain.ErrNotFound if the parent trip does not exist,
// domain.ErrValidation if input violates business rules.
func (s *ExpenseService) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	normalized, err := s.prepare(ctx, e)
	if err != nil {
		return domain.Expense{}, err
	}
	result, err := s.expenses.Create(ctx, normalized)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single expense by ID, scoped to the given tripID.
func (s *ExpenseService) GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error) {
	result, err := s.expenses.GetByID(ctx, tripID, expenseID)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns one page of a trip's expenses plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExpenseService) ListByTripID(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Expense, int64, error) {
	expenses, total, err := s.expenses.ListByTripIDPaged(ctx, tripID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ExpenseService.ListByTripID: %w", err)
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, total, nil
}

// Update normalizes, validates, and persists changes to an existing expense.
func (s *ExpenseService) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	normalized, err := s.prepare(ctx, e)
	if err != nil {
		return domain.Expense{}, err
	}
	result, err := s.expenses.Update(ctx, normalized)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an expense by ID, scoped to the given tripID.
func (s *ExpenseService) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	if err := s.expenses.Delete(ctx, tripID, expenseID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// prepare resolves the parent trip, normalizes the expense, and validates it.
func (s *ExpenseService) prepare(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	if _, err := s.trips.GetByID(ctx, e.TripID); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService: %w", err)
	}
	participants, err := s.participants.ListByTripID(ctx, e.TripID)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService: %w", err)
	}

	normalized := normalizeExpense(e, participants)
	if err := validateExpense(normalized, participants); err != nil {
		return domain.Expense{}, err
	}
	return normalized, nil
}

// normalizeExpense applies the persistence invariants that are corrections
// rather than rejections:
//   - a fund-paid expense carries no payer entries;
//   - payer entries with zero amount are dropped before persisting;
//   - the share list is extended to cover every trip participant, adding
//     missing ones as included=false with weight 1, so that toggling
//     inclusion in a client is idempotent.
func normalizeExpense(e domain.Expense, participants []domain.Participant) domain.Expense {
	if e.PaidFromFund {
		e.PaidBy = nil
	} else {
		payers := make([]domain.ExpensePayer, 0, len(e.PaidBy))
		for _, p := range e.PaidBy {
			if p.Amount != 0 {
				payers = append(payers, p)
			}
		}
		e.PaidBy = payers
	}

	covered := make(map[uuid.UUID]bool, len(e.SharedAmong))
	for _, share := range e.SharedAmong {
		covered[share.ParticipantID] = true
	}
	shares := append([]domain.ExpenseShare{}, e.SharedAmong...)
	for _, p := range participants {
		if !covered[p.ID] {
			shares = append(shares, domain.ExpenseShare{ParticipantID: p.ID, Included: false, Weight: 1})
		}
	}
	e.SharedAmong = shares
	return e
}

// validateExpense enforces the expense invariants after normalization.
func validateExpense(e domain.Expense, participants []domain.Participant) error {
	if e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, e.Category)
	}
	if e.Category == domain.CategoryCustom && e.CustomLabel == "" {
		return fmt.Errorf("%w: custom category requires a label", domain.ErrValidation)
	}

	known := make(map[uuid.UUID]bool, len(participants))
	for _, p := range participants {
		known[p.ID] = true
	}

	if !e.PaidFromFund {
		var paid float64
		for _, payer := range e.PaidBy {
			if payer.Amount < 0 {
				return fmt.Errorf("%w: payer amounts must not be negative", domain.ErrValidation)
			}
			if !known[payer.ParticipantID] {
				return fmt.Errorf("%w: payer %s is not a participant of the trip",
					domain.ErrValidation, payer.ParticipantID)
			}
			paid += payer.Amount
		}
		if math.Abs(paid-e.Amount) > ledger.Epsilon {
			return fmt.Errorf("%w: payer amounts sum to %.2f, expense amount is %.2f",
				domain.ErrValidation, paid, e.Amount)
		}
	}

	for _, share := range e.SharedAmong {
		if share.Weight <= 0 {
			return fmt.Errorf("%w: share weights must be positive", domain.ErrValidation)
		}
		if !known[share.ParticipantID] {
			return fmt.Errorf("%w: share entry %s is not a participant of the trip",
				domain.ErrValidation, share.ParticipantID)
		}
	}
	return nil
}
