package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhartmann/tripledger/internal/domain"
	"github.com/jhartmann/tripledger/internal/repo"
)

// Test doubles for the repo interfaces. Set only the method fields your test
// needs; unset methods panic, which surfaces unexpected calls fast.

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context) ([]domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockParticipantRepo struct {
	create           func(ctx context.Context, p domain.Participant) (domain.Participant, error)
	getByID          func(ctx context.Context, tripID, id uuid.UUID) (domain.Participant, error)
	listByTripID     func(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	update           func(ctx context.Context, p domain.Participant) (domain.Participant, error)
	delete           func(ctx context.Context, tripID, id uuid.UUID) error
	setDonatedRefund func(ctx context.Context, tripID, id uuid.UUID, donated bool) error
	isReferenced     func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *mockParticipantRepo) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	return m.create(ctx, p)
}
func (m *mockParticipantRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Participant, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockParticipantRepo) Update(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	return m.update(ctx, p)
}
func (m *mockParticipantRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}
func (m *mockParticipantRepo) SetDonatedRefund(ctx context.Context, tripID, id uuid.UUID, donated bool) error {
	return m.setDonatedRefund(ctx, tripID, id, donated)
}
func (m *mockParticipantRepo) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.isReferenced(ctx, id)
}

var _ repo.ParticipantRepo = (*mockParticipantRepo)(nil)

type mockExpenseRepo struct {
	create            func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	getByID           func(ctx context.Context, tripID, id uuid.UUID) (domain.Expense, error)
	listByTripID      func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	listByTripIDPaged func(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Expense, int64, error)
	update            func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	delete            func(ctx context.Context, tripID, id uuid.UUID) error
}

func (m *mockExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.create(ctx, e)
}
func (m *mockExpenseRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockExpenseRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockExpenseRepo) ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Expense, int64, error) {
	return m.listByTripIDPaged(ctx, tripID, params)
}
func (m *mockExpenseRepo) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.update(ctx, e)
}
func (m *mockExpenseRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}

var _ repo.ExpenseRepo = (*mockExpenseRepo)(nil)

type mockContributionRepo struct {
	create       func(ctx context.Context, c domain.Contribution) (domain.Contribution, error)
	getByID      func(ctx context.Context, tripID, id uuid.UUID) (domain.Contribution, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Contribution, error)
	update       func(ctx context.Context, c domain.Contribution) (domain.Contribution, error)
	delete       func(ctx context.Context, tripID, id uuid.UUID) error
}

func (m *mockContributionRepo) Create(ctx context.Context, c domain.Contribution) (domain.Contribution, error) {
	return m.create(ctx, c)
}
func (m *mockContributionRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Contribution, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockContributionRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Contribution, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockContributionRepo) Update(ctx context.Context, c domain.Contribution) (domain.Contribution, error) {
	return m.update(ctx, c)
}
func (m *mockContributionRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}

var _ repo.ContributionRepo = (*mockContributionRepo)(nil)

// ---- shared fixtures ---------------------------------------------------------

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		Name:      "Alps 2026",
		Currency:  "EUR",
		StartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
	}
}

// tripRepoReturning always resolves GetByID with the given trip.
func tripRepoReturning(trip domain.Trip) *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			if id != trip.ID {
				return domain.Trip{}, fmt.Errorf("repo: %w", domain.ErrNotFound)
			}
			return trip, nil
		},
	}
}

func participantFixture(trip domain.Trip, name string) domain.Participant {
	return domain.Participant{
		ID:     uuid.New(),
		TripID: trip.ID,
		Name:   name,
		Periods: []domain.ParticipationPeriod{
			{ID: uuid.New(), StartDate: trip.StartDate, EndDate: trip.EndDate},
		},
	}
}
