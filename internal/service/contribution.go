package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhartmann/tripledger/internal/domain"
	"github.com/jhartmann/tripledger/internal/repo"
)

// ContributionService implements business logic for advance contributions.
type ContributionService struct {
	trips         repo.TripRepo
	participants  repo.ParticipantRepo
	contributions repo.ContributionRepo
}

// NewContributionService constructs a ContributionService backed by the provided repos.
func NewContributionService(trips repo.TripRepo, participants repo.ParticipantRepo, contributions repo.ContributionRepo) *ContributionService {
	return &ContributionService{trips: trips, participants: participants, contributions: contributions}
}

// Create validates and persists a new contribution.
// Returns domain.ErrNotFound if the trip or the contributing participant does
// not exist, domain.ErrValidation for invalid input.
func (s *ContributionService) Create(ctx context.Context, c domain.Contribution) (domain.Contribution, error) {
	if err := s.validate(ctx, c); err != nil {
		return domain.Contribution{}, err
	}
	result, err := s.contributions.Create(ctx, c)
	if err != nil {
		return domain.Contribution{}, fmt.Errorf("service.ContributionService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single contribution by ID, scoped to the given tripID.
func (s *ContributionService) GetByID(ctx context.Context, tripID, contributionID uuid.UUID) (domain.Contribution, error) {
	result, err := s.contributions.GetByID(ctx, tripID, contributionID)
	if err != nil {
		return domain.Contribution{}, fmt.Errorf("service.ContributionService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns all contributions of a trip ordered by date.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ContributionService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Contribution, error) {
	contributions, err := s.contributions.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ContributionService.ListByTripID: %w", err)
	}
	if contributions == nil {
		return []domain.Contribution{}, nil
	}
	return contributions, nil
}

// Update validates and persists changes to an existing contribution.
func (s *ContributionService) Update(ctx context.Context, c domain.Contribution) (domain.Contribution, error) {
	if err := s.validate(ctx, c); err != nil {
		return domain.Contribution{}, err
	}
	result, err := s.contributions.Update(ctx, c)
	if err != nil {
		return domain.Contribution{}, fmt.Errorf("service.ContributionService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a contribution by ID, scoped to the given tripID.
func (s *ContributionService) Delete(ctx context.Context, tripID, contributionID uuid.UUID) error {
	if err := s.contributions.Delete(ctx, tripID, contributionID); err != nil {
		return fmt.Errorf("service.ContributionService.Delete: %w", err)
	}
	return nil
}

// validate checks the contribution against the trip and its participants.
func (s *ContributionService) validate(ctx context.Context, c domain.Contribution) error {
	if _, err := s.trips.GetByID(ctx, c.TripID); err != nil {
		return fmt.Errorf("service.ContributionService: %w", err)
	}
	if c.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if c.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if _, err := s.participants.GetByID(ctx, c.TripID, c.ParticipantID); err != nil {
		return fmt.Errorf("service.ContributionService: contributor: %w", err)
	}
	return nil
}
