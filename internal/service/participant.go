package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhartmann/tripledger/internal/domain"
	"github.com/jhartmann/tripledger/internal/repo"
)

// ParticipantService implements business logic for Participant operations.
// It holds the trips repo because every participant mutation requires the
// parent trip: periods must lie within the trip's date window.
type ParticipantService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
}

// NewParticipantService constructs a ParticipantService backed by the provided repos.
func NewParticipantService(trips repo.TripRepo, participants repo.ParticipantRepo) *ParticipantService {
	return &ParticipantService{trips: trips, participants: participants}
}

// Create validates the participant against the parent trip, then persists.
// Returns domain.ErrNotFound if the parent trip does not exist,
// domain.ErrValidation if input violates business rules.
func (s *ParticipantService) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	trip, err := s.trips.GetByID(ctx, p.TripID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Create: %w", err)
	}
	if err := validateParticipant(trip, p); err != nil {
		return domain.Participant{}, err
	}
	result, err := s.participants.Create(ctx, p)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single participant by ID, scoped to the given tripID.
func (s *ParticipantService) GetByID(ctx context.Context, tripID, participantID uuid.UUID) (domain.Participant, error) {
	result, err := s.participants.GetByID(ctx, tripID, participantID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns all participants of a trip in insertion order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ParticipantService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	participants, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ParticipantService.ListByTripID: %w", err)
	}
	if participants == nil {
		return []domain.Participant{}, nil
	}
	return participants, nil
}

// Update validates and persists changes to an existing participant,
// replacing their participation periods with the supplied set.
func (s *ParticipantService) Update(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	trip, err := s.trips.GetByID(ctx, p.TripID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Update: %w", err)
	}
	if err := validateParticipant(trip, p); err != nil {
		return domain.Participant{}, err
	}
	result, err := s.participants.Update(ctx, p)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a participant unless they are still referenced by an expense
// payer entry, an included expense share, or an advance contribution.
// Returns domain.ErrConflict while referenced — no partial mutation occurs.
func (s *ParticipantService) Delete(ctx context.Context, tripID, participantID uuid.UUID) error {
	// Resolve not-found before the reference check so a missing participant
	// yields 404, not 409.
	if _, err := s.participants.GetByID(ctx, tripID, participantID); err != nil {
		return fmt.Errorf("service.ParticipantService.Delete: %w", err)
	}

	referenced, err := s.participants.IsReferenced(ctx, participantID)
	if err != nil {
		return fmt.Errorf("service.ParticipantService.Delete: %w", err)
	}
	if referenced {
		return fmt.Errorf("%w: participant is referenced by expenses or contributions", domain.ErrConflict)
	}

	if err := s.participants.Delete(ctx, tripID, participantID); err != nil {
		return fmt.Errorf("service.ParticipantService.Delete: %w", err)
	}
	return nil
}

// SetDonatedRefund flips the participant's donated flag. The flag is a pure
// annotation: settlement arithmetic never changes, only the reported Donated
// field on settlements and exports.
func (s *ParticipantService) SetDonatedRefund(ctx context.Context, tripID, participantID uuid.UUID, donated bool) error {
	if err := s.participants.SetDonatedRefund(ctx, tripID, participantID, donated); err != nil {
		return fmt.Errorf("service.ParticipantService.SetDonatedRefund: %w", err)
	}
	return nil
}

// validateParticipant enforces business rules common to Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Every participation period must lie within the trip's date window.
func validateParticipant(trip domain.Trip, p domain.Participant) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	for _, period := range p.Periods {
		if !period.WithinTrip(trip) {
			return fmt.Errorf("%w: participation period %s..%s is outside trip bounds",
				domain.ErrValidation,
				period.StartDate.Format("2006-01-02"),
				period.EndDate.Format("2006-01-02"))
		}
	}
	return nil
}
