package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jhartmann/tripledger/internal/domain"
)

// ContributionRepo defines the persistence operations for advance
// contributions into the travel fund.
type ContributionRepo interface {
	// Create inserts a contribution and returns the persisted record.
	Create(ctx context.Context, c domain.Contribution) (domain.Contribution, error)

	// GetByID retrieves a contribution by ID, scoped to tripID.
	// Returns domain.ErrNotFound if no such contribution exists.
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Contribution, error)

	// ListByTripID returns all contributions of a trip ordered by date ascending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Contribution, error)

	// Update overwrites the contribution's mutable fields.
	// Returns domain.ErrNotFound if it does not exist under the given trip.
	Update(ctx context.Context, c domain.Contribution) (domain.Contribution, error)

	// Delete removes a contribution by ID, scoped to tripID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

// pgContributionRepo is the Postgres implementation of ContributionRepo.
type pgContributionRepo struct {
	db db
}

// NewContributionRepo constructs a ContributionRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewContributionRepo(db db) ContributionRepo {
	return &pgContributionRepo{db: db}
}

// Create inserts a new contribution row.
func (r *pgContributionRepo) Create(ctx context.Context, c domain.Contribution) (domain.Contribution, error) {
	const q = `
		INSERT INTO contributions (trip_id, participant_id, amount, date, comment)
		VALUES (@trip_id, @participant_id, @amount, @date, @comment)
		RETURNING id, trip_id, participant_id, amount, date, comment, created_at`

	args := pgx.NamedArgs{
		"trip_id":        c.TripID,
		"participant_id": c.ParticipantID,
		"amount":         c.Amount,
		"date":           c.Date,
		"comment":        c.Comment,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanContribution(row)
	if err != nil {
		return domain.Contribution{}, fmt.Errorf("repo.ContributionRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a contribution scoped to the trip.
func (r *pgContributionRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Contribution, error) {
	const q = `
		SELECT id, trip_id, participant_id, amount, date, comment, created_at
		FROM contributions
		WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	result, err := scanContribution(row)
	if err != nil {
		return domain.Contribution{}, fmt.Errorf("repo.ContributionRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns all contributions ordered by date, oldest first.
func (r *pgContributionRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Contribution, error) {
	const q = `
		SELECT id, trip_id, participant_id, amount, date, comment, created_at
		FROM contributions
		WHERE trip_id = @trip_id
		ORDER BY date, created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ContributionRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var contributions []domain.Contribution
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ContributionRepo.ListByTripID: scan: %w", err)
		}
		contributions = append(contributions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ContributionRepo.ListByTripID: rows: %w", err)
	}

	return contributions, nil
}

// Update overwrites the mutable fields of a contribution.
func (r *pgContributionRepo) Update(ctx context.Context, c domain.Contribution) (domain.Contribution, error) {
	const q = `
		UPDATE contributions
		SET participant_id = @participant_id,
		    amount         = @amount,
		    date           = @date,
		    comment        = @comment
		WHERE id = @id AND trip_id = @trip_id
		RETURNING id, trip_id, participant_id, amount, date, comment, created_at`

	args := pgx.NamedArgs{
		"id":             c.ID,
		"trip_id":        c.TripID,
		"participant_id": c.ParticipantID,
		"amount":         c.Amount,
		"date":           c.Date,
		"comment":        c.Comment,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanContribution(row)
	if err != nil {
		return domain.Contribution{}, fmt.Errorf("repo.ContributionRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a contribution by primary key.
func (r *pgContributionRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM contributions WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ContributionRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ContributionRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanContribution maps a contribution row into a domain.Contribution.
func scanContribution(s scanner) (domain.Contribution, error) {
	var (
		c             domain.Contribution
		id            pgtype.UUID
		tripID        pgtype.UUID
		participantID pgtype.UUID
		date          pgtype.Date
	)

	err := s.Scan(&id, &tripID, &participantID, &c.Amount, &date, &c.Comment, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Contribution{}, domain.ErrNotFound
		}
		return domain.Contribution{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	c.TripID = uuid.UUID(tripID.Bytes)
	c.ParticipantID = uuid.UUID(participantID.Bytes)
	c.Date = date.Time
	return c, nil
}
