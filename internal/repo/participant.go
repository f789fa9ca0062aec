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

// ParticipantRepo defines the persistence operations for Participants and
// their participation periods. Periods are owned rows: Create and Update
// replace the full period set supplied on the domain struct.
type ParticipantRepo interface {
	// Create inserts a participant and their periods, returning the persisted
	// record with DB-generated ids and timestamps.
	Create(ctx context.Context, p domain.Participant) (domain.Participant, error)

	// GetByID retrieves a participant (with periods) by ID, scoped to tripID.
	// Returns domain.ErrNotFound if no such participant exists under that trip.
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Participant, error)

	// ListByTripID returns all participants of a trip (with periods) in
	// insertion order. Settlement output follows this order.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)

	// Update overwrites the participant's mutable fields and replaces their
	// periods. Returns domain.ErrNotFound if the participant does not exist
	// under the given trip.
	Update(ctx context.Context, p domain.Participant) (domain.Participant, error)

	// Delete removes a participant by ID, scoped to tripID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, tripID, id uuid.UUID) error

	// SetDonatedRefund flips the donated flag without touching anything else.
	// Returns domain.ErrNotFound if the participant does not exist.
	SetDonatedRefund(ctx context.Context, tripID, id uuid.UUID, donated bool) error

	// IsReferenced reports whether the participant appears in any expense
	// payer entry, any expense share saved with included=true, or any advance
	// contribution. Deletion is blocked while this is true.
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}

// pgParticipantRepo is the Postgres implementation of ParticipantRepo.
type pgParticipantRepo struct {
	db db
}

// NewParticipantRepo constructs a ParticipantRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewParticipantRepo(db db) ParticipantRepo {
	return &pgParticipantRepo{db: db}
}

// Create inserts the participant row, then their period rows.
func (r *pgParticipantRepo) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	const q = `
		INSERT INTO participants (trip_id, name, email, donated_refund)
		VALUES (@trip_id, @name, @email, @donated_refund)
		RETURNING id, trip_id, name, email, donated_refund, created_at, updated_at`

	args := pgx.NamedArgs{
		"trip_id":        p.TripID,
		"name":           p.Name,
		"email":          p.Email,
		"donated_refund": p.DonatedRefund,
	}

	row := r.db.QueryRow(ctx, q, args)
	created, err := scanParticipant(row)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Create: %w", err)
	}

	created.Periods, err = r.replacePeriods(ctx, created.ID, p.Periods)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Create: %w", err)
	}
	return created, nil
}

// GetByID retrieves a participant and their periods, scoped to the trip.
func (r *pgParticipantRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Participant, error) {
	const q = `
		SELECT id, trip_id, name, email, donated_refund, created_at, updated_at
		FROM participants
		WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	p, err := scanParticipant(row)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.GetByID: %w", err)
	}

	p.Periods, err = r.loadPeriods(ctx, p.ID)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.GetByID: %w", err)
	}
	return p, nil
}

// ListByTripID returns all participants in insertion order (created_at, then
// id as a tiebreaker for rows created in the same transaction).
func (r *pgParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	const q = `
		SELECT id, trip_id, name, email, donated_refund, created_at, updated_at
		FROM participants
		WHERE trip_id = @trip_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: scan: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: rows: %w", err)
	}

	for i := range participants {
		participants[i].Periods, err = r.loadPeriods(ctx, participants[i].ID)
		if err != nil {
			return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: %w", err)
		}
	}
	return participants, nil
}

// Update overwrites the participant's fields and replaces their periods.
func (r *pgParticipantRepo) Update(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	const q = `
		UPDATE participants
		SET name           = @name,
		    email          = @email,
		    donated_refund = @donated_refund,
		    updated_at     = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING id, trip_id, name, email, donated_refund, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":             p.ID,
		"trip_id":        p.TripID,
		"name":           p.Name,
		"email":          p.Email,
		"donated_refund": p.DonatedRefund,
	}

	row := r.db.QueryRow(ctx, q, args)
	updated, err := scanParticipant(row)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Update: %w", err)
	}

	if _, err := r.db.Exec(ctx,
		`DELETE FROM participation_periods WHERE participant_id = @id`,
		pgx.NamedArgs{"id": p.ID},
	); err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Update: clear periods: %w", err)
	}

	updated.Periods, err = r.replacePeriods(ctx, updated.ID, p.Periods)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a participant. Their periods and ledger rows cascade at the
// DB level; referential blocking is enforced by the service before this is
// called.
func (r *pgParticipantRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM participants WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ParticipantRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ParticipantRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// SetDonatedRefund updates only the donated flag.
func (r *pgParticipantRepo) SetDonatedRefund(ctx context.Context, tripID, id uuid.UUID, donated bool) error {
	const q = `
		UPDATE participants
		SET donated_refund = @donated, updated_at = now()
		WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID, "donated": donated})
	if err != nil {
		return fmt.Errorf("repo.ParticipantRepo.SetDonatedRefund: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ParticipantRepo.SetDonatedRefund: %w", domain.ErrNotFound)
	}
	return nil
}

// IsReferenced checks payer entries, included shares, and contributions.
// A share row saved with included=false does not block deletion.
func (r *pgParticipantRepo) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (SELECT 1 FROM expense_payers WHERE participant_id = @id)
		    OR EXISTS (SELECT 1 FROM expense_shares WHERE participant_id = @id AND included)
		    OR EXISTS (SELECT 1 FROM contributions WHERE participant_id = @id)`

	var referenced bool
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&referenced); err != nil {
		return false, fmt.Errorf("repo.ParticipantRepo.IsReferenced: %w", err)
	}
	return referenced, nil
}

// replacePeriods inserts the given periods for the participant and returns
// the persisted set, ordered by start date.
func (r *pgParticipantRepo) replacePeriods(ctx context.Context, participantID uuid.UUID, periods []domain.ParticipationPeriod) ([]domain.ParticipationPeriod, error) {
	const q = `
		INSERT INTO participation_periods (participant_id, start_date, end_date)
		VALUES (@participant_id, @start_date, @end_date)
		RETURNING id, start_date, end_date`

	out := make([]domain.ParticipationPeriod, 0, len(periods))
	for _, period := range periods {
		args := pgx.NamedArgs{
			"participant_id": participantID,
			"start_date":     period.StartDate,
			"end_date":       period.EndDate,
		}
		saved, err := scanPeriod(r.db.QueryRow(ctx, q, args))
		if err != nil {
			return nil, fmt.Errorf("insert period: %w", err)
		}
		out = append(out, saved)
	}
	return out, nil
}

// loadPeriods returns the participant's periods ordered by start date.
func (r *pgParticipantRepo) loadPeriods(ctx context.Context, participantID uuid.UUID) ([]domain.ParticipationPeriod, error) {
	const q = `
		SELECT id, start_date, end_date
		FROM participation_periods
		WHERE participant_id = @participant_id
		ORDER BY start_date, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"participant_id": participantID})
	if err != nil {
		return nil, fmt.Errorf("load periods: %w", err)
	}
	defer rows.Close()

	periods := []domain.ParticipationPeriod{}
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("load periods: scan: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load periods: rows: %w", err)
	}
	return periods, nil
}

// scanParticipant maps a participant row; periods are loaded separately.
func scanParticipant(s scanner) (domain.Participant, error) {
	var (
		p      domain.Participant
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &p.Name, &p.Email, &p.DonatedRefund, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, domain.ErrNotFound
		}
		return domain.Participant{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	p.Periods = []domain.ParticipationPeriod{}
	return p, nil
}

// scanPeriod maps a participation period row.
func scanPeriod(s scanner) (domain.ParticipationPeriod, error) {
	var (
		p     domain.ParticipationPeriod
		id    pgtype.UUID
		start pgtype.Date
		end   pgtype.Date
	)

	if err := s.Scan(&id, &start, &end); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ParticipationPeriod{}, domain.ErrNotFound
		}
		return domain.ParticipationPeriod{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.StartDate = start.Time
	p.EndDate = end.Time
	return p, nil
}
