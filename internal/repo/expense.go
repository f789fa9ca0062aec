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

// ExpenseRepo defines the persistence operations for Expenses. Payer and
// share rows are owned children: Create and Update replace the full sets
// supplied on the domain struct.
type ExpenseRepo interface {
	// Create inserts an expense with its payer and share rows.
	Create(ctx context.Context, e domain.Expense) (domain.Expense, error)

	// GetByID retrieves an expense (with payers and shares) scoped to tripID.
	// Returns domain.ErrNotFound if no such expense exists under that trip.
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Expense, error)

	// ListByTripID returns all expenses of a trip (with payers and shares)
	// ordered by date ascending. The summary snapshot uses this.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)

	// ListByTripIDPaged returns one page of expenses plus the total count.
	ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Expense, int64, error)

	// Update overwrites the expense and replaces its payer and share rows.
	// Returns domain.ErrNotFound if the expense does not exist under the trip.
	Update(ctx context.Context, e domain.Expense) (domain.Expense, error)

	// Delete removes an expense by ID, scoped to tripID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

// pgExpenseRepo is the Postgres implementation of ExpenseRepo.
type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

const expenseColumns = `id, trip_id, amount, date, category, custom_label, comment, paid_from_fund, created_at, updated_at`

// Create inserts the expense row, then its payer and share rows.
func (r *pgExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (trip_id, amount, date, category, custom_label, comment, paid_from_fund)
		VALUES (@trip_id, @amount, @date, @category, @custom_label, @comment, @paid_from_fund)
		RETURNING ` + expenseColumns

	row := r.db.QueryRow(ctx, q, expenseArgs(e))
	created, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}

	if err := r.insertChildren(ctx, created.ID, e); err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	created.PaidBy, created.SharedAmong = e.PaidBy, e.SharedAmong
	return created, nil
}

// GetByID retrieves the expense with its payers and shares.
func (r *pgExpenseRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE id = @id AND trip_id = @trip_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	e, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}

	if err := r.loadChildren(ctx, &e); err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return e, nil
}

// ListByTripID returns all expenses ordered by date, oldest first.
func (r *pgExpenseRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = @trip_id
		ORDER BY date, created_at, id`

	expenses, err := r.queryExpenses(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: %w", err)
	}
	return expenses, nil
}

// ListByTripIDPaged returns one page plus the total expense count for the trip.
func (r *pgExpenseRepo) ListByTripIDPaged(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Expense, int64, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = @trip_id
		ORDER BY date, created_at, id
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{"trip_id": tripID, "limit": params.Limit, "offset": params.Offset()}
	expenses, err := r.queryExpenses(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ExpenseRepo.ListByTripIDPaged: %w", err)
	}

	var total int64
	err = r.db.QueryRow(ctx,
		`SELECT count(*) FROM expenses WHERE trip_id = @trip_id`,
		pgx.NamedArgs{"trip_id": tripID},
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ExpenseRepo.ListByTripIDPaged: count: %w", err)
	}
	return expenses, total, nil
}

// Update overwrites the expense row and replaces its children.
func (r *pgExpenseRepo) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		UPDATE expenses
		SET amount         = @amount,
		    date           = @date,
		    category       = @category,
		    custom_label   = @custom_label,
		    comment        = @comment,
		    paid_from_fund = @paid_from_fund,
		    updated_at     = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + expenseColumns

	args := expenseArgs(e)
	args["id"] = e.ID

	row := r.db.QueryRow(ctx, q, args)
	updated, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}

	for _, table := range []string{"expense_payers", "expense_shares"} {
		if _, err := r.db.Exec(ctx,
			`DELETE FROM `+table+` WHERE expense_id = @id`,
			pgx.NamedArgs{"id": e.ID},
		); err != nil {
			return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: clear %s: %w", table, err)
		}
	}

	if err := r.insertChildren(ctx, updated.ID, e); err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	updated.PaidBy, updated.SharedAmong = e.PaidBy, e.SharedAmong
	return updated, nil
}

// Delete removes an expense; payer and share rows cascade at the DB level.
func (r *pgExpenseRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM expenses WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// queryExpenses runs an expense query and hydrates each row's children.
func (r *pgExpenseRepo) queryExpenses(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Expense, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range expenses {
		if err := r.loadChildren(ctx, &expenses[i]); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// insertChildren writes the payer and share rows for an expense.
func (r *pgExpenseRepo) insertChildren(ctx context.Context, expenseID uuid.UUID, e domain.Expense) error {
	const payerQ = `
		INSERT INTO expense_payers (expense_id, participant_id, amount)
		VALUES (@expense_id, @participant_id, @amount)`
	for _, payer := range e.PaidBy {
		args := pgx.NamedArgs{
			"expense_id":     expenseID,
			"participant_id": payer.ParticipantID,
			"amount":         payer.Amount,
		}
		if _, err := r.db.Exec(ctx, payerQ, args); err != nil {
			return fmt.Errorf("insert payer: %w", err)
		}
	}

	const shareQ = `
		INSERT INTO expense_shares (expense_id, participant_id, included, weight)
		VALUES (@expense_id, @participant_id, @included, @weight)`
	for _, s := range e.SharedAmong {
		args := pgx.NamedArgs{
			"expense_id":     expenseID,
			"participant_id": s.ParticipantID,
			"included":       s.Included,
			"weight":         s.Weight,
		}
		if _, err := r.db.Exec(ctx, shareQ, args); err != nil {
			return fmt.Errorf("insert share: %w", err)
		}
	}
	return nil
}

// loadChildren populates PaidBy and SharedAmong on an already-scanned expense.
func (r *pgExpenseRepo) loadChildren(ctx context.Context, e *domain.Expense) error {
	payerRows, err := r.db.Query(ctx, `
		SELECT participant_id, amount
		FROM expense_payers
		WHERE expense_id = @id
		ORDER BY participant_id`,
		pgx.NamedArgs{"id": e.ID})
	if err != nil {
		return fmt.Errorf("load payers: %w", err)
	}
	defer payerRows.Close()

	e.PaidBy = []domain.ExpensePayer{}
	for payerRows.Next() {
		var (
			pid   pgtype.UUID
			payer domain.ExpensePayer
		)
		if err := payerRows.Scan(&pid, &payer.Amount); err != nil {
			return fmt.Errorf("load payers: scan: %w", err)
		}
		payer.ParticipantID = uuid.UUID(pid.Bytes)
		e.PaidBy = append(e.PaidBy, payer)
	}
	if err := payerRows.Err(); err != nil {
		return fmt.Errorf("load payers: rows: %w", err)
	}

	shareRows, err := r.db.Query(ctx, `
		SELECT participant_id, included, weight
		FROM expense_shares
		WHERE expense_id = @id
		ORDER BY participant_id`,
		pgx.NamedArgs{"id": e.ID})
	if err != nil {
		return fmt.Errorf("load shares: %w", err)
	}
	defer shareRows.Close()

	e.SharedAmong = []domain.ExpenseShare{}
	for shareRows.Next() {
		var (
			pid   pgtype.UUID
			share domain.ExpenseShare
		)
		if err := shareRows.Scan(&pid, &share.Included, &share.Weight); err != nil {
			return fmt.Errorf("load shares: scan: %w", err)
		}
		share.ParticipantID = uuid.UUID(pid.Bytes)
		e.SharedAmong = append(e.SharedAmong, share)
	}
	if err := shareRows.Err(); err != nil {
		return fmt.Errorf("load shares: rows: %w", err)
	}
	return nil
}

// expenseArgs builds the named args shared by Create and Update.
func expenseArgs(e domain.Expense) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_id":        e.TripID,
		"amount":         e.Amount,
		"date":           e.Date,
		"category":       string(e.Category),
		"custom_label":   e.CustomLabel,
		"comment":        e.Comment,
		"paid_from_fund": e.PaidFromFund,
	}
}

// scanExpense maps an expense row; children are loaded separately.
func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e        domain.Expense
		id       pgtype.UUID
		tripID   pgtype.UUID
		date     pgtype.Date
		category string
	)

	err := s.Scan(&id, &tripID, &e.Amount, &date, &category, &e.CustomLabel,
		&e.Comment, &e.PaidFromFund, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, domain.ErrNotFound
		}
		return domain.Expense{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.Date = date.Time
	e.Category = domain.ExpenseCategory(category)
	return e, nil
}
