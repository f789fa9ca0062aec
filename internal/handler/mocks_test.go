package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jhartmann/tripledger/internal/domain"
	"github.com/jhartmann/tripledger/internal/handler"
)

// Test doubles for the servicer interfaces. Set only the method fields your
// test needs; unset methods panic, which surfaces unexpected calls fast.

type mockTripServicer struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context) ([]domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockParticipantServicer struct {
	create           func(ctx context.Context, p domain.Participant) (domain.Participant, error)
	getByID          func(ctx context.Context, tripID, participantID uuid.UUID) (domain.Participant, error)
	listByTripID     func(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	update           func(ctx context.Context, p domain.Participant) (domain.Participant, error)
	delete           func(ctx context.Context, tripID, participantID uuid.UUID) error
	setDonatedRefund func(ctx context.Context, tripID, participantID uuid.UUID, donated bool) error
}

func (m *mockParticipantServicer) Create(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	return m.create(ctx, p)
}
func (m *mockParticipantServicer) GetByID(ctx context.Context, tripID, participantID uuid.UUID) (domain.Participant, error) {
	return m.getByID(ctx, tripID, participantID)
}
func (m *mockParticipantServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockParticipantServicer) Update(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	return m.update(ctx, p)
}
func (m *mockParticipantServicer) Delete(ctx context.Context, tripID, participantID uuid.UUID) error {
	return m.delete(ctx, tripID, participantID)
}
func (m *mockParticipantServicer) SetDonatedRefund(ctx context.Context, tripID, participantID uuid.UUID, donated bool) error {
	return m.setDonatedRefund(ctx, tripID, participantID, donated)
}

var _ handler.ParticipantServicer = (*mockParticipantServicer)(nil)

type mockExpenseServicer struct {
	create       func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	getByID      func(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Expense, int64, error)
	update       func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	delete       func(ctx context.Context, tripID, expenseID uuid.UUID) error
}

func (m *mockExpenseServicer) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.create(ctx, e)
}
func (m *mockExpenseServicer) GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, tripID, expenseID)
}
func (m *mockExpenseServicer) ListByTripID(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Expense, int64, error) {
	return m.listByTripID(ctx, tripID, params)
}
func (m *mockExpenseServicer) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.update(ctx, e)
}
func (m *mockExpenseServicer) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	return m.delete(ctx, tripID, expenseID)
}

var _ handler.ExpenseServicer = (*mockExpenseServicer)(nil)

type mockContributionServicer struct {
	create       func(ctx context.Context, c domain.Contribution) (domain.Contribution, error)
	getByID      func(ctx context.Context, tripID, contributionID uuid.UUID) (domain.Contribution, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Contribution, error)
	update       func(ctx context.Context, c domain.Contribution) (domain.Contribution, error)
	delete       func(ctx context.Context, tripID, contributionID uuid.UUID) error
}

func (m *mockContributionServicer) Create(ctx context.Context, c domain.Contribution) (domain.Contribution, error) {
	return m.create(ctx, c)
}
func (m *mockContributionServicer) GetByID(ctx context.Context, tripID, contributionID uuid.UUID) (domain.Contribution, error) {
	return m.getByID(ctx, tripID, contributionID)
}
func (m *mockContributionServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Contribution, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockContributionServicer) Update(ctx context.Context, c domain.Contribution) (domain.Contribution, error) {
	return m.update(ctx, c)
}
func (m *mockContributionServicer) Delete(ctx context.Context, tripID, contributionID uuid.UUID) error {
	return m.delete(ctx, tripID, contributionID)
}

var _ handler.ContributionServicer = (*mockContributionServicer)(nil)

type mockSummaryServicer struct {
	summary  func(ctx context.Context, tripID uuid.UUID) (domain.TripSummary, error)
	presence func(ctx context.Context, tripID, participantID uuid.UUID, date time.Time) (bool, error)
}

func (m *mockSummaryServicer) Summary(ctx context.Context, tripID uuid.UUID) (domain.TripSummary, error) {
	return m.summary(ctx, tripID)
}
func (m *mockSummaryServicer) Presence(ctx context.Context, tripID, participantID uuid.UUID, date time.Time) (bool, error) {
	return m.presence(ctx, tripID, participantID, date)
}

var _ handler.SummaryServicer = (*mockSummaryServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, tripID)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// serverMocks bundles one mock per servicer so tests can set just the one
// they exercise.
type serverMocks struct {
	trips         *mockTripServicer
	participants  *mockParticipantServicer
	expenses      *mockExpenseServicer
	contributions *mockContributionServicer
	summaries     *mockSummaryServicer
	exports       *mockExportServicer
}

// newHTTPHandler wires a Server with the given mocks into the chi router.
// This mirrors exactly how main.go wires it in production.
func newHTTPHandler(m serverMocks) http.Handler {
	if m.trips == nil {
		m.trips = &mockTripServicer{}
	}
	if m.participants == nil {
		m.participants = &mockParticipantServicer{}
	}
	if m.expenses == nil {
		m.expenses = &mockExpenseServicer{}
	}
	if m.contributions == nil {
		m.contributions = &mockContributionServicer{}
	}
	if m.summaries == nil {
		m.summaries = &mockSummaryServicer{}
	}
	if m.exports == nil {
		m.exports = &mockExportServicer{}
	}
	srv := handler.NewServer(m.trips, m.participants, m.expenses, m.contributions, m.summaries, m.exports)
	return srv.Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func dateStr(t time.Time) string {
	return t.Format("2006-01-02")
}
