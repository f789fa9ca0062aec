// Package handler implements the HTTP handlers for the TripLedger API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, expense.go, etc.) but all share the same Server struct so
// they can access its dependencies.
//
// The servicer interfaces are defined here, in the consumer package,
// following the Go convention "accept interfaces, return concrete types":
// handler tests inject mocks without touching the database or service layer.
package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jhartmann/tripledger/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ParticipantServicer defines the business operations the participant
// handlers depend on.
type ParticipantServicer interface {
	Create(ctx context.Context, p domain.Participant) (domain.Participant, error)
	GetByID(ctx context.Context, tripID, participantID uuid.UUID) (domain.Participant, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	Update(ctx context.Context, p domain.Participant) (domain.Participant, error)
	Delete(ctx context.Context, tripID, participantID uuid.UUID) error
	SetDonatedRefund(ctx context.Context, tripID, participantID uuid.UUID, donated bool) error
}

// ExpenseServicer defines the business operations the expense handlers
// depend on.
type ExpenseServicer interface {
	Create(ctx context.Context, e domain.Expense) (domain.Expense, error)
	GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Expense, int64, error)
	Update(ctx context.Context, e domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, tripID, expenseID uuid.UUID) error
}

// ContributionServicer defines the business operations the contribution
// handlers depend on.
type ContributionServicer interface {
	Create(ctx context.Context, c domain.Contribution) (domain.Contribution, error)
	GetByID(ctx context.Context, tripID, contributionID uuid.UUID) (domain.Contribution, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Contribution, error)
	Update(ctx context.Context, c domain.Contribution) (domain.Contribution, error)
	Delete(ctx context.Context, tripID, contributionID uuid.UUID) error
}

// SummaryServicer defines the derived-view operations (settlements,
// transfers, presence) the summary handlers depend on.
type SummaryServicer interface {
	Summary(ctx context.Context, tripID uuid.UUID) (domain.TripSummary, error)
	Presence(ctx context.Context, tripID, participantID uuid.UUID, date time.Time) (bool, error)
}

// ExportServicer defines the flat-export operation the export handler
// depends on.
type ExportServicer interface {
	Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds the handlers for all API endpoints.
// Wire it in main.go via Routes().
type Server struct {
	trips         TripServicer
	participants  ParticipantServicer
	expenses      ExpenseServicer
	contributions ContributionServicer
	summaries     SummaryServicer
	exports       ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	trips TripServicer,
	participants ParticipantServicer,
	expenses ExpenseServicer,
	contributions ContributionServicer,
	summaries SummaryServicer,
	exports ExportServicer,
) *Server {
	return &Server{
		trips:         trips,
		participants:  participants,
		expenses:      expenses,
		contributions: contributions,
		summaries:     summaries,
		exports:       exports,
	}
}

// Routes builds the full route tree for the API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Get("/summary", s.GetSummary)
			r.Get("/export", s.GetExport)

			r.Route("/participants", func(r chi.Router) {
				r.Post("/", s.CreateParticipant)
				r.Get("/", s.ListParticipants)
				r.Get("/{participantID}", s.GetParticipant)
				r.Put("/{participantID}", s.UpdateParticipant)
				r.Delete("/{participantID}", s.DeleteParticipant)
				r.Put("/{participantID}/donation", s.SetDonation)
				r.Get("/{participantID}/presence", s.GetPresence)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", s.CreateExpense)
				r.Get("/", s.ListExpenses)
				r.Get("/{expenseID}", s.GetExpense)
				r.Put("/{expenseID}", s.UpdateExpense)
				r.Delete("/{expenseID}", s.DeleteExpense)
			})

			r.Route("/contributions", func(r chi.Router) {
				r.Post("/", s.CreateContribution)
				r.Get("/", s.ListContributions)
				r.Get("/{contributionID}", s.GetContribution)
				r.Put("/{contributionID}", s.UpdateContribution)
				r.Delete("/{contributionID}", s.DeleteContribution)
			})
		})
	})

	return r
}
