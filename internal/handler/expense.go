package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/jhartmann/tripledger/internal/domain"
)

// ExpenseRequest is the JSON body accepted by POST and PUT on
// /trips/{tripID}/expenses.
type ExpenseRequest struct {
	Amount       float64             `json:"amount"`
	Date         *openapi_types.Date `json:"date"`
	Category     string              `json:"category"`
	CustomLabel  *string             `json:"custom_label,omitempty"`
	Comment      *string             `json:"comment,omitempty"`
	PaidFromFund bool                `json:"paid_from_fund"`
	PaidBy       []PayerRequest      `json:"paid_by"`
	SharedAmong  []ShareRequest      `json:"shared_among"`
}

// PayerRequest is one payer entry inside an ExpenseRequest.
type PayerRequest struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	Amount        float64   `json:"amount"`
}

// ShareRequest is one share entry inside an ExpenseRequest. Weight defaults
// to 1 when omitted so the common equal-split case stays terse.
type ShareRequest struct {
	ParticipantID uuid.UUID `json:"participant_id"`
	Included      bool      `json:"included"`
	Weight        *float64  `json:"weight,omitempty"`
}

// ExpenseResponse is the JSON representation of an expense.
type ExpenseResponse struct {
	ID           uuid.UUID             `json:"id"`
	TripID       uuid.UUID             `json:"trip_id"`
	Amount       float64               `json:"amount"`
	Date         openapi_types.Date    `json:"date"`
	Category     string                `json:"category"`
	CustomLabel  *string               `json:"custom_label,omitempty"`
	Comment      *string               `json:"comment,omitempty"`
	PaidFromFund bool                  `json:"paid_from_fund"`
	PaidBy       []domain.ExpensePayer `json:"paid_by"`
	SharedAmong  []domain.ExpenseShare `json:"shared_among"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// Pagination echoes the effective paging parameters alongside a paged list.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// CreateExpense handles POST /trips/{tripID}/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	e, err := requestToExpense(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	e.TripID = tripID

	created, err := s.expenses.Create(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, expenseToResponse(created))
}

// ListExpenses handles GET /trips/{tripID}/expenses.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	expenses, total, err := s.expenses.ListByTripID(r.Context(), tripID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		data[i] = expenseToResponse(e)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"data": data,
		"pagination": Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetExpense handles GET /trips/{tripID}/expenses/{expenseID}.
func (s *Server) GetExpense(w http.ResponseWriter, r *http.Request) {
	tripID, expenseID, err := tripChildParams(r, "expenseID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	e, err := s.expenses.GetByID(r.Context(), tripID, expenseID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, expenseToResponse(e))
}

// UpdateExpense handles PUT /trips/{tripID}/expenses/{expenseID}.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	tripID, expenseID, err := tripChildParams(r, "expenseID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	e, err := requestToExpense(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	e.ID = expenseID
	e.TripID = tripID

	updated, err := s.expenses.Update(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, expenseToResponse(updated))
}

// DeleteExpense handles DELETE /trips/{tripID}/expenses/{expenseID}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	tripID, expenseID, err := tripChildParams(r, "expenseID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	if err := s.expenses.Delete(r.Context(), tripID, expenseID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// tripChildParams parses the tripID path parameter plus one child resource ID.
func tripChildParams(r *http.Request, child string) (uuid.UUID, uuid.UUID, error) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	childID, err := uuidParam(r, child)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return tripID, childID, nil
}

// queryInt parses an optional integer query parameter; malformed values are
// treated as absent.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// requestToExpense decodes and converts an expense request body into a
// domain.Expense.
func requestToExpense(r *http.Request) (domain.Expense, error) {
	var body ExpenseRequest
	if err := decodeBody(r, &body); err != nil {
		return domain.Expense{}, errors.New("invalid request body")
	}
	if body.Date == nil {
		return domain.Expense{}, errors.New("date is required")
	}

	e := domain.Expense{
		Amount:       body.Amount,
		Date:         body.Date.Time,
		Category:     domain.ExpenseCategory(body.Category),
		PaidFromFund: body.PaidFromFund,
	}
	if body.CustomLabel != nil {
		e.CustomLabel = *body.CustomLabel
	}
	if body.Comment != nil {
		e.Comment = *body.Comment
	}
	for _, payer := range body.PaidBy {
		e.PaidBy = append(e.PaidBy, domain.ExpensePayer(payer))
	}
	for _, share := range body.SharedAmong {
		weight := 1.0
		if share.Weight != nil {
			weight = *share.Weight
		}
		e.SharedAmong = append(e.SharedAmong, domain.ExpenseShare{
			ParticipantID: share.ParticipantID,
			Included:      share.Included,
			Weight:        weight,
		})
	}
	return e, nil
}

// expenseToResponse converts a domain.Expense into its JSON representation.
func expenseToResponse(e domain.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:           e.ID,
		TripID:       e.TripID,
		Amount:       e.Amount,
		Date:         openapi_types.Date{Time: e.Date},
		Category:     string(e.Category),
		PaidFromFund: e.PaidFromFund,
		PaidBy:       e.PaidBy,
		SharedAmong:  e.SharedAmong,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if resp.PaidBy == nil {
		resp.PaidBy = []domain.ExpensePayer{}
	}
	if resp.SharedAmong == nil {
		resp.SharedAmong = []domain.ExpenseShare{}
	}
	if e.CustomLabel != "" {
		resp.CustomLabel = &e.CustomLabel
	}
	if e.Comment != "" {
		resp.Comment = &e.Comment
	}
	return resp
}
