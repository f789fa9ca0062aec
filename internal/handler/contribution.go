package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/jhartmann/tripledger/internal/domain"
)

// ContributionRequest is the JSON body accepted by POST and PUT on
// /trips/{tripID}/contributions.
type ContributionRequest struct {
	ParticipantID uuid.UUID           `json:"participant_id"`
	Amount        float64             `json:"amount"`
	Date          *openapi_types.Date `json:"date"`
	Comment       *string             `json:"comment,omitempty"`
}

// ContributionResponse is the JSON representation of a fund contribution.
type ContributionResponse struct {
	ID            uuid.UUID          `json:"id"`
	TripID        uuid.UUID          `json:"trip_id"`
	ParticipantID uuid.UUID          `json:"participant_id"`
	Amount        float64            `json:"amount"`
	Date          openapi_types.Date `json:"date"`
	Comment       *string            `json:"comment,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// CreateContribution handles POST /trips/{tripID}/contributions.
func (s *Server) CreateContribution(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	c, err := requestToContribution(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	c.TripID = tripID

	created, err := s.contributions.Create(r.Context(), c)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, contributionToResponse(created))
}

// ListContributions handles GET /trips/{tripID}/contributions.
func (s *Server) ListContributions(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	contributions, err := s.contributions.ListByTripID(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]ContributionResponse, len(contributions))
	for i, c := range contributions {
		data[i] = contributionToResponse(c)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// GetContribution handles GET /trips/{tripID}/contributions/{contributionID}.
func (s *Server) GetContribution(w http.ResponseWriter, r *http.Request) {
	tripID, contributionID, err := tripChildParams(r, "contributionID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	c, err := s.contributions.GetByID(r.Context(), tripID, contributionID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contributionToResponse(c))
}

// UpdateContribution handles PUT /trips/{tripID}/contributions/{contributionID}.
func (s *Server) UpdateContribution(w http.ResponseWriter, r *http.Request) {
	tripID, contributionID, err := tripChildParams(r, "contributionID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	c, err := requestToContribution(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	c.ID = contributionID
	c.TripID = tripID

	updated, err := s.contributions.Update(r.Context(), c)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contributionToResponse(updated))
}

// DeleteContribution handles DELETE /trips/{tripID}/contributions/{contributionID}.
func (s *Server) DeleteContribution(w http.ResponseWriter, r *http.Request) {
	tripID, contributionID, err := tripChildParams(r, "contributionID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	if err := s.contributions.Delete(r.Context(), tripID, contributionID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToContribution decodes and converts a contribution request body
// into a domain.Contribution.
func requestToContribution(r *http.Request) (domain.Contribution, error) {
	var body ContributionRequest
	if err := decodeBody(r, &body); err != nil {
		return domain.Contribution{}, errors.New("invalid request body")
	}
	if body.Date == nil {
		return domain.Contribution{}, errors.New("date is required")
	}

	c := domain.Contribution{
		ParticipantID: body.ParticipantID,
		Amount:        body.Amount,
		Date:          body.Date.Time,
	}
	if body.Comment != nil {
		c.Comment = *body.Comment
	}
	return c, nil
}

// contributionToResponse converts a domain.Contribution into its JSON
// representation.
func contributionToResponse(c domain.Contribution) ContributionResponse {
	resp := ContributionResponse{
		ID:            c.ID,
		TripID:        c.TripID,
		ParticipantID: c.ParticipantID,
		Amount:        c.Amount,
		Date:          openapi_types.Date{Time: c.Date},
		CreatedAt:     c.CreatedAt,
	}
	if c.Comment != "" {
		resp.Comment = &c.Comment
	}
	return resp
}
