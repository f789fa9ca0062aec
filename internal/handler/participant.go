package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/jhartmann/tripledger/internal/domain"
)

// ParticipantRequest is the JSON body accepted by POST and PUT on
// /trips/{tripID}/participants.
type ParticipantRequest struct {
	Name    string          `json:"name"`
	Email   *string         `json:"email,omitempty"`
	Periods []PeriodRequest `json:"periods"`
}

// PeriodRequest is one participation period inside a ParticipantRequest.
type PeriodRequest struct {
	StartDate *openapi_types.Date `json:"start_date"`
	EndDate   *openapi_types.Date `json:"end_date"`
}

// DonationRequest is the JSON body accepted by
// PUT /trips/{tripID}/participants/{participantID}/donation.
type DonationRequest struct {
	Donated *bool `json:"donated"`
}

// ParticipantResponse is the JSON representation of a participant.
type ParticipantResponse struct {
	ID            uuid.UUID        `json:"id"`
	TripID        uuid.UUID        `json:"trip_id"`
	Name          string           `json:"name"`
	Email         *string          `json:"email,omitempty"`
	DonatedRefund bool             `json:"donated_refund"`
	Periods       []PeriodResponse `json:"periods"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// PeriodResponse is one participation period inside a ParticipantResponse.
type PeriodResponse struct {
	ID        uuid.UUID          `json:"id"`
	StartDate openapi_types.Date `json:"start_date"`
	EndDate   openapi_types.Date `json:"end_date"`
}

// CreateParticipant handles POST /trips/{tripID}/participants.
func (s *Server) CreateParticipant(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	p, err := requestToParticipant(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	p.TripID = tripID

	created, err := s.participants.Create(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, participantToResponse(created))
}

// ListParticipants handles GET /trips/{tripID}/participants.
func (s *Server) ListParticipants(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	participants, err := s.participants.ListByTripID(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]ParticipantResponse, len(participants))
	for i, p := range participants {
		data[i] = participantToResponse(p)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// GetParticipant handles GET /trips/{tripID}/participants/{participantID}.
func (s *Server) GetParticipant(w http.ResponseWriter, r *http.Request) {
	tripID, participantID, err := participantParams(r)
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	p, err := s.participants.GetByID(r.Context(), tripID, participantID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, participantToResponse(p))
}

// UpdateParticipant handles PUT /trips/{tripID}/participants/{participantID}.
func (s *Server) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	tripID, participantID, err := participantParams(r)
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	p, err := requestToParticipant(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	p.ID = participantID
	p.TripID = tripID

	updated, err := s.participants.Update(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, participantToResponse(updated))
}

// DeleteParticipant handles DELETE /trips/{tripID}/participants/{participantID}.
// Deletion is refused with 409 while the participant is referenced by any
// expense or contribution.
func (s *Server) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	tripID, participantID, err := participantParams(r)
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	if err := s.participants.Delete(r.Context(), tripID, participantID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetDonation handles PUT /trips/{tripID}/participants/{participantID}/donation.
func (s *Server) SetDonation(w http.ResponseWriter, r *http.Request) {
	tripID, participantID, err := participantParams(r)
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	var body DonationRequest
	if err := decodeBody(r, &body); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if body.Donated == nil {
		badRequest(w, "donated is required")
		return
	}

	if err := s.participants.SetDonatedRefund(r.Context(), tripID, participantID, *body.Donated); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetPresence handles GET /trips/{tripID}/participants/{participantID}/presence?date=YYYY-MM-DD.
func (s *Server) GetPresence(w http.ResponseWriter, r *http.Request) {
	tripID, participantID, err := participantParams(r)
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	raw := r.URL.Query().Get("date")
	if raw == "" {
		badRequest(w, "date query parameter is required")
		return
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		badRequest(w, "date must be formatted as YYYY-MM-DD")
		return
	}

	present, err := s.summaries.Presence(r.Context(), tripID, participantID, date)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"participant_id": participantID,
		"date":           raw,
		"present":        present,
	})
}

// --- mapping helpers --------------------------------------------------------

// participantParams parses the tripID and participantID path parameters.
func participantParams(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	participantID, err := uuidParam(r, "participantID")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return tripID, participantID, nil
}

// requestToParticipant decodes and converts a participant request body into
// a domain.Participant. Period IDs are assigned by the repo layer.
func requestToParticipant(r *http.Request) (domain.Participant, error) {
	var body ParticipantRequest
	if err := decodeBody(r, &body); err != nil {
		return domain.Participant{}, errors.New("invalid request body")
	}

	p := domain.Participant{Name: body.Name}
	if body.Email != nil {
		p.Email = *body.Email
	}
	for _, period := range body.Periods {
		if period.StartDate == nil || period.EndDate == nil {
			return domain.Participant{}, errors.New("every period needs a start_date and end_date")
		}
		p.Periods = append(p.Periods, domain.ParticipationPeriod{
			StartDate: period.StartDate.Time,
			EndDate:   period.EndDate.Time,
		})
	}
	return p, nil
}

// participantToResponse converts a domain.Participant into its JSON
// representation.
func participantToResponse(p domain.Participant) ParticipantResponse {
	resp := ParticipantResponse{
		ID:            p.ID,
		TripID:        p.TripID,
		Name:          p.Name,
		DonatedRefund: p.DonatedRefund,
		Periods:       make([]PeriodResponse, len(p.Periods)),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Email != "" {
		resp.Email = &p.Email
	}
	for i, period := range p.Periods {
		resp.Periods[i] = PeriodResponse{
			ID:        period.ID,
			StartDate: openapi_types.Date{Time: period.StartDate},
			EndDate:   openapi_types.Date{Time: period.EndDate},
		}
	}
	return resp
}
