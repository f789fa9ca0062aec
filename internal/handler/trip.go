package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/jhartmann/tripledger/internal/domain"
)

// TripRequest is the JSON body accepted by POST /trips and PUT /trips/{tripID}.
type TripRequest struct {
	Name        string              `json:"name"`
	Currency    *string             `json:"currency,omitempty"`
	Description *string             `json:"description,omitempty"`
	StartDate   *openapi_types.Date `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date"`
}

// TripResponse is the JSON representation of a trip.
type TripResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Currency    string             `json:"currency"`
	Description *string            `json:"description,omitempty"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := requestToTrip(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "tripID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripID}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "tripID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	trip, err := requestToTrip(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "tripID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip decodes and converts a trip request body into a domain.Trip.
// Date presence is checked here because a zero time is indistinguishable
// from an omitted field once converted.
func requestToTrip(r *http.Request) (domain.Trip, error) {
	var body TripRequest
	if err := decodeBody(r, &body); err != nil {
		return domain.Trip{}, errors.New("invalid request body")
	}
	if body.StartDate == nil || body.EndDate == nil {
		return domain.Trip{}, errors.New("start_date and end_date are required")
	}

	t := domain.Trip{
		Name:      body.Name,
		Currency:  "EUR",
		StartDate: body.StartDate.Time,
		EndDate:   body.EndDate.Time,
	}
	if body.Currency != nil {
		t.Currency = *body.Currency
	}
	if body.Description != nil {
		t.Description = *body.Description
	}
	return t, nil
}

// tripToResponse converts a domain.Trip into its JSON representation.
func tripToResponse(t domain.Trip) TripResponse {
	resp := TripResponse{
		ID:        t.ID,
		Name:      t.Name,
		Currency:  t.Currency,
		StartDate: openapi_types.Date{Time: t.StartDate},
		EndDate:   openapi_types.Date{Time: t.EndDate},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.Description != "" {
		resp.Description = &t.Description
	}
	return resp
}
