package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhartmann/tripledger/internal/domain"
	"github.com/jhartmann/tripledger/internal/handler"
)

func participantFixture(tripID uuid.UUID) domain.Participant {
	return domain.Participant{
		ID:     uuid.New(),
		TripID: tripID,
		Name:   "Ada",
		Periods: []domain.ParticipationPeriod{
			{
				ID:        uuid.New(),
				StartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 7, 7, 0, 0, 0, 0, time.UTC),
			},
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func participantsPath(tripID uuid.UUID) string {
	return "/trips/" + tripID.String() + "/participants"
}

// ---- POST /trips/{tripID}/participants --------------------------------------

func TestCreateParticipant_201_SetsTripIDFromPath(t *testing.T) {
	tripID := uuid.New()
	fixture := participantFixture(tripID)
	participants := &mockParticipantServicer{
		create: func(_ context.Context, p domain.Participant) (domain.Participant, error) {
			assert.Equal(t, tripID, p.TripID)
			assert.Len(t, p.Periods, 1)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name": "Ada",
		"periods": []map[string]string{
			{"start_date": "2026-07-01", "end_date": "2026-07-07"},
		},
	})

	req := httptest.NewRequest(http.MethodPost, participantsPath(tripID), body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{participants: participants}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp handler.ParticipantResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Len(t, resp.Periods, 1)
}

func TestCreateParticipant_422_PeriodMissingEnd(t *testing.T) {
	tripID := uuid.New()

	body := jsonBody(t, map[string]any{
		"name": "Ada",
		"periods": []map[string]string{
			{"start_date": "2026-07-01"},
		},
	})

	req := httptest.NewRequest(http.MethodPost, participantsPath(tripID), body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- DELETE /trips/{tripID}/participants/{participantID} ---------------------

func TestDeleteParticipant_409_WhenReferenced(t *testing.T) {
	tripID := uuid.New()
	participantID := uuid.New()
	participants := &mockParticipantServicer{
		delete: func(_ context.Context, _, _ uuid.UUID) error {
			return fmt.Errorf("service.ParticipantService.Delete: %w: participant is referenced by expenses or contributions", domain.ErrConflict)
		},
	}

	req := httptest.NewRequest(http.MethodDelete, participantsPath(tripID)+"/"+participantID.String(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{participants: participants}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "conflict", resp.Error.Code)
	assert.Equal(t, "participant is referenced by expenses or contributions", resp.Error.Message)
}

func TestDeleteParticipant_204(t *testing.T) {
	tripID := uuid.New()
	participantID := uuid.New()
	participants := &mockParticipantServicer{
		delete: func(_ context.Context, gotTrip, gotParticipant uuid.UUID) error {
			assert.Equal(t, tripID, gotTrip)
			assert.Equal(t, participantID, gotParticipant)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, participantsPath(tripID)+"/"+participantID.String(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{participants: participants}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

// ---- PUT .../donation --------------------------------------------------------

func TestSetDonation_204(t *testing.T) {
	tripID := uuid.New()
	participantID := uuid.New()
	participants := &mockParticipantServicer{
		setDonatedRefund: func(_ context.Context, _, _ uuid.UUID, donated bool) error {
			assert.True(t, donated)
			return nil
		},
	}

	body := jsonBody(t, map[string]any{"donated": true})

	req := httptest.NewRequest(http.MethodPut, participantsPath(tripID)+"/"+participantID.String()+"/donation", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{participants: participants}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSetDonation_422_MissingFlag(t *testing.T) {
	tripID := uuid.New()
	participantID := uuid.New()

	body := jsonBody(t, map[string]any{})

	req := httptest.NewRequest(http.MethodPut, participantsPath(tripID)+"/"+participantID.String()+"/donation", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- GET .../presence ---------------------------------------------------------

func TestGetPresence_200(t *testing.T) {
	tripID := uuid.New()
	participantID := uuid.New()
	summaries := &mockSummaryServicer{
		presence: func(_ context.Context, _, _ uuid.UUID, date time.Time) (bool, error) {
			assert.Equal(t, "2026-07-03", date.Format("2006-01-02"))
			return true, nil
		},
	}

	url := participantsPath(tripID) + "/" + participantID.String() + "/presence?date=2026-07-03"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{summaries: summaries}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ParticipantID uuid.UUID `json:"participant_id"`
		Date          string    `json:"date"`
		Present       bool      `json:"present"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, participantID, resp.ParticipantID)
	assert.True(t, resp.Present)
}

func TestGetPresence_422_BadDate(t *testing.T) {
	tripID := uuid.New()
	participantID := uuid.New()

	url := participantsPath(tripID) + "/" + participantID.String() + "/presence?date=03.07.2026"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
