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

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		Name:      "Alps 2026",
		Currency:  "EUR",
		StartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	trips := &mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name":       "Alps 2026",
		"currency":   "EUR",
		"start_date": dateStr(fixture.StartDate),
		"end_date":   dateStr(fixture.EndDate),
	})

	req := httptest.NewRequest(http.MethodPost, "/trips", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{trips: trips}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp handler.TripResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, fixture.Name, resp.Name)
	assert.Equal(t, "EUR", resp.Currency)
}

func TestCreateTrip_422_MissingDates(t *testing.T) {
	trips := &mockTripServicer{}

	body := jsonBody(t, map[string]any{"name": "Alps 2026"})

	req := httptest.NewRequest(http.MethodPost, "/trips", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{trips: trips}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
}

func TestCreateTrip_422_ServiceValidation(t *testing.T) {
	trips := &mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: name is required", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{
		"name":       "",
		"start_date": "2026-07-01",
		"end_date":   "2026-07-14",
	})

	req := httptest.NewRequest(http.MethodPost, "/trips", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{trips: trips}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "name is required", resp.Error.Message)
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_200(t *testing.T) {
	fixtures := []domain.Trip{tripFixture(), tripFixture()}
	trips := &mockTripServicer{
		list: func(_ context.Context) ([]domain.Trip, error) { return fixtures, nil },
	}

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{trips: trips}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []handler.TripResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 2)
}

// ---- GET /trips/{tripID} ---------------------------------------------------

func TestGetTrip_200(t *testing.T) {
	fixture := tripFixture()
	trips := &mockTripServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+fixture.ID.String(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{trips: trips}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp handler.TripResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, dateStr(fixture.StartDate), resp.StartDate.Format("2006-01-02"))
}

func TestGetTrip_404(t *testing.T) {
	trips := &mockTripServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", domain.ErrNotFound)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{trips: trips}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "not_found", resp.Error.Code)
}

func TestGetTrip_404_MalformedUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/trips/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- PUT /trips/{tripID} ---------------------------------------------------

func TestUpdateTrip_200_UsesPathID(t *testing.T) {
	fixture := tripFixture()
	trips := &mockTripServicer{
		update: func(_ context.Context, trip domain.Trip) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, trip.ID)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name":       fixture.Name,
		"start_date": dateStr(fixture.StartDate),
		"end_date":   dateStr(fixture.EndDate),
	})

	req := httptest.NewRequest(http.MethodPut, "/trips/"+fixture.ID.String(), body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{trips: trips}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// ---- DELETE /trips/{tripID} ------------------------------------------------

func TestDeleteTrip_204(t *testing.T) {
	id := uuid.New()
	trips := &mockTripServicer{
		delete: func(_ context.Context, got uuid.UUID) error {
			assert.Equal(t, id, got)
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/trips/"+id.String(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(serverMocks{trips: trips}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
