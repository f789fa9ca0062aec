// Package handler — export.go implements GET /trips/{tripID}/export.
// Returns the trip settlement as a flat table, one row per participant.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"io"
	"net/http"
	"strconv"

	"github.com/jhartmann/tripledger/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "currency", "trip_start_date", "trip_end_date",
	"participant_id", "participant_name",
	"advance_paid", "personally_paid", "expense_share",
	"due_amount", "refund_amount", "donated",
}

// GetExport handles GET /trips/{tripID}/export.
// It returns one settlement row per participant of the trip.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	rows, err := s.exports.Export(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSVResponse(w, rows)
		return
	}
	writeJSONResponse(w, rows)
}

// ExportRowResponse is the JSON rendering of one export row.
type ExportRowResponse struct {
	TripID          string  `json:"trip_id"`
	TripName        string  `json:"trip_name"`
	Currency        string  `json:"currency"`
	TripStartDate   string  `json:"trip_start_date"`
	TripEndDate     string  `json:"trip_end_date"`
	ParticipantID   string  `json:"participant_id"`
	ParticipantName string  `json:"participant_name"`
	AdvancePaid     float64 `json:"advance_paid"`
	PersonallyPaid  float64 `json:"personally_paid"`
	ExpenseShare    float64 `json:"expense_share"`
	DueAmount       float64 `json:"due_amount"`
	RefundAmount    float64 `json:"refund_amount"`
	Donated         bool    `json:"donated"`
}

// writeJSONResponse renders export rows as a JSON array.
func writeJSONResponse(w http.ResponseWriter, rows []domain.ExportRow) {
	out := make([]ExportRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ExportRowResponse(r))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSVResponse encodes export rows as CSV.
func writeCSVResponse(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(rowToCSVRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck — the response is already committed.
	io.Copy(w, &buf)
}

// rowToCSVRecord encodes one domain.ExportRow as a flat string slice.
// Amounts are rendered with two decimals to match the display convention.
func rowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.TripName,
		r.Currency,
		r.TripStartDate,
		r.TripEndDate,
		r.ParticipantID,
		r.ParticipantName,
		formatAmount(r.AdvancePaid),
		formatAmount(r.PersonallyPaid),
		formatAmount(r.ExpenseShare),
		formatAmount(r.DueAmount),
		formatAmount(r.RefundAmount),
		strconv.FormatBool(r.Donated),
	}
}

// formatAmount renders a monetary amount with exactly two decimal places.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
