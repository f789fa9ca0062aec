package handler

import (
	"net/http"

	"github.com/jhartmann/tripledger/internal/domain"
)

// GetSummary handles GET /trips/{tripID}/summary.
// The summary is computed from the current ledger state on every request;
// nothing derived is ever persisted.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuidParam(r, "tripID")
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	summary, err := s.summaries.Summary(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
