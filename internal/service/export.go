package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhartmann/tripledger/internal/domain"
)

// ExportService builds a flat settlement export for one trip: one row per
// participant with the trip fields repeated, the same column set the summary
// view shows. The handler renders rows as JSON or CSV.
type ExportService struct {
	summaries *SummaryService
}

// NewExportService constructs an ExportService on top of the summary service,
// which already knows how to assemble a consistent snapshot and derive
// settlements from it.
func NewExportService(summaries *SummaryService) *ExportService {
	return &ExportService{summaries: summaries}
}

// Export returns one ExportRow per participant of the trip, in participant
// insertion order. A trip with no participants yields an empty slice.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ExportService) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	snap, err := s.summaries.Snapshot(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	summary := deriveSummary(snap)

	rows := make([]domain.ExportRow, 0, len(summary.Settlements))
	for _, st := range summary.Settlements {
		rows = append(rows, domain.ExportRow{
			TripID:          snap.Trip.ID.String(),
			TripName:        snap.Trip.Name,
			Currency:        snap.Trip.Currency,
			TripStartDate:   snap.Trip.StartDate.Format("2006-01-02"),
			TripEndDate:     snap.Trip.EndDate.Format("2006-01-02"),
			ParticipantID:   st.ParticipantID.String(),
			ParticipantName: st.Name,
			AdvancePaid:     st.AdvancePaid,
			PersonallyPaid:  st.PersonallyPaid,
			ExpenseShare:    st.ExpenseShare,
			DueAmount:       st.DueAmount,
			RefundAmount:    st.RefundAmount,
			Donated:         st.Donated,
		})
	}
	return rows, nil
}
