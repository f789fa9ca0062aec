package domain

// ExportRow is a single row in the trip settlement export.
// It is a flat, denormalized view: one row per participant, with the trip
// fields repeated on every row. Amounts are the same values the summary view
// shows; dates are "2006-01-02" formatted strings so that CSV and JSON
// renderings agree.
type ExportRow struct {
	// Trip fields — repeated for every participant on the trip.
	TripID        string
	TripName      string
	Currency      string
	TripStartDate string
	TripEndDate   string

	// Settlement fields for one participant.
	ParticipantID   string
	ParticipantName string
	AdvancePaid     float64
	PersonallyPaid  float64
	ExpenseShare    float64
	DueAmount       float64
	RefundAmount    float64
	Donated         bool
}
