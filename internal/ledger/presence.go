// Package ledger implements the settlement engine: presence resolution,
// weighted share calculation, balance aggregation, and transfer minimization.
//
// Every function in this package is pure and side-effect free: it reads an
// immutable domain.TripSnapshot (or pieces of one) supplied by the caller and
// never mutates it. There is no internal locking — callers obtain a
// consistent snapshot first and recompute on demand.
package ledger

import (
	"time"

	"github.com/jhartmann/tripledger/internal/domain"
)

// IsPresent reports whether the participant is considered present on the
// given date: true iff the date falls within at least one of their
// participation periods, inclusive on both ends.
//
// Comparison is date-only; all operands are truncated to day granularity so
// time-of-day or timezone components cannot produce off-by-one results.
// A participant with no periods is never present. There is no failure mode.
//
// Presence only drives defaults (pre-selecting who shares a new expense) and
// "(not present)" hints; it never overrides an explicit inclusion choice.
func IsPresent(p domain.Participant, date time.Time) bool {
	day := domain.DateOnly(date)
	for _, period := range p.Periods {
		start := domain.DateOnly(period.StartDate)
		end := domain.DateOnly(period.EndDate)
		if !day.Before(start) && !day.After(end) {
			return true
		}
	}
	return false
}
