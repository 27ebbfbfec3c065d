// Package filter implements the date-range and hour-of-day predicates that
// select the working subset of a normalized trip table.
//
// Filter Logic:
//   - Both bounds of both ranges are inclusive.
//   - A record passes iff Start <= record.Date <= End AND
//     MinHour <= record.Hour <= MaxHour.
//   - Applying a filter never reorders rows: the output is a subsequence of
//     the input, so filtering an already-filtered view with the same bounds
//     is a no-op.
package filter

import (
	"fmt"
	"time"

	"github.com/deereallinda/uber-nyc-2015-analysis/trip"
)

// Hour-of-day domain bounds.
const (
	MinHour = 0
	MaxHour = 23
)

// Range is a normalized filter selection. Build one with NewRange so user
// input (swapped bounds, a single picked date, out-of-domain hours) is
// repaired instead of erroring.
type Range struct {
	Start   time.Time // First included calendar date (midnight)
	End     time.Time // Last included calendar date (midnight)
	MinHour int
	MaxHour int
}

// NewRange normalizes user-supplied bounds:
//   - dates are truncated to midnight; a zero End means a single selected
//     date, so End snaps to Start (and vice versa)
//   - swapped dates and swapped hours are exchanged rather than rejected
//   - hours are clamped to the 0-23 domain
func NewRange(start, end time.Time, minHour, maxHour int) Range {
	start = trip.DateOf(start)
	end = trip.DateOf(end)
	if end.IsZero() {
		end = start
	}
	if start.IsZero() {
		start = end
	}
	if end.Before(start) {
		start, end = end, start
	}
	minHour = clampHour(minHour)
	maxHour = clampHour(maxHour)
	if maxHour < minHour {
		minHour, maxHour = maxHour, minHour
	}
	return Range{Start: start, End: end, MinHour: minHour, MaxHour: maxHour}
}

// FullRange selects every record of the table: its observed date span and
// the complete hour domain. This is the dashboard's initial state.
func FullRange(t *trip.Table) Range {
	return Range{Start: t.MinDate, End: t.MaxDate, MinHour: MinHour, MaxHour: MaxHour}
}

// Contains reports whether a single record passes the range. Both the date
// and the hour comparison are inclusive on both ends.
func (r Range) Contains(rec trip.Record) bool {
	if rec.Date.Before(r.Start) || rec.Date.After(r.End) {
		return false
	}
	return rec.Hour >= r.MinHour && rec.Hour <= r.MaxHour
}

// String renders the range for the dashboard status line and report headers.
func (r Range) String() string {
	return fmt.Sprintf("%s to %s, hours %02d-%02d",
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"), r.MinHour, r.MaxHour)
}

// Apply selects the records passing the range, preserving table order. An
// empty result is valid output, not an error; the caller decides how to
// present it and must not aggregate.
func Apply(t *trip.Table, r Range) []trip.Record {
	out := make([]trip.Record, 0, len(t.Records))
	for _, rec := range t.Records {
		if r.Contains(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func clampHour(h int) int {
	if h < MinHour {
		return MinHour
	}
	if h > MaxHour {
		return MaxHour
	}
	return h
}
