// Package aggregate computes the grouped trip counts and scalar summaries
// that feed the charts, KPI cards, and insight text.
//
// Grouping contracts:
//   - ByHour and ByWeekday cover their full key domain (0-23, Monday-Sunday)
//     with zero-filled entries, so each partitions the view exactly once and
//     the counts always sum to the view size.
//   - ByBase covers only rows that carry a base; its ordered counts are
//     descending by count with base name as the tie-break, and the scalar
//     totals are computed before any display truncation.
//
// Every function returns well-formed zero results for an empty view.
package aggregate

import (
	"sort"
	"time"

	"github.com/deereallinda/uber-nyc-2015-analysis/filter"
	"github.com/deereallinda/uber-nyc-2015-analysis/trip"
)

// HourCount is one bar of the hourly demand chart.
type HourCount struct {
	Hour  int `json:"hour"`
	Trips int `json:"trips"`
}

// WeekdayCount is one bar of the day-of-week chart.
type WeekdayCount struct {
	Day   trip.Weekday `json:"day"`
	Trips int          `json:"trips"`
}

// BaseCount is one bar of the dispatch-base chart.
type BaseCount struct {
	Base  string `json:"base"`
	Trips int    `json:"trips"`
}

// BaseBreakdown carries the full descending base grouping plus the scalars
// that must never be computed from a truncated list.
type BaseBreakdown struct {
	Counts   []BaseCount `json:"counts"`
	Total    int         `json:"total"`    // Trips across all bases, not just displayed ones
	Distinct int         `json:"distinct"` // Distinct bases across the whole view
}

// Summary holds the KPI scalars for the current view.
type Summary struct {
	TotalTrips    int `json:"total_trips"`
	DistinctDates int `json:"distinct_dates"`
	DistinctBases int `json:"distinct_bases"`
}

// ByHour groups the view by hour of day. The key domain is always the full
// 0-23 range, ascending, with zero-filled entries for quiet hours.
func ByHour(view []trip.Record) []HourCount {
	counts := make([]HourCount, filter.MaxHour+1)
	for h := range counts {
		counts[h].Hour = h
	}
	for _, rec := range view {
		if rec.Hour >= filter.MinHour && rec.Hour <= filter.MaxHour {
			counts[rec.Hour].Trips++
		}
	}
	return counts
}

// ByWeekday groups the view by weekday. The key domain is the fixed
// Monday-first seven-day sequence regardless of which days appear in the
// data; absent days are zero-filled, never dropped.
func ByWeekday(view []trip.Record) []WeekdayCount {
	byDay := make(map[trip.Weekday]int, len(trip.Weekdays))
	for _, rec := range view {
		byDay[rec.Weekday]++
	}
	counts := make([]WeekdayCount, 0, len(trip.Weekdays))
	for _, day := range trip.Weekdays {
		counts = append(counts, WeekdayCount{Day: day, Trips: byDay[day]})
	}
	return counts
}

// ByBase groups the rows that carry a dispatch base, ordered by descending
// count with the base name breaking ties. Total and Distinct always reflect
// the untruncated grouping; use Top for the display slice.
func ByBase(view []trip.Record) BaseBreakdown {
	byBase := make(map[string]int)
	total := 0
	for _, rec := range view {
		if rec.HasBase() {
			byBase[rec.Base]++
			total++
		}
	}
	counts := make([]BaseCount, 0, len(byBase))
	for base, trips := range byBase {
		counts = append(counts, BaseCount{Base: base, Trips: trips})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Trips != counts[j].Trips {
			return counts[i].Trips > counts[j].Trips
		}
		return counts[i].Base < counts[j].Base
	})
	return BaseBreakdown{Counts: counts, Total: total, Distinct: len(byBase)}
}

// Top returns the first n bases for presentation. The breakdown's scalars
// are unaffected by this truncation.
func (b BaseBreakdown) Top(n int) []BaseCount {
	if n <= 0 || n >= len(b.Counts) {
		return b.Counts
	}
	return b.Counts[:n]
}

// Summarize computes the KPI scalars over the view.
func Summarize(view []trip.Record) Summary {
	dates := make(map[time.Time]struct{})
	bases := make(map[string]struct{})
	for _, rec := range view {
		dates[rec.Date] = struct{}{}
		if rec.HasBase() {
			bases[rec.Base] = struct{}{}
		}
	}
	return Summary{
		TotalTrips:    len(view),
		DistinctDates: len(dates),
		DistinctBases: len(bases),
	}
}
