// Package insight turns aggregate summaries into the short narrative blocks
// shown under each chart. Output is plain text, fully determined by the
// aggregate input: same counts, same sentences.
package insight

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/deereallinda/uber-nyc-2015-analysis/aggregate"
	"github.com/deereallinda/uber-nyc-2015-analysis/trip"
)

// Windows defines the inclusive commute-hour windows used by the hourly
// narrative. Both shares are measured against the total over all 24 hours of
// the current view.
type Windows struct {
	MorningStart int
	MorningEnd   int
	EveningStart int
	EveningEnd   int
}

// DefaultWindows matches the classic commute framing: 07:00-09:00 mornings,
// 16:00-19:00 evenings.
var DefaultWindows = Windows{MorningStart: 7, MorningEnd: 9, EveningStart: 16, EveningEnd: 19}

// noData is returned by every describer when the view held no trips.
const noData = "No trips match the current selection."

// DescribeHourly reports the peak and off-peak hours plus the commute-window
// shares. Ties pick the lowest hour, so a view with several zero hours names
// the earliest one as quietest.
func DescribeHourly(hours []aggregate.HourCount, w Windows) string {
	total := 0
	for _, hc := range hours {
		total += hc.Trips
	}
	if total == 0 {
		return noData
	}

	peak, off := hours[0], hours[0]
	morning, evening := 0, 0
	for _, hc := range hours {
		if hc.Trips > peak.Trips {
			peak = hc
		}
		if hc.Trips < off.Trips {
			off = hc
		}
		if hc.Hour >= w.MorningStart && hc.Hour <= w.MorningEnd {
			morning += hc.Trips
		}
		if hc.Hour >= w.EveningStart && hc.Hour <= w.EveningEnd {
			evening += hc.Trips
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "- Peak activity occurs around %02d:00 with %s trips.\n",
		peak.Hour, humanize.Comma(int64(peak.Trips)))
	fmt.Fprintf(&b, "- The quietest hour is %02d:00 with %s trips.\n",
		off.Hour, humanize.Comma(int64(off.Trips)))
	fmt.Fprintf(&b, "- Morning commute hours (%02d:00-%02d:00) contribute %s of all filtered trips; evening commute hours (%02d:00-%02d:00) contribute %s.",
		w.MorningStart, w.MorningEnd, percent(morning, total),
		w.EveningStart, w.EveningEnd, percent(evening, total))
	return b.String()
}

// DescribeWeekday reports the busiest and quietest days and compares average
// weekday demand against the weekend. The averages run over all five weekday
// keys and both weekend keys; a day absent from the view counts as zero
// rather than being excluded.
func DescribeWeekday(days []aggregate.WeekdayCount) string {
	total := 0
	for _, dc := range days {
		total += dc.Trips
	}
	if total == 0 {
		return noData
	}

	peak, off := days[0], days[0]
	weekdaySum, weekendSum := 0, 0
	weekdayKeys, weekendKeys := 0, 0
	for _, dc := range days {
		if dc.Trips > peak.Trips {
			peak = dc
		}
		if dc.Trips < off.Trips {
			off = dc
		}
		if dc.Day.IsWeekend() {
			weekendSum += dc.Trips
			weekendKeys++
		} else {
			weekdaySum += dc.Trips
			weekdayKeys++
		}
	}
	weekdayAvg := float64(weekdaySum) / float64(weekdayKeys)
	weekendAvg := float64(weekendSum) / float64(weekendKeys)

	var b strings.Builder
	fmt.Fprintf(&b, "- The busiest day in the filtered period is %s with %s trips.\n",
		peak.Day, humanize.Comma(int64(peak.Trips)))
	fmt.Fprintf(&b, "- The quietest day is %s with %s trips.\n",
		off.Day, humanize.Comma(int64(off.Trips)))
	fmt.Fprintf(&b, "- Average weekday demand is %s trips per day, compared to %s trips per day on weekends.",
		humanize.CommafWithDigits(weekdayAvg, 1), humanize.CommafWithDigits(weekendAvg, 1))
	return b.String()
}

// DescribeBase reports how concentrated demand is on the most active base.
// The share denominator is the total across all bases, not the truncated
// display list.
func DescribeBase(b aggregate.BaseBreakdown) string {
	if b.Total == 0 {
		return "No dispatch base data in the current selection."
	}
	top := b.Counts[0]
	var out strings.Builder
	fmt.Fprintf(&out, "- The most active dispatch base is %s with %s trips, %s of all base-level activity.\n",
		top.Base, humanize.Comma(int64(top.Trips)), percent(top.Trips, b.Total))
	fmt.Fprintf(&out, "- %s distinct bases dispatched trips in the filtered period.",
		humanize.Comma(int64(b.Distinct)))
	return out.String()
}

// DescribeView is the one-line "rows after filtering" readout shown above
// the charts.
func DescribeView(summary aggregate.Summary, table *trip.Table) string {
	return fmt.Sprintf("%s of %s trips selected (%s rows dropped during normalization)",
		humanize.Comma(int64(summary.TotalTrips)),
		humanize.Comma(int64(len(table.Records))),
		humanize.Comma(int64(table.DroppedRows)))
}

func percent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}
