package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/deereallinda/uber-nyc-2015-analysis/aggregate"
)

// Bar rendering shared by the text report and the terminal dashboard. The
// widest row fills the chart width; everything else scales proportionally.

// HourBars renders the 24-row hourly chart.
func HourBars(hours []aggregate.HourCount, width int) []string {
	max := 0
	for _, hc := range hours {
		if hc.Trips > max {
			max = hc.Trips
		}
	}
	lines := make([]string, 0, len(hours))
	for _, hc := range hours {
		lines = append(lines, fmt.Sprintf("%02d:00 %s %s",
			hc.Hour, bar(hc.Trips, max, width), humanize.Comma(int64(hc.Trips))))
	}
	return lines
}

// WeekdayBars renders the seven-row day-of-week chart.
func WeekdayBars(days []aggregate.WeekdayCount, width int) []string {
	max := 0
	for _, dc := range days {
		if dc.Trips > max {
			max = dc.Trips
		}
	}
	lines := make([]string, 0, len(days))
	for _, dc := range days {
		lines = append(lines, fmt.Sprintf("%-9s %s %s",
			dc.Day, bar(dc.Trips, max, width), humanize.Comma(int64(dc.Trips))))
	}
	return lines
}

// BaseBars renders the top-base chart.
func BaseBars(bases []aggregate.BaseCount, width int) []string {
	max := 0
	for _, bc := range bases {
		if bc.Trips > max {
			max = bc.Trips
		}
	}
	lines := make([]string, 0, len(bases))
	for _, bc := range bases {
		lines = append(lines, fmt.Sprintf("%-8s %s %s",
			bc.Base, bar(bc.Trips, max, width), humanize.Comma(int64(bc.Trips))))
	}
	return lines
}

func bar(value, max, width int) string {
	if max <= 0 || value <= 0 {
		return ""
	}
	if width <= 0 {
		width = 40
	}
	n := value * width / max
	if n == 0 {
		n = 1 // nonzero counts always get a visible bar
	}
	return strings.Repeat("█", n)
}
