// Package report assembles the full analysis output for non-interactive
// consumers: the tripreport CLI and the plain-console fallback of the main
// program. Text output mirrors the dashboard panes; JSON output carries the
// same data for machines.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"

	"github.com/deereallinda/uber-nyc-2015-analysis/aggregate"
	"github.com/deereallinda/uber-nyc-2015-analysis/filter"
	"github.com/deereallinda/uber-nyc-2015-analysis/insight"
	"github.com/deereallinda/uber-nyc-2015-analysis/trip"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Options parameterizes Build. Zero values fall back to the standard
// presentation defaults.
type Options struct {
	DatasetPath string
	Range       filter.Range
	TopBases    int
	GeoLimit    int
	IncludeGeo  bool
	Windows     insight.Windows
}

// Insights groups the three narrative blocks.
type Insights struct {
	Hourly  string `json:"hourly"`
	Weekday string `json:"weekday"`
	Base    string `json:"base"`
}

// Report is the complete analysis of one filtered view.
type Report struct {
	GeneratedAt   string                   `json:"generated_at"`
	DatasetPath   string                   `json:"dataset_path"`
	Columns       []string                 `json:"columns"`
	RawRows       int                      `json:"raw_rows"`
	DroppedRows   int                      `json:"dropped_rows"`
	StartDate     string                   `json:"start_date"`
	EndDate       string                   `json:"end_date"`
	MinHour       int                      `json:"min_hour"`
	MaxHour       int                      `json:"max_hour"`
	Summary       aggregate.Summary        `json:"summary"`
	Hourly        []aggregate.HourCount    `json:"hourly,omitempty"`
	Weekday       []aggregate.WeekdayCount `json:"weekday,omitempty"`
	Bases         []aggregate.BaseCount    `json:"bases,omitempty"`
	BaseTotal     int                      `json:"base_total"`
	DistinctBases int                      `json:"distinct_bases"`
	GeoSample     []aggregate.GeoPoint     `json:"geo_sample,omitempty"`
	GeoSampleSize int                      `json:"geo_sample_size"`
	Insights      *Insights                `json:"insights,omitempty"`
	Empty         bool                     `json:"empty"`
}

// Build runs the full recompute pass over the table: filter, aggregate,
// describe. An empty filtered view produces a report with Empty=true and no
// chart sections, matching the "no data, skip aggregation" contract.
func Build(table *trip.Table, opts Options) *Report {
	if opts.TopBases <= 0 {
		opts.TopBases = 15
	}
	if opts.GeoLimit <= 0 {
		opts.GeoLimit = aggregate.DefaultGeoSampleLimit
	}
	if opts.Windows == (insight.Windows{}) {
		opts.Windows = insight.DefaultWindows
	}

	r := &Report{
		GeneratedAt: time.Now().Format(time.RFC3339),
		DatasetPath: opts.DatasetPath,
		Columns:     table.Columns,
		RawRows:     table.RawRows,
		DroppedRows: table.DroppedRows,
		StartDate:   opts.Range.Start.Format("2006-01-02"),
		EndDate:     opts.Range.End.Format("2006-01-02"),
		MinHour:     opts.Range.MinHour,
		MaxHour:     opts.Range.MaxHour,
	}

	view := filter.Apply(table, opts.Range)
	r.Summary = aggregate.Summarize(view)
	if len(view) == 0 {
		r.Empty = true
		return r
	}

	bases := aggregate.ByBase(view)
	r.Hourly = aggregate.ByHour(view)
	r.Weekday = aggregate.ByWeekday(view)
	r.Bases = bases.Top(opts.TopBases)
	r.BaseTotal = bases.Total
	r.DistinctBases = bases.Distinct
	r.Insights = &Insights{
		Hourly:  insight.DescribeHourly(r.Hourly, opts.Windows),
		Weekday: insight.DescribeWeekday(r.Weekday),
		Base:    insight.DescribeBase(bases),
	}
	if opts.IncludeGeo {
		r.GeoSample = aggregate.SampleGeoPoints(view, opts.GeoLimit)
		r.GeoSampleSize = len(r.GeoSample)
	}
	return r
}

// WriteJSON emits the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	payload, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(payload))
	return err
}

// WriteText renders the report the way the dashboard does, one section per
// chart, with proportional bars.
func (r *Report) WriteText(w io.Writer, chartWidth int) {
	fmt.Fprintf(w, "Trip Demand Report\n")
	fmt.Fprintf(w, "Generated: %s\n", r.GeneratedAt)
	fmt.Fprintf(w, "Dataset: %s (%s raw rows, %s dropped)\n",
		r.DatasetPath, humanize.Comma(int64(r.RawRows)), humanize.Comma(int64(r.DroppedRows)))
	fmt.Fprintf(w, "Filter: %s to %s, hours %02d-%02d\n\n", r.StartDate, r.EndDate, r.MinHour, r.MaxHour)

	if r.Empty {
		fmt.Fprintln(w, "No trips match the current filter selection. Try widening the filters.")
		return
	}

	fmt.Fprintf(w, "Total trips: %s | Unique service days: %s | Active dispatch bases: %s\n\n",
		humanize.Comma(int64(r.Summary.TotalTrips)),
		humanize.Comma(int64(r.Summary.DistinctDates)),
		humanize.Comma(int64(r.Summary.DistinctBases)))

	fmt.Fprintln(w, "Hourly Demand Profile")
	for _, line := range HourBars(r.Hourly, chartWidth) {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintf(w, "%s\n\n", indent(r.Insights.Hourly))

	fmt.Fprintln(w, "Demand by Day of Week")
	for _, line := range WeekdayBars(r.Weekday, chartWidth) {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintf(w, "%s\n\n", indent(r.Insights.Weekday))

	fmt.Fprintln(w, "Dispatch Base Activity")
	if len(r.Bases) == 0 {
		fmt.Fprintln(w, "  This dataset does not contain a base column.")
	} else {
		for _, line := range BaseBars(r.Bases, chartWidth) {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	fmt.Fprintf(w, "%s\n", indent(r.Insights.Base))

	if r.GeoSampleSize > 0 {
		fmt.Fprintf(w, "\nGeo sample: %s pickup points\n", humanize.Comma(int64(r.GeoSampleSize)))
	}
}

func indent(block string) string {
	return "  " + strings.ReplaceAll(block, "\n", "\n  ")
}
