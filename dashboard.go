package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/deereallinda/uber-nyc-2015-analysis/aggregate"
	"github.com/deereallinda/uber-nyc-2015-analysis/config"
	"github.com/deereallinda/uber-nyc-2015-analysis/filter"
	"github.com/deereallinda/uber-nyc-2015-analysis/insight"
	"github.com/deereallinda/uber-nyc-2015-analysis/report"
	"github.com/deereallinda/uber-nyc-2015-analysis/trip"
)

const dateFieldLayout = "2006-01-02"

// dashboard renders the interactive layout when a compatible terminal is
// available: a filter form on the left, KPI cards on top, three chart panes,
// and the insight text underneath. Every control change triggers one full
// synchronous recompute pass over the immutable normalized table; all
// derived views are freshly allocated per render, so no locking is needed.
type dashboard struct {
	app   *tview.Application
	table *trip.Table
	cfg   *config.Config

	startField   *tview.InputField
	endField     *tview.InputField
	minHourField *tview.InputField
	maxHourField *tview.InputField

	statusView  *tview.TextView
	kpiView     *tview.TextView
	hourView    *tview.TextView
	weekdayView *tview.TextView
	baseView    *tview.TextView
	insightView *tview.TextView
	systemView  *tview.TextView
}

func newDashboard(table *trip.Table, cfg *config.Config) *dashboard {
	makePane := func(title string) *tview.TextView {
		tv := tview.NewTextView().
			SetDynamicColors(true).
			SetWrap(false)
		tv.SetBorder(true).SetTitle(title).SetTitleAlign(tview.AlignLeft)
		return tv
	}

	d := &dashboard{
		table:       table,
		cfg:         cfg,
		kpiView:     makePane("Overview"),
		hourView:    makePane("Hourly Demand"),
		weekdayView: makePane("Day of Week"),
		baseView:    makePane("Dispatch Bases"),
		insightView: makePane("Insights"),
		systemView:  makePane("System"),
	}
	d.insightView.SetWrap(true)
	d.systemView.SetTextColor(tcell.ColorYellow)

	d.startField = tview.NewInputField().SetLabel("Start date ").
		SetText(table.MinDate.Format(dateFieldLayout)).SetFieldWidth(12)
	d.endField = tview.NewInputField().SetLabel("End date   ").
		SetText(table.MaxDate.Format(dateFieldLayout)).SetFieldWidth(12)
	d.minHourField = tview.NewInputField().SetLabel("Min hour   ").
		SetText("0").SetFieldWidth(4)
	d.maxHourField = tview.NewInputField().SetLabel("Max hour   ").
		SetText("23").SetFieldWidth(4)

	d.statusView = tview.NewTextView().SetDynamicColors(true).SetWrap(true)

	form := tview.NewForm().
		AddFormItem(d.startField).
		AddFormItem(d.endField).
		AddFormItem(d.minHourField).
		AddFormItem(d.maxHourField).
		AddButton("Apply", d.applyFilters).
		AddButton("Reset", d.resetFilters).
		AddButton("Quit", func() { d.app.Stop() })
	form.SetBorder(true).SetTitle("Filters").SetTitleAlign(tview.AlignLeft)

	sidebar := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 13, 0, true).
		AddItem(d.statusView, 4, 0, false).
		AddItem(d.systemView, 0, 1, false)

	charts := tview.NewFlex().
		AddItem(d.hourView, 0, 2, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(d.weekdayView, 11, 0, false).
			AddItem(d.baseView, 0, 1, false), 0, 2, false)

	content := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.kpiView, 5, 0, false).
		AddItem(charts, 0, 2, false).
		AddItem(d.insightView, 13, 0, false)

	layout := tview.NewFlex().
		AddItem(sidebar, 34, 0, true).
		AddItem(content, 0, 1, false)

	d.app = tview.NewApplication().SetRoot(layout, true).EnableMouse(true)
	d.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC {
			d.app.Stop()
			return nil
		}
		return event
	})

	d.render(filter.FullRange(table))
	return d
}

// Run blocks until the user quits.
func (d *dashboard) Run() error {
	return d.app.Run()
}

// SystemWriter exposes the system pane for the log fanout, so log lines land
// in the UI instead of corrupting the terminal.
func (d *dashboard) SystemWriter() *tview.TextView {
	return d.systemView
}

// applyFilters reads the form, repairs bad input the same way the filter
// engine would, and rerenders. Unparseable dates fall back to the dataset
// bounds rather than erroring.
func (d *dashboard) applyFilters() {
	start := parseDateField(d.startField.GetText(), d.table.MinDate)
	end := parseDateField(d.endField.GetText(), d.table.MaxDate)
	minHour := parseHourField(d.minHourField.GetText(), filter.MinHour)
	maxHour := parseHourField(d.maxHourField.GetText(), filter.MaxHour)

	r := filter.NewRange(start, end, minHour, maxHour)
	d.startField.SetText(r.Start.Format(dateFieldLayout))
	d.endField.SetText(r.End.Format(dateFieldLayout))
	d.minHourField.SetText(strconv.Itoa(r.MinHour))
	d.maxHourField.SetText(strconv.Itoa(r.MaxHour))
	d.render(r)
}

func (d *dashboard) resetFilters() {
	r := filter.FullRange(d.table)
	d.startField.SetText(r.Start.Format(dateFieldLayout))
	d.endField.SetText(r.End.Format(dateFieldLayout))
	d.minHourField.SetText(strconv.Itoa(filter.MinHour))
	d.maxHourField.SetText(strconv.Itoa(filter.MaxHour))
	d.render(r)
}

// render runs the full recompute pass for one filter selection and updates
// every pane. Called from the UI event loop only.
func (d *dashboard) render(r filter.Range) {
	view := filter.Apply(d.table, r)
	summary := aggregate.Summarize(view)

	d.statusView.SetText(fmt.Sprintf("[gray]%s[-]\n%s",
		r.String(), insight.DescribeView(summary, d.table)))

	if len(view) == 0 {
		warn := "[orange]No trips match the current filter selection. Try widening the filters.[-]"
		d.kpiView.SetText(warn)
		d.hourView.SetText("")
		d.weekdayView.SetText("")
		d.baseView.SetText("")
		d.insightView.SetText("")
		return
	}

	hours := aggregate.ByHour(view)
	days := aggregate.ByWeekday(view)
	bases := aggregate.ByBase(view)
	windows := insight.Windows{
		MorningStart: d.cfg.Insight.MorningStartHour,
		MorningEnd:   d.cfg.Insight.MorningEndHour,
		EveningStart: d.cfg.Insight.EveningStartHour,
		EveningEnd:   d.cfg.Insight.EveningEndHour,
	}

	d.kpiView.SetText(d.kpiText(summary, view))
	d.hourView.SetText(chartText(report.HourBars(hours, d.chartWidth())))
	d.weekdayView.SetText(chartText(report.WeekdayBars(days, d.chartWidth())))
	d.baseView.SetText(baseChartText(bases, d.cfg.Dataset.TopBases, d.chartWidth()))

	var b strings.Builder
	b.WriteString(insight.DescribeHourly(hours, windows))
	b.WriteString("\n")
	b.WriteString(insight.DescribeWeekday(days))
	b.WriteString("\n")
	b.WriteString(insight.DescribeBase(bases))
	d.insightView.SetText(b.String())
}

func (d *dashboard) kpiText(summary aggregate.Summary, view []trip.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[yellow]Total trips:[-] %d    [yellow]Unique service days:[-] %d    [yellow]Active dispatch bases:[-] %d",
		summary.TotalTrips, summary.DistinctDates, summary.DistinctBases)
	if d.cfg.Dashboard.ShowGeoStats && d.table.HasGeo {
		points := aggregate.SampleGeoPoints(view, d.cfg.Dataset.GeoSampleLimit)
		fmt.Fprintf(&b, "\n[yellow]Geo sample:[-] %d pickup points (cap %d)",
			len(points), d.cfg.Dataset.GeoSampleLimit)
	}
	return b.String()
}

func (d *dashboard) chartWidth() int {
	return d.cfg.Dashboard.ChartWidth
}

func chartText(lines []string) string {
	return strings.Join(lines, "\n")
}

func baseChartText(bases aggregate.BaseBreakdown, topN, width int) string {
	if bases.Total == 0 {
		return "This dataset does not contain a base column."
	}
	return chartText(report.BaseBars(bases.Top(topN), width))
}

func parseDateField(value string, fallback time.Time) time.Time {
	t, err := time.Parse(dateFieldLayout, strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return t
}

func parseHourField(value string, fallback int) int {
	h, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return h
}
