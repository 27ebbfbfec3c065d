// Package trip defines the canonical trip record produced by schema
// normalization plus the fixed weekday and hour domains used by the
// filtering, aggregation, and insight layers.
package trip

import (
	"math"
	"time"
)

// Weekday is a fixed weekday name derived from a trip timestamp.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists the seven weekday keys in Monday-first order. Aggregations
// and charts iterate this slice so the key order never depends on the data.
var Weekdays = []Weekday{
	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday,
}

// IsWeekend reports whether the weekday falls on Saturday or Sunday.
func (w Weekday) IsWeekend() bool {
	return w == Saturday || w == Sunday
}

// WeekdayOf maps a timestamp to its weekday name.
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// Record represents a single normalized trip. Every record carries a valid
// timestamp and the calendar fields derived from it; Base and the coordinates
// are optional and marked absent rather than dropping the row.
type Record struct {
	Time    time.Time // Parsed pickup timestamp (timezone-naive, stored as UTC)
	Date    time.Time // Calendar date of Time, truncated to midnight
	Hour    int       // Hour component of Time, 0-23
	Weekday Weekday   // Weekday name of Time
	Base    string    // Dispatch base identifier; empty when the dataset has none
	Lat     float64   // Pickup latitude; NaN when absent or non-numeric
	Lon     float64   // Pickup longitude; NaN when absent or non-numeric
}

// HasBase reports whether the record carries a dispatch base identifier.
func (r Record) HasBase() bool {
	return r.Base != ""
}

// HasCoordinates reports whether both coordinates parsed as numbers.
func (r Record) HasCoordinates() bool {
	return !math.IsNaN(r.Lat) && !math.IsNaN(r.Lon)
}

// Table is an ordered, immutable sequence of normalized records plus the
// bookkeeping that makes the lossy normalization step observable: RawRows is
// the row count of the source table, DroppedRows how many of those were lost
// to unparseable timestamps.
type Table struct {
	Records     []Record
	Columns     []string // Column names of the raw source table, for diagnosis
	RawRows     int
	DroppedRows int
	MinDate     time.Time // Earliest Date across Records
	MaxDate     time.Time // Latest Date across Records
	HasBases    bool      // True when at least one record carries a base
	HasGeo      bool      // True when at least one record carries coordinates
}

// DateOf truncates a timestamp to its calendar date at midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// timestampLayouts are tried in order by ParseTimestamp. The slash layouts
// cover the raw Uber exports (e.g. "5/1/2015 0:02"); the dashed ones cover
// re-exports from spreadsheets and SQLite.
var timestampLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006",
}

// ParseTimestamp parses a raw timestamp value leniently. All parsing is
// timezone-naive: values never carry an offset and are interpreted in UTC.
// The second return is false when no layout matched.
func ParseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NewRecord builds a record from a parsed timestamp, deriving the calendar
// fields. Base and coordinates start absent.
func NewRecord(t time.Time) Record {
	return Record{
		Time:    t,
		Date:    DateOf(t),
		Hour:    t.Hour(),
		Weekday: WeekdayOf(t),
		Lat:     math.NaN(),
		Lon:     math.NaN(),
	}
}
