// Package schema locates a usable timestamp column in a raw trip table,
// derives the calendar features every downstream consumer relies on, and
// canonicalizes the optional dispatch-base and coordinate columns.
package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	lev "github.com/agnivade/levenshtein"

	"github.com/deereallinda/uber-nyc-2015-analysis/dataset"
	"github.com/deereallinda/uber-nyc-2015-analysis/trip"
)

// timestampCandidates is the fixed priority list of recognized timestamp
// column names. The first one present wins.
var timestampCandidates = []string{
	"Date/Time",
	"DateTime",
	"Pickup_date",
	"Pickup_Date",
}

// Fallback column pair used when no single timestamp column exists.
const (
	dateColumn = "DATE"
	timeColumn = "TIME"
)

// baseCandidates lists base-identifier column names in priority order.
// "Base" is canonical; "Base Number" is the known alternate spelling.
var baseCandidates = []string{"Base", "Base Number"}

var (
	latCandidates = []string{"Lat", "Latitude", "Start_Lat"}
	lonCandidates = []string{"Lon", "Lng", "Longitude", "Start_Lon"}
)

// maxHeaderEditDistance bounds the near-miss header match: one edit after
// case folding catches stray spaces and single typos ("Date/ Time",
// "Pickup date") without letting unrelated columns masquerade as timestamps.
const maxHeaderEditDistance = 1

// Normalize builds the canonical trip table from a raw one. It is pure: the
// raw table is never mutated, and the same input always yields the same
// output. Rows whose timestamp fails to parse are dropped silently; the loss
// is observable through Table.RawRows vs len(Table.Records) and the
// DroppedRows counter.
func Normalize(raw *dataset.RawTable) (*trip.Table, error) {
	if raw.NumRows() == 0 {
		return nil, fmt.Errorf("%w: raw table has no rows", dataset.ErrEmptyInput)
	}

	tsCol, dateCol, timeCol, err := resolveTimestamp(raw)
	if err != nil {
		return nil, err
	}

	baseCol := resolveColumn(raw, baseCandidates...)
	latCol := resolveColumn(raw, latCandidates...)
	lonCol := resolveColumn(raw, lonCandidates...)

	table := &trip.Table{
		Columns: append([]string(nil), raw.Columns...),
		RawRows: raw.NumRows(),
	}
	table.Records = make([]trip.Record, 0, raw.NumRows())

	for i := 0; i < raw.NumRows(); i++ {
		value := ""
		if tsCol >= 0 {
			value = raw.Value(i, tsCol)
		} else {
			value = strings.TrimSpace(raw.Value(i, dateCol) + " " + raw.Value(i, timeCol))
		}
		ts, ok := trip.ParseTimestamp(value)
		if !ok {
			table.DroppedRows++
			continue
		}

		rec := trip.NewRecord(ts)
		if baseCol >= 0 {
			rec.Base = raw.Value(i, baseCol)
		}
		if latCol >= 0 && lonCol >= 0 {
			rec.Lat = parseCoordinate(raw.Value(i, latCol))
			rec.Lon = parseCoordinate(raw.Value(i, lonCol))
		}

		if table.MinDate.IsZero() || rec.Date.Before(table.MinDate) {
			table.MinDate = rec.Date
		}
		if rec.Date.After(table.MaxDate) {
			table.MaxDate = rec.Date
		}
		if rec.HasBase() {
			table.HasBases = true
		}
		if rec.HasCoordinates() {
			table.HasGeo = true
		}
		table.Records = append(table.Records, rec)
	}

	if len(table.Records) == 0 {
		return nil, fmt.Errorf("%w: all %d rows had unparseable timestamps",
			dataset.ErrEmptyInput, table.RawRows)
	}
	return table, nil
}

// resolveTimestamp picks the timestamp strategy: a recognized single column,
// else the DATE+TIME pair, else a SchemaError naming the columns present.
// Exactly one of (tsCol >= 0) or (dateCol/timeCol >= 0) holds on success.
func resolveTimestamp(raw *dataset.RawTable) (tsCol, dateCol, timeCol int, err error) {
	for _, name := range timestampCandidates {
		if col := resolveColumn(raw, name); col >= 0 {
			return col, -1, -1, nil
		}
	}
	dateCol = resolveColumn(raw, dateColumn)
	timeCol = resolveColumn(raw, timeColumn)
	if dateCol >= 0 && timeCol >= 0 {
		return -1, dateCol, timeCol, nil
	}
	return -1, -1, -1, &dataset.SchemaError{Columns: append([]string(nil), raw.Columns...)}
}

// resolveColumn finds the first candidate present in the raw table. Exact
// case-insensitive matches win; otherwise a single-edit near miss is
// accepted so a sloppy header does not reject the whole file.
func resolveColumn(raw *dataset.RawTable, candidates ...string) int {
	for _, name := range candidates {
		if col := raw.ColumnIndex(name); col >= 0 {
			return col
		}
	}
	for _, name := range candidates {
		want := foldHeader(name)
		for i, col := range raw.Columns {
			if lev.ComputeDistance(want, foldHeader(col)) <= maxHeaderEditDistance {
				return i
			}
		}
	}
	return -1
}

func foldHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// parseCoordinate coerces a cell to float64, using NaN as the missing
// marker. Rows are never dropped over coordinates.
func parseCoordinate(value string) float64 {
	if value == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
