package schema

import (
	"errors"
	"testing"
	"time"

	"github.com/deereallinda/uber-nyc-2015-analysis/dataset"
	"github.com/deereallinda/uber-nyc-2015-analysis/trip"
)

func rawTable(columns []string, rows ...[]string) *dataset.RawTable {
	return &dataset.RawTable{Columns: columns, Rows: rows}
}

func TestNormalizeUsesRecognizedTimestampColumn(t *testing.T) {
	raw := rawTable(
		[]string{"Date/Time", "Base"},
		[]string{"5/1/2015 0:02", "B02512"},
		[]string{"5/1/2015 18:45", "B02598"},
	)
	table, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(table.Records))
	}
	rec := table.Records[0]
	if rec.Hour != 0 || rec.Weekday != trip.Friday {
		t.Fatalf("expected hour 0 on Friday, got hour %d %s", rec.Hour, rec.Weekday)
	}
	if rec.Base != "B02512" {
		t.Fatalf("expected base B02512, got %q", rec.Base)
	}
	if table.RawRows != 2 || table.DroppedRows != 0 {
		t.Fatalf("expected 2 raw rows and no drops, got %d/%d", table.RawRows, table.DroppedRows)
	}
}

func TestNormalizePrefersFirstCandidateInPriorityOrder(t *testing.T) {
	raw := rawTable(
		[]string{"Pickup_date", "Date/Time"},
		[]string{"2015-01-01 06:00:00", "2015-06-30 23:00:00"},
	)
	table, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Date/Time outranks Pickup_date in the priority list.
	if table.Records[0].Hour != 23 {
		t.Fatalf("expected the Date/Time column to win, got hour %d", table.Records[0].Hour)
	}
}

func TestNormalizeConcatenatesDateAndTimeColumns(t *testing.T) {
	raw := rawTable(
		[]string{"DATE", "TIME", "Base"},
		[]string{"2015-05-01", "17:30:00", "B02512"},
	)
	table, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Records[0].Hour != 17 {
		t.Fatalf("expected hour 17 from DATE+TIME, got %d", table.Records[0].Hour)
	}
}

func TestNormalizeAcceptsNearMissHeader(t *testing.T) {
	raw := rawTable(
		[]string{"Date/ Time"},
		[]string{"5/1/2015 9:00"},
	)
	table, err := Normalize(raw)
	if err != nil {
		t.Fatalf("expected the single-edit header to resolve, got %v", err)
	}
	if table.Records[0].Hour != 9 {
		t.Fatalf("expected hour 9, got %d", table.Records[0].Hour)
	}
}

func TestNormalizeDropsUnparseableRowsSilently(t *testing.T) {
	raw := rawTable(
		[]string{"Date/Time"},
		[]string{"5/1/2015 8:00"},
		[]string{"garbage"},
		[]string{"5/1/2015 9:00"},
		[]string{""},
	)
	table, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Records) != 2 {
		t.Fatalf("expected 2 surviving records, got %d", len(table.Records))
	}
	if table.RawRows != 4 || table.DroppedRows != 2 {
		t.Fatalf("expected the loss to stay observable (4 raw, 2 dropped), got %d/%d",
			table.RawRows, table.DroppedRows)
	}
}

func TestNormalizeRenamesBaseNumberColumn(t *testing.T) {
	raw := rawTable(
		[]string{"Date/Time", "Base Number"},
		[]string{"5/1/2015 8:00", "B02764"},
	)
	table, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Records[0].Base != "B02764" {
		t.Fatalf("expected Base Number to canonicalize, got %q", table.Records[0].Base)
	}
	if !table.HasBases {
		t.Fatalf("expected HasBases to be set")
	}
}

func TestNormalizeWithoutBaseColumnIsNotAnError(t *testing.T) {
	raw := rawTable(
		[]string{"Date/Time"},
		[]string{"5/1/2015 8:00"},
	)
	table, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Records[0].HasBase() || table.HasBases {
		t.Fatalf("expected base to stay absent")
	}
}

func TestNormalizeCoercesBadCoordinatesToMissing(t *testing.T) {
	raw := rawTable(
		[]string{"Date/Time", "Lat", "Lon"},
		[]string{"5/1/2015 8:00", "40.7690", "-73.9549"},
		[]string{"5/1/2015 9:00", "not-a-number", "-73.9549"},
		[]string{"5/1/2015 10:00", "", ""},
	)
	table, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Records) != 3 {
		t.Fatalf("coordinate problems must never drop rows, got %d records", len(table.Records))
	}
	if !table.Records[0].HasCoordinates() {
		t.Fatalf("expected numeric coordinates on the first row")
	}
	if table.Records[1].HasCoordinates() || table.Records[2].HasCoordinates() {
		t.Fatalf("expected bad and empty coordinates to read as missing")
	}
	if !table.HasGeo {
		t.Fatalf("expected HasGeo from the first row")
	}
}

func TestNormalizeTracksDateBounds(t *testing.T) {
	raw := rawTable(
		[]string{"Date/Time"},
		[]string{"5/3/2015 8:00"},
		[]string{"5/1/2015 9:00"},
		[]string{"5/2/2015 10:00"},
	)
	table, err := Normalize(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantMin := time.Date(2015, 5, 1, 0, 0, 0, 0, time.UTC)
	wantMax := time.Date(2015, 5, 3, 0, 0, 0, 0, time.UTC)
	if !table.MinDate.Equal(wantMin) || !table.MaxDate.Equal(wantMax) {
		t.Fatalf("expected bounds %v..%v, got %v..%v", wantMin, wantMax, table.MinDate, table.MaxDate)
	}
}

func TestNormalizeFailsWithSchemaErrorNamingColumns(t *testing.T) {
	raw := rawTable(
		[]string{"foo", "bar"},
		[]string{"1", "2"},
	)
	_, err := Normalize(raw)
	var schemaErr *dataset.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(schemaErr.Columns) != 2 || schemaErr.Columns[0] != "foo" {
		t.Fatalf("expected the error to carry the columns present, got %v", schemaErr.Columns)
	}
}

func TestNormalizeEmptyTableIsEmptyInput(t *testing.T) {
	_, err := Normalize(&dataset.RawTable{Columns: []string{"Date/Time"}})
	if !errors.Is(err, dataset.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestNormalizeAllRowsUnparseableIsEmptyInput(t *testing.T) {
	raw := rawTable(
		[]string{"Date/Time"},
		[]string{"nope"},
		[]string{"also nope"},
	)
	_, err := Normalize(raw)
	if !errors.Is(err, dataset.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput when every row drops, got %v", err)
	}
}

func TestNormalizeDoesNotMutateRawTable(t *testing.T) {
	raw := rawTable(
		[]string{"Date/Time", "Base"},
		[]string{"5/1/2015 8:00", "B02512"},
	)
	if _, err := Normalize(raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.Columns[1] != "Base" || raw.Rows[0][0] != "5/1/2015 8:00" {
		t.Fatalf("normalize must not mutate its input")
	}
}
