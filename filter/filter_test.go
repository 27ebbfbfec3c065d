package filter

import (
	"testing"
	"time"

	"github.com/deereallinda/uber-nyc-2015-analysis/trip"
)

func day(d int) time.Time {
	return time.Date(2015, 5, d, 0, 0, 0, 0, time.UTC)
}

func recAt(d, hour int) trip.Record {
	return trip.NewRecord(time.Date(2015, 5, d, hour, 30, 0, 0, time.UTC))
}

func TestContainsIsInclusiveOnEveryBound(t *testing.T) {
	r := NewRange(day(10), day(12), 8, 17)
	cases := []struct {
		name string
		rec  trip.Record
		want bool
	}{
		{"start date min hour", recAt(10, 8), true},
		{"end date max hour", recAt(12, 17), true},
		{"inside", recAt(11, 12), true},
		{"day before start", recAt(9, 12), false},
		{"day after end", recAt(13, 12), false},
		{"hour below min", recAt(11, 7), false},
		{"hour above max", recAt(11, 18), false},
	}
	for _, tc := range cases {
		if got := r.Contains(tc.rec); got != tc.want {
			t.Errorf("%s: Contains = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNewRangeRepairsSwappedBounds(t *testing.T) {
	r := NewRange(day(12), day(10), 17, 8)
	if !r.Start.Equal(day(10)) || !r.End.Equal(day(12)) {
		t.Fatalf("expected dates swapped into order, got %v..%v", r.Start, r.End)
	}
	if r.MinHour != 8 || r.MaxHour != 17 {
		t.Fatalf("expected hours swapped into order, got %d..%d", r.MinHour, r.MaxHour)
	}
}

func TestNewRangeClampsHoursToDomain(t *testing.T) {
	r := NewRange(day(10), day(10), -5, 99)
	if r.MinHour != MinHour || r.MaxHour != MaxHour {
		t.Fatalf("expected hours clamped to %d..%d, got %d..%d",
			MinHour, MaxHour, r.MinHour, r.MaxHour)
	}
}

func TestNewRangeSingleDateSelection(t *testing.T) {
	r := NewRange(day(10), time.Time{}, 0, 23)
	if !r.Start.Equal(day(10)) || !r.End.Equal(day(10)) {
		t.Fatalf("expected a single selected date to span itself, got %v..%v", r.Start, r.End)
	}
	if !r.Contains(recAt(10, 0)) || !r.Contains(recAt(10, 23)) {
		t.Fatalf("expected the whole selected day to pass")
	}
	if r.Contains(recAt(11, 0)) {
		t.Fatalf("expected the next day to fail")
	}
}

func TestNewRangeTruncatesTimestampsToMidnight(t *testing.T) {
	r := NewRange(
		time.Date(2015, 5, 10, 13, 45, 0, 0, time.UTC),
		time.Date(2015, 5, 12, 1, 0, 0, 0, time.UTC),
		0, 23,
	)
	if !r.Start.Equal(day(10)) || !r.End.Equal(day(12)) {
		t.Fatalf("expected midnight bounds, got %v..%v", r.Start, r.End)
	}
}

func TestApplyPreservesOrderAndIsIdempotent(t *testing.T) {
	table := &trip.Table{Records: []trip.Record{
		recAt(9, 10), recAt(10, 10), recAt(11, 5), recAt(11, 10), recAt(12, 10), recAt(13, 10),
	}}
	r := NewRange(day(10), day(12), 8, 17)

	first := Apply(table, r)
	if len(first) != 3 {
		t.Fatalf("expected 3 records, got %d", len(first))
	}
	for i := 1; i < len(first); i++ {
		if first[i].Time.Before(first[i-1].Time) {
			t.Fatalf("expected input order preserved")
		}
	}

	second := Apply(&trip.Table{Records: first}, r)
	if len(second) != len(first) {
		t.Fatalf("expected re-applying the same range to be a no-op, got %d records", len(second))
	}
}

func TestApplyEmptyResultIsValid(t *testing.T) {
	table := &trip.Table{Records: []trip.Record{recAt(10, 10)}}
	out := Apply(table, NewRange(day(20), day(21), 0, 23))
	if out == nil || len(out) != 0 {
		t.Fatalf("expected an empty non-nil slice, got %v", out)
	}
}

func TestFullRangeCoversWholeTable(t *testing.T) {
	table := &trip.Table{
		Records: []trip.Record{recAt(10, 0), recAt(15, 23)},
		MinDate: day(10),
		MaxDate: day(15),
	}
	r := FullRange(table)
	if got := Apply(table, r); len(got) != len(table.Records) {
		t.Fatalf("expected every record selected, got %d of %d", len(got), len(table.Records))
	}
}

func TestRangeString(t *testing.T) {
	r := NewRange(day(1), day(31), 7, 9)
	want := "2015-05-01 to 2015-05-31, hours 07-09"
	if got := r.String(); got != want {
		t.Fatalf("String = %q, want %q", got, want)
	}
}
