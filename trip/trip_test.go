package trip

import (
	"math"
	"testing"
	"time"
)

func TestParseTimestampAcceptsRawExportLayouts(t *testing.T) {
	cases := []struct {
		value string
		want  time.Time
	}{
		{"5/1/2015 0:02", time.Date(2015, 5, 1, 0, 2, 0, 0, time.UTC)},
		{"4/18/2014 21:38:00", time.Date(2014, 4, 18, 21, 38, 0, 0, time.UTC)},
		{"2015-05-01 17:30:00", time.Date(2015, 5, 1, 17, 30, 0, 0, time.UTC)},
		{"2015-05-01T17:30:00", time.Date(2015, 5, 1, 17, 30, 0, 0, time.UTC)},
		{"2015-05-01", time.Date(2015, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, ok := ParseTimestamp(tc.value)
		if !ok {
			t.Fatalf("expected %q to parse", tc.value)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("parse %q: got %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "not a date", "99/99/2015 0:00", "2015-13-40"} {
		if _, ok := ParseTimestamp(value); ok {
			t.Fatalf("expected %q to fail parsing", value)
		}
	}
}

func TestNewRecordDerivesCalendarFields(t *testing.T) {
	rec := NewRecord(time.Date(2015, 1, 1, 8, 15, 0, 0, time.UTC)) // Jan 1 2015 was a Thursday
	if rec.Hour != 8 {
		t.Fatalf("expected hour 8, got %d", rec.Hour)
	}
	if rec.Weekday != Thursday {
		t.Fatalf("expected Thursday, got %s", rec.Weekday)
	}
	if !rec.Date.Equal(time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected midnight-truncated date, got %v", rec.Date)
	}
	if rec.HasBase() {
		t.Fatalf("expected new record to have no base")
	}
	if rec.HasCoordinates() {
		t.Fatalf("expected new record to have no coordinates")
	}
}

func TestHasCoordinatesRequiresBoth(t *testing.T) {
	rec := NewRecord(time.Date(2015, 5, 1, 12, 0, 0, 0, time.UTC))
	rec.Lat = 40.7
	if rec.HasCoordinates() {
		t.Fatalf("latitude alone must not count as coordinates")
	}
	rec.Lon = -74.0
	if !rec.HasCoordinates() {
		t.Fatalf("expected coordinates with both values set")
	}
	rec.Lat = math.NaN()
	if rec.HasCoordinates() {
		t.Fatalf("NaN latitude must read as missing")
	}
}

func TestWeekdaysOrderIsMondayFirst(t *testing.T) {
	if len(Weekdays) != 7 {
		t.Fatalf("expected 7 weekday keys, got %d", len(Weekdays))
	}
	if Weekdays[0] != Monday || Weekdays[6] != Sunday {
		t.Fatalf("expected Monday-first ordering, got %v", Weekdays)
	}
	weekendCount := 0
	for _, day := range Weekdays {
		if day.IsWeekend() {
			weekendCount++
		}
	}
	if weekendCount != 2 {
		t.Fatalf("expected exactly 2 weekend keys, got %d", weekendCount)
	}
}
