// Package dataset loads the raw trip table from disk (CSV or read-only
// SQLite) and memoizes the normalized result keyed by the file's content
// hash, so repeated renders never re-parse an unchanged file.
package dataset

import "strings"

// RawTable is a loosely-typed table straight off disk: an ordered column
// list and string cell values. The schema normalizer decides what the
// columns mean; this package only carries them.
type RawTable struct {
	Columns []string
	Rows    [][]string

	index map[string]int // lower-cased column name -> position
}

// NumRows returns the number of data rows (the header is not counted).
func (t *RawTable) NumRows() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex returns the position of a column by case-insensitive name,
// or -1 when absent.
func (t *RawTable) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	if t.index == nil {
		t.index = make(map[string]int, len(t.Columns))
		for i, col := range t.Columns {
			key := strings.ToLower(strings.TrimSpace(col))
			if _, exists := t.index[key]; !exists {
				t.index[key] = i
			}
		}
	}
	pos, ok := t.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return -1
	}
	return pos
}

// Value returns the trimmed cell at (row, col). Short rows read as empty
// cells rather than panicking; ragged CSV exports are common enough.
func (t *RawTable) Value(row, col int) string {
	if t == nil || row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	cells := t.Rows[row]
	if col >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col])
}
