package dataset

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// sqliteTripTable is the table read when the input is a SQLite database.
const sqliteTripTable = "trips"

// Load reads the raw table at path. CSV is the primary format; files with a
// .db/.sqlite/.sqlite3 extension are opened read-only as SQLite databases
// and their trips table is read instead. Nothing is ever written.
func Load(path string) (*RawTable, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: expected at %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrEmptyInput, path)
	}
	if isSQLitePath(path) {
		return loadSQLite(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parseCSV(path, data)
}

func isSQLitePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// parseCSV decodes header + rows from raw bytes. Ragged rows are tolerated;
// the header is required.
func parseCSV(path string, data []byte) (*RawTable, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s has no header", ErrEmptyInput, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has a header but no data rows", ErrEmptyInput, path)
	}
	return &RawTable{Columns: columns, Rows: rows}, nil
}

// loadSQLite reads every row of the trips table into string form. The
// database is opened with mode=ro so a bad path can never create a file and
// the tool stays read-only by construction.
func loadSQLite(path string) (*RawTable, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	rows, err := db.Query("SELECT * FROM " + sqliteTripTable)
	if err != nil {
		return nil, fmt.Errorf("query %s table in %s: %w", sqliteTripTable, path, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %s: %w", path, err)
	}

	var out [][]string
	scan := make([]any, len(columns))
	for i := range scan {
		scan[i] = new(any)
	}
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		record := make([]string, len(columns))
		for i, cell := range scan {
			record[i] = stringifyCell(*cell.(*any))
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", path, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s table in %s has no rows", ErrEmptyInput, sqliteTripTable, path)
	}
	return &RawTable{Columns: columns, Rows: out}, nil
}

func stringifyCell(v any) string {
	switch cell := v.(type) {
	case nil:
		return ""
	case string:
		return cell
	case []byte:
		return string(cell)
	case int64:
		return strconv.FormatInt(cell, 10)
	case float64:
		return strconv.FormatFloat(cell, 'f', -1, 64)
	case time.Time:
		return cell.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(cell)
	}
}
