package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the two file-level failure modes. Both are fatal to the
// current render pass: the driver reports them and halts rather than showing
// a partial dashboard.
var (
	// ErrMissingInput means the backing data file does not exist.
	ErrMissingInput = errors.New("input file does not exist")
	// ErrEmptyInput means the file exists but yielded no usable rows.
	ErrEmptyInput = errors.New("input contains no usable rows")
)

// SchemaError reports that no timestamp resolution strategy succeeded. It
// carries the column names that were actually present so the operator can see
// what the file looked like without reopening it.
type SchemaError struct {
	Columns []string
}

func (e *SchemaError) Error() string {
	if len(e.Columns) == 0 {
		return "no usable timestamp column"
	}
	return fmt.Sprintf("no usable timestamp column; columns present: %s",
		strings.Join(e.Columns, ", "))
}
