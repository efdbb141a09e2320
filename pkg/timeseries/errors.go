package timeseries

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset is returned when a table holds no rows.
var ErrEmptyDataset = errors.New("timeseries: empty dataset")

// MissingColumnError reports a column requested by name that the table
// does not carry.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("timeseries: missing column %q", e.Column)
}

// TimestampError reports a row whose timestamp could not be parsed or
// breaks the strictly-increasing invariant.
type TimestampError struct {
	Row   int
	Value string
	Cause string
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("timeseries: row %d: bad timestamp %q: %s", e.Row, e.Value, e.Cause)
}
