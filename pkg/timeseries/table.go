package timeseries

import (
	"math"
	"sort"
	"time"
)

// Table is an ordered sequence of rows keyed by UTC timestamp. Columns are
// named float64 series of the same length as the timestamp index; missing
// cells are NaN. A Table is read-only after construction.
type Table struct {
	times []time.Time
	cols  map[string][]float64
	order []string
}

// New constructs a Table from a timestamp index and named columns.
// Timestamps must be strictly increasing and every column must match the
// index length.
func New(times []time.Time, cols map[string][]float64, order []string) (*Table, error) {
	if len(times) == 0 {
		return nil, ErrEmptyDataset
	}
	for i := 1; i < len(times); i++ {
		if !times[i].After(times[i-1]) {
			return nil, &TimestampError{
				Row:   i,
				Value: times[i].UTC().Format(time.RFC3339),
				Cause: "timestamps must be strictly increasing",
			}
		}
	}
	if order == nil {
		order = make([]string, 0, len(cols))
		for name := range cols {
			order = append(order, name)
		}
		sort.Strings(order)
	}
	for _, name := range order {
		if len(cols[name]) != len(times) {
			return nil, &MissingColumnError{Column: name}
		}
	}
	return &Table{times: times, cols: cols, order: order}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.times) }

// Times returns the timestamp index. The slice aliases the table's backing
// storage and must not be modified.
func (t *Table) Times() []time.Time { return t.times }

// Start returns the first timestamp.
func (t *Table) Start() time.Time { return t.times[0] }

// End returns the last timestamp.
func (t *Table) End() time.Time { return t.times[len(t.times)-1] }

// Columns returns the column names in header order.
func (t *Table) Columns() []string { return t.order }

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns the named series or a MissingColumnError. The slice aliases
// the table's backing storage and must not be modified.
func (t *Table) Column(name string) ([]float64, error) {
	vals, ok := t.cols[name]
	if !ok {
		return nil, &MissingColumnError{Column: name}
	}
	return vals, nil
}

// Slice returns the sub-table covering [from, to] inclusive. The result
// shares backing storage with the receiver.
func (t *Table) Slice(from, to time.Time) (*Table, error) {
	lo := sort.Search(len(t.times), func(i int) bool { return !t.times[i].Before(from) })
	hi := sort.Search(len(t.times), func(i int) bool { return t.times[i].After(to) })
	if lo >= hi {
		return nil, ErrEmptyDataset
	}
	cols := make(map[string][]float64, len(t.cols))
	for name, vals := range t.cols {
		cols[name] = vals[lo:hi]
	}
	return &Table{times: t.times[lo:hi], cols: cols, order: t.order}, nil
}

// TimeStep returns the median spacing between consecutive rows. Tables with
// a single row report zero.
func (t *Table) TimeStep() time.Duration {
	if len(t.times) < 2 {
		return 0
	}
	diffs := make([]time.Duration, len(t.times)-1)
	for i := 1; i < len(t.times); i++ {
		diffs[i-1] = t.times[i].Sub(t.times[i-1])
	}
	sort.Slice(diffs, func(i, j int) bool { return diffs[i] < diffs[j] })
	return diffs[len(diffs)/2]
}

// ColumnBounds returns the finite min and max of the named column. NaN cells
// are skipped. Both results are NaN when the column has no finite values.
func (t *Table) ColumnBounds(name string) (min, max float64, err error) {
	vals, err := t.Column(name)
	if err != nil {
		return 0, 0, err
	}
	min, max = math.NaN(), math.NaN()
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return min, max, nil
}
