package timeseries

import (
	"math"
	"sort"
)

// Quantile returns the q-th quantile (0 <= q <= 1) of the supplied values
// using linear interpolation between order statistics. NaN entries are
// skipped; the result is NaN when no finite values remain.
func Quantile(values []float64, q float64) float64 {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 || q < 0 || q > 1 {
		return math.NaN()
	}
	sort.Float64s(finite)
	if len(finite) == 1 {
		return finite[0]
	}
	pos := q * float64(len(finite)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return finite[lo]
	}
	frac := pos - float64(lo)
	return finite[lo]*(1-frac) + finite[hi]*frac
}

// ColumnQuantile returns the q-th quantile of the named table column.
func (t *Table) ColumnQuantile(name string, q float64) (float64, error) {
	vals, err := t.Column(name)
	if err != nil {
		return 0, err
	}
	return Quantile(vals, q), nil
}
