package timeseries

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testTimes(n int, step time.Duration) []time.Time {
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.Add(time.Duration(i) * step)
	}
	return out
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(nil, nil, nil)
	require.ErrorIs(t, err, ErrEmptyDataset)
}

func TestNewRejectsNonIncreasingTimestamps(t *testing.T) {
	times := testTimes(3, 5*time.Minute)
	times[2] = times[1]
	_, err := New(times, map[string][]float64{"close": {1, 2, 3}}, []string{"close"})
	var tsErr *TimestampError
	require.ErrorAs(t, err, &tsErr)
	require.Equal(t, 2, tsErr.Row)
}

func TestColumnMissingNamesColumn(t *testing.T) {
	tbl, err := New(testTimes(2, time.Minute), map[string][]float64{"close": {1, 2}}, []string{"close"})
	require.NoError(t, err)

	_, err = tbl.Column("rsi_14")
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "rsi_14", missing.Column)
	require.Contains(t, err.Error(), "rsi_14")
}

func TestSlice(t *testing.T) {
	times := testTimes(10, time.Hour)
	vals := make([]float64, 10)
	for i := range vals {
		vals[i] = float64(i)
	}
	tbl, err := New(times, map[string][]float64{"close": vals}, []string{"close"})
	require.NoError(t, err)

	sub, err := tbl.Slice(times[3], times[6])
	require.NoError(t, err)
	require.Equal(t, 4, sub.Len())
	require.Equal(t, times[3], sub.Start())
	require.Equal(t, times[6], sub.End())

	col, err := sub.Column("close")
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4, 5, 6}, col)

	_, err = tbl.Slice(times[9].Add(time.Hour), times[9].Add(2*time.Hour))
	require.ErrorIs(t, err, ErrEmptyDataset)
}

func TestTimeStep(t *testing.T) {
	times := testTimes(5, 5*time.Minute)
	// One gap should not move the median.
	times[4] = times[4].Add(time.Hour)
	tbl, err := New(times, map[string][]float64{"v": {1, 2, 3, 4, 5}}, []string{"v"})
	require.NoError(t, err)
	require.Equal(t, 5*time.Minute, tbl.TimeStep())
}

func TestColumnBoundsSkipsNaN(t *testing.T) {
	tbl, err := New(testTimes(4, time.Minute),
		map[string][]float64{"v": {math.NaN(), 2, 9, math.NaN()}}, []string{"v"})
	require.NoError(t, err)

	min, max, err := tbl.ColumnBounds("v")
	require.NoError(t, err)
	require.Equal(t, 2.0, min)
	require.Equal(t, 9.0, max)

	_, _, err = tbl.ColumnBounds("absent")
	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
}
