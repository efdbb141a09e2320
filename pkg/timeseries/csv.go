package timeseries

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// TimeColumn is the header name of the timestamp index column.
const TimeColumn = "time_UTC"

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadCSV reads a table from a CSV file. Files ending in .zst are
// decompressed transparently.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("timeseries: open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("timeseries: zstd reader for %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}
	return ReadCSV(r)
}

// ReadCSV reads a table from CSV data. The first record is the header and
// must contain the time_UTC column; every other column is parsed as a
// float64 series with empty or non-numeric cells stored as NaN.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("timeseries: read header: %w", err)
	}

	timeIdx := -1
	order := make([]string, 0, len(header)-1)
	for i, name := range header {
		name = strings.TrimSpace(name)
		header[i] = name
		if name == TimeColumn {
			timeIdx = i
			continue
		}
		order = append(order, name)
	}
	if timeIdx < 0 {
		return nil, &MissingColumnError{Column: TimeColumn}
	}

	var times []time.Time
	cols := make(map[string][]float64, len(order))
	for _, name := range order {
		cols[name] = nil
	}

	row := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("timeseries: read row %d: %w", row, err)
		}
		ts, err := parseTime(strings.TrimSpace(rec[timeIdx]))
		if err != nil {
			return nil, &TimestampError{Row: row, Value: rec[timeIdx], Cause: err.Error()}
		}
		times = append(times, ts)
		for i, name := range header {
			if i == timeIdx {
				continue
			}
			cell := ""
			if i < len(rec) {
				cell = strings.TrimSpace(rec[i])
			}
			v := math.NaN()
			if cell != "" {
				if parsed, err := strconv.ParseFloat(cell, 64); err == nil {
					v = parsed
				}
			}
			cols[name] = append(cols[name], v)
		}
		row++
	}

	return New(times, cols, order)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty value")
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	// Epoch seconds or milliseconds.
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognised format")
}
