package render

import "time"

var quarterEnds = []time.Month{time.March, time.June, time.September, time.December}

// QuarterlyDates returns one reference date per calendar quarter inside
// [start, end]: the last Friday of the quarter's closing month shifted back
// by shiftDays. Futures settlement windows cluster around these dates, so
// they are useful vertical guides on long-span charts.
func QuarterlyDates(start, end time.Time, shiftDays int) []time.Time {
	var out []time.Time
	for year := start.Year(); year <= end.Year(); year++ {
		for _, month := range quarterEnds {
			lastDay := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
			offset := (int(lastDay.Weekday()) - int(time.Friday) + 7) % 7
			target := lastDay.AddDate(0, 0, -offset-shiftDays)
			if !target.Before(start) && !target.After(end) {
				out = append(out, target)
			}
		}
	}
	return out
}
