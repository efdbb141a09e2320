package render

import (
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// stepMid expands samples into a mid-step path: each value is held flat to
// the midpoint between neighbouring timestamps.
func stepMid(times []time.Time, values []float64) ([]time.Time, []float64) {
	if len(times) < 2 {
		return times, values
	}
	outT := make([]time.Time, 0, 3*len(times))
	outV := make([]float64, 0, 3*len(times))
	outT = append(outT, times[0])
	outV = append(outV, values[0])
	for i := 1; i < len(times); i++ {
		mid := times[i-1].Add(times[i].Sub(times[i-1]) / 2)
		outT = append(outT, mid, mid, times[i])
		outV = append(outV, values[i-1], values[i], values[i])
	}
	return outT, outV
}

type segment struct {
	times  []time.Time
	values []float64
}

// splitSegments breaks a column into runs of consecutive finite values so
// missing cells render as gaps instead of connecting lines.
func splitSegments(times []time.Time, values []float64) []segment {
	var segs []segment
	var cur segment
	flush := func() {
		if len(cur.times) > 0 {
			segs = append(segs, cur)
			cur = segment{}
		}
	}
	for i, v := range values {
		if math.IsNaN(v) {
			flush()
			continue
		}
		cur.times = append(cur.times, times[i])
		cur.values = append(cur.values, v)
	}
	flush()
	return segs
}

// stepLineSeries builds the mid-step line series for a column, one series
// per finite run. An isolated sample still occupies its cell: the value is
// held flat for hold around its timestamp, so sparse columns gap instead of
// disappearing. The column name is attached to the first run only.
func stepLineSeries(name string, times []time.Time, values []float64, color drawing.Color, width float64, hold time.Duration) []chart.Series {
	var out []chart.Series
	for _, seg := range splitSegments(times, values) {
		var st []time.Time
		var sv []float64
		switch {
		case len(seg.times) >= 2:
			st, sv = stepMid(seg.times, seg.values)
		case hold > 0:
			half := hold / 2
			st = []time.Time{seg.times[0].Add(-half), seg.times[0].Add(half)}
			sv = []float64{seg.values[0], seg.values[0]}
		default:
			continue
		}
		series := chart.TimeSeries{
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: width,
			},
			XValues: st,
			YValues: sv,
		}
		if len(out) == 0 {
			series.Name = name
		}
		out = append(out, series)
	}
	return out
}

func verticalMarker(at time.Time, lim AxisLimits, color drawing.Color) chart.Series {
	return chart.TimeSeries{
		Style: chart.Style{
			StrokeColor:     color,
			StrokeWidth:     1.0,
			StrokeDashArray: dashPattern,
		},
		XValues: []time.Time{at, at},
		YValues: []float64{lim.Min, lim.Max},
	}
}

func horizontalLevel(start, end time.Time, level float64, color drawing.Color, dashed bool) chart.Series {
	style := chart.Style{
		StrokeColor: color,
		StrokeWidth: 0.8,
	}
	if dashed {
		style.StrokeDashArray = dashPattern
	}
	return chart.TimeSeries{
		Style:   style,
		XValues: []time.Time{start, end},
		YValues: []float64{level, level},
	}
}

// barSeries draws zero-anchored bars for its inner time series. go-chart's
// HistogramSeries fixes the bar width at 10px; this variant derives it from
// the sample spacing of the data.
type barSeries struct {
	chart.TimeSeries
	BarWidth int
}

func (bs barSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := bs.Style.InheritFrom(defaults)
	chart.Draw.HistogramSeries(r, canvasBox, xrange, yrange, style, bs.TimeSeries, bs.BarWidth)
}

// maskedValues returns values with every entry failing keep replaced by
// zero, and NaN cells treated as zero. Used for sign-split bar series.
func maskedValues(values []float64, keep func(i int, v float64) bool) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || !keep(i, v) {
			out[i] = 0
			continue
		}
		out[i] = v
	}
	return out
}
