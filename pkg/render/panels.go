package render

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ilgiz-almv/trading-indicators-dashboard/pkg/timeseries"
	"github.com/ilgiz-almv/trading-indicators-dashboard/pkg/trade"
)

func (r *Renderer) buildPanel(tbl *timeseries.Table, spec PanelSpec, trades []trade.Event, xaxis chart.XAxis) (chart.Chart, error) {
	switch spec.Kind {
	case PanelPrice:
		return r.pricePanel(tbl, spec, trades, xaxis)
	case PanelLine, "":
		return r.linePanel(tbl, spec, trades, xaxis)
	case PanelBars:
		return r.barPanel(tbl, spec, trades, xaxis)
	default:
		return chart.Chart{}, fmt.Errorf("unknown panel kind %q", spec.Kind)
	}
}

func (r *Renderer) pricePanel(tbl *timeseries.Table, spec PanelSpec, trades []trade.Event, xaxis chart.XAxis) (chart.Chart, error) {
	highCol, lowCol, closeCol := "high", "low", "close"
	if spec.Futures {
		highCol, lowCol, closeCol = "high_d", "low_d", "close_d"
	}
	high, err := tbl.Column(highCol)
	if err != nil {
		return chart.Chart{}, err
	}
	low, err := tbl.Column(lowCol)
	if err != nil {
		return chart.Chart{}, err
	}
	closes, err := tbl.Column(closeCol)
	if err != nil {
		return chart.Chart{}, err
	}

	_, maxHigh, err := tbl.ColumnBounds(highCol)
	if err != nil {
		return chart.Chart{}, err
	}
	minLow, _, err := tbl.ColumnBounds(lowCol)
	if err != nil {
		return chart.Chart{}, err
	}
	if math.IsNaN(minLow) || math.IsNaN(maxHigh) {
		return chart.Chart{}, fmt.Errorf("column %q has no numeric values", closeCol)
	}
	// Protective levels must stay inside the frame.
	for i := range trades {
		if sl := trades[i].StopLoss; sl != nil {
			minLow = math.Min(minLow, *sl)
			maxHigh = math.Max(maxHigh, *sl)
		}
		if tp := trades[i].TakeProfit; tp != nil {
			minLow = math.Min(minLow, *tp)
			maxHigh = math.Max(maxHigh, *tp)
		}
	}
	lim := r.limits(spec, minLow, maxHigh)

	times := tbl.Times()
	hold := tbl.TimeStep()
	var series []chart.Series
	if spec.Band {
		// Fill high down to the frame, then mask below low back to the
		// canvas color; what remains shaded is the high/low envelope.
		for _, seg := range stepLineSeries("", times, high, colorBand, 0.1, hold) {
			ts := seg.(chart.TimeSeries)
			ts.Style.FillColor = colorBand
			series = append(series, ts)
		}
		for _, seg := range stepLineSeries("", times, low, colorMask, 0.1, hold) {
			ts := seg.(chart.TimeSeries)
			ts.Style.FillColor = colorMask
			series = append(series, ts)
		}
	}
	series = append(series, r.quarterMarks(tbl, lim)...)
	series = append(series, stepLineSeries(highCol, times, high, colorHighLow, 0.6, hold)...)
	series = append(series, stepLineSeries(lowCol, times, low, colorHighLow, 0.6, hold)...)
	series = append(series, stepLineSeries(closeCol, times, closes, colorClose, 1.0, hold)...)
	series = append(series, tradeMarkers(tbl, trades, lim, true)...)

	return r.newChart(closeCol, xaxis, lim, series), nil
}

func (r *Renderer) linePanel(tbl *timeseries.Table, spec PanelSpec, trades []trade.Event, xaxis chart.XAxis) (chart.Chart, error) {
	values, err := tbl.Column(spec.Column)
	if err != nil {
		return chart.Chart{}, err
	}
	lim, err := r.quantileLimits(tbl, spec)
	if err != nil {
		return chart.Chart{}, err
	}

	times := tbl.Times()
	var series []chart.Series
	if spec.SepLine != nil {
		if spec.ShadeSign {
			sep := *spec.SepLine
			width := r.barWidth(tbl)
			pos := maskedValues(values, func(_ int, v float64) bool { return v > sep })
			neg := maskedValues(values, func(_ int, v float64) bool { return v <= sep })
			series = append(series,
				barSeries{TimeSeries: chart.TimeSeries{
					Style:   chart.Style{StrokeColor: colorShadePos, FillColor: colorShadePos, StrokeWidth: 1},
					XValues: times, YValues: pos,
				}, BarWidth: width},
				barSeries{TimeSeries: chart.TimeSeries{
					Style:   chart.Style{StrokeColor: colorShadeNeg, FillColor: colorShadeNeg, StrokeWidth: 1},
					XValues: times, YValues: neg,
				}, BarWidth: width},
			)
		}
		series = append(series, horizontalLevel(tbl.Start(), tbl.End(), *spec.SepLine, colorSep, true))
	}
	series = append(series, r.quarterMarks(tbl, lim)...)
	// A column with zero finite values is caught by quantileLimits above;
	// any finite cell, however isolated, still draws.
	series = append(series, stepLineSeries(spec.Column, times, values, colorLine, 0.8, tbl.TimeStep())...)
	series = append(series, tradeMarkers(tbl, trades, lim, false)...)

	return r.newChart(spec.Column, xaxis, lim, series), nil
}

func (r *Renderer) barPanel(tbl *timeseries.Table, spec PanelSpec, trades []trade.Event, xaxis chart.XAxis) (chart.Chart, error) {
	values, err := tbl.Column(spec.Column)
	if err != nil {
		return chart.Chart{}, err
	}
	min, max, err := tbl.ColumnBounds(spec.Column)
	if err != nil {
		return chart.Chart{}, err
	}
	if math.IsNaN(min) || math.IsNaN(max) {
		return chart.Chart{}, fmt.Errorf("column %q has no numeric values", spec.Column)
	}
	lim := r.limits(spec, math.Min(min, 0), max)

	// Bars are colored by the sign of the per-row change: growth green,
	// decline red. The first bar counts as growth.
	rising := func(i int, _ float64) bool {
		if i == 0 {
			return true
		}
		prev := values[i-1]
		return math.IsNaN(prev) || values[i] >= prev
	}
	falling := func(i int, v float64) bool { return !rising(i, v) }

	width := r.barWidth(tbl)
	times := tbl.Times()
	series := []chart.Series{
		barSeries{TimeSeries: chart.TimeSeries{
			Name:    spec.Column,
			Style:   chart.Style{StrokeColor: colorBarPos, FillColor: colorBarPos, StrokeWidth: 1},
			XValues: times, YValues: maskedValues(values, rising),
		}, BarWidth: width},
		barSeries{TimeSeries: chart.TimeSeries{
			Style:   chart.Style{StrokeColor: colorBarNeg, FillColor: colorBarNeg, StrokeWidth: 1},
			XValues: times, YValues: maskedValues(values, falling),
		}, BarWidth: width},
	}
	if spec.SepLine != nil {
		series = append(series, horizontalLevel(tbl.Start(), tbl.End(), *spec.SepLine, colorSep, true))
	}
	series = append(series, r.quarterMarks(tbl, lim)...)
	series = append(series, tradeMarkers(tbl, trades, lim, false)...)

	return r.newChart(spec.Column, xaxis, lim, series), nil
}

// limits honours explicit YMin/YMax overrides, otherwise fits the data.
func (r *Renderer) limits(spec PanelSpec, min, max float64) AxisLimits {
	if spec.YMin != nil && spec.YMax != nil {
		return AxisLimits{Min: *spec.YMin, Max: *spec.YMax, Step: (*spec.YMax - *spec.YMin) / 6}
	}
	return FitLimits(min, max, r.cfg.MaxYTicks)
}

// quantileLimits bounds an indicator panel by its inner quantile range so a
// single outlier cannot flatten the rest of the series.
func (r *Renderer) quantileLimits(tbl *timeseries.Table, spec PanelSpec) (AxisLimits, error) {
	if spec.YMin != nil && spec.YMax != nil {
		return r.limits(spec, 0, 0), nil
	}
	lo, err := tbl.ColumnQuantile(spec.Column, r.cfg.LowerQuantile)
	if err != nil {
		return AxisLimits{}, err
	}
	hi, err := tbl.ColumnQuantile(spec.Column, r.cfg.UpperQuantile)
	if err != nil {
		return AxisLimits{}, err
	}
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return AxisLimits{}, fmt.Errorf("column %q has no numeric values", spec.Column)
	}
	return FitLimits(lo, hi, r.cfg.MaxYTicks), nil
}

// barWidth converts the table's row spacing into a bar width in pixels.
func (r *Renderer) barWidth(tbl *timeseries.Table) int {
	span := tbl.End().Sub(tbl.Start())
	if span <= 0 {
		return 1
	}
	w := 0.7 * float64(tbl.TimeStep()) / float64(span) * float64(r.cfg.PanelWidth)
	if w < 1 {
		return 1
	}
	if w > 50 {
		return 50
	}
	return int(w)
}

// tradeMarkers draws the entry/exit verticals for every event, and on the
// price panel the stop-loss/take-profit levels.
func tradeMarkers(tbl *timeseries.Table, trades []trade.Event, lim AxisLimits, withLevels bool) []chart.Series {
	var out []chart.Series
	for i := range trades {
		ev := &trades[i]
		if withLevels {
			if ev.StopLoss != nil {
				out = append(out, horizontalLevel(tbl.Start(), tbl.End(), *ev.StopLoss, colorStop, false))
			}
			if ev.TakeProfit != nil {
				out = append(out, horizontalLevel(tbl.Start(), tbl.End(), *ev.TakeProfit, colorProfit, false))
			}
		}
		if !ev.Entry.Before(tbl.Start()) && !ev.Entry.After(tbl.End()) {
			out = append(out, verticalMarker(ev.Entry, lim, colorEntry))
		}
		if !ev.Exit.Before(tbl.Start()) && !ev.Exit.After(tbl.End()) {
			out = append(out, verticalMarker(ev.Exit, lim, ExitColor(ev.Reason)))
		}
	}
	return out
}

// quarterMarks draws faint dashed verticals at quarterly reference dates.
func (r *Renderer) quarterMarks(tbl *timeseries.Table, lim AxisLimits) []chart.Series {
	if !r.cfg.QuarterMarks {
		return nil
	}
	var out []chart.Series
	for _, d := range QuarterlyDates(tbl.Start(), tbl.End(), r.cfg.QuarterShiftDays) {
		out = append(out, verticalMarker(d, lim, colorQuarter))
	}
	return out
}

// newChart assembles a panel chart with the shared x-axis and fitted y-axis.
func (r *Renderer) newChart(yLabel string, xaxis chart.XAxis, lim AxisLimits, series []chart.Series) chart.Chart {
	tickVals := lim.Ticks()
	ticks := make([]chart.Tick, 0, len(tickVals))
	for _, v := range tickVals {
		ticks = append(ticks, chart.Tick{Value: v, Label: chart.FloatValueFormatter(v)})
	}
	return chart.Chart{
		Width:  r.cfg.PanelWidth,
		Height: r.cfg.PanelHeight,
		XAxis:  xaxis,
		YAxis: chart.YAxis{
			Name:      yLabel,
			NameStyle: chart.Style{FontSize: FontSize(yLabel)},
			Range:     &chart.ContinuousRange{Min: lim.Min, Max: lim.Max},
			Ticks:     ticks,
		},
		Series: series,
	}
}
