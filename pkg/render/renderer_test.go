package render

import (
	"bytes"
	"image/png"
	"math"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilgiz-almv/trading-indicators-dashboard/pkg/timeseries"
	"github.com/ilgiz-almv/trading-indicators-dashboard/pkg/trade"
)

func testTable(t *testing.T, n int) *timeseries.Table {
	t.Helper()
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, n)
	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	volume := make([]float64, n)
	osc := make([]float64, n)
	for i := 0; i < n; i++ {
		times[i] = start.Add(time.Duration(i) * 5 * time.Minute)
		closes[i] = 100 + 3*math.Sin(float64(i)/7)
		highs[i] = closes[i] + 0.8
		lows[i] = closes[i] - 0.8
		volume[i] = 1000 + 400*math.Cos(float64(i)/5)
		osc[i] = math.Sin(float64(i) / 4)
	}
	// A gap and an outlier, both of which the renderer must tolerate.
	osc[n/2] = math.NaN()
	osc[n/3] = 40

	cols := map[string][]float64{
		"open": closes, "high": highs, "low": lows, "close": closes,
		"open_d": closes, "high_d": highs, "low_d": lows, "close_d": closes,
		"volume": volume, "osc": osc,
	}
	order := []string{"open", "high", "low", "close", "open_d", "high_d", "low_d", "close_d", "volume", "osc"}
	tbl, err := timeseries.New(times, cols, order)
	require.NoError(t, err)
	return tbl
}

func floatPtr(v float64) *float64 { return &v }

func TestRenderFigure(t *testing.T) {
	tbl := testTable(t, 100)
	sl, tp := 97.0, 104.0
	spec := FigureSpec{
		Panels: []PanelSpec{
			{Kind: PanelPrice, Futures: true, Band: true},
			{Kind: PanelLine, Column: "osc", SepLine: floatPtr(0), ShadeSign: true},
			{Kind: PanelBars, Column: "volume"},
		},
		Trades: []trade.Event{
			{Entry: tbl.Start().Add(time.Hour), Exit: tbl.Start().Add(3 * time.Hour),
				Reason: trade.ReasonTakeProfit, StopLoss: &sl, TakeProfit: &tp},
			{Entry: tbl.Start().Add(4 * time.Hour), Exit: tbl.Start().Add(5 * time.Hour),
				Reason: trade.ReasonStopLoss},
			{Entry: tbl.Start().Add(6 * time.Hour), Exit: tbl.Start().Add(7 * time.Hour),
				Reason: trade.ReasonOther},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, New(Config{}).Render(tbl, spec, &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, defaultPanelWidth, img.Bounds().Dx())
	assert.Equal(t, 3*defaultPanelHeight, img.Bounds().Dy())
}

func TestRenderSpotPricePanel(t *testing.T) {
	tbl := testTable(t, 50)
	spec := FigureSpec{Panels: []PanelSpec{{Kind: PanelPrice}}}

	var buf bytes.Buffer
	require.NoError(t, New(Config{PanelWidth: 640, PanelHeight: 200}).Render(tbl, spec, &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestRenderQuarterMarks(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 180
	times := make([]time.Time, n)
	closes := make([]float64, n)
	for i := range times {
		times[i] = start.AddDate(0, 0, i)
		closes[i] = 100 + float64(i%10)
	}
	tbl, err := timeseries.New(times, map[string][]float64{"close": closes}, []string{"close"})
	require.NoError(t, err)

	var buf bytes.Buffer
	r := New(Config{QuarterMarks: true})
	err = r.Render(tbl, FigureSpec{Panels: []PanelSpec{{Kind: PanelLine, Column: "close"}}}, &buf)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestRenderSparseColumnGaps(t *testing.T) {
	// A coarser-timeframe indicator joined onto a finer index populates
	// every other cell; the renderer must gap, not error.
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	n := 40
	times := make([]time.Time, n)
	osc := make([]float64, n)
	for i := 0; i < n; i++ {
		times[i] = start.Add(time.Duration(i) * 5 * time.Minute)
		if i%2 == 1 {
			osc[i] = math.NaN()
			continue
		}
		osc[i] = math.Sin(float64(i) / 4)
	}
	tbl, err := timeseries.New(times, map[string][]float64{"osc": osc}, []string{"osc"})
	require.NoError(t, err)

	var buf bytes.Buffer
	spec := FigureSpec{Panels: []PanelSpec{{Kind: PanelLine, Column: "osc"}}}
	require.NoError(t, New(Config{}).Render(tbl, spec, &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, defaultPanelWidth, img.Bounds().Dx())
}

func TestRenderMissingColumnNamesIt(t *testing.T) {
	tbl := testTable(t, 20)
	spec := FigureSpec{Panels: []PanelSpec{{Kind: PanelLine, Column: "macd_hist"}}}

	var buf bytes.Buffer
	err := New(Config{}).Render(tbl, spec, &buf)
	require.Error(t, err)

	var missing *timeseries.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "macd_hist", missing.Column)
	assert.Contains(t, err.Error(), "macd_hist")
	assert.Zero(t, buf.Len(), "no figure may be produced on failure")
}

func TestRenderEmptyDataset(t *testing.T) {
	var buf bytes.Buffer
	err := New(Config{}).Render(nil, FigureSpec{Panels: []PanelSpec{{Kind: PanelPrice}}}, &buf)
	require.ErrorIs(t, err, timeseries.ErrEmptyDataset)
	assert.Zero(t, buf.Len(), "no blank figure for an empty dataset")
}

func TestRenderNoPanels(t *testing.T) {
	tbl := testTable(t, 10)
	err := New(Config{}).Render(tbl, FigureSpec{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no panels")
}

func TestRenderInvalidTrade(t *testing.T) {
	tbl := testTable(t, 10)
	spec := FigureSpec{
		Panels: []PanelSpec{{Kind: PanelPrice}},
		Trades: []trade.Event{{Entry: tbl.End(), Exit: tbl.Start(), Reason: trade.ReasonOther}},
	}
	err := New(Config{}).Render(tbl, spec, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not after entry")
}

func TestQuantileLimitsResistOutliers(t *testing.T) {
	tbl := testTable(t, 100)
	r := New(Config{})

	lim, err := r.quantileLimits(tbl, PanelSpec{Column: "osc"})
	require.NoError(t, err)

	// The 40.0 outlier must not stretch the axis; the inner quantile range
	// of a unit sine stays within single digits.
	assert.Less(t, lim.Max, 10.0)
	assert.Greater(t, lim.Min, -10.0)

	osc, err := tbl.Column("osc")
	require.NoError(t, err)
	lo := timeseries.Quantile(osc, r.cfg.LowerQuantile)
	hi := timeseries.Quantile(osc, r.cfg.UpperQuantile)
	assert.LessOrEqual(t, lim.Min, lo, "bounds must contain the inner quantile range")
	assert.GreaterOrEqual(t, lim.Max, hi, "bounds must contain the inner quantile range")
}

func TestRenderFile(t *testing.T) {
	tbl := testTable(t, 30)
	path := t.TempDir() + "/figure.png"
	spec := FigureSpec{Panels: []PanelSpec{{Kind: PanelBars, Column: "volume"}}}

	require.NoError(t, New(Config{}).RenderFile(tbl, spec, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	require.NoError(t, err)
}

func TestRenderFileLeavesNothingOnFailure(t *testing.T) {
	tbl := testTable(t, 30)
	path := t.TempDir() + "/figure.png"
	spec := FigureSpec{Panels: []PanelSpec{{Kind: PanelLine, Column: "absent"}}}

	err := New(Config{}).RenderFile(tbl, spec, path)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "failed render must not leave a file behind")
}
