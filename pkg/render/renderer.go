// Package render turns a timeseries.Table and an optional list of trade
// events into static chart figures. It is a thin layer over go-chart: all
// numeric heavy lifting is axis rounding and quantile scaling; everything
// else is drawing primitives.
package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ilgiz-almv/trading-indicators-dashboard/pkg/timeseries"
	"github.com/ilgiz-almv/trading-indicators-dashboard/pkg/trade"
)

// Config carries renderer-wide settings. The zero value is usable; missing
// fields fall back to the defaults below.
type Config struct {
	// LowerQuantile/UpperQuantile bound indicator panels instead of min/max
	// so a single outlier cannot flatten the rest of the series.
	LowerQuantile float64
	UpperQuantile float64
	MaxYTicks     int
	PanelWidth    int
	PanelHeight   int
	// QuarterMarks draws faint vertical guides at quarterly futures
	// settlement reference dates.
	QuarterMarks     bool
	QuarterShiftDays int
}

const (
	defaultLowerQuantile    = 0.03
	defaultUpperQuantile    = 0.97
	defaultPanelWidth       = 1024
	defaultPanelHeight      = 260
	defaultQuarterShiftDays = 18
)

func (c Config) withDefaults() Config {
	if c.LowerQuantile <= 0 || c.LowerQuantile >= 1 {
		c.LowerQuantile = defaultLowerQuantile
	}
	if c.UpperQuantile <= 0 || c.UpperQuantile >= 1 {
		c.UpperQuantile = defaultUpperQuantile
	}
	if c.MaxYTicks <= 0 {
		c.MaxYTicks = defaultMaxYTicks
	}
	if c.PanelWidth <= 0 {
		c.PanelWidth = defaultPanelWidth
	}
	if c.PanelHeight <= 0 {
		c.PanelHeight = defaultPanelHeight
	}
	if c.QuarterShiftDays <= 0 {
		c.QuarterShiftDays = defaultQuarterShiftDays
	}
	return c
}

// PanelKind selects how a panel draws its column.
type PanelKind string

const (
	// PanelPrice draws the close step line with high/low overlays.
	PanelPrice PanelKind = "price"
	// PanelLine draws a single indicator column as a step line.
	PanelLine PanelKind = "line"
	// PanelBars draws a column as bars colored by sign of change.
	PanelBars PanelKind = "bars"
)

// PanelSpec describes one stacked panel of a figure.
type PanelSpec struct {
	Kind   PanelKind
	Column string
	// Futures switches the price panel to the *_d futures columns.
	Futures bool
	// Band shades the high/low envelope on the price panel.
	Band bool
	// SepLine draws a horizontal separator; for line panels with ShadeSign
	// the area between the series and zero is shaded on either side of it.
	SepLine   *float64
	ShadeSign bool
	// YMin/YMax override the computed axis bounds.
	YMin *float64
	YMax *float64
}

// FigureSpec describes a complete figure: the stacked panels and the trade
// events to annotate on each of them.
type FigureSpec struct {
	Panels []PanelSpec
	Trades []trade.Event
}

// Renderer renders figures from tables. It is stateless: one call in, one
// figure out.
type Renderer struct {
	cfg Config
}

// New constructs a Renderer with defaults applied.
func New(cfg Config) *Renderer {
	return &Renderer{cfg: cfg.withDefaults()}
}

// Render draws the figure described by spec over the visible table and
// writes it as a PNG. The whole table is the visible slice; callers narrow
// it with Table.Slice beforehand.
func (r *Renderer) Render(tbl *timeseries.Table, spec FigureSpec, w io.Writer) error {
	if tbl == nil || tbl.Len() == 0 {
		return timeseries.ErrEmptyDataset
	}
	if tbl.Len() < 2 {
		return fmt.Errorf("render: need at least two rows, got %d", tbl.Len())
	}
	if len(spec.Panels) == 0 {
		return fmt.Errorf("render: figure has no panels")
	}
	for i := range spec.Trades {
		if err := spec.Trades[i].Validate(); err != nil {
			return err
		}
	}

	interval := TickInterval(tbl.TimeStep())
	ticks := TimeTicks(tbl.Start(), tbl.End(), interval)
	xaxis := r.timeAxis(tbl, ticks, interval)

	charts := make([]chart.Chart, 0, len(spec.Panels))
	for i, panel := range spec.Panels {
		ch, err := r.buildPanel(tbl, panel, spec.Trades, xaxis)
		if err != nil {
			return fmt.Errorf("render: panel %d: %w", i, err)
		}
		charts = append(charts, ch)
	}
	return writeStacked(charts, w)
}

// RenderFile renders the figure to a PNG file. The figure is rendered in
// memory first so a failed render leaves no file behind.
func (r *Renderer) RenderFile(tbl *timeseries.Table, spec FigureSpec, path string) error {
	var buf bytes.Buffer
	if err := r.Render(tbl, spec, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	return nil
}

// timeAxis builds the shared x-axis so every stacked panel aligns.
func (r *Renderer) timeAxis(tbl *timeseries.Table, ticks []time.Time, interval time.Duration) chart.XAxis {
	format := TimeFormat(interval)
	axisTicks := make([]chart.Tick, 0, len(ticks))
	for _, t := range ticks {
		axisTicks = append(axisTicks, chart.Tick{
			Value: chart.TimeToFloat64(t),
			Label: t.Format(format),
		})
	}
	return chart.XAxis{
		Ticks:          axisTicks,
		ValueFormatter: chart.TimeValueFormatterWithFormat(format),
		Range: &chart.ContinuousRange{
			Min: chart.TimeToFloat64(tbl.Start()),
			Max: chart.TimeToFloat64(tbl.End()),
		},
		TickStyle: chart.Style{
			TextRotationDegrees: 90.0,
		},
	}
}
