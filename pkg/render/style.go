package render

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/ilgiz-almv/trading-indicators-dashboard/pkg/trade"
)

var (
	colorClose    = chart.ColorBlue
	colorHighLow  = drawing.ColorFromHex("696969")
	colorLine     = drawing.ColorFromHex("7f7f7f")
	colorSep      = drawing.ColorFromHex("7f7f7f")
	colorEntry    = chart.ColorBlack
	colorStop     = chart.ColorRed
	colorProfit   = chart.ColorGreen
	colorOther    = drawing.ColorFromHex("a52a2a")
	colorBand     = drawing.ColorFromHex("696969").WithAlpha(48)
	colorMask     = chart.ColorWhite
	colorShadePos = chart.ColorGreen.WithAlpha(100)
	colorShadeNeg = chart.ColorRed.WithAlpha(100)
	colorBarPos   = chart.ColorGreen
	colorBarNeg   = chart.ColorRed
	colorQuarter  = chart.ColorBlack.WithAlpha(90)
)

var dashPattern = []float64{4.0, 3.0}

// ExitColor returns the fixed marker color for an exit reason: red for
// stop-loss, green for take-profit, brown otherwise.
func ExitColor(r trade.Reason) drawing.Color {
	switch r {
	case trade.ReasonStopLoss:
		return colorStop
	case trade.ReasonTakeProfit:
		return colorProfit
	default:
		return colorOther
	}
}
