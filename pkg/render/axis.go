package render

import (
	"math"
	"time"
)

const (
	defaultMaxYTicks = 10
	maxXTicks        = 64
)

var stepFactors = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 2.5}

// AxisLimits holds rounded axis bounds and the tick step between them.
type AxisLimits struct {
	Min  float64
	Max  float64
	Step float64
}

// FitLimits widens [min, max] to rounded bounds and picks a tick step so the
// axis carries at most maxTicks ticks. The step is chosen from a fixed set of
// factors of the data magnitude; bounds are floored/ceiled to step multiples,
// so the input range is always contained.
func FitLimits(min, max float64, maxTicks int) AxisLimits {
	if maxTicks <= 0 {
		maxTicks = defaultMaxYTicks
	}
	if math.IsNaN(min) || math.IsNaN(max) {
		return AxisLimits{Min: -1, Max: 1, Step: 0.5}
	}
	if min > max {
		min, max = max, min
	}
	largest := math.Max(math.Abs(min), math.Abs(max))
	if largest == 0 {
		return AxisLimits{Min: -1, Max: 1, Step: 0.5}
	}

	magnitude := math.Pow(10, math.Floor(math.Log10(largest)))
	roundBase := magnitude / 10
	lo := math.Floor(min/roundBase) * roundBase
	hi := math.Ceil(max/roundBase) * roundBase

	step := 5 * magnitude
	for _, k := range stepFactors {
		candidate := magnitude * k
		if (hi-lo)/candidate <= float64(maxTicks) {
			step = candidate
			break
		}
	}

	lo = math.Floor(min/step) * step
	hi = math.Ceil(max/step) * step
	if lo == hi {
		hi = lo + step
	}
	return AxisLimits{Min: lo, Max: hi, Step: step}
}

// Ticks enumerates the tick values from Min through Max inclusive.
func (l AxisLimits) Ticks() []float64 {
	if l.Step <= 0 || l.Max <= l.Min {
		return []float64{l.Min, l.Max}
	}
	out := make([]float64, 0, int((l.Max-l.Min)/l.Step)+1)
	for v := l.Min; v <= l.Max+l.Step/2; v += l.Step {
		out = append(out, v)
	}
	return out
}

// TickInterval picks the time-axis tick spacing from the row spacing of the
// visible data: intraday resolutions get 6-hour ticks, coarser data daily
// ticks.
func TickInterval(timeStep time.Duration) time.Duration {
	if timeStep > 0 && timeStep < time.Hour {
		return 6 * time.Hour
	}
	return 24 * time.Hour
}

// TimeTicks returns tick positions from start to end at the given interval.
// The interval is doubled until the tick count fits the axis.
func TimeTicks(start, end time.Time, interval time.Duration) []time.Time {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	if end.Before(start) {
		start, end = end, start
	}
	for end.Sub(start)/interval >= maxXTicks {
		interval *= 2
	}
	var out []time.Time
	for t := start; !t.After(end); t = t.Add(interval) {
		out = append(out, t)
	}
	return out
}

// TimeFormat returns the tick label layout for the given tick interval:
// date-only for daily and coarser ticks, date plus time intraday.
func TimeFormat(interval time.Duration) string {
	if interval >= 24*time.Hour {
		return "02.01.06"
	}
	return "02.01.06 15:04"
}

// FontSize shrinks the axis label font as the label grows.
func FontSize(label string) float64 {
	switch n := len(label); {
	case n <= 14:
		return 10
	case n <= 18:
		return 9
	case n <= 22:
		return 8
	default:
		return 7
	}
}
