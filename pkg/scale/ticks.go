package scale

import (
	"fmt"
	"math"
)

// Tick is a labelled position on an axis.
//
// Ticks produced by [Linear.Ticks] hold domain values; ticks produced by
// [Band.Ticks] hold pixel positions.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// NiceTicks returns ticks at "nice" multiples of a step chosen so that roughly
// count ticks cover [min, max].
//
// The step is span/count snapped to 1, 2, 5 or 10 times its order of magnitude.
// Ticks start at ceil(min/step)*step and include every multiple up to
// max + step*0.001. Returns nil when count is zero, the domain is empty or
// inverted, or either bound is not finite.
func NiceTicks(min, max float64, count int) []float64 {
	if count <= 0 || min >= max || !isFinite(min) || !isFinite(max) {
		return nil
	}

	step := niceStep((max - min) / float64(count))
	if step <= 0 || !isFinite(step) {
		return nil
	}

	start := math.Ceil(min/step) * step
	limit := max + step*0.001

	var ticks []float64
	for i := 0; ; i++ {
		t := start + float64(i)*step
		if t > limit {
			break
		}
		ticks = append(ticks, t)
	}
	return ticks
}

// niceStep snaps a rough step to {1, 2, 5, 10} x 10^k.
func niceStep(rough float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(rough)))
	residual := rough / mag

	switch {
	case residual <= 1.5:
		return mag
	case residual <= 3:
		return 2 * mag
	case residual <= 7:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// FormatNumber renders a tick label.
//
//	FormatNumber(2500000) // "2.5M"
//	FormatNumber(1200)    // "1.2K"
//	FormatNumber(40)      // "40"
//	FormatNumber(0.25)    // "0.25"
func FormatNumber(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of negative zero
	}
	abs := math.Abs(v)
	switch {
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.1fK", v/1e3)
	case v == math.Trunc(v):
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
