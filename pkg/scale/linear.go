package scale

import "math"

// Linear maps a continuous numeric domain onto a pixel range.
//
// The zero value is a degenerate scale that maps everything to 0; use
// [NewLinear] to construct one.
type Linear struct {
	domainMin, domainMax float64
	rangeMin, rangeMax   float64
	clamp                bool
}

// NewLinear creates a linear scale from [domainMin, domainMax] to
// [rangeMin, rangeMax]. Ranges may be inverted (e.g. height..0 for a y axis).
func NewLinear(domainMin, domainMax, rangeMin, rangeMax float64) Linear {
	return Linear{
		domainMin: domainMin,
		domainMax: domainMax,
		rangeMin:  rangeMin,
		rangeMax:  rangeMax,
	}
}

// Domain returns the domain bounds.
func (s Linear) Domain() (min, max float64) { return s.domainMin, s.domainMax }

// Range returns the range bounds.
func (s Linear) Range() (min, max float64) { return s.rangeMin, s.rangeMax }

// Clamped reports whether outputs are clamped to the range.
func (s Linear) Clamped() bool { return s.clamp }

// Clamp returns a copy that restricts outputs to the range interval.
func (s Linear) Clamp(clamp bool) Linear {
	s.clamp = clamp
	return s
}

// Nice returns a copy whose domain is replaced by the first and last of
// ten nice ticks over the current domain. Degenerate domains are unchanged.
func (s Linear) Nice() Linear {
	ticks := NiceTicks(s.domainMin, s.domainMax, 10)
	if len(ticks) == 0 {
		return s
	}
	s.domainMin = ticks[0]
	s.domainMax = ticks[len(ticks)-1]
	return s
}

// Zero returns a copy whose domain includes zero: a positive minimum is
// lowered to 0, a negative maximum is raised to 0.
func (s Linear) Zero() Linear {
	if s.domainMin > 0 {
		s.domainMin = 0
	}
	if s.domainMax < 0 {
		s.domainMax = 0
	}
	return s
}

// Scale maps a domain value to the range. A zero-width domain maps every
// value to rangeMin.
func (s Linear) Scale(v float64) float64 {
	span := s.domainMax - s.domainMin
	if span == 0 {
		return s.rangeMin
	}
	t := (v - s.domainMin) / span
	out := s.rangeMin + t*(s.rangeMax-s.rangeMin)
	if s.clamp {
		lo, hi := math.Min(s.rangeMin, s.rangeMax), math.Max(s.rangeMin, s.rangeMax)
		out = math.Max(lo, math.Min(hi, out))
	}
	return out
}

// Invert maps a range value back to the domain. A zero-width range maps every
// value to domainMin.
func (s Linear) Invert(p float64) float64 {
	span := s.rangeMax - s.rangeMin
	if span == 0 {
		return s.domainMin
	}
	t := (p - s.rangeMin) / span
	return s.domainMin + t*(s.domainMax-s.domainMin)
}

// Ticks returns about count labelled ticks over the domain. Tick values are
// domain values, not pixels.
func (s Linear) Ticks(count int) []Tick {
	values := NiceTicks(s.domainMin, s.domainMax, count)
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Value: v, Label: FormatNumber(v)}
	}
	return ticks
}

// PixelTicks returns [Linear.Ticks] mapped through the scale, ready for an
// axis generator.
func (s Linear) PixelTicks(count int) []Tick {
	ticks := s.Ticks(count)
	for i := range ticks {
		ticks[i].Value = s.Scale(ticks[i].Value)
	}
	return ticks
}
