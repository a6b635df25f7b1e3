package scale

import (
	"math"
	"slices"
)

// DefaultPadding is the inner and outer padding of a new band scale.
const DefaultPadding = 0.1

// Band maps discrete labels onto equal bands of a pixel range.
//
// Domain order is display order. Labels are expected to be distinct; the
// first occurrence wins when they are not.
type Band struct {
	domain             []string
	index              map[string]int
	rangeMin, rangeMax float64
	paddingInner       float64
	paddingOuter       float64
}

// NewBand creates a band scale over domain with the default padding.
// The domain slice is copied.
func NewBand(domain []string, rangeMin, rangeMax float64) Band {
	d := slices.Clone(domain)
	index := make(map[string]int, len(d))
	for i, label := range d {
		if _, ok := index[label]; !ok {
			index[label] = i
		}
	}
	return Band{
		domain:       d,
		index:        index,
		rangeMin:     rangeMin,
		rangeMax:     rangeMax,
		paddingInner: DefaultPadding,
		paddingOuter: DefaultPadding,
	}
}

// PaddingInner returns a copy with the inner padding set (clamped to [0, 1]).
func (s Band) PaddingInner(p float64) Band {
	s.paddingInner = clamp01(p)
	return s
}

// PaddingOuter returns a copy with the outer padding set (clamped to [0, 1]).
func (s Band) PaddingOuter(p float64) Band {
	s.paddingOuter = clamp01(p)
	return s
}

// Padding returns a copy with both paddings set (clamped to [0, 1]).
func (s Band) Padding(p float64) Band {
	p = clamp01(p)
	s.paddingInner = p
	s.paddingOuter = p
	return s
}

// Domain returns a copy of the labels in display order.
func (s Band) Domain() []string { return slices.Clone(s.domain) }

// Range returns the range bounds.
func (s Band) Range() (min, max float64) { return s.rangeMin, s.rangeMax }

// Len returns the number of bands.
func (s Band) Len() int { return len(s.domain) }

// Index returns the position of label in the domain.
func (s Band) Index(label string) (int, bool) {
	i, ok := s.index[label]
	return i, ok
}

// Step returns the distance between the starts of adjacent bands.
func (s Band) Step() float64 {
	n := len(s.domain)
	if n == 0 {
		return 0
	}
	return math.Abs(s.rangeMax-s.rangeMin) / (float64(n) + 2*s.paddingOuter - s.paddingInner)
}

// Bandwidth returns the width of a single band.
func (s Band) Bandwidth() float64 {
	return s.Step() * (1 - s.paddingInner)
}

// Scale returns the start of the band for label. ok is false for labels
// outside the domain.
func (s Band) Scale(label string) (pos float64, ok bool) {
	i, ok := s.index[label]
	if !ok {
		return 0, false
	}
	step := s.Step()
	return s.rangeMin + s.paddingOuter*step + float64(i)*step, true
}

// ScaleCenter returns the center of the band for label.
func (s Band) ScaleCenter(label string) (pos float64, ok bool) {
	start, ok := s.Scale(label)
	if !ok {
		return 0, false
	}
	return start + s.Bandwidth()/2, true
}

// Ticks returns one tick per label at the band center. Values are pixels.
func (s Band) Ticks() []Tick {
	ticks := make([]Tick, 0, len(s.domain))
	for _, label := range s.domain {
		if pos, ok := s.ScaleCenter(label); ok {
			ticks = append(ticks, Tick{Value: pos, Label: label})
		}
	}
	return ticks
}

func clamp01(p float64) float64 {
	return math.Max(0, math.Min(1, p))
}
