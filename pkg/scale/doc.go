// Package scale maps data values to pixel coordinates.
//
// # Overview
//
// Two scale kinds cover every chart the compiler produces:
//
//   - [Band]: categorical labels onto equal-width bands of a pixel interval
//   - [Linear]: a numeric domain onto a pixel interval by an affine map
//
// Scales are values. Builder methods such as [Linear.Nice], [Linear.Zero] and
// [Band.Padding] return modified copies, so a scale never changes after it
// has been handed to a mark compiler and ticks can be recomputed freely.
//
// # Linear Scales
//
//	s := scale.NewLinear(0, 97, 400, 0).Nice().Zero()
//	y := s.Scale(42)       // pixel position
//	v := s.Invert(y)       // back to 42
//	ticks := s.Ticks(5)    // raw domain values with labels
//
// Ticks carry domain values. Axis generators that need pixel positions map each
// tick back through the scale that produced it.
//
// # Nice Ticks
//
// [NiceTicks] picks a step of 1, 2, 5 or 10 times a power of ten so that about
// count ticks span the domain, then walks from the first multiple of the step
// at or above min up to max (with a tolerance of step/1000 so a boundary tick
// lost to rounding is kept). [Linear.Nice] replaces the domain by the first and
// last of ten such ticks.
//
// # Band Scales
//
// A band scale divides its range into n bands separated by inner padding and
// framed by outer padding, both expressed as fractions of the step:
//
//	step      = |range| / (n + 2*outer - inner)
//	bandwidth = step * (1 - inner)
//	scale(c)  = rangeMin + outer*step + index(c)*step
//
// Unknown labels have no position; callers decide the fallback.
//
// # Labels
//
// [FormatNumber] renders tick labels: millions as "1.5M", thousands as "2.0K",
// integral values without decimals and everything else with two decimals.
package scale
