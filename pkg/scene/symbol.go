package scene

import (
	"fmt"
	"math"
	"strings"
)

// SymbolShape is the glyph drawn by a Symbol.
type SymbolShape string

const (
	ShapeCircle   SymbolShape = "circle"
	ShapeSquare   SymbolShape = "square"
	ShapeCross    SymbolShape = "cross"
	ShapeDiamond  SymbolShape = "diamond"
	ShapeTriangle SymbolShape = "triangle"
	ShapeStar     SymbolShape = "star"
)

// Path returns SVG path data for the shape centred on the origin, scaled so
// the glyph covers roughly size square pixels. Unknown shapes draw a circle.
func (s SymbolShape) Path(size float64) string {
	switch s {
	case ShapeSquare:
		side := math.Sqrt(size)
		h := side / 2
		return fmt.Sprintf("M%s,%sh%sv%sh%sZ", num(-h), num(-h), num(side), num(side), num(-side))
	case ShapeCross:
		u := math.Sqrt(size / 5)
		u2, u3 := u*2, u*3
		return fmt.Sprintf("M%s,%sh%sv%sh%sv%sh%sv%sh%sv%sh%sv%sh%sZ",
			num(-u3), num(-u), num(u2), num(-u2), num(u2), num(u2), num(u2),
			num(u2), num(-u2), num(u2), num(-u2), num(-u2), num(-u2))
	case ShapeDiamond:
		d := math.Sqrt(size / 2)
		return fmt.Sprintf("M0,%sl%s,%sl%s,%sl%s,%sZ", num(-d), num(d), num(d), num(-d), num(d), num(-d), num(-d))
	case ShapeTriangle:
		h := math.Sqrt(size * math.Sqrt(3))
		return fmt.Sprintf("M0,%sl%s,%sh%sZ", num(-h*2/3), num(h/2), num(h), num(-h))
	case ShapeStar:
		outer := math.Sqrt(size / 2)
		inner := outer * 0.4
		var b strings.Builder
		for i := 0; i < 10; i++ {
			angle := math.Pi*float64(i)/5 - math.Pi/2
			r := outer
			if i%2 == 1 {
				r = inner
			}
			cmd := 'L'
			if i == 0 {
				cmd = 'M'
			}
			fmt.Fprintf(&b, "%c%.3f,%.3f", cmd, r*math.Cos(angle), r*math.Sin(angle))
		}
		b.WriteByte('Z')
		return b.String()
	}
	r := math.Sqrt(size / math.Pi)
	return fmt.Sprintf("M%s,0A%s,%s,0,1,1,%s,0A%s,%s,0,1,1,%s,0",
		num(r), num(r), num(r), num(-r), num(r), num(r), num(r))
}
