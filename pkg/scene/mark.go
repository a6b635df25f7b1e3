package scene

import (
	"github.com/matzehuels/vischart/pkg/data"
)

// MarkType identifies the kind of primitives a Mark holds.
type MarkType string

const (
	MarkRect   MarkType = "rect"
	MarkSymbol MarkType = "symbol"
	MarkLine   MarkType = "line"
	MarkArea   MarkType = "area"
	MarkRule   MarkType = "rule"
	MarkText   MarkType = "text"
	MarkArc    MarkType = "arc"
	MarkPath   MarkType = "path"
)

// Mark is a batch of items sharing a primitive type.
type Mark struct {
	Type  MarkType `json:"type"`
	Items []Item   `json:"items"`
}

func (*Mark) isNode() {}

// NewMark returns a mark holding items.
func NewMark(t MarkType, items ...Item) *Mark {
	if items == nil {
		items = []Item{}
	}
	return &Mark{Type: t, Items: items}
}

// Add appends an item.
func (m *Mark) Add(it Item) {
	m.Items = append(m.Items, it)
}

// Len returns the number of items.
func (m *Mark) Len() int { return len(m.Items) }

// Item is one drawable primitive.
type Item struct {
	Geometry Geometry
	Fill     *Color
	Stroke   *Stroke
	Opacity  float64
	Datum    data.Row
}

// NewItem returns an opaque, unstyled item.
func NewItem(g Geometry) Item {
	return Item{Geometry: g, Opacity: 1}
}

// WithFill returns a copy of the item filled with c.
func (it Item) WithFill(c Color) Item {
	it.Fill = &c
	return it
}

// WithStroke returns a copy of the item outlined with s.
func (it Item) WithStroke(s Stroke) Item {
	it.Stroke = &s
	return it
}

// WithOpacity returns a copy of the item with the given opacity.
func (it Item) WithOpacity(o float64) Item {
	it.Opacity = o
	return it
}

// WithDatum returns a copy of the item tagged with the row it was built from.
func (it Item) WithDatum(r data.Row) Item {
	it.Datum = r
	return it
}

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Geometry is the shape of an item. The set of implementations is closed.
type Geometry interface {
	Kind() string
	isGeometry()
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	CornerRadius float64 `json:"corner_radius,omitempty"`
}

// Circle is a circle given by centre and radius.
type Circle struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	R  float64 `json:"r"`
}

// Line is an open polyline.
type Line struct {
	Points []Point `json:"points"`
}

// Area is the region between a top polyline and a baseline polyline. Both run
// in the same direction.
type Area struct {
	Points   []Point `json:"points"`
	Baseline []Point `json:"baseline"`
}

// Rule is a single line segment.
type Rule struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Text is a positioned label. Angle is in degrees, clockwise.
type Text struct {
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Text     string       `json:"text"`
	Font     Font         `json:"font"`
	Anchor   TextAnchor   `json:"anchor"`
	Baseline TextBaseline `json:"baseline"`
	Angle    float64      `json:"angle,omitempty"`
}

// Arc is an annular sector. Angles are in radians.
type Arc struct {
	CX          float64 `json:"cx"`
	CY          float64 `json:"cy"`
	InnerRadius float64 `json:"inner_radius"`
	OuterRadius float64 `json:"outer_radius"`
	StartAngle  float64 `json:"start_angle"`
	EndAngle    float64 `json:"end_angle"`
}

// Path is raw SVG path data.
type Path struct {
	D string `json:"d"`
}

// Symbol is a point glyph. Size is the glyph area in square pixels.
type Symbol struct {
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	Size  float64     `json:"size"`
	Shape SymbolShape `json:"shape"`
}

func (Rect) Kind() string   { return "rect" }
func (Circle) Kind() string { return "circle" }
func (Line) Kind() string   { return "line" }
func (Area) Kind() string   { return "area" }
func (Rule) Kind() string   { return "rule" }
func (Text) Kind() string   { return "text" }
func (Arc) Kind() string    { return "arc" }
func (Path) Kind() string   { return "path" }
func (Symbol) Kind() string { return "symbol" }

func (Rect) isGeometry()   {}
func (Circle) isGeometry() {}
func (Line) isGeometry()   {}
func (Area) isGeometry()   {}
func (Rule) isGeometry()   {}
func (Text) isGeometry()   {}
func (Arc) isGeometry()    {}
func (Path) isGeometry()   {}
func (Symbol) isGeometry() {}
