package compile

import (
	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/errors"
	"github.com/matzehuels/vischart/pkg/scene"
	"github.com/matzehuels/vischart/pkg/spec"
	"github.com/matzehuels/vischart/pkg/stack"
)

// defaultTickCount is the requested number of value-axis ticks.
const defaultTickCount = 5

// chart is the state shared by the mark compilers.
type chart struct {
	enc   *spec.Encoding
	rows  []data.Row
	plot  PlotArea
	stack stack.Mode
	style markStyle
}

// positional holds the resolved x and y channels.
type positional struct {
	x, y         string
	xType, yType data.Type
}

// horizontal reports whether bars run along x: x quantitative, y categorical.
func (p positional) horizontal() bool {
	return p.xType == data.Quantitative && p.yType.IsCategorical()
}

// positional resolves the x and y fields and their types. A declared type
// wins over the inferred one.
func (c *chart) positional() (positional, error) {
	if c.enc.X == nil {
		return positional{}, errors.MissingField("encoding.x")
	}
	if c.enc.Y == nil {
		return positional{}, errors.MissingField("encoding.y")
	}
	x, ok := c.enc.X.FieldName()
	if !ok {
		return positional{}, errors.InvalidEncoding("x must have a field")
	}
	y, ok := c.enc.Y.FieldName()
	if !ok {
		return positional{}, errors.InvalidEncoding("y must have a field")
	}
	return positional{
		x:     x,
		y:     y,
		xType: c.channelType(c.enc.X, x),
		yType: c.channelType(c.enc.Y, y),
	}, nil
}

func (c *chart) channelType(ch *spec.Channel, field string) data.Type {
	if t, ok := ch.DataType(); ok {
		return t
	}
	return data.InferType(c.rows, field)
}

// colorSeries returns the distinct values of the color field in first-seen
// order.
func (c *chart) colorSeries(field string) []string {
	return data.Unique(data.Categories(c.rows, field))
}

// =============================================================================
// Axis configuration
// =============================================================================

// xOrient is bottom unless the x channel asks for top.
func xOrient(ch *spec.Channel) spec.AxisOrient {
	if ch != nil && ch.Axis != nil && ch.Axis.Orient == spec.OrientTop {
		return spec.OrientTop
	}
	return spec.OrientBottom
}

// yOrient is left unless the y channel asks for right.
func yOrient(ch *spec.Channel) spec.AxisOrient {
	if ch != nil && ch.Axis != nil && ch.Axis.Orient == spec.OrientRight {
		return spec.OrientRight
	}
	return spec.OrientLeft
}

// tickCount is the requested tick count, clamped for specs built in code.
func tickCount(ch *spec.Channel) int {
	if ch == nil || ch.Axis == nil || ch.Axis.TickCount <= 0 {
		return defaultTickCount
	}
	return min(ch.Axis.TickCount, spec.MaxTickCount)
}

// axisFlags reports which optional axis parts the channel enables. Ticks and
// labels default on, grid defaults off.
func axisFlags(ch *spec.Channel) (ticks, labels, grid bool) {
	ticks, labels = true, true
	if ch == nil || ch.Axis == nil {
		return
	}
	a := ch.Axis
	if a.Ticks != nil {
		ticks = *a.Ticks
	}
	if a.Labels != nil {
		labels = *a.Labels
	}
	if a.Grid != nil {
		grid = *a.Grid
	}
	return
}

// =============================================================================
// Mark style
// =============================================================================

// markStyle holds the style overrides from a mark definition.
type markStyle struct {
	fill         *scene.Color
	stroke       *scene.Color
	strokeWidth  float64
	opacity      float64
	cornerRadius float64
}

func newMarkStyle(m *spec.Mark) markStyle {
	s := markStyle{strokeWidth: 2, opacity: 1}
	if m == nil {
		return s
	}
	if c, err := scene.ParseColor(m.Fill); m.Fill != "" && err == nil {
		s.fill = &c
	}
	if c, err := scene.ParseColor(m.Stroke); m.Stroke != "" && err == nil {
		s.stroke = &c
	}
	if m.StrokeWidth != nil && *m.StrokeWidth > 0 {
		s.strokeWidth = *m.StrokeWidth
	}
	if m.Opacity != nil && *m.Opacity >= 0 && *m.Opacity <= 1 {
		s.opacity = *m.Opacity
	}
	if m.CornerRadius != nil && *m.CornerRadius > 0 {
		s.cornerRadius = *m.CornerRadius
	}
	return s
}

// primary is the colour of a single-series chart.
func (s markStyle) primary() scene.Color {
	if s.fill != nil {
		return *s.fill
	}
	return PaletteColor(0)
}

// lineColor is the stroke of a single-series line.
func (s markStyle) lineColor() scene.Color {
	if s.stroke != nil {
		return *s.stroke
	}
	return s.primary()
}

// bar styles a filled rectangle item.
func (s markStyle) bar(r scene.Rect, fill scene.Color) scene.Item {
	r.CornerRadius = s.cornerRadius
	it := scene.NewItem(r).WithFill(fill).WithOpacity(s.opacity)
	if s.stroke != nil {
		it = it.WithStroke(scene.SolidStroke(*s.stroke, 1))
	}
	return it
}

// line styles a polyline item.
func (s markStyle) line(points []scene.Point, stroke scene.Color) scene.Item {
	return scene.NewItem(scene.Line{Points: points}).
		WithStroke(scene.SolidStroke(stroke, s.strokeWidth)).
		WithOpacity(s.opacity)
}
