package compile

import (
	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/scale"
	"github.com/matzehuels/vischart/pkg/scene"
	"github.com/matzehuels/vischart/pkg/spec"
	"github.com/matzehuels/vischart/pkg/stack"
)

// bandPadding is the inner and outer padding of the bar category scale.
const bandPadding = 0.2

// groupedBarFill is the share of a sub-band a grouped bar covers.
const groupedBarFill = 0.9

// barLayout is the geometry shared by the three bar variants.
type barLayout struct {
	*chart
	horizontal bool
	catField   string
	valField   string
	valChannel *spec.Channel
	band       scale.Band
}

func compileBar(c *chart) (*scene.Group, error) {
	pos, err := c.positional()
	if err != nil {
		return nil, err
	}

	l := &barLayout{chart: c, horizontal: pos.horizontal()}
	l.catField, l.valField = pos.x, pos.y
	l.valChannel = c.enc.Y
	bandMax := c.plot.Width
	if l.horizontal {
		l.catField, l.valField = pos.y, pos.x
		l.valChannel = c.enc.X
		bandMax = c.plot.Height
	}
	categories := data.Unique(data.Categories(c.rows, l.catField))
	l.band = scale.NewBand(categories, 0, bandMax).Padding(bandPadding)

	colorField, hasColor := c.enc.ColorField()
	var (
		items []scene.Item
		value scale.Linear
	)
	switch {
	case hasColor && c.stack != stack.Disabled:
		items, value = l.stacked(colorField)
	case hasColor:
		items, value = l.grouped(colorField)
	default:
		items, value = l.simple()
	}
	bars := scene.NewMark(scene.MarkRect, items...)
	return l.group(bars, value), nil
}

// valueScale maps values onto the plot height (inverted) or width.
func (l *barLayout) valueScale(lo, hi float64) scale.Linear {
	if l.horizontal {
		return scale.NewLinear(lo, hi, 0, l.plot.Width)
	}
	return scale.NewLinear(lo, hi, l.plot.Height, 0)
}

// bandStart returns the band position of a category, 0 for unknown ones.
func (l *barLayout) bandStart(category string) float64 {
	pos, _ := l.band.Scale(category)
	return pos
}

// stacked emits one segment per row, stacked within its category.
func (l *barLayout) stacked(colorField string) ([]scene.Item, scale.Linear) {
	values := stack.Compute(l.rows, l.catField, l.valField, colorField, l.stack)

	lo, hi := stackDomain(values, l.stack)
	s := l.valueScale(lo, hi).Nice()

	series := l.colorSeries(colorField)
	bw := l.band.Bandwidth()
	items := make([]scene.Item, 0, len(values))
	for _, v := range values {
		fill := PaletteColor(seriesIndex(series, v.Series))
		pos := l.bandStart(v.Category)
		var r scene.Rect
		if l.horizontal {
			x0, x1 := s.Scale(v.Y0), s.Scale(v.Y1)
			r = scene.Rect{X: x0, Y: pos, Width: x1 - x0, Height: bw}
		} else {
			y0, y1 := s.Scale(v.Y0), s.Scale(v.Y1)
			r = scene.Rect{X: pos, Y: y1, Width: bw, Height: y0 - y1}
		}
		items = append(items, l.style.bar(r, fill).WithDatum(v.Row))
	}
	return items, s
}

// grouped splits each category band into one sub-band per series.
func (l *barLayout) grouped(colorField string) ([]scene.Item, scale.Linear) {
	s := l.valueScale(0, maxValue(l.rows, l.valField)).Nice().Zero()

	series := l.colorSeries(colorField)
	if len(series) == 0 {
		return []scene.Item{}, s
	}
	sub := l.band.Bandwidth() / float64(len(series))
	items := make([]scene.Item, 0, len(l.rows))
	for _, row := range l.rows {
		cat, ok := data.Label(row[l.catField])
		if !ok {
			continue
		}
		v, ok := data.Float(row[l.valField])
		if !ok {
			continue
		}
		key, ok := data.Label(row[colorField])
		if !ok {
			continue
		}
		idx := seriesIndex(series, key)
		offset := l.bandStart(cat) + float64(idx)*sub
		var r scene.Rect
		if l.horizontal {
			r = scene.Rect{X: 0, Y: offset, Width: s.Scale(v), Height: sub * groupedBarFill}
		} else {
			y := s.Scale(v)
			r = scene.Rect{X: offset, Y: y, Width: sub * groupedBarFill, Height: l.plot.Height - y}
		}
		items = append(items, l.style.bar(r, PaletteColor(idx)).WithDatum(row))
	}
	return items, s
}

// simple emits one bar per row spanning the whole band.
func (l *barLayout) simple() ([]scene.Item, scale.Linear) {
	s := l.valueScale(0, maxValue(l.rows, l.valField)).Nice().Zero()

	bw := l.band.Bandwidth()
	fill := l.style.primary()
	items := make([]scene.Item, 0, len(l.rows))
	for _, row := range l.rows {
		cat, ok := data.Label(row[l.catField])
		if !ok {
			continue
		}
		v, ok := data.Float(row[l.valField])
		if !ok {
			continue
		}
		pos := l.bandStart(cat)
		var r scene.Rect
		if l.horizontal {
			r = scene.Rect{X: 0, Y: pos, Width: s.Scale(v), Height: bw}
		} else {
			y := s.Scale(v)
			r = scene.Rect{X: pos, Y: y, Width: bw, Height: l.plot.Height - y}
		}
		items = append(items, l.style.bar(r, fill).WithDatum(row))
	}
	return items, s
}

// group lays out the bars with category and value axes.
func (l *barLayout) group(bars *scene.Mark, value scale.Linear) *scene.Group {
	catTicks := l.band.Ticks()
	valTicks := value.PixelTicks(tickCount(l.valChannel))

	x := axisSpec{orient: xOrient(l.enc.X), ticks: catTicks, channel: l.enc.X}
	y := axisSpec{orient: yOrient(l.enc.Y), ticks: valTicks, channel: l.enc.Y}
	if l.horizontal {
		x.ticks, y.ticks = valTicks, catTicks
	}
	return l.assemble([]*scene.Mark{bars}, x, y)
}

// stackDomain is the value domain of a stacked chart: [0,1] when normalized,
// the full extent when centered, otherwise [0, max top]. No values give [0,0].
func stackDomain(values []stack.Value, mode stack.Mode) (lo, hi float64) {
	switch {
	case mode == stack.Normalize:
		return 0, 1
	case len(values) == 0:
		return 0, 0
	case mode == stack.Center:
		return stack.MinBaseline(values), stack.MaxTop(values)
	}
	return 0, stack.MaxTop(values)
}

// maxValue folds the numbers of field from 0, so it is never negative.
func maxValue(rows []data.Row, field string) float64 {
	hi := 0.0
	for _, v := range data.Numbers(rows, field) {
		if v > hi {
			hi = v
		}
	}
	return hi
}
