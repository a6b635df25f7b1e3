package compile

import (
	"slices"
	"sort"

	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/scale"
	"github.com/matzehuels/vischart/pkg/scene"
	"github.com/matzehuels/vischart/pkg/stack"
)

// areaOpacity is the fill opacity of stacked areas.
const areaOpacity = 0.7

// lineLayout is the geometry shared by the three line variants.
type lineLayout struct {
	*chart
	x, y       string
	categories []string
	band       scale.Band
}

func compileLine(c *chart) (*scene.Group, error) {
	pos, err := c.positional()
	if err != nil {
		return nil, err
	}
	l := &lineLayout{chart: c, x: pos.x, y: pos.y}
	l.categories = data.Unique(data.Categories(c.rows, l.x))
	l.band = scale.NewBand(l.categories, 0, c.plot.Width).Padding(0)

	colorField, hasColor := c.enc.ColorField()
	var (
		areas, lines []scene.Item
		value        scale.Linear
	)
	switch {
	case hasColor && c.stack != stack.Disabled:
		areas, lines, value = l.stacked(colorField)
	case hasColor:
		lines, value = l.multi(colorField)
	default:
		lines, value = l.simple()
	}

	var marks []*scene.Mark
	if len(areas) > 0 {
		marks = append(marks, scene.NewMark(scene.MarkArea, areas...))
	}
	marks = append(marks, scene.NewMark(scene.MarkLine, lines...))

	x := axisSpec{orient: xOrient(c.enc.X), ticks: l.band.Ticks(), channel: c.enc.X}
	y := axisSpec{orient: yOrient(c.enc.Y), ticks: value.PixelTicks(tickCount(c.enc.Y)), channel: c.enc.Y}
	return l.assemble(marks, x, y), nil
}

// xPos returns the band centre of a category, treating unknown ones as
// starting at 0.
func (l *lineLayout) xPos(category string) float64 {
	pos, _ := l.band.Scale(category)
	return pos + l.band.Bandwidth()/2
}

// categoryIndex returns the position of a category, 0 for unknown ones.
func (l *lineLayout) categoryIndex(category string) int {
	i, _ := l.band.Index(category)
	return i
}

// stacked emits an area and a top line per series.
func (l *lineLayout) stacked(colorField string) (areas, lines []scene.Item, s scale.Linear) {
	values := stack.Compute(l.rows, l.x, l.y, colorField, l.stack)
	lo, hi := stackDomain(values, l.stack)
	s = scale.NewLinear(lo, hi, l.plot.Height, 0).Nice()

	series := l.colorSeries(colorField)
	bySeries := make(map[string][]stack.Value)
	var extra []string
	for _, v := range values {
		if _, ok := bySeries[v.Series]; !ok && !slices.Contains(series, v.Series) {
			extra = append(extra, v.Series)
		}
		bySeries[v.Series] = append(bySeries[v.Series], v)
	}

	for _, key := range slices.Concat(series, extra) {
		vs, ok := bySeries[key]
		if !ok {
			continue
		}
		stack.SortByCategory(vs, l.categories)

		top := make([]scene.Point, len(vs))
		base := make([]scene.Point, len(vs))
		for i, v := range vs {
			x := l.xPos(v.Category)
			top[i] = scene.Pt(x, s.Scale(v.Y1))
			base[i] = scene.Pt(x, s.Scale(v.Y0))
		}
		color := PaletteColor(seriesIndex(series, key))
		areas = append(areas, scene.NewItem(scene.Area{Points: top, Baseline: base}).
			WithFill(color).
			WithOpacity(areaOpacity))
		lines = append(lines, l.style.line(top, color))
	}
	return areas, lines, s
}

type linePoint struct {
	category string
	value    float64
}

// multi emits one unstacked line per series.
func (l *lineLayout) multi(colorField string) ([]scene.Item, scale.Linear) {
	s := scale.NewLinear(0, maxValue(l.rows, l.y), l.plot.Height, 0).Nice().Zero()

	bySeries := make(map[string][]linePoint)
	for _, row := range l.rows {
		cat, ok := row.Get(l.x)
		if !ok {
			continue
		}
		key, ok := row.Get(colorField)
		if !ok {
			continue
		}
		v, ok := data.Float(row[l.y])
		if !ok {
			continue
		}
		k := data.Key(key)
		bySeries[k] = append(bySeries[k], linePoint{category: data.Key(cat), value: v})
	}

	series := l.colorSeries(colorField)
	lines := make([]scene.Item, 0, len(bySeries))
	for i, key := range series {
		pts, ok := bySeries[key]
		if !ok {
			continue
		}
		sort.SliceStable(pts, func(a, b int) bool {
			return l.categoryIndex(pts[a].category) < l.categoryIndex(pts[b].category)
		})
		points := make([]scene.Point, len(pts))
		for j, p := range pts {
			points[j] = scene.Pt(l.xPos(p.category), s.Scale(p.value))
		}
		lines = append(lines, l.style.line(points, PaletteColor(i)))
	}
	return lines, s
}

// simple emits a single line with one vertex per category that has data.
// A repeated category keeps its last value.
func (l *lineLayout) simple() ([]scene.Item, scale.Linear) {
	s := scale.NewLinear(0, maxValue(l.rows, l.y), l.plot.Height, 0).Nice().Zero()

	last := make(map[string]float64)
	for _, row := range l.rows {
		cat, ok := row.Get(l.x)
		if !ok {
			continue
		}
		v, ok := data.Float(row[l.y])
		if !ok {
			continue
		}
		last[data.Key(cat)] = v
	}

	points := make([]scene.Point, 0, len(last))
	for _, cat := range l.categories {
		if v, ok := last[cat]; ok {
			points = append(points, scene.Pt(l.xPos(cat), s.Scale(v)))
		}
	}
	return []scene.Item{l.style.line(points, l.style.lineColor())}, s
}
