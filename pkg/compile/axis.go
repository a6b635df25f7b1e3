package compile

import (
	"github.com/matzehuels/vischart/pkg/scale"
	"github.com/matzehuels/vischart/pkg/scene"
	"github.com/matzehuels/vischart/pkg/spec"
)

// Axis layout constants, in pixels.
const (
	TickLength    = 6.0
	LabelOffset   = 10.0
	TitleOffset   = 35.0
	TitleOffsetY  = 40.0
	TitleFontSize = 14.0
)

var (
	axisColor  = scene.RGB(100, 100, 100)
	titleColor = scene.RGB(50, 50, 50)
	gridColor  = scene.RGB(220, 220, 220)
)

// Positions of the marks returned by Axis.
const (
	axisBaseline = iota
	axisTicks
	axisLabels
	axisTitle
)

// Axis returns the marks of one axis: the baseline, one rule per tick, one
// label per tick and, when title is not empty, the title. Tick values are
// pixel positions along the axis, relative to the plot origin.
func Axis(orient spec.AxisOrient, ticks []scale.Tick, plot PlotArea, title string) []*scene.Mark {
	w, h := plot.Width, plot.Height
	stroke := scene.SolidStroke(axisColor, 1)

	var base scene.Rule
	switch orient {
	case spec.OrientLeft:
		base = scene.Rule{X1: 0, Y1: 0, X2: 0, Y2: h}
	case spec.OrientTop:
		base = scene.Rule{X1: 0, Y1: 0, X2: w, Y2: 0}
	case spec.OrientRight:
		base = scene.Rule{X1: w, Y1: 0, X2: w, Y2: h}
	default:
		base = scene.Rule{X1: 0, Y1: h, X2: w, Y2: h}
	}
	marks := []*scene.Mark{
		scene.NewMark(scene.MarkRule, scene.NewItem(base).WithStroke(stroke)),
	}

	tickMark := scene.NewMark(scene.MarkRule)
	labelMark := scene.NewMark(scene.MarkText)
	for _, t := range ticks {
		v := t.Value
		var rule scene.Rule
		label := scene.Text{Text: t.Label, Font: scene.DefaultFont()}
		switch orient {
		case spec.OrientLeft:
			rule = scene.Rule{X1: 0, Y1: v, X2: -TickLength, Y2: v}
			label.X, label.Y = -TickLength-LabelOffset, v
			label.Anchor, label.Baseline = scene.AnchorEnd, scene.BaselineMiddle
		case spec.OrientTop:
			rule = scene.Rule{X1: v, Y1: 0, X2: v, Y2: -TickLength}
			label.X, label.Y = v, -TickLength-LabelOffset
			label.Anchor, label.Baseline = scene.AnchorMiddle, scene.BaselineBottom
		case spec.OrientRight:
			rule = scene.Rule{X1: w, Y1: v, X2: w + TickLength, Y2: v}
			label.X, label.Y = w+TickLength+LabelOffset, v
			label.Anchor, label.Baseline = scene.AnchorStart, scene.BaselineMiddle
		default:
			rule = scene.Rule{X1: v, Y1: h, X2: v, Y2: h + TickLength}
			label.X, label.Y = v, h+TickLength+LabelOffset
			label.Anchor, label.Baseline = scene.AnchorMiddle, scene.BaselineTop
		}
		tickMark.Add(scene.NewItem(rule).WithStroke(stroke))
		labelMark.Add(scene.NewItem(label).WithFill(axisColor))
	}
	marks = append(marks, tickMark, labelMark)

	if title == "" {
		return marks
	}
	text := scene.Text{Text: title, Font: scene.DefaultFont().WithSize(TitleFontSize), Anchor: scene.AnchorMiddle}
	switch orient {
	case spec.OrientLeft:
		text.X, text.Y = -TitleOffsetY, h/2
		text.Baseline, text.Angle = scene.BaselineBottom, -90
	case spec.OrientTop:
		text.X, text.Y = w/2, -TitleOffset
		text.Baseline = scene.BaselineBottom
	case spec.OrientRight:
		text.X, text.Y = w+TitleOffsetY, h/2
		text.Baseline, text.Angle = scene.BaselineTop, 90
	default:
		text.X, text.Y = w/2, h+TitleOffset
		text.Baseline = scene.BaselineTop
	}
	return append(marks, scene.NewMark(scene.MarkText, scene.NewItem(text).WithFill(titleColor)))
}

// Grid returns one rule per tick spanning the plot area, perpendicular to an
// axis with the given orientation.
func Grid(orient spec.AxisOrient, ticks []scale.Tick, plot PlotArea) *scene.Mark {
	m := scene.NewMark(scene.MarkRule)
	stroke := scene.SolidStroke(gridColor, 1)
	for _, t := range ticks {
		var r scene.Rule
		switch orient {
		case spec.OrientLeft, spec.OrientRight:
			r = scene.Rule{X1: 0, Y1: t.Value, X2: plot.Width, Y2: t.Value}
		default:
			r = scene.Rule{X1: t.Value, Y1: 0, X2: t.Value, Y2: plot.Height}
		}
		m.Add(scene.NewItem(r).WithStroke(stroke))
	}
	return m
}

// axisSpec is one axis of a chart, before layout.
type axisSpec struct {
	orient  spec.AxisOrient
	ticks   []scale.Tick
	channel *spec.Channel
}

// assemble builds the chart group: grids, data marks, then the x axis and
// the y axis.
func (c *chart) assemble(marks []*scene.Mark, x, y axisSpec) *scene.Group {
	g := scene.NewGroup(scene.Translate(c.plot.X, c.plot.Y))
	for _, a := range []axisSpec{x, y} {
		if _, _, grid := axisFlags(a.channel); grid {
			g.AddMark(Grid(a.orient, a.ticks, c.plot))
		}
	}
	for _, m := range marks {
		g.AddMark(m)
	}
	for _, a := range []axisSpec{x, y} {
		ticks, labels, _ := axisFlags(a.channel)
		for i, m := range Axis(a.orient, a.ticks, c.plot, a.channel.Title()) {
			if (i == axisTicks && !ticks) || (i == axisLabels && !labels) {
				continue
			}
			g.AddMark(m)
		}
	}
	return g
}
