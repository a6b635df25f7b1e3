package compile

import (
	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/errors"
	"github.com/matzehuels/vischart/pkg/scene"
	"github.com/matzehuels/vischart/pkg/spec"
	"github.com/matzehuels/vischart/pkg/stack"
)

// PlotArea is the chart rectangle left after padding. Marks inside the root
// group are positioned relative to its origin.
type PlotArea struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewPlotArea insets a width×height chart by padding.
func NewPlotArea(width, height float64, p scene.Padding) PlotArea {
	return PlotArea{
		X:      p.Left,
		Y:      p.Top,
		Width:  width - p.Left - p.Right,
		Height: height - p.Top - p.Bottom,
	}
}

// Compile builds the scene for a chart whose data is inline.
func Compile(c *spec.ChartSpec) (*scene.Scene, error) {
	return compile(c, nil, false)
}

// CompileRows builds the scene for c using rows instead of the spec's own
// data. The pipeline calls it after named data has been resolved.
func CompileRows(c *spec.ChartSpec, rows []data.Row) (*scene.Scene, error) {
	if rows == nil {
		rows = []data.Row{}
	}
	return compile(c, rows, true)
}

func compile(c *spec.ChartSpec, rows []data.Row, external bool) (*scene.Scene, error) {
	sc := scene.New(c.Width, c.Height)
	if c.Background != "" {
		if bg, err := scene.ParseColor(c.Background); err == nil {
			sc.Background = &bg
		}
	}
	plot := NewPlotArea(c.Width, c.Height, c.Padding)

	switch {
	case c.Mark != nil:
		if c.Encoding == nil {
			return nil, errors.MissingField("encoding")
		}
		if !external {
			if !c.Data.IsInline() {
				return nil, errors.InvalidData("inline data required")
			}
			rows = c.Data.Values
		}
		ch := &chart{
			enc:   c.Encoding,
			rows:  rows,
			plot:  plot,
			stack: stackMode(c),
			style: newMarkStyle(c.Mark),
		}
		g, err := dispatch(c.Mark.Type, ch)
		if err != nil {
			return nil, err
		}
		sc.Root = *g
		return sc, nil
	case len(c.Layer) > 0:
		return nil, errors.UnsupportedMark("layer")
	default:
		return nil, errors.MissingField("mark or layer")
	}
}

func dispatch(t spec.MarkType, ch *chart) (*scene.Group, error) {
	switch t {
	case spec.MarkBar:
		return compileBar(ch)
	case spec.MarkLine:
		return compileLine(ch)
	default:
		return nil, errors.UnsupportedMark(string(t))
	}
}

// stackMode is Disabled unless the chart has a color field; otherwise it is
// the requested mode.
func stackMode(c *spec.ChartSpec) stack.Mode {
	if _, ok := c.Encoding.ColorField(); !ok {
		return stack.Disabled
	}
	return c.StackMode()
}
