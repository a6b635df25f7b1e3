package sink

import (
	"strings"
	"testing"

	"github.com/matzehuels/vischart/pkg/compile"
	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/scene"
	"github.com/matzehuels/vischart/pkg/spec"
)

func testScene() *scene.Scene {
	sc := scene.New(200, 100)
	bg := scene.RGB(255, 255, 255)
	sc.Background = &bg

	plot := scene.NewGroup(scene.Translate(10, 5))
	pink := scene.MustParseColor("#ff69b4")
	plot.AddMark(scene.NewMark(scene.MarkRect,
		scene.NewItem(scene.Rect{X: 1, Y: 2, Width: 30, Height: 40, CornerRadius: 2}).WithFill(pink).WithOpacity(0.5),
	))
	plot.AddMark(scene.NewMark(scene.MarkLine,
		scene.NewItem(scene.Line{Points: []scene.Point{scene.Pt(0, 0), scene.Pt(10, 5)}}).
			WithStroke(scene.DashedStroke(pink, 2, 4, 2)),
	))
	plot.AddMark(scene.NewMark(scene.MarkArea,
		scene.NewItem(scene.Area{
			Points:   []scene.Point{scene.Pt(0, 10), scene.Pt(10, 5)},
			Baseline: []scene.Point{scene.Pt(0, 20), scene.Pt(10, 20)},
		}).WithFill(pink),
	))
	plot.AddMark(scene.NewMark(scene.MarkText,
		scene.NewItem(scene.Text{
			X: 5, Y: 6, Text: `Q&A <"1">`, Font: scene.DefaultFont(),
			Anchor: scene.AnchorEnd, Baseline: scene.BaselineTop, Angle: -90,
		}).WithFill(scene.RGB(50, 50, 50)),
	))
	plot.AddMark(scene.NewMark(scene.MarkRule,
		scene.NewItem(scene.Rule{X1: 0, Y1: 90, X2: 180, Y2: 90}).WithStroke(scene.SolidStroke(scene.RGB(100, 100, 100), 1)),
	))
	sc.Root.AddGroup(plot)
	return sc
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testScene()))

	wants := []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100" viewBox="0 0 200 100">`,
		`<rect width="100%" height="100%" fill="#ffffff"/>`,
		`<g transform="translate(10,5)">`,
		`<g class="mark-rect">`,
		`<rect x="1.00" y="2.00" width="30.00" height="40.00" rx="2.00" fill="#ff69b4" opacity="0.50"/>`,
		`<path d="M0.00,0.00L10.00,5.00" fill="none" stroke="#ff69b4" stroke-width="2.00" stroke-dasharray="4.00,2.00"/>`,
		`<path d="M0.00,10.00L10.00,5.00L10.00,20.00L0.00,20.00Z" fill="#ff69b4"/>`,
		`text-anchor="end" dominant-baseline="hanging"`,
		`transform="rotate(-90.0 5.00 6.00)"`,
		`>Q&amp;A &lt;&quot;1&quot;&gt;</text>`,
		`<line x1="0.00" y1="90.00" x2="180.00" y2="90.00" stroke="#646464" stroke-width="1.00"/>`,
	}
	for _, want := range wants {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %s\n%s", want, svg)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("RenderSVG() should end with </svg>")
	}
	if strings.Count(svg, "<g") != strings.Count(svg, "</g>") {
		t.Error("RenderSVG() has unbalanced groups")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(testScene(), WithTitle("Sales & costs"), WithClassPrefix("vc-")))

	if !strings.Contains(svg, "<title>Sales &amp; costs</title>") {
		t.Error("WithTitle() should add an escaped title")
	}
	if !strings.Contains(svg, `class="vc-rect"`) || strings.Contains(svg, `class="mark-`) {
		t.Error("WithClassPrefix() should replace the mark- prefix")
	}
}

func TestRenderSVGIdentityRoot(t *testing.T) {
	sc := scene.New(10, 10)
	sc.Root.AddMark(scene.NewMark(scene.MarkLine, scene.NewItem(scene.Line{})))
	svg := string(RenderSVG(sc))

	if strings.Contains(svg, "<g transform") {
		t.Error("identity groups should not be wrapped")
	}
	if strings.Contains(svg, "<path") {
		t.Error("empty lines should not be drawn")
	}
	if strings.Contains(svg, `fill="#`) {
		t.Error("scene without background should not draw one")
	}
}

func TestRenderSVGClip(t *testing.T) {
	sc := scene.New(10, 10)
	g := scene.NewGroup(scene.Identity())
	g.Clip = &scene.Rect{Width: 5, Height: 5}
	sc.Root.AddGroup(g)
	svg := string(RenderSVG(sc))

	if !strings.Contains(svg, `<clipPath id="clip-1">`) || !strings.Contains(svg, `clip-path="url(#clip-1)"`) {
		t.Errorf("RenderSVG() clip missing:\n%s", svg)
	}
}

func TestRenderSVGGeometries(t *testing.T) {
	tests := []struct {
		name string
		geom scene.Geometry
		want string
	}{
		{"circle", scene.Circle{CX: 1, CY: 2, R: 3}, `<circle cx="1.00" cy="2.00" r="3.00" fill="none"/>`},
		{"symbol circle", scene.Symbol{X: 1, Y: 1, Size: 3.141592653589793 * 4, Shape: scene.ShapeCircle}, `r="2.00"`},
		{"symbol square", scene.Symbol{X: 1, Y: 1, Size: 16, Shape: scene.ShapeSquare}, `transform="translate(1.00,1.00)"`},
		{"pie slice", scene.Arc{OuterRadius: 10, StartAngle: 0, EndAngle: 3.141592653589793 / 2}, `<path d="M10.00,0.00A10.00,10.00 0 0 1 0.00,10.00L0.00,0.00Z"`},
		{"path", scene.Path{D: "M0,0L1,1"}, `<path d="M0,0L1,1" fill="none"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := scene.New(10, 10)
			sc.Root.AddMark(scene.NewMark(scene.MarkPath, scene.NewItem(tt.geom)))
			if svg := string(RenderSVG(sc)); !strings.Contains(svg, tt.want) {
				t.Errorf("RenderSVG() missing %s\n%s", tt.want, svg)
			}
		})
	}
}

func TestRenderSVGCompiledBarChart(t *testing.T) {
	c := spec.New()
	c.Data = spec.Inline(
		data.Row{"day": "Mon", "sales": 12.0},
		data.Row{"day": "Tue", "sales": 7.0},
	)
	c.Mark = &spec.Mark{Type: spec.MarkBar}
	c.Encoding = &spec.Encoding{X: spec.FieldChannel("day"), Y: spec.FieldChannel("sales")}

	sc, err := compile.Compile(c)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	svg := string(RenderSVG(sc))

	if n := strings.Count(svg, "<rect x="); n != 2 {
		t.Errorf("bars = %d, want 2", n)
	}
	for _, want := range []string{`class="mark-rect"`, `class="mark-rule"`, `class="mark-text"`, ">Mon</text>", ">Tue</text>"} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %s", want)
		}
	}
}
