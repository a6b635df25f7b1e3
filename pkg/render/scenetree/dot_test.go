package scenetree

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/scene"
)

func barScene() *scene.Scene {
	sc := scene.New(600, 400)
	plot := scene.NewGroup(scene.Translate(50, 20))
	plot.AddMark(scene.NewMark(scene.MarkRect,
		scene.NewItem(scene.Rect{Width: 10, Height: 20}).WithFill(scene.RGB(255, 105, 180)).WithDatum(data.Row{"day": "Mon", "v": 3.0}),
		scene.NewItem(scene.Rect{Width: 10, Height: 30}).WithFill(scene.RGB(255, 105, 180)).WithDatum(data.Row{"day": "Tue", "v": 4.0}),
	))
	plot.AddMark(scene.NewMark(scene.MarkRule, scene.NewItem(scene.Rule{X2: 500})))
	sc.Root.AddGroup(plot)
	return sc
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(barScene(), Options{})

	wants := []string{
		"digraph scene {",
		`n0 [label="scene 600x400"`,
		`n1 [label="group"]`,
		`n2 [label="group\ntranslate(50,20)"]`,
		`n3 [label="rect (2)", shape=ellipse, style="filled", fillcolor="#ff69b4"]`,
		`n4 [label="rule (1)", shape=ellipse, style="filled"]`,
		"n0 -> n1;",
		"n1 -> n2;",
		"n2 -> n3;",
		"n2 -> n4;",
	}
	for _, want := range wants {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "day=") {
		t.Error("ToDOT() should not list data unless detailed")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(barScene(), Options{Detailed: true})
	if !strings.Contains(dot, `rect (2)\nday=Mon v=3\nday=Tue v=4`) {
		t.Errorf("ToDOT() detailed labels missing data:\n%s", dot)
	}
}

func TestToDOTDetailedTruncates(t *testing.T) {
	sc := scene.New(10, 10)
	m := scene.NewMark(scene.MarkRect)
	for i := range 5 {
		m.Add(scene.NewItem(scene.Rect{}).WithDatum(data.Row{"i": float64(i)}))
	}
	sc.Root.AddMark(m)

	dot := ToDOT(sc, Options{Detailed: true})
	if !strings.Contains(dot, `i=2\n..."`) || strings.Contains(dot, "i=3") {
		t.Errorf("ToDOT() should list %d rows then an ellipsis:\n%s", maxDatumLines, dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116">`
	if !strings.HasPrefix(out, want) {
		t.Errorf("normalizeViewBox() = %s, want prefix %s", out, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() without viewBox = %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(barScene(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, "rect (2)") {
		t.Error("RenderSVG() output missing svg root or node label")
	}
}
