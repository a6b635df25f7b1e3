package scene

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/vischart/pkg/data"
)

func TestTransformSVG(t *testing.T) {
	tests := []struct {
		name string
		t    Transform
		want string
	}{
		{"identity", Identity(), ""},
		{"translate", Translate(50, 20), "translate(50,20)"},
		{"fractional", Translate(0.5, 0), "translate(0.5,0)"},
		{"all", Transform{TranslateX: 1, TranslateY: 2, ScaleX: 2, ScaleY: 3, Rotate: 90}, "translate(1,2) scale(2,3) rotate(90)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.t.SVG(); got != tt.want {
				t.Errorf("SVG() = %q, want %q", got, tt.want)
			}
		})
	}
	if !Identity().IsIdentity() || Translate(1, 0).IsIdentity() {
		t.Error("IsIdentity() wrong")
	}
}

func TestColorCSS(t *testing.T) {
	if got := RGB(255, 105, 180).CSS(); got != "#ff69b4" {
		t.Errorf("CSS() = %q, want #ff69b4", got)
	}
	if got := RGBA(0, 0, 0, 128).CSS(); got != "rgba(0,0,0,0.502)" {
		t.Errorf("CSS() = %q, want rgba(0,0,0,0.502)", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#ff69b4", RGB(255, 105, 180), false},
		{"ff69b4", RGB(255, 105, 180), false},
		{"#FFF", RGB(255, 255, 255), false},
		{"#11223380", RGBA(0x11, 0x22, 0x33, 0x80), false},
		{"#12345", Color{}, true},
		{"white", Color{}, true},
		{"#gggggg", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestItemBuilders(t *testing.T) {
	base := NewItem(Rect{Width: 10, Height: 5})
	if base.Opacity != 1 {
		t.Errorf("NewItem().Opacity = %v, want 1", base.Opacity)
	}
	it := base.WithFill(RGB(1, 2, 3)).WithStroke(SolidStroke(RGB(0, 0, 0), 2)).WithOpacity(0.5).WithDatum(data.Row{"a": 1.0})
	if it.Fill == nil || *it.Fill != RGB(1, 2, 3) {
		t.Errorf("WithFill() = %v", it.Fill)
	}
	if it.Stroke == nil || it.Stroke.Width != 2 {
		t.Errorf("WithStroke() = %v", it.Stroke)
	}
	if it.Opacity != 0.5 || it.Datum["a"] != 1.0 {
		t.Errorf("WithOpacity/WithDatum = %v, %v", it.Opacity, it.Datum)
	}
	if base.Fill != nil {
		t.Error("builders should not modify the receiver")
	}
}

func sampleScene() *Scene {
	s := New(600, 400)
	bg := RGB(255, 255, 255)
	s.Background = &bg

	plot := NewGroup(Translate(50, 20))
	plot.AddMark(NewMark(MarkRect,
		NewItem(Rect{X: 1, Y: 2, Width: 3, Height: 4}).WithFill(RGB(255, 0, 0)).WithDatum(data.Row{"x": "A", "y": 28.0}),
	))
	plot.AddMark(NewMark(MarkArea,
		NewItem(Area{Points: []Point{Pt(0, 1), Pt(2, 3)}, Baseline: []Point{Pt(0, 5), Pt(2, 5)}}).WithOpacity(0.7),
	))
	plot.AddMark(NewMark(MarkLine,
		NewItem(Line{Points: []Point{Pt(0, 1), Pt(2, 3)}}).WithStroke(DashedStroke(RGB(0, 0, 255), 2, 4, 2)),
	))
	plot.AddMark(NewMark(MarkRule, NewItem(Rule{X1: 0, Y1: 0, X2: 10, Y2: 0})))
	plot.AddMark(NewMark(MarkText, NewItem(Text{X: 5, Y: 6, Text: "hi", Font: DefaultFont(), Anchor: AnchorMiddle, Baseline: BaselineTop, Angle: -90})))
	plot.AddMark(NewMark(MarkSymbol, NewItem(Symbol{X: 1, Y: 1, Size: 64, Shape: ShapeDiamond})))
	plot.AddMark(NewMark(MarkArc, NewItem(Arc{CX: 1, CY: 1, InnerRadius: 2, OuterRadius: 4, StartAngle: 0, EndAngle: 1})))
	plot.AddMark(NewMark(MarkPath, NewItem(Path{D: "M0,0L1,1"})))
	plot.AddMark(NewMark(MarkSymbol, NewItem(Circle{CX: 3, CY: 3, R: 2})))

	inner := NewGroup(Identity())
	inner.Clip = &Rect{Width: 10, Height: 10}
	inner.AddMark(NewMark(MarkRect))
	plot.AddGroup(inner)

	s.Root.AddGroup(plot)
	return s
}

func TestSceneJSONRoundTrip(t *testing.T) {
	s := sampleScene()
	b, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	got, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", got, s)
	}
}

func TestSceneJSONShape(t *testing.T) {
	b, err := json.Marshal(sampleScene())
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	out := string(b)
	for _, want := range []string{
		`"background":{"r":255,"g":255,"b":255,"a":255}`,
		`{"group":{"transform":{"translate_x":50,"translate_y":20`,
		`{"mark":{"type":"rect","items":[{"geometry":{"type":"rect","x":1,"y":2,"width":3,"height":4}`,
		`"geometry":{"type":"circle","cx":3,"cy":3,"r":2}`,
		`"datum":{"x":"A","y":28}`,
		`"clip":{"x":0,"y":0,"width":10,"height":10}`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON missing %s\n%s", want, out)
		}
	}
}

func TestDecodeDefaults(t *testing.T) {
	in := `{"width":10,"height":10,"root":{"children":[{"mark":{"type":"rect","items":[{"geometry":{"type":"rect","x":1,"y":1,"width":1,"height":1}}]}}]}}`
	s, err := Decode([]byte(in))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !s.Root.Transform.IsIdentity() {
		t.Errorf("missing transform = %+v, want identity", s.Root.Transform)
	}
	m := s.Root.Marks()
	if len(m) != 1 || m[0].Items[0].Opacity != 1 {
		t.Errorf("missing opacity should decode as 1, got %+v", m)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []string{
		`{"root":{"children":[{}]}}`,
		`{"root":{"children":[{"mark":{"type":"rect","items":[{"geometry":{"type":"blob"}}]}}]}}`,
		`{"root":`,
	}
	for _, in := range tests {
		if _, err := Decode([]byte(in)); err == nil {
			t.Errorf("Decode(%s) should fail", in)
		}
	}
}

func TestSummarize(t *testing.T) {
	st := Summarize(sampleScene())
	if st.Groups != 3 {
		t.Errorf("Groups = %d, want 3", st.Groups)
	}
	if st.Marks != 10 {
		t.Errorf("Marks = %d, want 10", st.Marks)
	}
	if st.Items != 9 {
		t.Errorf("Items = %d, want 9", st.Items)
	}
	if st.ByType[MarkSymbol] != 2 {
		t.Errorf("ByType[symbol] = %d, want 2", st.ByType[MarkSymbol])
	}
	if st.Depth != 2 {
		t.Errorf("Depth = %d, want 2", st.Depth)
	}
	if types := st.Types(); types[0] != MarkArc {
		t.Errorf("Types()[0] = %v, want arc", types[0])
	}
}

func TestWalkSkip(t *testing.T) {
	var marks int
	Walk(&sampleScene().Root, func(n Node, depth int) bool {
		if _, ok := n.(*Mark); ok {
			marks++
		}
		return depth == 0
	})
	if marks != 9 {
		t.Errorf("visited %d marks, want 9", marks)
	}
}

func TestSymbolPath(t *testing.T) {
	tests := []struct {
		shape SymbolShape
		want  string
	}{
		{ShapeSquare, "M-2,-2h4v4h-4Z"},
		{ShapeDiamond, "M0,-2l2,2l-2,2l-2,-2Z"},
		{ShapeCircle, "M2,0A2,2,0,1,1,-2,0A2,2,0,1,1,2,0"},
	}
	sizes := map[SymbolShape]float64{ShapeSquare: 16, ShapeDiamond: 8, ShapeCircle: 4 * 3.141592653589793}
	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			if got := tt.shape.Path(sizes[tt.shape]); got != tt.want {
				t.Errorf("Path() = %q, want %q", got, tt.want)
			}
		})
	}
	star := ShapeStar.Path(50)
	if !strings.HasPrefix(star, "M0.000,-5.000") || strings.Count(star, "L") != 9 || !strings.HasSuffix(star, "Z") {
		t.Errorf("star Path() = %q", star)
	}
}
