package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// Scene is a complete compiled chart.
type Scene struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background *Color  `json:"background,omitempty"`
	Root       Group   `json:"root"`
}

// New returns an empty scene of the given size.
func New(width, height float64) *Scene {
	return &Scene{Width: width, Height: height, Root: Group{Transform: Identity()}}
}

// Node is a child of a Group: either a *Group or a *Mark.
type Node interface {
	isNode()
}

// Group is a transformed container of nodes.
type Group struct {
	Transform Transform `json:"transform"`
	Clip      *Rect     `json:"clip,omitempty"`
	Children  []Node    `json:"children"`
}

func (*Group) isNode() {}

// NewGroup returns an empty group with the given transform.
func NewGroup(t Transform) *Group {
	return &Group{Transform: t}
}

// Add appends a node to the group.
func (g *Group) Add(n Node) {
	g.Children = append(g.Children, n)
}

// AddMark appends a mark to the group.
func (g *Group) AddMark(m *Mark) {
	g.Children = append(g.Children, m)
}

// AddGroup appends a child group.
func (g *Group) AddGroup(child *Group) {
	g.Children = append(g.Children, child)
}

// Marks returns the direct mark children of the group.
func (g *Group) Marks() []*Mark {
	var out []*Mark
	for _, n := range g.Children {
		if m, ok := n.(*Mark); ok {
			out = append(out, m)
		}
	}
	return out
}

// Transform is an affine placement applied as translate, then scale, then rotate.
type Transform struct {
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
	ScaleX     float64 `json:"scale_x"`
	ScaleY     float64 `json:"scale_y"`
	Rotate     float64 `json:"rotate"`
}

// Identity returns the transform that leaves coordinates unchanged.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Translate returns a pure translation.
func Translate(x, y float64) Transform {
	return Transform{TranslateX: x, TranslateY: y, ScaleX: 1, ScaleY: 1}
}

// IsIdentity reports whether t leaves coordinates unchanged.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// SVG returns the transform as an SVG transform attribute value, or "" for
// the identity.
func (t Transform) SVG() string {
	var parts []string
	if t.TranslateX != 0 || t.TranslateY != 0 {
		parts = append(parts, fmt.Sprintf("translate(%s,%s)", num(t.TranslateX), num(t.TranslateY)))
	}
	if t.ScaleX != 1 || t.ScaleY != 1 {
		parts = append(parts, fmt.Sprintf("scale(%s,%s)", num(t.ScaleX), num(t.ScaleY)))
	}
	if t.Rotate != 0 {
		parts = append(parts, fmt.Sprintf("rotate(%s)", num(t.Rotate)))
	}
	return strings.Join(parts, " ")
}

// Padding is the space between the scene edge and the plot area.
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// UniformPadding returns the same padding on every side.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
