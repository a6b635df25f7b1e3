package scene

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/vischart/pkg/data"
)

// =============================================================================
// Geometry
// =============================================================================

// MarshalGeometry encodes g as a JSON object with a "type" discriminator.
func MarshalGeometry(g Geometry) ([]byte, error) {
	if g == nil {
		return []byte("null"), nil
	}
	body, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	kind, _ := json.Marshal(g.Kind())

	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(kind)
	if len(body) > 2 {
		buf.WriteByte(',')
		buf.Write(body[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

// UnmarshalGeometry decodes a geometry written by MarshalGeometry.
func UnmarshalGeometry(b []byte) (Geometry, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return nil, err
	}

	var g Geometry
	var err error
	switch head.Type {
	case "rect":
		var v Rect
		err = json.Unmarshal(b, &v)
		g = v
	case "circle":
		var v Circle
		err = json.Unmarshal(b, &v)
		g = v
	case "line":
		var v Line
		err = json.Unmarshal(b, &v)
		g = v
	case "area":
		var v Area
		err = json.Unmarshal(b, &v)
		g = v
	case "rule":
		var v Rule
		err = json.Unmarshal(b, &v)
		g = v
	case "text":
		v := Text{Font: DefaultFont(), Anchor: AnchorStart, Baseline: BaselineAlphabetic}
		err = json.Unmarshal(b, &v)
		g = v
	case "arc":
		var v Arc
		err = json.Unmarshal(b, &v)
		g = v
	case "path":
		var v Path
		err = json.Unmarshal(b, &v)
		g = v
	case "symbol":
		v := Symbol{Shape: ShapeCircle}
		err = json.Unmarshal(b, &v)
		g = v
	default:
		return nil, fmt.Errorf("unknown geometry type: %q", head.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s geometry: %w", head.Type, err)
	}
	return g, nil
}

// =============================================================================
// Item
// =============================================================================

type itemJSON struct {
	Geometry json.RawMessage `json:"geometry"`
	Fill     *Color          `json:"fill,omitempty"`
	Stroke   *Stroke         `json:"stroke,omitempty"`
	Opacity  float64         `json:"opacity"`
	Datum    data.Row        `json:"datum,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (it Item) MarshalJSON() ([]byte, error) {
	g, err := MarshalGeometry(it.Geometry)
	if err != nil {
		return nil, err
	}
	return json.Marshal(itemJSON{
		Geometry: g,
		Fill:     it.Fill,
		Stroke:   it.Stroke,
		Opacity:  it.Opacity,
		Datum:    it.Datum,
	})
}

// UnmarshalJSON implements json.Unmarshaler. A missing opacity decodes as 1.
func (it *Item) UnmarshalJSON(b []byte) error {
	raw := itemJSON{Opacity: 1}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	g, err := UnmarshalGeometry(raw.Geometry)
	if err != nil {
		return err
	}
	*it = Item{
		Geometry: g,
		Fill:     raw.Fill,
		Stroke:   raw.Stroke,
		Opacity:  raw.Opacity,
		Datum:    raw.Datum,
	}
	return nil
}

// =============================================================================
// Group
// =============================================================================

type nodeJSON struct {
	Group *Group `json:"group,omitempty"`
	Mark  *Mark  `json:"mark,omitempty"`
}

type groupJSON struct {
	Transform Transform  `json:"transform"`
	Clip      *Rect      `json:"clip,omitempty"`
	Children  []nodeJSON `json:"children"`
}

// MarshalJSON implements json.Marshaler.
func (g Group) MarshalJSON() ([]byte, error) {
	out := groupJSON{
		Transform: g.Transform,
		Clip:      g.Clip,
		Children:  make([]nodeJSON, 0, len(g.Children)),
	}
	for _, n := range g.Children {
		switch n := n.(type) {
		case *Group:
			out.Children = append(out.Children, nodeJSON{Group: n})
		case *Mark:
			out.Children = append(out.Children, nodeJSON{Mark: n})
		default:
			return nil, fmt.Errorf("unknown scene node %T", n)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. A missing transform decodes as
// the identity.
func (g *Group) UnmarshalJSON(b []byte) error {
	raw := groupJSON{Transform: Identity()}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*g = Group{Transform: raw.Transform, Clip: raw.Clip}
	for i, n := range raw.Children {
		switch {
		case n.Group != nil:
			g.Children = append(g.Children, n.Group)
		case n.Mark != nil:
			g.Children = append(g.Children, n.Mark)
		default:
			return fmt.Errorf("child %d: want group or mark", i)
		}
	}
	return nil
}

// =============================================================================
// Scene
// =============================================================================

// Encode returns the JSON encoding of the scene.
func Encode(s *Scene) ([]byte, error) {
	return json.Marshal(s)
}

// Decode parses a scene written by Encode.
func Decode(b []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &s, nil
}
