package spec

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/errors"
	"github.com/matzehuels/vischart/pkg/scene"
	"github.com/matzehuels/vischart/pkg/stack"
)

// Chart defaults.
const (
	DefaultWidth  = 600.0
	DefaultHeight = 400.0
)

// DefaultPadding returns the padding used when a chart does not set one.
func DefaultPadding() scene.Padding {
	return scene.Padding{Top: 20, Right: 20, Bottom: 40, Left: 50}
}

// ChartSpec is a complete chart description.
type ChartSpec struct {
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Padding    scene.Padding `json:"padding"`
	Background string        `json:"background,omitempty"`
	Data       Data          `json:"data"`
	Mark       *Mark         `json:"mark,omitempty"`
	Encoding   *Encoding     `json:"encoding,omitempty"`
	Layer      []Layer       `json:"layer,omitempty"`
	Stack      *Stack        `json:"stack,omitempty"`
	Title      string        `json:"title,omitempty"`
}

// New returns a spec with default size and padding.
func New() *ChartSpec {
	return &ChartSpec{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Padding: DefaultPadding(),
	}
}

// StackMode returns the stacking mode requested by the spec. An omitted
// stack setting means Zero; whether stacking applies at all also depends on
// the encoding having a color field.
func (c *ChartSpec) StackMode() stack.Mode {
	if c.Stack == nil {
		return stack.Zero
	}
	return c.Stack.Mode
}

// Validate checks the structural constraints that decoding cannot express.
func (c *ChartSpec) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "width and height must be positive, got %gx%g", c.Width, c.Height)
	}
	p := c.Padding
	if p.Top < 0 || p.Right < 0 || p.Bottom < 0 || p.Left < 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "padding must not be negative")
	}
	if p.Left+p.Right > c.Width || p.Top+p.Bottom > c.Height {
		return errors.New(errors.ErrCodeInvalidSpec, "padding leaves no plot area in a %gx%g chart", c.Width, c.Height)
	}
	if !c.Data.IsInline() && c.Data.Name == "" {
		return errors.New(errors.ErrCodeInvalidSpec, "data must have values or a name")
	}
	if c.Data.Name != "" {
		if err := errors.ValidateDataName(c.Data.Name); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of the spec made through its JSON encoding.
func (c *ChartSpec) Clone() *ChartSpec {
	b, err := json.Marshal(c)
	if err != nil {
		cp := *c
		return &cp
	}
	out := &ChartSpec{}
	if err := json.Unmarshal(b, out); err != nil {
		cp := *c
		return &cp
	}
	return out
}

// =============================================================================
// Data
// =============================================================================

// Data is either inline rows or a reference to a named dataset.
type Data struct {
	Values []data.Row
	Name   string
}

// Inline returns inline data holding rows.
func Inline(rows ...data.Row) Data {
	if rows == nil {
		rows = []data.Row{}
	}
	return Data{Values: rows}
}

// Named returns a reference to a named dataset.
func Named(name string) Data {
	return Data{Name: name}
}

// IsInline reports whether the rows are embedded in the spec.
func (d Data) IsInline() bool {
	return d.Values != nil
}

// MarshalJSON implements json.Marshaler.
func (d Data) MarshalJSON() ([]byte, error) {
	if d.IsInline() {
		return json.Marshal(struct {
			Values []data.Row `json:"values"`
		}{d.Values})
	}
	return json.Marshal(struct {
		Name string `json:"name"`
	}{d.Name})
}

// UnmarshalJSON implements json.Unmarshaler. An object with "values" is
// inline data even when it also has a "name". Values that are not objects
// decode as rows without fields.
func (d *Data) UnmarshalJSON(b []byte) error {
	var raw struct {
		Values *[]any   `json:"values"`
		Name   *string `json:"name"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	switch {
	case raw.Values != nil:
		rows := make([]data.Row, 0, len(*raw.Values))
		for _, v := range *raw.Values {
			obj, _ := v.(map[string]any)
			if obj == nil {
				obj = map[string]any{}
			}
			rows = append(rows, data.Row(obj))
		}
		*d = Data{Values: rows}
	case raw.Name != nil:
		*d = Data{Name: *raw.Name}
	default:
		return fmt.Errorf("data: want {\"values\": [...]} or {\"name\": \"...\"}")
	}
	return nil
}

// =============================================================================
// Mark
// =============================================================================

// MarkType is a chart mark name.
type MarkType string

const (
	MarkBar     MarkType = "bar"
	MarkLine    MarkType = "line"
	MarkPoint   MarkType = "point"
	MarkArea    MarkType = "area"
	MarkRule    MarkType = "rule"
	MarkText    MarkType = "text"
	MarkRect    MarkType = "rect"
	MarkBoxplot MarkType = "boxplot"
	MarkBullet  MarkType = "bullet"
	MarkFunnel  MarkType = "funnel"
)

// MarkTypes lists every recognized mark type.
var MarkTypes = []MarkType{
	MarkBar, MarkLine, MarkPoint, MarkArea, MarkRule,
	MarkText, MarkRect, MarkBoxplot, MarkBullet, MarkFunnel,
}

// ParseMarkType converts a mark name into a MarkType.
func ParseMarkType(s string) (MarkType, error) {
	for _, t := range MarkTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown mark type: %q", s)
}

// Mark is a mark type with optional style defaults.
type Mark struct {
	Type         MarkType `json:"type"`
	Fill         string   `json:"fill,omitempty"`
	Stroke       string   `json:"stroke,omitempty"`
	StrokeWidth  *float64 `json:"stroke_width,omitempty"`
	Opacity      *float64 `json:"opacity,omitempty"`
	CornerRadius *float64 `json:"corner_radius,omitempty"`
}

func (m Mark) simple() bool {
	return m.Fill == "" && m.Stroke == "" && m.StrokeWidth == nil && m.Opacity == nil && m.CornerRadius == nil
}

type markAlias Mark

// MarshalJSON encodes a mark without style as its bare type name.
func (m Mark) MarshalJSON() ([]byte, error) {
	if m.simple() {
		return json.Marshal(string(m.Type))
	}
	return json.Marshal(markAlias(m))
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Mark) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		t, err := ParseMarkType(name)
		if err != nil {
			return err
		}
		*m = Mark{Type: t}
		return nil
	}
	var raw markAlias
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("mark: %w", err)
	}
	t, err := ParseMarkType(string(raw.Type))
	if err != nil {
		return err
	}
	raw.Type = t
	*m = Mark(raw)
	return nil
}

// =============================================================================
// Layer
// =============================================================================

// Layer is one layer of a composite chart.
type Layer struct {
	Mark     Mark     `json:"mark"`
	Encoding Encoding `json:"encoding"`
	Data     *Data    `json:"data,omitempty"`
}

// =============================================================================
// Stack
// =============================================================================

// Stack is the stacking setting: true, false or a mode name.
type Stack struct {
	Mode stack.Mode
}

// MarshalJSON encodes Disabled as false and the other modes by name.
func (s Stack) MarshalJSON() ([]byte, error) {
	if s.Mode == stack.Disabled {
		return []byte("false"), nil
	}
	return json.Marshal(s.Mode.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Stack) UnmarshalJSON(b []byte) error {
	var on bool
	if err := json.Unmarshal(b, &on); err == nil {
		if on {
			s.Mode = stack.Zero
		} else {
			s.Mode = stack.Disabled
		}
		return nil
	}
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return fmt.Errorf("stack: want a boolean or a mode name")
	}
	switch name {
	case "zero", "normalize", "center":
	default:
		return fmt.Errorf("stack: unknown mode %q", name)
	}
	mode, err := stack.ParseMode(name)
	if err != nil {
		return err
	}
	s.Mode = mode
	return nil
}
