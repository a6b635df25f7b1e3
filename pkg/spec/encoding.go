package spec

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/vischart/pkg/data"
)

// Encoding maps data fields to visual channels.
type Encoding struct {
	X       *Channel `json:"x,omitempty"`
	Y       *Channel `json:"y,omitempty"`
	X2      *Channel `json:"x2,omitempty"`
	Y2      *Channel `json:"y2,omitempty"`
	Color   *Channel `json:"color,omitempty"`
	Fill    *Channel `json:"fill,omitempty"`
	Stroke  *Channel `json:"stroke,omitempty"`
	Size    *Channel `json:"size,omitempty"`
	Opacity *Channel `json:"opacity,omitempty"`
	Shape   *Channel `json:"shape,omitempty"`
	Text    *Channel `json:"text,omitempty"`
}

// ColorField returns the field of the color channel, if any.
func (e *Encoding) ColorField() (string, bool) {
	if e == nil {
		return "", false
	}
	return e.Color.FieldName()
}

// Channels returns the channels that are set, keyed by name.
func (e *Encoding) Channels() map[string]*Channel {
	out := make(map[string]*Channel)
	if e == nil {
		return out
	}
	for name, ch := range map[string]*Channel{
		"x": e.X, "y": e.Y, "x2": e.X2, "y2": e.Y2, "color": e.Color, "fill": e.Fill,
		"stroke": e.Stroke, "size": e.Size, "opacity": e.Opacity, "shape": e.Shape, "text": e.Text,
	} {
		if ch != nil {
			out[name] = ch
		}
	}
	return out
}

// Channel describes how one visual channel is driven. It decodes from either
// a bare field name or a full definition object.
type Channel struct {
	Field     string    `json:"field,omitempty"`
	Value     any       `json:"value,omitempty"`
	Type      data.Type `json:"type,omitempty"`
	Scale     string    `json:"scale,omitempty"`
	Aggregate data.Op   `json:"aggregate,omitempty"`
	Axis      *Axis     `json:"axis,omitempty"`

	shorthand bool
}

// FieldChannel returns a channel bound to field.
func FieldChannel(field string) *Channel {
	return &Channel{Field: field}
}

// TypedChannel returns a channel bound to field with an explicit type.
func TypedChannel(field string, t data.Type) *Channel {
	return &Channel{Field: field, Type: t}
}

// FieldName returns the bound field. It is safe to call on a nil channel.
func (c *Channel) FieldName() (string, bool) {
	if c == nil || c.Field == "" {
		return "", false
	}
	return c.Field, true
}

// DataType returns the declared type, if any.
func (c *Channel) DataType() (data.Type, bool) {
	if c == nil || c.Type == "" {
		return "", false
	}
	return c.Type, true
}

// Title returns the axis title, if any.
func (c *Channel) Title() string {
	if c == nil || c.Axis == nil {
		return ""
	}
	return c.Axis.Title
}

// IsShorthand reports whether the channel was written as a bare field name.
func (c *Channel) IsShorthand() bool {
	return c != nil && c.shorthand
}

type channelAlias Channel

// MarshalJSON writes shorthand channels back as bare field names.
func (c Channel) MarshalJSON() ([]byte, error) {
	if c.shorthand {
		return json.Marshal(c.Field)
	}
	return json.Marshal(channelAlias(c))
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Channel) UnmarshalJSON(b []byte) error {
	var field string
	if err := json.Unmarshal(b, &field); err == nil {
		*c = Channel{Field: field, shorthand: true}
		return nil
	}
	var raw channelAlias
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("channel: %w", err)
	}
	if raw.Type != "" {
		t, err := data.ParseType(string(raw.Type))
		if err != nil {
			return err
		}
		raw.Type = t
	}
	if raw.Aggregate != "" {
		op, err := data.ParseOp(string(raw.Aggregate))
		if err != nil {
			return err
		}
		raw.Aggregate = op
	}
	*c = Channel(raw)
	return nil
}

// AxisOrient is the side of the plot area an axis is drawn on.
type AxisOrient string

const (
	OrientTop    AxisOrient = "top"
	OrientBottom AxisOrient = "bottom"
	OrientLeft   AxisOrient = "left"
	OrientRight  AxisOrient = "right"
)

// MaxTickCount bounds the requested number of axis ticks.
const MaxTickCount = 100

// Axis configures the axis of a positional channel.
type Axis struct {
	Orient    AxisOrient `json:"orient,omitempty"`
	Title     string     `json:"title,omitempty"`
	Grid      *bool      `json:"grid,omitempty"`
	Ticks     *bool      `json:"ticks,omitempty"`
	Labels    *bool      `json:"labels,omitempty"`
	TickCount int        `json:"tick_count,omitempty"`
}

type axisAlias Axis

// UnmarshalJSON rejects unknown orientations and out-of-range tick counts.
func (a *Axis) UnmarshalJSON(b []byte) error {
	var raw axisAlias
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("axis: %w", err)
	}
	switch raw.Orient {
	case "", OrientTop, OrientBottom, OrientLeft, OrientRight:
	default:
		return fmt.Errorf("axis: unknown orient %q", raw.Orient)
	}
	if raw.TickCount < 0 || raw.TickCount > MaxTickCount {
		return fmt.Errorf("axis: tick_count must be between 0 and %d, got %d", MaxTickCount, raw.TickCount)
	}
	*a = Axis(raw)
	return nil
}
