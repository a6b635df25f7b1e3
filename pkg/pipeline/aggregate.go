package pipeline

import (
	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/errors"
	"github.com/matzehuels/vischart/pkg/spec"
)

// channelOrder fixes the order in which channels contribute grouping fields.
var channelOrder = []string{"x", "y", "x2", "y2", "color", "fill", "stroke", "size", "opacity", "shape", "text"}

// Aggregate applies the encoding's channel aggregates to rows. Rows are
// grouped by the fields of every channel without an aggregate, in first-seen
// order, and each aggregated channel is replaced by its statistic.
//
// The returned chart is c itself when nothing is aggregated. Otherwise it is a
// copy whose aggregated channels point at the output fields: a count without a
// field writes to "count", and a statistic whose output would collide with a
// grouping field or an earlier statistic writes to "<op>_<field>".
func Aggregate(c *spec.ChartSpec, rows []data.Row) (*spec.ChartSpec, []data.Row, error) {
	if !hasAggregate(c.Encoding) {
		return c, rows, nil
	}

	out := c.Clone()
	channels := out.Encoding.Channels()

	var groupBy []string
	used := make(map[string]bool)
	for _, name := range channelOrder {
		ch, ok := channels[name]
		if !ok || ch.Field == "" || ch.Aggregate != "" || used[ch.Field] {
			continue
		}
		used[ch.Field] = true
		groupBy = append(groupBy, ch.Field)
	}

	var aggs []data.Aggregation
	for _, name := range channelOrder {
		ch, ok := channels[name]
		if !ok || ch.Aggregate == "" {
			continue
		}
		as := ch.Field
		if as == "" {
			as = string(data.Count)
		}
		if used[as] {
			as = string(ch.Aggregate) + "_" + as
		}
		used[as] = true
		aggs = append(aggs, data.Aggregation{Op: ch.Aggregate, Field: ch.Field, As: as})
		ch.Field = as
	}

	agg, err := data.Aggregate(rows, groupBy, aggs)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidEncoding, err, "aggregate")
	}
	return out, agg, nil
}

func hasAggregate(enc *spec.Encoding) bool {
	for _, ch := range enc.Channels() {
		if ch.Aggregate != "" {
			return true
		}
	}
	return false
}
