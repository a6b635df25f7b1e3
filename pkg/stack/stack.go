// Package stack computes stacked extents for bar and area charts.
//
// Rows are partitioned by category. Inside each partition the values are laid
// on top of each other in row order, producing a baseline (Y0) and a top (Y1)
// for every row. Three layouts are supported:
//
//   - [Zero]: values accumulate upward from 0
//   - [Normalize]: values are divided by the partition total so each stack
//     spans [0, 1]
//   - [Center]: the stack is shifted down by half its total so it straddles 0
//
// A row missing the category or series field is stacked under the empty
// string; a row whose value is absent or not a number contributes 0.
//
// Partitions are emitted in the order their category first appears. Callers
// that need another order should use [SortByCategory].
package stack

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/matzehuels/vischart/pkg/data"
)

// Mode selects how values inside a partition are stacked.
type Mode int

const (
	Disabled Mode = iota
	Zero
	Normalize
	Center
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case Zero:
		return "zero"
	case Normalize:
		return "normalize"
	case Center:
		return "center"
	}
	return "none"
}

// ParseMode converts a configuration value into a Mode. The empty string
// and "true" mean Zero; "false" and "none" disable stacking.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "true", "zero":
		return Zero, nil
	case "normalize":
		return Normalize, nil
	case "center":
		return Center, nil
	case "false", "none":
		return Disabled, nil
	}
	return Disabled, fmt.Errorf("unknown stack mode: %q", s)
}

// Value is the stacked extent of one row.
type Value struct {
	Row      data.Row
	Category string
	Series   string
	Y0       float64 // baseline
	Y1       float64 // top
}

type entry struct {
	series string
	value  float64
	row    data.Row
}

// Compute stacks the rows. It returns nil when mode is Disabled.
func Compute(rows []data.Row, categoryField, valueField, seriesField string, mode Mode) []Value {
	if mode == Disabled {
		return nil
	}

	var order []string
	partitions := make(map[string][]entry)
	for _, r := range rows {
		category := keyOrEmpty(r, categoryField)
		series := keyOrEmpty(r, seriesField)
		value, _ := data.Float(r[valueField])

		if _, ok := partitions[category]; !ok {
			order = append(order, category)
		}
		partitions[category] = append(partitions[category], entry{series: series, value: value, row: r})
	}

	out := make([]Value, 0, len(rows))
	for _, category := range order {
		entries := partitions[category]

		var total float64
		for _, e := range entries {
			total += e.value
		}

		var cumulative float64
		for _, e := range entries {
			var y0, y1 float64
			switch mode {
			case Zero:
				y0 = cumulative
				y1 = cumulative + e.value
				cumulative = y1
			case Normalize:
				if total != 0 {
					y0 = cumulative
					y1 = cumulative + e.value/total
					cumulative = y1
				}
			case Center:
				y0 = cumulative - total/2
				y1 = y0 + e.value
				cumulative += e.value
			}
			out = append(out, Value{
				Row:      e.row,
				Category: category,
				Series:   e.series,
				Y0:       y0,
				Y1:       y1,
			})
		}
	}
	return out
}

func keyOrEmpty(r data.Row, field string) string {
	if v, ok := r[field]; ok {
		return data.Key(v)
	}
	return ""
}

// MaxTop returns the largest Y1, or 0 if every top is below 0.
func MaxTop(vs []Value) float64 {
	top := 0.0
	for _, v := range vs {
		top = math.Max(top, v.Y1)
	}
	return top
}

// MinBaseline returns the smallest Y0, or +Inf for no values.
func MinBaseline(vs []Value) float64 {
	base := math.Inf(1)
	for _, v := range vs {
		base = math.Min(base, v.Y0)
	}
	return base
}

// SortByCategory stably reorders vs by the position of each category in
// order. Categories missing from order sort as if they were first.
func SortByCategory(vs []Value, order []string) {
	index := make(map[string]int, len(order))
	for i, c := range order {
		if _, ok := index[c]; !ok {
			index[c] = i
		}
	}
	sort.SliceStable(vs, func(i, j int) bool {
		return index[vs[i].Category] < index[vs[j].Category]
	})
}
