package data

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// Op is an aggregation function.
type Op string

const (
	Count    Op = "count"
	Sum      Op = "sum"
	Mean     Op = "mean"
	Median   Op = "median"
	Min      Op = "min"
	Max      Op = "max"
	Distinct Op = "distinct"
)

// ParseOp converts an aggregate name into an Op. "average" is accepted as an
// alias for mean.
func ParseOp(s string) (Op, error) {
	switch op := Op(strings.ToLower(strings.TrimSpace(s))); op {
	case Count, Sum, Mean, Median, Min, Max, Distinct:
		return op, nil
	case "average":
		return Mean, nil
	}
	return "", fmt.Errorf("unknown aggregate: %q", s)
}

// Aggregation describes one statistic computed per group.
type Aggregation struct {
	Op    Op
	Field string // source field; may be empty for Count
	As    string // output field; defaults to Field, or "count"
}

func (a Aggregation) output() string {
	if a.As != "" {
		return a.As
	}
	if a.Field != "" {
		return a.Field
	}
	return string(a.Op)
}

// Aggregate groups rows by the keys of groupBy and replaces each group with a
// single row holding the group values and one field per aggregation. Groups
// appear in first-seen order. A row that lacks a groupBy field is grouped
// under a missing value and the output row omits that field as well.
//
// Numeric statistics ignore values that are not numbers. When a group has no
// numeric values, Sum yields 0 and the other numeric statistics leave the
// output field absent.
func Aggregate(rows []Row, groupBy []string, aggs []Aggregation) ([]Row, error) {
	for _, a := range aggs {
		if _, err := ParseOp(string(a.Op)); err != nil {
			return nil, err
		}
		if a.Op != Count && a.Field == "" {
			return nil, fmt.Errorf("aggregate %s requires a field", a.Op)
		}
	}

	type group struct {
		first Row
		rows  []Row
	}
	var (
		order  []string
		groups = make(map[string]*group)
	)
	for _, r := range rows {
		k := groupKey(r, groupBy)
		g, ok := groups[k]
		if !ok {
			g = &group{first: r}
			groups[k] = g
			order = append(order, k)
		}
		g.rows = append(g.rows, r)
	}

	out := make([]Row, 0, len(order))
	for _, k := range order {
		g := groups[k]
		row := make(Row, len(groupBy)+len(aggs))
		for _, f := range groupBy {
			if v, ok := g.first[f]; ok {
				row[f] = v
			}
		}
		for _, a := range aggs {
			if v, ok := compute(a, g.rows); ok {
				row[a.output()] = v
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func compute(a Aggregation, rows []Row) (float64, bool) {
	switch a.Op {
	case Count:
		if a.Field == "" {
			return float64(len(rows)), true
		}
		n := 0
		for _, r := range rows {
			if v, ok := r[a.Field]; ok && v != nil {
				n++
			}
		}
		return float64(n), true
	case Distinct:
		seen := make(map[string]struct{})
		for _, r := range rows {
			if v, ok := r[a.Field]; ok {
				seen[Key(v)] = struct{}{}
			}
		}
		return float64(len(seen)), true
	}

	xs := Numbers(rows, a.Field)
	if a.Op == Sum {
		var total float64
		for _, x := range xs {
			total += x
		}
		return total, true
	}
	if len(xs) == 0 {
		return 0, false
	}

	switch a.Op {
	case Mean:
		return stats.Mean(xs), true
	case Median:
		sort.Float64s(xs)
		return stats.Sample{Xs: xs, Sorted: true}.Quantile(0.5), true
	case Min:
		lo, _ := stats.Bounds(xs)
		return lo, true
	case Max:
		_, hi := stats.Bounds(xs)
		return hi, true
	}
	return 0, false
}

func groupKey(r Row, fields []string) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(0)
		}
		if v, ok := r[f]; ok {
			b.WriteByte('+')
			b.WriteString(Key(v))
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
