package data

import (
	"fmt"
	"strings"
)

// Type is the measurement type of a channel.
type Type string

const (
	Nominal      Type = "nominal"
	Ordinal      Type = "ordinal"
	Quantitative Type = "quantitative"
	Temporal     Type = "temporal"
)

// ParseType converts a type name into a Type.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case Nominal, Ordinal, Quantitative, Temporal:
		return t, nil
	}
	return "", fmt.Errorf("unknown data type: %q", s)
}

// IsCategorical reports whether values of the type are discrete.
func (t Type) IsCategorical() bool {
	return t == Nominal || t == Ordinal
}

// InferType guesses the type of field from the first row that carries it with
// a number or string value. Numbers are quantitative. Strings that contain a
// '-' and are at least 8 bytes long are temporal; other strings are nominal.
// Rows where the value is any other kind are skipped. Nominal is the default.
func InferType(rows []Row, field string) Type {
	for _, r := range rows {
		v, ok := r[field]
		if !ok {
			continue
		}
		if IsNumber(v) {
			return Quantitative
		}
		if s, ok := v.(string); ok {
			if strings.Contains(s, "-") && len(s) >= 8 {
				return Temporal
			}
			return Nominal
		}
	}
	return Nominal
}

// Categories returns the key of field for every row that carries it, in row order.
func Categories(rows []Row, field string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if v, ok := r[field]; ok {
			out = append(out, Key(v))
		}
	}
	return out
}

// Unique returns keys with duplicates removed, keeping first-seen order.
func Unique(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Numbers returns the numeric values of field, skipping rows where it is
// absent or not a number.
func Numbers(rows []Row, field string) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if f, ok := Float(r[field]); ok {
			out = append(out, f)
		}
	}
	return out
}
