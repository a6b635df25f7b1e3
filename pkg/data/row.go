package data

import (
	"encoding/json"
	"math"
	"strconv"
)

// Row is a single data record: field name to scalar value.
type Row map[string]any

// Get returns the value of field and whether the row carries it.
// A present field holding JSON null reports (nil, true).
func (r Row) Get(field string) (any, bool) {
	v, ok := r[field]
	return v, ok
}

// Has reports whether the row carries field.
func (r Row) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Normalize converts Go numeric types to float64 and leaves every other
// value untouched. Values that cannot be represented (a json.Number that does
// not parse) are returned as their string form.
func Normalize(v any) any {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	}
	return v
}

// NormalizeRow normalizes every value of r in place and returns it.
func NormalizeRow(r Row) Row {
	for k, v := range r {
		r[k] = Normalize(v)
	}
	return r
}

// Float returns v as a float64 if it is a finite number. Strings are never
// parsed: "12" is not numeric. NaN and infinities are not numeric either.
func Float(v any) (float64, bool) {
	n, ok := Normalize(v).(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// IsNumber reports whether v is a number.
func IsNumber(v any) bool {
	_, ok := Float(v)
	return ok
}

// Key coerces any value into a category key.
func Key(v any) string {
	switch x := Normalize(v).(type) {
	case nil:
		return "null"
	case string:
		return x
	case float64:
		return FormatFloat(x)
	case bool:
		if x {
			return "true"
		}
		return "false"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Label returns the key of v when v is a string or a number.
// Other values report false.
func Label(v any) (string, bool) {
	switch x := Normalize(v).(type) {
	case string:
		return x, true
	case float64:
		return FormatFloat(x), true
	}
	return "", false
}

// FormatFloat prints f the way a JSON encoder would: the shortest decimal
// that round-trips, switching to exponent form for very small or very large
// magnitudes.
func FormatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs < 1e-6 || abs >= 1e21 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
