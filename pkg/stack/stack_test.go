package stack

import (
	"math"
	"testing"

	"github.com/matzehuels/vischart/pkg/data"
)

const eps = 1e-9

func fixture() []data.Row {
	return []data.Row{
		{"day": "Mon", "kind": "a", "v": 10.0},
		{"day": "Mon", "kind": "b", "v": 20.0},
		{"day": "Tue", "kind": "a", "v": 5.0},
		{"day": "Tue", "kind": "b", "v": 15.0},
	}
}

func byCategory(vs []Value) map[string][]Value {
	out := make(map[string][]Value)
	for _, v := range vs {
		out[v.Category] = append(out[v.Category], v)
	}
	return out
}

func TestComputeZero(t *testing.T) {
	vs := Compute(fixture(), "day", "v", "kind", Zero)
	if len(vs) != 4 {
		t.Fatalf("Compute() returned %d values, want 4", len(vs))
	}
	want := map[string][][2]float64{
		"Mon": {{0, 10}, {10, 30}},
		"Tue": {{0, 5}, {5, 20}},
	}
	for cat, group := range byCategory(vs) {
		for i, v := range group {
			if v.Y0 != want[cat][i][0] || v.Y1 != want[cat][i][1] {
				t.Errorf("%s[%d] = (%v, %v), want %v", cat, i, v.Y0, v.Y1, want[cat][i])
			}
		}
	}
	if MaxTop(vs) != 30 {
		t.Errorf("MaxTop() = %v, want 30", MaxTop(vs))
	}
	if MinBaseline(vs) != 0 {
		t.Errorf("MinBaseline() = %v, want 0", MinBaseline(vs))
	}
}

func TestComputeKeepsPartitionOrder(t *testing.T) {
	vs := Compute(fixture(), "day", "v", "kind", Zero)
	for _, group := range byCategory(vs) {
		if group[0].Series != "a" || group[1].Series != "b" {
			t.Errorf("partition order = %s, %s, want a, b", group[0].Series, group[1].Series)
		}
	}
}

func TestComputeZeroContiguous(t *testing.T) {
	rows := []data.Row{
		{"c": "x", "v": 3.0}, {"c": "y", "v": 1.0}, {"c": "x", "v": 4.0},
		{"c": "x", "v": 2.0}, {"c": "y", "v": 7.0},
	}
	for cat, group := range byCategory(Compute(rows, "c", "v", "s", Zero)) {
		if group[0].Y0 != 0 {
			t.Errorf("%s: first baseline = %v, want 0", cat, group[0].Y0)
		}
		for i := 1; i < len(group); i++ {
			if group[i].Y0 != group[i-1].Y1 {
				t.Errorf("%s[%d]: Y0 = %v, want previous top %v", cat, i, group[i].Y0, group[i-1].Y1)
			}
		}
	}
}

func TestComputeNormalize(t *testing.T) {
	vs := Compute(fixture(), "day", "v", "kind", Normalize)
	for cat, group := range byCategory(vs) {
		if got := group[len(group)-1].Y1; math.Abs(got-1) > eps {
			t.Errorf("%s: last top = %v, want 1", cat, got)
		}
	}
	mon := byCategory(vs)["Mon"]
	if math.Abs(mon[0].Y1-1.0/3) > eps {
		t.Errorf("Mon[0].Y1 = %v, want 1/3", mon[0].Y1)
	}
}

func TestComputeNormalizeZeroTotal(t *testing.T) {
	rows := []data.Row{{"c": "x", "v": 0.0}, {"c": "x", "v": 0.0}}
	for _, v := range Compute(rows, "c", "v", "s", Normalize) {
		if v.Y0 != 0 || v.Y1 != 0 {
			t.Errorf("zero total = (%v, %v), want (0, 0)", v.Y0, v.Y1)
		}
	}
}

func TestComputeCenter(t *testing.T) {
	vs := Compute(fixture(), "day", "v", "kind", Center)
	mon := byCategory(vs)["Mon"]
	if mon[0].Y0 != -15 || mon[0].Y1 != -5 {
		t.Errorf("Mon[0] = (%v, %v), want (-15, -5)", mon[0].Y0, mon[0].Y1)
	}
	if mon[1].Y0 != -5 || mon[1].Y1 != 15 {
		t.Errorf("Mon[1] = (%v, %v), want (-5, 15)", mon[1].Y0, mon[1].Y1)
	}
	if MinBaseline(vs) != -15 {
		t.Errorf("MinBaseline() = %v, want -15", MinBaseline(vs))
	}
	if MaxTop(vs) != 15 {
		t.Errorf("MaxTop() = %v, want 15", MaxTop(vs))
	}
}

func TestComputeMissingFields(t *testing.T) {
	rows := []data.Row{
		{"v": 2.0},
		{"c": "x", "v": "NaN"},
		{"c": "x", "s": 1.0},
	}
	vs := Compute(rows, "c", "v", "s", Zero)
	if len(vs) != 3 {
		t.Fatalf("Compute() returned %d values, want 3", len(vs))
	}
	groups := byCategory(vs)
	if g := groups[""]; len(g) != 1 || g[0].Y1 != 2 || g[0].Series != "" {
		t.Errorf("missing category = %+v, want one value under \"\"", g)
	}
	x := groups["x"]
	if x[0].Y1 != 0 || x[1].Y1 != 0 {
		t.Errorf("non-numeric values should count as 0, got %v, %v", x[0].Y1, x[1].Y1)
	}
	if x[1].Series != "1" {
		t.Errorf("numeric series = %q, want \"1\"", x[1].Series)
	}
}

func TestComputeDisabled(t *testing.T) {
	if vs := Compute(fixture(), "day", "v", "kind", Disabled); vs != nil {
		t.Errorf("Compute(Disabled) = %v, want nil", vs)
	}
}

func TestFoldsEmpty(t *testing.T) {
	if MaxTop(nil) != 0 {
		t.Errorf("MaxTop(nil) = %v, want 0", MaxTop(nil))
	}
	if !math.IsInf(MinBaseline(nil), 1) {
		t.Errorf("MinBaseline(nil) = %v, want +Inf", MinBaseline(nil))
	}
	neg := []Value{{Y0: -4, Y1: -1}}
	if MaxTop(neg) != 0 {
		t.Errorf("MaxTop(negative) = %v, want 0", MaxTop(neg))
	}
}

func TestSortByCategory(t *testing.T) {
	vs := []Value{
		{Category: "b", Series: "1"},
		{Category: "a", Series: "2"},
		{Category: "z", Series: "3"},
		{Category: "b", Series: "4"},
	}
	SortByCategory(vs, []string{"a", "b"})
	got := ""
	for _, v := range vs {
		got += v.Category + v.Series + " "
	}
	if want := "a2 z3 b1 b4 "; got != want {
		t.Errorf("SortByCategory() = %q, want %q", got, want)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", Zero, false},
		{"true", Zero, false},
		{"zero", Zero, false},
		{"Normalize", Normalize, false},
		{"center", Center, false},
		{"false", Disabled, false},
		{"wiggle", Disabled, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = (%v, %v), want %v", tt.in, got, err, tt.want)
		}
	}
}
