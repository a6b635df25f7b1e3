package scale

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Abs(b))
}

// =============================================================================
// Nice Ticks
// =============================================================================

func TestNiceTicks(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		count    int
		want     []float64
	}{
		{"hundred by twenty", 0, 100, 5, []float64{0, 20, 40, 60, 80, 100}},
		{"drops ticks past max", 0, 97, 10, []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}},
		{"starts at first multiple", 3, 47, 5, []float64{10, 20, 30, 40}},
		{"symmetric", -10, 10, 4, []float64{-10, -5, 0, 5, 10}},
		{"fractional", 0, 1, 5, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{"zero count", 0, 10, 0, nil},
		{"empty domain", 5, 5, 10, nil},
		{"inverted domain", 10, 0, 10, nil},
		{"infinite", 0, math.Inf(1), 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NiceTicks(tt.min, tt.max, tt.count)
			if len(got) != len(tt.want) {
				t.Fatalf("NiceTicks(%v, %v, %d) = %v, want %v", tt.min, tt.max, tt.count, got, tt.want)
			}
			for i := range got {
				if !approx(got[i], tt.want[i]) {
					t.Errorf("tick[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNiceTicksCoverDomain(t *testing.T) {
	domains := [][2]float64{
		{0, 1}, {0, 7}, {0, 97}, {0, 1234}, {-3.5, 18.2},
		{0.001, 0.0173}, {250, 1e6}, {-1e4, -20},
	}

	for _, d := range domains {
		for _, count := range []int{2, 5, 10} {
			ticks := NiceTicks(d[0], d[1], count)
			if len(ticks) == 0 {
				t.Fatalf("NiceTicks(%v, %v, %d) returned no ticks", d[0], d[1], count)
			}

			step := niceStep((d[1] - d[0]) / float64(count))
			if !isNiceStep(step) {
				t.Errorf("step %v for %v is not 1, 2 or 5 x 10^k", step, d)
			}

			for i := 1; i < len(ticks); i++ {
				if ticks[i] < ticks[i-1] {
					t.Errorf("ticks not non-decreasing for %v: %v", d, ticks)
				}
				if !approx(ticks[i]-ticks[i-1], step) {
					t.Errorf("uneven spacing for %v: %v", d, ticks)
				}
			}

			tol := step * 0.001
			if ticks[0] < d[0]-tol || ticks[0]-step >= d[0] {
				t.Errorf("first tick %v does not start the domain %v (step %v)", ticks[0], d, step)
			}
			last := ticks[len(ticks)-1]
			if last > d[1]+tol || last+step <= d[1]+tol {
				t.Errorf("last tick %v does not end the domain %v (step %v)", last, d, step)
			}
		}
	}
}

func isNiceStep(step float64) bool {
	mag := math.Pow(10, math.Floor(math.Log10(step)))
	r := step / mag
	for _, m := range []float64{1, 2, 5, 10} {
		if math.Abs(r-m) < 1e-9 {
			return true
		}
	}
	return false
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2500000, "2.5M"},
		{1e6, "1.0M"},
		{-1500000, "-1.5M"},
		{1200, "1.2K"},
		{1000, "1.0K"},
		{-2000, "-2.0K"},
		{999, "999"},
		{40, "40"},
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{-7, "-7"},
		{0.25, "0.25"},
		{0.5, "0.50"},
		{0.6000000000000001, "0.60"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// =============================================================================
// Linear Scale
// =============================================================================

func TestLinearScale(t *testing.T) {
	tests := []struct {
		name  string
		scale Linear
		in    float64
		want  float64
	}{
		{"midpoint", NewLinear(0, 100, 0, 500), 50, 250},
		{"inverted range", NewLinear(0, 100, 400, 0), 25, 300},
		{"extrapolates", NewLinear(0, 10, 0, 100), 20, 200},
		{"degenerate domain", NewLinear(5, 5, 10, 20), 7, 10},
		{"clamp high", NewLinear(0, 10, 0, 100).Clamp(true), 20, 100},
		{"clamp low", NewLinear(0, 10, 0, 100).Clamp(true), -5, 0},
		{"clamp inverted", NewLinear(0, 10, 100, 0).Clamp(true), 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scale.Scale(tt.in); !approx(got, tt.want) {
				t.Errorf("Scale(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLinearInvert(t *testing.T) {
	s := NewLinear(-20, 80, 300, 0)
	for _, v := range []float64{-20, -3.7, 0, 12.5, 79.99, 120} {
		if got := s.Invert(s.Scale(v)); !approx(got, v) {
			t.Errorf("Invert(Scale(%v)) = %v", v, got)
		}
	}

	flat := NewLinear(0, 10, 3, 3)
	if got := flat.Invert(3); got != 0 {
		t.Errorf("Invert on zero-width range = %v, want domain min 0", got)
	}
}

func TestLinearZero(t *testing.T) {
	tests := []struct {
		name             string
		min, max         float64
		wantMin, wantMax float64
	}{
		{"positive", 5, 10, 0, 10},
		{"negative", -10, -5, -10, 0},
		{"spanning", -5, 5, -5, 5},
		{"already zero", 0, 7, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := NewLinear(tt.min, tt.max, 0, 1).Zero().Domain()
			if lo != tt.wantMin || hi != tt.wantMax {
				t.Errorf("Zero().Domain() = (%v, %v), want (%v, %v)", lo, hi, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestLinearNice(t *testing.T) {
	lo, hi := NewLinear(0, 97, 0, 100).Nice().Domain()
	if lo != 0 || hi != 90 {
		t.Errorf("Nice() domain = (%v, %v), want (0, 90)", lo, hi)
	}

	lo, hi = NewLinear(0, 100, 0, 100).Nice().Domain()
	if lo != 0 || hi != 100 {
		t.Errorf("Nice() domain = (%v, %v), want (0, 100)", lo, hi)
	}

	lo, hi = NewLinear(4, 4, 0, 100).Nice().Domain()
	if lo != 4 || hi != 4 {
		t.Errorf("Nice() on degenerate domain = (%v, %v), want unchanged", lo, hi)
	}
}

func TestLinearImmutable(t *testing.T) {
	s := NewLinear(3, 97, 0, 100)
	_ = s.Nice().Zero().Clamp(true)
	_ = s.Ticks(5)

	lo, hi := s.Domain()
	if lo != 3 || hi != 97 {
		t.Errorf("original domain changed to (%v, %v)", lo, hi)
	}
	if s.Clamped() {
		t.Error("original scale became clamped")
	}
}

func TestLinearTicks(t *testing.T) {
	s := NewLinear(0, 100, 200, 0)

	ticks := s.Ticks(5)
	wantLabels := []string{"0", "20", "40", "60", "80", "100"}
	if len(ticks) != len(wantLabels) {
		t.Fatalf("Ticks(5) = %v", ticks)
	}
	for i, tk := range ticks {
		if tk.Label != wantLabels[i] {
			t.Errorf("tick[%d].Label = %q, want %q", i, tk.Label, wantLabels[i])
		}
	}
	if ticks[1].Value != 20 {
		t.Errorf("Ticks should carry domain values, got %v", ticks[1].Value)
	}

	px := s.PixelTicks(5)
	if !approx(px[1].Value, 160) || px[1].Label != "20" {
		t.Errorf("PixelTicks()[1] = %+v, want {160 20}", px[1])
	}
}

// =============================================================================
// Band Scale
// =============================================================================

func TestBandPartition(t *testing.T) {
	for n := 1; n <= 7; n++ {
		domain := make([]string, n)
		for i := range domain {
			domain[i] = string(rune('A' + i))
		}
		s := NewBand(domain, 10, 310).Padding(0)

		step := s.Step()
		if !approx(step, 300/float64(n)) {
			t.Errorf("n=%d: Step() = %v, want %v", n, step, 300/float64(n))
		}
		for i, label := range domain {
			pos, ok := s.Scale(label)
			if !ok {
				t.Fatalf("Scale(%q) not found", label)
			}
			if !approx(pos, 10+float64(i)*step) {
				t.Errorf("n=%d: Scale(%q) = %v, want %v", n, label, pos, 10+float64(i)*step)
			}
		}
		last, _ := s.Scale(domain[n-1])
		if !approx(last+s.Bandwidth(), 310) {
			t.Errorf("n=%d: bands end at %v, want 310", n, last+s.Bandwidth())
		}
	}
}

func TestBandPadding(t *testing.T) {
	s := NewBand([]string{"A", "B"}, 0, 100).Padding(0.2)

	if !approx(s.Step(), 100/2.2) {
		t.Errorf("Step() = %v, want %v", s.Step(), 100/2.2)
	}
	if !approx(s.Bandwidth(), 100/2.2*0.8) {
		t.Errorf("Bandwidth() = %v, want %v", s.Bandwidth(), 100/2.2*0.8)
	}
	a, _ := s.Scale("A")
	b, _ := s.Scale("B")
	if !approx(a, 0.2*100/2.2) || !approx(b, 1.2*100/2.2) {
		t.Errorf("Scale(A)=%v Scale(B)=%v", a, b)
	}
}

func TestBandDefaults(t *testing.T) {
	s := NewBand([]string{"A", "B"}, 0, 100)
	step := 100 / 2.1
	if !approx(s.Step(), step) {
		t.Errorf("Step() = %v, want %v", s.Step(), step)
	}
	if !approx(s.Bandwidth(), step*0.9) {
		t.Errorf("Bandwidth() = %v, want %v", s.Bandwidth(), step*0.9)
	}
}

func TestBandPaddingClamped(t *testing.T) {
	s := NewBand([]string{"A"}, 0, 100).PaddingInner(-1).PaddingOuter(1.5)
	// inner 0, outer 1: step = 100 / (1 + 2)
	if !approx(s.Step(), 100.0/3) {
		t.Errorf("Step() = %v, want %v", s.Step(), 100.0/3)
	}
	if !approx(s.Bandwidth(), 100.0/3) {
		t.Errorf("Bandwidth() = %v, want %v", s.Bandwidth(), 100.0/3)
	}
}

func TestBandUnknownAndEmpty(t *testing.T) {
	s := NewBand([]string{"A"}, 0, 100)
	if _, ok := s.Scale("Z"); ok {
		t.Error("Scale() of unknown label should report !ok")
	}
	if _, ok := s.ScaleCenter("Z"); ok {
		t.Error("ScaleCenter() of unknown label should report !ok")
	}

	empty := NewBand(nil, 0, 100)
	if empty.Step() != 0 || empty.Bandwidth() != 0 {
		t.Errorf("empty band: Step=%v Bandwidth=%v, want 0", empty.Step(), empty.Bandwidth())
	}
	if len(empty.Ticks()) != 0 {
		t.Error("empty band should have no ticks")
	}
}

func TestBandTicks(t *testing.T) {
	s := NewBand([]string{"Q1", "Q2", "Q3", "Q4"}, 0, 100).Padding(0)
	ticks := s.Ticks()
	want := []Tick{{12.5, "Q1"}, {37.5, "Q2"}, {62.5, "Q3"}, {87.5, "Q4"}}
	if len(ticks) != len(want) {
		t.Fatalf("Ticks() = %v", ticks)
	}
	for i := range want {
		if !approx(ticks[i].Value, want[i].Value) || ticks[i].Label != want[i].Label {
			t.Errorf("tick[%d] = %+v, want %+v", i, ticks[i], want[i])
		}
	}
}

func TestBandDomainCopied(t *testing.T) {
	domain := []string{"A", "B"}
	s := NewBand(domain, 0, 100)
	domain[0] = "Z"

	if _, ok := s.Scale("A"); !ok {
		t.Error("band scale should not observe caller mutations")
	}
	got := s.Domain()
	got[1] = "Y"
	if _, ok := s.Scale("B"); !ok {
		t.Error("Domain() should return a copy")
	}
}
