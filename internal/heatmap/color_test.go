package heatmap

import "testing"

func fp(v float64) *float64 { return &v }

func TestHeatColor_GradientStops(t *testing.T) {
	tests := []struct {
		name  string
		power float64
		want  RGB
	}{
		{"floor is blue", 0, RGB{40, 90, 220}},
		{"midpoint is yellow", 50, RGB{255, 235, 80}},
		{"ceiling is red", 100, RGB{220, 60, 40}},
		{"below floor clamps", -20, RGB{40, 90, 220}},
		{"above ceiling clamps", 500, RGB{220, 60, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HeatColor(fp(tt.power), 0, 100, false)
			if got != tt.want {
				t.Errorf("HeatColor(%v) = %v, want %v", tt.power, got, tt.want)
			}
		})
	}
}

func TestHeatColor_OffDesaturates(t *testing.T) {
	on := HeatColor(fp(100), 0, 100, false)
	off := HeatColor(fp(100), 0, 100, true)

	// 0.65 of the way from full red toward grey 235.
	want := RGB{
		uint8(lerp(float64(on.R), 235, offDesaturation)),
		uint8(lerp(float64(on.G), 235, offDesaturation)),
		uint8(lerp(float64(on.B), 235, offDesaturation)),
	}
	if off != want {
		t.Errorf("off tile = %v, want %v", off, want)
	}
	if off == on {
		t.Error("off tile should differ from on tile")
	}
}

func TestHeatColor_MissingReading(t *testing.T) {
	if got := HeatColor(nil, 0, 100, false); got != unknownGrey {
		t.Errorf("nil reading = %v, want %v", got, unknownGrey)
	}
}

func TestHeatColor_DegenerateRange(t *testing.T) {
	// pMax <= pMin pins everything to the blue end.
	if got := HeatColor(fp(150), 100, 100, false); got != (RGB{40, 90, 220}) {
		t.Errorf("degenerate range = %v, want blue", got)
	}
}

func TestScale_FitFixed(t *testing.T) {
	s := Scale{MinW: 0, MaxW: 300}
	data := map[int]OutletData{1: {Outlet: 1, PowerW: fp(900)}}

	pMin, pMax := s.Fit(data)
	if pMin != 0 || pMax != 300 {
		t.Errorf("fixed scale = %v..%v, want 0..300", pMin, pMax)
	}
}

func TestScale_FitAuto(t *testing.T) {
	s := Scale{Auto: true}

	data := make(map[int]OutletData, 20)
	for i := 1; i <= 20; i++ {
		data[i] = OutletData{Outlet: i, PowerW: fp(float64(i * 10))}
	}

	// Sorted powers are 10..200; 5th..95th percentile indices pick 10 and 200.
	pMin, pMax := s.Fit(data)
	if pMin != 10 {
		t.Errorf("pMin = %v, want 10", pMin)
	}
	if pMax != 200 {
		t.Errorf("pMax = %v, want 200", pMax)
	}
}

func TestScale_FitAutoMinimumSpan(t *testing.T) {
	s := Scale{Auto: true}
	data := map[int]OutletData{
		1: {Outlet: 1, PowerW: fp(100)},
		2: {Outlet: 2, PowerW: fp(102)},
		3: {Outlet: 3, PowerW: fp(104)},
	}

	pMin, pMax := s.Fit(data)
	if pMax-pMin < minSpanWatts {
		t.Errorf("span = %v, want at least %v", pMax-pMin, minSpanWatts)
	}
	if pMin != 100 {
		t.Errorf("pMin = %v, want 100", pMin)
	}
}

func TestScale_FitAutoSkipsMissingReadings(t *testing.T) {
	s := Scale{Auto: true, MinW: 5, MaxW: 50}
	data := map[int]OutletData{
		1: {Outlet: 1},
		2: {Outlet: 2},
	}

	// No usable readings falls back to the fixed bounds.
	pMin, pMax := s.Fit(data)
	if pMin != 5 || pMax != 50 {
		t.Errorf("empty auto scale = %v..%v, want 5..50", pMin, pMax)
	}
}
