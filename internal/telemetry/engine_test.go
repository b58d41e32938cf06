package telemetry

import (
	"math"
	"testing"
	"time"
)

func testEngine() *Engine {
	start := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	return New(Config{
		Outlets:          48,
		Phases:           3,
		NominalVoltage:   230.0,
		NominalFrequency: 50.0,
		Loads: map[int]float64{
			1:  140,
			2:  45,
			3:  90,
			10: 220,
			12: 75,
			20: 180,
			44: 260,
		},
	}, start)
}

func allOn(n int) []bool {
	on := make([]bool, n)
	for i := range on {
		on[i] = true
	}
	return on
}

func TestOutletPower_WithinJitterBand(t *testing.T) {
	e := testEngine()

	// Sample across many time buckets; every sample must stay within
	// ±3% of the 220 W base load.
	for sec := 0; sec < 600; sec += 7 {
		now := e.start.Add(time.Duration(sec) * time.Second)
		p := e.OutletPower(10, true, now)
		if p < 220*0.97 || p > 220*1.03 {
			t.Fatalf("OutletPower(10) at +%ds = %v, want within [%v, %v]",
				sec, p, 220*0.97, 220*1.03)
		}
	}
}

func TestOutletPower_OffOrUnconnected(t *testing.T) {
	e := testEngine()
	now := e.start.Add(42 * time.Second)

	if p := e.OutletPower(10, false, now); p != 0 {
		t.Errorf("OutletPower(10, off) = %v, want 0", p)
	}

	// Outlet 5 has no configured load
	if p := e.OutletPower(5, true, now); p != 0 {
		t.Errorf("OutletPower(5, on, unconnected) = %v, want 0", p)
	}
}

func TestOutletPower_StableWithinBucket(t *testing.T) {
	e := testEngine()

	// Power buckets are 5 seconds wide
	a := e.OutletPower(1, true, e.start.Add(10*time.Second))
	b := e.OutletPower(1, true, e.start.Add(14*time.Second))
	if a != b {
		t.Errorf("readings in the same bucket differ: %v vs %v", a, b)
	}
}

func TestOutletVoltage_PresentWhenOff(t *testing.T) {
	e := testEngine()
	now := e.start.Add(30 * time.Second)

	v := e.OutletVoltage(7, now)
	if v < 230*0.985 || v > 230*1.015 {
		t.Errorf("OutletVoltage(7) = %v, want within ±1.5%% of 230", v)
	}
}

func TestOutletCurrent_ConsistentWithPowerAndVoltage(t *testing.T) {
	e := testEngine()
	now := e.start.Add(95 * time.Second)

	p := e.OutletPower(44, true, now)
	v := e.OutletVoltage(44, now)
	i := e.OutletCurrent(44, true, now)

	if got := p / v; math.Abs(i-got) > 1e-12 {
		t.Errorf("OutletCurrent = %v, want power/voltage = %v", i, got)
	}

	if i := e.OutletCurrent(44, false, now); i != 0 {
		t.Errorf("OutletCurrent(off) = %v, want 0", i)
	}
}

func TestOutletEnergy(t *testing.T) {
	e := testEngine()

	// 140 W for 2 hours is 0.28 kWh, with no jitter applied
	now := e.start.Add(2 * time.Hour)
	if got := e.OutletEnergy(1, true, now); math.Abs(got-0.28) > 1e-12 {
		t.Errorf("OutletEnergy(1) after 2h = %v, want 0.28", got)
	}

	if got := e.OutletEnergy(1, false, now); got != 0 {
		t.Errorf("OutletEnergy(1, off) = %v, want 0", got)
	}

	// Monotonic while on
	earlier := e.OutletEnergy(1, true, e.start.Add(time.Hour))
	if earlier >= e.OutletEnergy(1, true, now) {
		t.Error("energy must increase with elapsed time while on")
	}
}

func TestTotalPower_SumOfOutlets(t *testing.T) {
	e := testEngine()
	now := e.start.Add(123 * time.Second)
	on := allOn(48)
	on[19] = false // outlet 20 off

	var want float64
	for i := 1; i <= 48; i++ {
		want += e.OutletPower(i, on[i-1], now)
	}

	if got := e.TotalPower(on, now); math.Abs(got-want) > 1e-9 {
		t.Errorf("TotalPower = %v, want sum of outlet powers %v", got, want)
	}
}

func TestMainsCurrent_EvenPhaseSplit(t *testing.T) {
	e := testEngine()
	now := e.start.Add(77 * time.Second)
	on := allOn(48)

	total := e.TotalPower(on, now)
	for phase := 1; phase <= 3; phase++ {
		v := e.MainsVoltage(phase, now)
		want := (total / 3) / v
		if got := e.MainsCurrent(phase, on, now); math.Abs(got-want) > 1e-12 {
			t.Errorf("MainsCurrent(%d) = %v, want %v", phase, got, want)
		}
	}
}

func TestFrequency_NarrowBand(t *testing.T) {
	e := testEngine()

	for sec := 0; sec < 300; sec += 13 {
		now := e.start.Add(time.Duration(sec) * time.Second)
		f := e.Frequency(now)
		if f < 50*0.9997 || f > 50*1.0003 {
			t.Errorf("Frequency at +%ds = %v, want within ±0.03%% of 50", sec, f)
		}
	}
}

func TestJitter_Deterministic(t *testing.T) {
	for _, seed := range []int64{0, 1, 424242, 1000000} {
		a := jitter(seed)
		b := jitter(seed)
		if a != b {
			t.Fatalf("jitter(%d) not deterministic: %v vs %v", seed, a, b)
		}
		if a < -0.03 || a > 0.03 {
			t.Errorf("jitter(%d) = %v, outside [-0.03, 0.03]", seed, a)
		}
	}
}
