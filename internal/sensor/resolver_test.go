package sensor

import (
	"errors"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/nerrad567/pdusim/internal/outlet"
	"github.com/nerrad567/pdusim/internal/telemetry"
)

func newTestResolver(t *testing.T) (*Resolver, *outlet.Bank, *telemetry.Engine, time.Time) {
	t.Helper()

	start := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	engine := telemetry.New(telemetry.Config{
		Outlets:          48,
		Phases:           3,
		NominalVoltage:   230.0,
		NominalFrequency: 50.0,
		Loads:            map[int]float64{1: 140, 10: 220, 44: 260},
	}, start)

	bank, err := outlet.NewBank(48, 3, map[int]float64{1: 140, 10: 220, 44: 260}, nil)
	if err != nil {
		t.Fatalf("NewBank() error = %v", err)
	}

	return New(engine, bank, 3), bank, engine, start
}

func TestResolve_OutletSensors(t *testing.T) {
	r, _, _, start := newTestResolver(t)
	now := start.Add(30 * time.Second)

	tests := []struct {
		id       string
		name     string
		quantity string
		units    string
		context  string
	}{
		{id: "PowerOUTLET10", name: "Outlet 10 Power", quantity: "Power", units: "W", context: "Outlet"},
		{id: "CurrentOUTLET10", name: "Outlet 10 Current", quantity: "Current", units: "A", context: "Outlet"},
		{id: "VoltageOUTLET10", name: "Outlet 10 Voltage", quantity: "Voltage", units: "V", context: "Outlet"},
		{id: "EnergyOUTLET10", name: "Outlet 10 Energy", quantity: "Energy", units: "kWh", context: "Outlet"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := r.Resolve(tt.id, now)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.id, err)
			}
			if got.Name != tt.name {
				t.Errorf("Name = %q, want %q", got.Name, tt.name)
			}
			if got.Quantity != tt.quantity || got.Units != tt.units || got.Context != tt.context {
				t.Errorf("metadata = %q/%q/%q, want %q/%q/%q",
					got.Quantity, got.Units, got.Context, tt.quantity, tt.units, tt.context)
			}
		})
	}
}

func TestResolve_OutletPower_TracksSwitchState(t *testing.T) {
	r, bank, _, start := newTestResolver(t)
	now := start.Add(30 * time.Second)

	got, err := r.Resolve("PowerOUTLET10", now)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Value < 220*0.97 || got.Value > 220*1.03 {
		t.Errorf("on reading = %v, want within ±3%% of 220", got.Value)
	}

	if err := bank.SetState(10, false); err != nil {
		t.Fatalf("SetState() error = %v", err)
	}

	got, err = r.Resolve("PowerOUTLET10", now)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Value != 0 {
		t.Errorf("off reading = %v, want 0", got.Value)
	}
}

func TestResolve_MainsSensors(t *testing.T) {
	r, _, engine, start := newTestResolver(t)
	now := start.Add(45 * time.Second)

	got, err := r.Resolve("FreqMains", now)
	if err != nil {
		t.Fatalf("Resolve(FreqMains) error = %v", err)
	}
	if got.Name != "Mains Frequency" || got.Units != "Hz" {
		t.Errorf("FreqMains = %q/%q", got.Name, got.Units)
	}

	got, err = r.Resolve("PDUPower", now)
	if err != nil {
		t.Fatalf("Resolve(PDUPower) error = %v", err)
	}
	if got.Name != "PDU Total Power" || got.Context != "PowerSubsystem" {
		t.Errorf("PDUPower = %q/%q", got.Name, got.Context)
	}

	// Voltage channels beyond the phase count wrap back onto phases
	got, err = r.Resolve("VoltageMains5", now)
	if err != nil {
		t.Fatalf("Resolve(VoltageMains5) error = %v", err)
	}
	if got.Name != "Mains Voltage Channel 5 (Phase 2)" {
		t.Errorf("VoltageMains5 name = %q", got.Name)
	}
	if want := engine.MainsVoltage(2, now); got.Value != want {
		t.Errorf("VoltageMains5 value = %v, want phase 2 voltage %v", got.Value, want)
	}

	// Power channels report an even sixth of total power
	total, err := r.Resolve("PDUPower", now)
	if err != nil {
		t.Fatalf("Resolve(PDUPower) error = %v", err)
	}
	ch, err := r.Resolve("PowerMains3", now)
	if err != nil {
		t.Fatalf("Resolve(PowerMains3) error = %v", err)
	}
	if math.Abs(ch.Value-total.Value/6) > 1e-9 {
		t.Errorf("PowerMains3 = %v, want total/6 = %v", ch.Value, total.Value/6)
	}
}

func TestResolve_UnknownSensors(t *testing.T) {
	r, _, _, start := newTestResolver(t)
	now := start.Add(10 * time.Second)

	unknown := []string{
		"",
		"Bogus",
		"PowerOUTLET",      // missing index
		"PowerOUTLET0",     // below range
		"PowerOUTLET49",    // above range
		"PowerOUTLETxx",    // non-numeric
		"PowerOUTLET-1",    // sign is not a digit
		"poweroutlet10",    // ids are case-sensitive
		"FreqMains2",       // exact id, no suffix allowed
		"PDUPower1",        // exact id, no suffix allowed
		"CurrentMains4",    // beyond phase count
		"VoltageMains7",    // beyond channel count
		"PowerMains0",      // below range
		"VoltageMainsABC",  // non-numeric
		"EnergyOUTLET1000", // far above range
	}

	for _, id := range unknown {
		if _, err := r.Resolve(id, now); !errors.Is(err, ErrUnknownSensor) {
			t.Errorf("Resolve(%q) error = %v, want ErrUnknownSensor", id, err)
		}
	}
}

func TestResolve_GrammarTotality(t *testing.T) {
	r, _, _, start := newTestResolver(t)
	now := start.Add(20 * time.Second)

	// Every id the grammar admits must resolve
	for n := 1; n <= 48; n++ {
		for _, prefix := range []string{"CurrentOUTLET", "VoltageOUTLET", "PowerOUTLET", "EnergyOUTLET"} {
			id := prefix + strconv.Itoa(n)
			if _, err := r.Resolve(id, now); err != nil {
				t.Fatalf("Resolve(%q) error = %v", id, err)
			}
		}
	}
	for p := 1; p <= 3; p++ {
		if _, err := r.Resolve("CurrentMains"+strconv.Itoa(p), now); err != nil {
			t.Fatalf("Resolve(CurrentMains%d) error = %v", p, err)
		}
	}
	for i := 1; i <= 6; i++ {
		for _, prefix := range []string{"VoltageMains", "PowerMains"} {
			if _, err := r.Resolve(prefix+strconv.Itoa(i), now); err != nil {
				t.Fatalf("Resolve(%s%d) error = %v", prefix, i, err)
			}
		}
	}
}

