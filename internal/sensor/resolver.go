// Package sensor resolves sensor identifiers to live readings.
//
// Sensor ids are flat strings with the measurement family encoded as a
// prefix and the target encoded as a decimal suffix, e.g. PowerOUTLET44
// or VoltageMains5. Resolution walks an ordered rule table so a new
// sensor family is one appended rule, and id matching stays
// case-sensitive and digits-only exactly like the device firmware.
package sensor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nerrad567/pdusim/internal/outlet"
	"github.com/nerrad567/pdusim/internal/telemetry"
)

// ErrUnknownSensor is returned when no rule matches a sensor id.
// Use errors.Is() to check for it in calling code.
var ErrUnknownSensor = errors.New("sensor: unknown sensor")

// mainsChannels is the number of metering channels the unit exposes per
// mains quantity. Voltage and power channels beyond the phase count map
// back onto phases round-robin.
const mainsChannels = 6

// Reading is a resolved sensor value with its presentation metadata.
type Reading struct {
	// ID is the sensor id as requested.
	ID string

	// Name is the human-readable sensor name.
	Name string

	// Quantity is the Redfish reading type (Power, Voltage, ...).
	Quantity string

	// Units is the measurement unit symbol.
	Units string

	// Context is the Redfish physical context of the measurement.
	Context string

	// Value is the unrounded reading.
	Value float64
}

// rule matches one sensor family. The handler receives the id with the
// prefix stripped.
type rule struct {
	prefix  string
	resolve func(r *Resolver, id, suffix string, on []bool, now time.Time) (Reading, error)
}

// Resolver maps sensor ids onto the telemetry engine and outlet bank.
type Resolver struct {
	engine *telemetry.Engine
	bank   *outlet.Bank
	phases int
	rules  []rule
}

// New creates a Resolver for the given engine and bank. Phases is the
// number of mains input phases.
func New(engine *telemetry.Engine, bank *outlet.Bank, phases int) *Resolver {
	r := &Resolver{
		engine: engine,
		bank:   bank,
		phases: phases,
	}

	// Rule order is authoritative: outlet families first, then the two
	// exact ids, then mains families. First match wins.
	r.rules = []rule{
		{prefix: "CurrentOUTLET", resolve: (*Resolver).outletCurrent},
		{prefix: "VoltageOUTLET", resolve: (*Resolver).outletVoltage},
		{prefix: "PowerOUTLET", resolve: (*Resolver).outletPower},
		{prefix: "EnergyOUTLET", resolve: (*Resolver).outletEnergy},
		{prefix: "FreqMains", resolve: (*Resolver).frequency},
		{prefix: "PDUPower", resolve: (*Resolver).totalPower},
		{prefix: "CurrentMains", resolve: (*Resolver).mainsCurrent},
		{prefix: "VoltageMains", resolve: (*Resolver).mainsVoltage},
		{prefix: "PowerMains", resolve: (*Resolver).mainsPower},
	}

	return r
}

// Resolve looks up a sensor id and returns its current reading. The
// outlet bank is snapshotted once so every value inside one resolution
// reflects the same instant.
//
// Returns ErrUnknownSensor for ids no rule accepts.
func (r *Resolver) Resolve(id string, now time.Time) (Reading, error) {
	on := r.bank.Snapshot()

	for _, rl := range r.rules {
		if strings.HasPrefix(id, rl.prefix) {
			return rl.resolve(r, id, id[len(rl.prefix):], on, now)
		}
	}

	return Reading{}, fmt.Errorf("%w: %q", ErrUnknownSensor, id)
}

// parseIndex parses a digits-only 1-based index with an inclusive upper
// bound. Empty, signed, padded-with-anything or out-of-range suffixes
// are all unknown sensors.
func parseIndex(id, suffix string, max int) (int, error) {
	if suffix == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSensor, id)
	}
	n := 0
	for _, c := range suffix {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrUnknownSensor, id)
		}
		n = n*10 + int(c-'0')
		if n > max {
			return 0, fmt.Errorf("%w: %q", ErrUnknownSensor, id)
		}
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSensor, id)
	}
	return n, nil
}

func (r *Resolver) outletCurrent(id, suffix string, on []bool, now time.Time) (Reading, error) {
	n, err := parseIndex(id, suffix, r.bank.Count())
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		ID:       id,
		Name:     fmt.Sprintf("Outlet %d Current", n),
		Quantity: "Current",
		Units:    "A",
		Context:  "Outlet",
		Value:    r.engine.OutletCurrent(n, on[n-1], now),
	}, nil
}

func (r *Resolver) outletVoltage(id, suffix string, _ []bool, now time.Time) (Reading, error) {
	n, err := parseIndex(id, suffix, r.bank.Count())
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		ID:       id,
		Name:     fmt.Sprintf("Outlet %d Voltage", n),
		Quantity: "Voltage",
		Units:    "V",
		Context:  "Outlet",
		Value:    r.engine.OutletVoltage(n, now),
	}, nil
}

func (r *Resolver) outletPower(id, suffix string, on []bool, now time.Time) (Reading, error) {
	n, err := parseIndex(id, suffix, r.bank.Count())
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		ID:       id,
		Name:     fmt.Sprintf("Outlet %d Power", n),
		Quantity: "Power",
		Units:    "W",
		Context:  "Outlet",
		Value:    r.engine.OutletPower(n, on[n-1], now),
	}, nil
}

func (r *Resolver) outletEnergy(id, suffix string, on []bool, now time.Time) (Reading, error) {
	n, err := parseIndex(id, suffix, r.bank.Count())
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		ID:       id,
		Name:     fmt.Sprintf("Outlet %d Energy", n),
		Quantity: "Energy",
		Units:    "kWh",
		Context:  "Outlet",
		Value:    r.engine.OutletEnergy(n, on[n-1], now),
	}, nil
}

func (r *Resolver) frequency(id, suffix string, _ []bool, now time.Time) (Reading, error) {
	if suffix != "" {
		return Reading{}, fmt.Errorf("%w: %q", ErrUnknownSensor, id)
	}
	return Reading{
		ID:       id,
		Name:     "Mains Frequency",
		Quantity: "Frequency",
		Units:    "Hz",
		Context:  "ACInput",
		Value:    r.engine.Frequency(now),
	}, nil
}

func (r *Resolver) totalPower(id, suffix string, on []bool, now time.Time) (Reading, error) {
	if suffix != "" {
		return Reading{}, fmt.Errorf("%w: %q", ErrUnknownSensor, id)
	}
	return Reading{
		ID:       id,
		Name:     "PDU Total Power",
		Quantity: "Power",
		Units:    "W",
		Context:  "PowerSubsystem",
		Value:    r.engine.TotalPower(on, now),
	}, nil
}

func (r *Resolver) mainsCurrent(id, suffix string, on []bool, now time.Time) (Reading, error) {
	phase, err := parseIndex(id, suffix, r.phases)
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		ID:       id,
		Name:     fmt.Sprintf("Mains Phase %d Current", phase),
		Quantity: "Current",
		Units:    "A",
		Context:  "ACInput",
		Value:    r.engine.MainsCurrent(phase, on, now),
	}, nil
}

func (r *Resolver) mainsVoltage(id, suffix string, _ []bool, now time.Time) (Reading, error) {
	idx, err := parseIndex(id, suffix, mainsChannels)
	if err != nil {
		return Reading{}, err
	}
	phase := ((idx - 1) % r.phases) + 1
	return Reading{
		ID:       id,
		Name:     fmt.Sprintf("Mains Voltage Channel %d (Phase %d)", idx, phase),
		Quantity: "Voltage",
		Units:    "V",
		Context:  "ACInput",
		Value:    r.engine.MainsVoltage(phase, now),
	}, nil
}

func (r *Resolver) mainsPower(id, suffix string, on []bool, now time.Time) (Reading, error) {
	idx, err := parseIndex(id, suffix, mainsChannels)
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		ID:       id,
		Name:     fmt.Sprintf("Mains Power Channel %d", idx),
		Quantity: "Power",
		Units:    "W",
		Context:  "ACInput",
		Value:    r.engine.TotalPower(on, now) / mainsChannels,
	}, nil
}
