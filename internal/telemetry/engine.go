// Package telemetry generates deterministic electrical readings for the
// simulated PDU.
//
// All readings are pure functions of the outlet configuration, the
// on/off state supplied by the caller and the time elapsed since the
// engine's start instant. Two calls within the same time bucket return
// identical values; consecutive buckets wander within a bounded band
// around the configured base load. Nothing here touches the wall clock
// directly, which keeps the package fully testable.
package telemetry

import "time"

// Seed composition and damping constants. Each reading family uses its
// own seed stride and time bucket so the streams are uncorrelated.
const (
	powerSeedStride   = 100000
	powerBucketSecs   = 5
	voltageSeedStride = 999
	voltageBucketSecs = 10
	voltageDamping    = 0.15

	mainsSeedStride     = 123456
	mainsBucketSecs     = 10
	mainsVoltageDamping = 0.10

	frequencySeed       = 424242
	frequencyBucketSecs = 30
	frequencyDamping    = 0.01

	wattsPerKilowatt = 1000.0
)

// Config describes the electrical layout of the simulated unit.
type Config struct {
	// Outlets is the number of outlets, addressed 1..Outlets.
	Outlets int

	// Phases is the number of mains input phases.
	Phases int

	// NominalVoltage is the phase voltage readings wander around.
	NominalVoltage float64

	// NominalFrequency is the mains frequency readings wander around.
	NominalFrequency float64

	// Loads maps outlet index to base load in watts. Outlets absent
	// from the map are unconnected and never draw power.
	Loads map[int]float64
}

// Engine produces readings for a fixed layout from a fixed start instant.
// It is stateless beyond its configuration and safe for concurrent use.
type Engine struct {
	cfg   Config
	start time.Time
}

// New creates an Engine. Elapsed time in every reading is measured from
// start, which is normally the process boot instant.
func New(cfg Config, start time.Time) *Engine {
	return &Engine{cfg: cfg, start: start}
}

// StartEpoch returns the engine start instant as Unix seconds.
// Surfaced as the unit's boot timestamp in log entries.
func (e *Engine) StartEpoch() int64 {
	return e.start.Unix()
}

// BaseLoad returns the configured base load for an outlet in watts,
// or 0 for unconnected outlets.
func (e *Engine) BaseLoad(index int) float64 {
	return e.cfg.Loads[index]
}

// Connected reports whether an outlet has a load attached.
func (e *Engine) Connected(index int) bool {
	return e.cfg.Loads[index] > 0
}

// elapsedSeconds returns whole seconds since the engine start.
func (e *Engine) elapsedSeconds(now time.Time) int64 {
	return int64(now.Sub(e.start).Seconds())
}

// OutletPower returns the instantaneous power draw of an outlet in watts.
// Off or unconnected outlets draw exactly 0. On outlets wander within
// ±3% of their base load, floored at zero.
func (e *Engine) OutletPower(index int, on bool, now time.Time) float64 {
	base := e.cfg.Loads[index]
	if !on || base <= 0 {
		return 0
	}

	sec := e.elapsedSeconds(now)
	seed := int64(index)*powerSeedStride + sec/powerBucketSecs
	p := base * (1 + jitter(seed))
	if p < 0 {
		return 0
	}
	return p
}

// OutletVoltage returns the supply voltage at an outlet. Voltage is
// present whether or not the outlet is switched on.
func (e *Engine) OutletVoltage(index int, now time.Time) float64 {
	sec := e.elapsedSeconds(now)
	seed := int64(index)*voltageSeedStride + sec/voltageBucketSecs
	return e.cfg.NominalVoltage * (1 + jitter(seed)*voltageDamping)
}

// OutletCurrent returns the outlet current in amps, derived from power
// and voltage so the three readings are always mutually consistent.
func (e *Engine) OutletCurrent(index int, on bool, now time.Time) float64 {
	v := e.OutletVoltage(index, now)
	if v <= 0 {
		return 0
	}
	return e.OutletPower(index, on, now) / v
}

// OutletEnergy returns accumulated energy in kWh, computed as base load
// times elapsed hours. The accumulator is jitter-free so it is exactly
// monotonic while the outlet stays on, and reads 0 while it is off.
func (e *Engine) OutletEnergy(index int, on bool, now time.Time) float64 {
	base := e.cfg.Loads[index]
	if !on || base <= 0 {
		return 0
	}
	hours := now.Sub(e.start).Hours()
	return base * hours / wattsPerKilowatt
}

// TotalPower returns the whole-unit power draw in watts. The on slice
// is indexed on[i-1] for outlet i and must cover all outlets.
func (e *Engine) TotalPower(on []bool, now time.Time) float64 {
	var total float64
	for i := 1; i <= e.cfg.Outlets && i <= len(on); i++ {
		total += e.OutletPower(i, on[i-1], now)
	}
	return total
}

// TotalEnergy returns the whole-unit accumulated energy in kWh.
func (e *Engine) TotalEnergy(on []bool, now time.Time) float64 {
	var total float64
	for i := 1; i <= e.cfg.Outlets && i <= len(on); i++ {
		total += e.OutletEnergy(i, on[i-1], now)
	}
	return total
}

// MainsVoltage returns the input voltage for a mains phase (1-based).
// Phase voltage wanders in a narrower band than outlet voltage.
func (e *Engine) MainsVoltage(phase int, now time.Time) float64 {
	sec := e.elapsedSeconds(now)
	seed := int64(phase)*mainsSeedStride + sec/mainsBucketSecs
	return e.cfg.NominalVoltage * (1 + jitter(seed)*mainsVoltageDamping)
}

// MainsCurrent returns the input current for a mains phase in amps.
// Total load is modelled as evenly spread across phases.
func (e *Engine) MainsCurrent(phase int, on []bool, now time.Time) float64 {
	v := e.MainsVoltage(phase, now)
	if v <= 0 || e.cfg.Phases <= 0 {
		return 0
	}
	return (e.TotalPower(on, now) / float64(e.cfg.Phases)) / v
}

// Frequency returns the mains frequency in hertz.
func (e *Engine) Frequency(now time.Time) float64 {
	sec := e.elapsedSeconds(now)
	seed := frequencySeed + sec/frequencyBucketSecs
	return e.cfg.NominalFrequency * (1 + jitter(seed)*frequencyDamping)
}
