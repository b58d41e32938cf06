// Package outlet models the switchable outlet bank of the simulated PDU.
//
// The bank is the single source of truth for outlet switch state. All
// reads and writes go through one RWMutex so telemetry derived from a
// Snapshot always observes a consistent instant, and segment operations
// are atomic with respect to concurrent readers.
package outlet

import (
	"fmt"
	"sync"
)

// Logger interface for optional operation logging.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}

// noopLogger is used when no logger is provided.
type noopLogger struct{}

func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Debug(msg string, args ...any) {}

// Bank holds the switch state of every outlet and the segment layout.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Bank struct {
	mu       sync.RWMutex
	on       []bool
	loads    []float64
	segments int
	logger   Logger
}

// NewBank creates a bank of count outlets split into segments equal
// contiguous blocks. Loads maps outlet index (1-based) to base load in
// watts; outlets absent from the map are unconnected. All outlets start
// switched on, matching a freshly powered unit.
//
// Returns an error if count or segments is invalid, if segments does
// not divide count evenly, or if a load index is out of range.
func NewBank(count, segments int, loads map[int]float64, logger Logger) (*Bank, error) {
	if count < 1 {
		return nil, fmt.Errorf("outlet: bank size must be at least 1, got %d", count)
	}
	if segments < 1 {
		return nil, fmt.Errorf("outlet: segment count must be at least 1, got %d", segments)
	}
	if count%segments != 0 {
		return nil, fmt.Errorf("outlet: %d segments do not divide %d outlets evenly", segments, count)
	}
	if logger == nil {
		logger = noopLogger{}
	}

	b := &Bank{
		on:       make([]bool, count),
		loads:    make([]float64, count),
		segments: segments,
		logger:   logger,
	}

	for i := range b.on {
		b.on[i] = true
	}

	for idx, load := range loads {
		if idx < 1 || idx > count {
			return nil, fmt.Errorf("outlet: load index %d outside 1..%d", idx, count)
		}
		if load < 0 {
			return nil, fmt.Errorf("outlet: load for outlet %d is negative", idx)
		}
		b.loads[idx-1] = load
	}

	return b, nil
}

// Count returns the number of outlets in the bank.
func (b *Bank) Count() int {
	return len(b.on)
}

// SegmentCount returns the number of load segments.
func (b *Bank) SegmentCount() int {
	return b.segments
}

// SegmentRange returns the inclusive outlet range covered by a segment.
func (b *Bank) SegmentRange(segment int) (Range, error) {
	if segment < 1 || segment > b.segments {
		return Range{}, fmt.Errorf("%w: segment %d of %d", ErrSegmentNotFound, segment, b.segments)
	}
	size := len(b.on) / b.segments
	start := (segment-1)*size + 1
	return Range{Start: start, End: start + size - 1}, nil
}

// Get returns a point-in-time view of a single outlet.
func (b *Bank) Get(index int) (Outlet, error) {
	if index < 1 || index > len(b.on) {
		return Outlet{}, fmt.Errorf("%w: outlet %d of %d", ErrOutletNotFound, index, len(b.on))
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.outletLocked(index), nil
}

// SetState switches a single outlet on or off. Setting the current
// state is a no-op and not an error.
func (b *Bank) SetState(index int, on bool) error {
	if index < 1 || index > len(b.on) {
		return fmt.Errorf("%w: outlet %d of %d", ErrOutletNotFound, index, len(b.on))
	}

	b.mu.Lock()
	b.on[index-1] = on
	b.mu.Unlock()

	b.logger.Debug("outlet state set", "outlet", index, "on", on)
	return nil
}

// Snapshot returns the on/off state of every outlet, taken under one
// read lock. Element i-1 corresponds to outlet i. The returned slice is
// a copy and safe to retain.
func (b *Bank) Snapshot() []bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]bool, len(b.on))
	copy(out, b.on)
	return out
}

// Outlets returns a point-in-time view of every outlet in index order.
func (b *Bank) Outlets() []Outlet {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Outlet, len(b.on))
	for i := range b.on {
		out[i] = b.outletLocked(i + 1)
	}
	return out
}

// ApplySegment applies a power control action to every outlet in a
// segment. The whole operation holds the write lock once, so readers
// never observe a half-applied segment. Cycle switches the segment off
// and back on as two sub-steps inside the same critical section; its
// observable end state equals On.
//
// Returns the affected outlet range on success.
func (b *Bank) ApplySegment(segment int, action Action) (ActionResult, error) {
	r, err := b.SegmentRange(segment)
	if err != nil {
		return ActionResult{}, err
	}

	switch action {
	case ActionOn, ActionOff, ActionCycle:
	default:
		return ActionResult{}, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}

	b.mu.Lock()
	switch action {
	case ActionOn:
		b.setRangeLocked(r, true)
	case ActionOff:
		b.setRangeLocked(r, false)
	case ActionCycle:
		b.setRangeLocked(r, false)
		b.setRangeLocked(r, true)
	}
	b.mu.Unlock()

	b.logger.Info("segment action applied",
		"segment", segment,
		"action", string(action),
		"outlets_start", r.Start,
		"outlets_end", r.End,
	)

	return ActionResult{Segment: segment, Action: action, Affected: r}, nil
}

// outletLocked builds an Outlet view. Caller must hold at least a read lock.
func (b *Bank) outletLocked(index int) Outlet {
	state := StateOff
	if b.on[index-1] {
		state = StateOn
	}
	return Outlet{
		Index:          index,
		State:          state,
		RatedLoadWatts: b.loads[index-1],
	}
}

// setRangeLocked switches a span of outlets. Caller must hold the write lock.
func (b *Bank) setRangeLocked(r Range, on bool) {
	for i := r.Start; i <= r.End; i++ {
		b.on[i-1] = on
	}
}
