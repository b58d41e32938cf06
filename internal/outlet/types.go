package outlet

import (
	"errors"
	"strings"
)

// State is the switch position of an outlet.
type State string

// Outlet states as reported by the management API.
const (
	StateOn  State = "On"
	StateOff State = "Off"
)

// Action is a power control operation applied to a load segment.
type Action string

// Supported power control actions.
const (
	ActionOn    Action = "on"
	ActionOff   Action = "off"
	ActionCycle Action = "cycle"
)

// Domain-specific errors for outlet operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrOutletNotFound is returned when an outlet index is outside the bank.
	ErrOutletNotFound = errors.New("outlet: outlet not found")

	// ErrSegmentNotFound is returned when a load segment number is outside the bank.
	ErrSegmentNotFound = errors.New("outlet: load segment not found")

	// ErrInvalidAction is returned for power control actions other than on/off/cycle.
	ErrInvalidAction = errors.New("outlet: invalid action")
)

// ParseAction normalises a power control action string. Matching is
// case-insensitive; anything other than on, off or cycle is rejected.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(s) {
	case string(ActionOn):
		return ActionOn, nil
	case string(ActionOff):
		return ActionOff, nil
	case string(ActionCycle):
		return ActionCycle, nil
	default:
		return "", ErrInvalidAction
	}
}

// Outlet is a point-in-time view of a single outlet.
type Outlet struct {
	// Index is the 1-based outlet position in the bank.
	Index int

	// State is the switch position.
	State State

	// RatedLoadWatts is the configured base load; 0 means unconnected.
	RatedLoadWatts float64
}

// On reports whether the outlet is switched on.
func (o Outlet) On() bool {
	return o.State == StateOn
}

// Connected reports whether a load is attached to the outlet.
func (o Outlet) Connected() bool {
	return o.RatedLoadWatts > 0
}

// Range is a contiguous 1-based span of outlet indices, inclusive.
type Range struct {
	Start int
	End   int
}

// ActionResult describes a completed segment power control operation.
type ActionResult struct {
	Segment  int
	Action   Action
	Affected Range
}
