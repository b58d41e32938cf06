package mqtt

import "fmt"

// Topic prefixes for the simulator's event channel.
//
// All topics use the scheme: pdusim/{pdu_id}/{category}/...
// System-level topics (broker presence) live under pdusim/system.
const (
	// TopicPrefix is the base for all simulator topics.
	TopicPrefix = "pdusim"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "pdusim/system"
)

// Topics provides builders for simulator MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
type Topics struct{}

// OutletState returns the retained state topic for a single outlet.
//
// Example: pdusim/2/outlet/17/state
func (Topics) OutletState(pduID string, outlet int) string {
	return fmt.Sprintf("%s/%s/outlet/%d/state", TopicPrefix, pduID, outlet)
}

// SegmentAction returns the topic for load segment power control events.
//
// Example: pdusim/2/power/segment
func (Topics) SegmentAction(pduID string) string {
	return fmt.Sprintf("%s/%s/power/segment", TopicPrefix, pduID)
}

// Event returns the topic for general unit events.
//
// Example: pdusim/2/event/SessionCreated
func (Topics) Event(pduID, eventType string) string {
	return fmt.Sprintf("%s/%s/event/%s", TopicPrefix, pduID, eventType)
}

// SystemStatus returns the system status topic carrying online/offline
// presence, including the Last Will message.
//
// Example: pdusim/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllOutletStates returns a pattern matching every outlet state topic
// of one unit. Intended for external subscribers.
//
// Pattern: pdusim/2/outlet/+/state
func (Topics) AllOutletStates(pduID string) string {
	return fmt.Sprintf("%s/%s/outlet/+/state", TopicPrefix, pduID)
}
