// Package resource builds Redfish-style resource payloads.
//
// Every addressable thing in the management API is a resource with an
// @odata.id, an @odata.type, an Id, a Name and a Status block.
// Collections list their members by reference only. The builders return
// plain maps so handlers can attach endpoint-specific properties before
// encoding.
package resource

import "math"

// Resource status values.
const (
	StateEnabled  = "Enabled"
	StateDisabled = "Disabled"
	HealthOK      = "OK"
)

// sensorPrecision is the number of decimal places sensor readings are
// rounded to at the presentation boundary. Internal values keep full
// precision.
const sensorPrecision = 4

// Status builds the standard Status block. Health is always OK; the
// simulator has no fault model.
func Status(state string) map[string]any {
	return map[string]any{
		"State":  state,
		"Health": HealthOK,
	}
}

// New builds the common envelope of a single resource with an Enabled
// status.
func New(odataID, odataType, id, name string) map[string]any {
	return map[string]any{
		"@odata.id":   odataID,
		"@odata.type": odataType,
		"Id":          id,
		"Name":        name,
		"Status":      Status(StateEnabled),
	}
}

// Collection builds a members-by-reference collection envelope. Member
// order is preserved; callers supply ids already sorted.
func Collection(odataID, odataType, name string, memberIDs []string) map[string]any {
	members := make([]map[string]any, 0, len(memberIDs))
	for _, id := range memberIDs {
		members = append(members, map[string]any{"@odata.id": id})
	}
	return map[string]any{
		"@odata.id":           odataID,
		"@odata.type":         odataType,
		"Name":                name,
		"Members@odata.count": len(members),
		"Members":             members,
	}
}

// Sensor builds a sensor resource. The reading is rounded to 4 decimal
// places here and nowhere earlier.
func Sensor(odataID, id, name, readingType, units, physicalContext string, value float64) map[string]any {
	payload := New(odataID, "#Sensor.v1_7_0.Sensor", id, name)
	payload["ReadingType"] = readingType
	payload["ReadingUnits"] = units
	payload["PhysicalContext"] = physicalContext
	payload["Reading"] = Round(value, sensorPrecision)
	return payload
}

// Round rounds to the given number of decimal places, half away from zero.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
