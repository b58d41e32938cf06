package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteReading records a single sensor reading.
//
// Called on every sensor GET so polled telemetry accumulates as a time
// series. The write is non-blocking; data is batched and sent
// asynchronously.
//
// Parameters:
//   - sensorID: Sensor identifier (e.g., "PowerOutlet17")
//   - quantity: The measured quantity (e.g., "Power", "Voltage")
//   - units: Units of the reading (e.g., "W", "V")
//   - value: The reading value
//
// Example:
//
//	client.WriteReading("PowerOutlet17", "Power", "W", 142.7)
func (c *Client) WriteReading(sensorID, quantity, units string, value float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"sensor_readings",
		map[string]string{
			"sensor_id": sensorID,
			"quantity":  quantity,
			"units":     units,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteOutletState records an outlet switch state transition.
//
// Parameters:
//   - outlet: Outlet position (1-based)
//   - on: Whether the outlet is now energised
func (c *Client) WriteOutletState(outlet int, on bool) {
	if !c.IsConnected() {
		return
	}

	state := 0
	if on {
		state = 1
	}

	point := write.NewPoint(
		"outlet_state",
		map[string]string{},
		map[string]interface{}{
			"outlet": outlet,
			"state":  state,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
