// Package influxdb provides optional time-series recording of
// simulated telemetry.
//
// It wraps the official influxdb-client-go v2 library with connection
// management, non-blocking batched writes, and health monitoring.
//
// # Purpose
//
// When enabled, every sensor reading served by the management API and
// every outlet state transition is recorded as a point, so the
// simulated unit produces realistic long-term telemetry for dashboards
// and alerting pipelines under test.
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:    "http://localhost:8086",
//	    Token:  "your-token",
//	    Org:    "lab",
//	    Bucket: "pdu_telemetry",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.WriteReading("PowerOutlet17", "Power", "W", 142.7)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are logged via a
// callback. Connection and health check errors are returned directly.
package influxdb
