package influxdb

import "errors"

// Sentinel errors, matched with errors.Is.
var (
	// ErrNotConnected means the recorder has been closed or never connected.
	ErrNotConnected = errors.New("influxdb: not connected")

	// ErrConnectionFailed wraps a failed connection attempt in Connect.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrWriteFailed marks a synchronous write failure. Batched write
	// errors arrive through the SetOnError callback instead.
	ErrWriteFailed = errors.New("influxdb: write failed")

	// ErrDisabled means recording is switched off in configuration.
	ErrDisabled = errors.New("influxdb: disabled in configuration")
)
