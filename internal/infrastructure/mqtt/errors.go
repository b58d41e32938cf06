package mqtt

import "errors"

// Sentinel errors, matched with errors.Is.
var (
	// ErrNotConnected means the client is not currently connected.
	ErrNotConnected = errors.New("mqtt: client not connected")

	// ErrConnectionFailed wraps a failed initial connection.
	ErrConnectionFailed = errors.New("mqtt: connection failed")

	// ErrPublishFailed wraps a rejected or timed-out publish.
	ErrPublishFailed = errors.New("mqtt: publish failed")

	// ErrInvalidQoS rejects QoS levels outside 0..2.
	ErrInvalidQoS = errors.New("mqtt: invalid QoS level (must be 0, 1, or 2)")

	// ErrInvalidTopic rejects empty topics.
	ErrInvalidTopic = errors.New("mqtt: topic cannot be empty")

	// ErrTimeout marks an operation that gave up waiting.
	ErrTimeout = errors.New("mqtt: operation timed out")
)
