package mqtt

import (
	"fmt"
)

// maxPayloadSize caps message bodies at 1MB, in line with common
// broker limits.
const maxPayloadSize = 1 << 20

// Publish sends one message and waits for the broker to acknowledge
// it, bounded by publishTimeout.
//
// Retained messages should carry state (outlet state, system status)
// so late subscribers catch up; action events should not be retained.
//
// Parameters:
//   - topic: Destination topic, e.g. "pdusim/2/power/segment"
//   - payload: Message body, at most maxPayloadSize bytes
//   - qos: 0, 1 or 2
//   - retained: Whether the broker keeps the message for new subscribers
//
// Returns:
//   - error: Validation failure, ErrNotConnected, or a wrapped
//     ErrPublishFailed on timeout or broker rejection
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes",
			ErrPublishFailed, len(payload), maxPayloadSize)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}

// PublishString publishes a string payload.
func (c *Client) PublishString(topic string, payload string, qos byte, retained bool) error {
	return c.Publish(topic, []byte(payload), qos, retained)
}

// PublishRetained publishes a retained message at the configured
// default QoS.
func (c *Client) PublishRetained(topic string, payload []byte) error {
	return c.Publish(topic, payload, byte(c.cfg.QoS), true)
}
