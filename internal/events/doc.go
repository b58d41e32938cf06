// Package events manages event destination subscriptions and broker
// notifications.
//
// Subscriptions form a registry only: destinations are stored with
// monotonically increasing ids and full lifecycle support, but no
// HTTP delivery is attempted. Broker notifications are best-effort
// MQTT publishes of power actions and outlet state changes; they
// never fail the operation that triggered them.
package events
