package events

import (
	"errors"
	"time"
)

// Default values applied to subscriptions created without the
// corresponding optional field.
const (
	DefaultEventType = "Alert"
	DefaultProtocol  = "redfish"
)

var (
	// ErrSubscriptionNotFound indicates no subscription with the given id.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrMissingDestination indicates a create request without a
	// destination URI.
	ErrMissingDestination = errors.New("destination required")
)

// Subscription is a registered event destination. Deliveries are not
// performed; the registry exists so clients can exercise the full
// subscription lifecycle.
type Subscription struct {
	ID          int64     `json:"id"`
	Destination string    `json:"destination"`
	EventType   string    `json:"event_type"`
	Context     string    `json:"context"`
	Protocol    string    `json:"protocol"`
	CreatedAt   time.Time `json:"created_at"`
}
