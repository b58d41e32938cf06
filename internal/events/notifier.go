package events

import (
	"encoding/json"
	"time"

	"github.com/nerrad567/pdusim/internal/infrastructure/mqtt"
	"github.com/nerrad567/pdusim/internal/outlet"
)

// Publisher is the broker surface the notifier needs. *mqtt.Client
// satisfies it; a nil Publisher disables publishing entirely.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	IsConnected() bool
}

// Logger captures the logging surface used by the notifier.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Notifier publishes simulator events to the broker. Publishing is
// best-effort: a missing or disconnected broker never fails the
// triggering operation.
type Notifier struct {
	pduID     string
	publisher Publisher
	topics    mqtt.Topics
	logger    Logger
}

// NewNotifier creates a notifier for one unit. publisher may be nil.
func NewNotifier(pduID string, publisher Publisher, logger Logger) *Notifier {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Notifier{
		pduID:     pduID,
		publisher: publisher,
		logger:    logger,
	}
}

// SegmentAction publishes the outcome of a load segment power action,
// plus a retained per-outlet state message for every affected outlet.
func (n *Notifier) SegmentAction(result outlet.ActionResult, state outlet.State) {
	payload := map[string]any{
		"pdu_id":    n.pduID,
		"segment":   result.Segment,
		"action":    string(result.Action),
		"first":     result.Affected.Start,
		"last":      result.Affected.End,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	n.publish(n.topics.SegmentAction(n.pduID), payload, false)

	for i := result.Affected.Start; i <= result.Affected.End; i++ {
		n.OutletState(i, state)
	}
}

// OutletState publishes a retained state message for one outlet.
func (n *Notifier) OutletState(index int, state outlet.State) {
	payload := map[string]any{
		"pdu_id":    n.pduID,
		"outlet":    index,
		"state":     string(state),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	n.publish(n.topics.OutletState(n.pduID, index), payload, true)
}

// Event publishes a general unit event such as SessionCreated.
func (n *Notifier) Event(eventType string, detail map[string]any) {
	payload := map[string]any{
		"pdu_id":    n.pduID,
		"event":     eventType,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range detail {
		payload[k] = v
	}
	n.publish(n.topics.Event(n.pduID, eventType), payload, false)
}

func (n *Notifier) publish(topic string, payload map[string]any, retained bool) {
	if n.publisher == nil || !n.publisher.IsConnected() {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		n.logger.Warn("event payload marshal failed", "topic", topic, "error", err)
		return
	}

	if err := n.publisher.Publish(topic, data, 0, retained); err != nil {
		n.logger.Warn("event publish failed", "topic", topic, "error", err)
		return
	}
	n.logger.Debug("event published", "topic", topic)
}
