package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/nerrad567/pdusim/internal/outlet"
)

type fakePublisher struct {
	connected bool
	failWith  error
	published []publishedMessage
}

type publishedMessage struct {
	topic    string
	payload  []byte
	retained bool
}

func (f *fakePublisher) Publish(topic string, payload []byte, _ byte, retained bool) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.published = append(f.published, publishedMessage{topic: topic, payload: payload, retained: retained})
	return nil
}

func (f *fakePublisher) IsConnected() bool { return f.connected }

func TestNotifier_SegmentAction(t *testing.T) {
	pub := &fakePublisher{connected: true}
	n := NewNotifier("2", pub, nil)

	n.SegmentAction(outlet.ActionResult{
		Segment:  2,
		Action:   outlet.ActionOff,
		Affected: outlet.Range{Start: 17, End: 32},
	}, outlet.StateOff)

	// One action message plus one retained state message per outlet
	if len(pub.published) != 17 {
		t.Fatalf("published %d messages, want 17", len(pub.published))
	}

	action := pub.published[0]
	if action.topic != "pdusim/2/power/segment" {
		t.Errorf("action topic = %q", action.topic)
	}
	if action.retained {
		t.Error("action message retained, want transient")
	}

	var body map[string]any
	if err := json.Unmarshal(action.payload, &body); err != nil {
		t.Fatalf("unmarshalling action payload: %v", err)
	}
	if body["action"] != "off" || body["segment"] != float64(2) {
		t.Errorf("action payload = %v", body)
	}
	if body["first"] != float64(17) || body["last"] != float64(32) {
		t.Errorf("affected range in payload = %v", body)
	}

	state := pub.published[1]
	if state.topic != "pdusim/2/outlet/17/state" {
		t.Errorf("state topic = %q", state.topic)
	}
	if !state.retained {
		t.Error("state message not retained")
	}
}

func TestNotifier_SkipsWhenDisconnected(t *testing.T) {
	pub := &fakePublisher{connected: false}
	n := NewNotifier("2", pub, nil)

	n.OutletState(1, outlet.StateOn)
	if len(pub.published) != 0 {
		t.Errorf("published %d messages while disconnected, want 0", len(pub.published))
	}
}

func TestNotifier_NilPublisher(t *testing.T) {
	n := NewNotifier("2", nil, nil)

	// Must not panic
	n.OutletState(1, outlet.StateOn)
	n.Event("SessionCreated", map[string]any{"username": "admin"})
}

func TestNotifier_PublishErrorIsSwallowed(t *testing.T) {
	pub := &fakePublisher{connected: true, failWith: errors.New("broker gone")}
	n := NewNotifier("2", pub, nil)

	// Best-effort: errors are logged, never returned
	n.OutletState(3, outlet.StateOff)
}

func TestNotifier_Event(t *testing.T) {
	pub := &fakePublisher{connected: true}
	n := NewNotifier("2", pub, nil)

	n.Event("SessionCreated", map[string]any{"username": "admin"})

	if len(pub.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.published))
	}
	if pub.published[0].topic != "pdusim/2/event/SessionCreated" {
		t.Errorf("topic = %q", pub.published[0].topic)
	}

	var body map[string]any
	if err := json.Unmarshal(pub.published[0].payload, &body); err != nil {
		t.Fatalf("unmarshalling payload: %v", err)
	}
	if body["username"] != "admin" || body["event"] != "SessionCreated" {
		t.Errorf("payload = %v", body)
	}
}
