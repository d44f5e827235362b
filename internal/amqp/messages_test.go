package amqp

import (
	"testing"
	"time"
)

func TestRecordEventRoundTrip(t *testing.T) {
	msg := NewRecordEvent(42, ActionUpdated)
	if msg.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := RecordEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != 42 || got.Action != ActionUpdated {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if !got.Timestamp.Equal(msg.Timestamp.Truncate(time.Nanosecond)) {
		t.Fatalf("timestamp mismatch: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestRecordEventFromJSONInvalid(t *testing.T) {
	if _, err := RecordEventFromJSON([]byte("{not json")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}
