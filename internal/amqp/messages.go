package amqp

import (
	"encoding/json"
	"time"
)

// Action says what happened to a record. The worker decides from it
// whether to append, rewrite or drop the spreadsheet row.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// RecordEvent is the lightweight message published after every write.
// It carries only the ID and action; the worker fetches the full record
// from the database when it needs one.
type RecordEvent struct {
	ID        int64     `json:"id"`
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordEvent(id int64, action Action) *RecordEvent {
	return &RecordEvent{
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (m *RecordEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordEventFromJSON(data []byte) (*RecordEvent, error) {
	var msg RecordEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
