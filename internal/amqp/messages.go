package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"smartbudget/internal/core"
)

// RecordChangeMessage signals that rows of one entity kind changed for a
// user. It deliberately carries no delta: receipt means "re-fetch and
// re-aggregate", never "apply this change".
type RecordChangeMessage struct {
	UserID    int64           `json:"user_id"`
	Kind      core.RecordKind `json:"kind"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewRecordChangeMessage creates a change notification for one user/kind.
func NewRecordChangeMessage(userID int64, kind core.RecordKind) *RecordChangeMessage {
	return &RecordChangeMessage{
		UserID:    userID,
		Kind:      kind,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordChangeMessageFromJSON creates a message from JSON bytes
func RecordChangeMessageFromJSON(data []byte) (*RecordChangeMessage, error) {
	var msg RecordChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.UserID <= 0 {
		return nil, errors.New("change message missing user id")
	}
	if err := msg.Kind.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
