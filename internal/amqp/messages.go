package amqp

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrMissingUserID is returned when a trigger message names no user.
var ErrMissingUserID = errors.New("amqp: message has no user_id")

// GenerateInsightsMessage asks a worker to run one insight generation for a
// user. The worker reads everything else from the store.
type GenerateInsightsMessage struct {
	UserID      string    `json:"user_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewGenerateInsightsMessage creates a trigger for userID stamped with now.
func NewGenerateInsightsMessage(userID string) *GenerateInsightsMessage {
	return &GenerateInsightsMessage{
		UserID:      userID,
		RequestedAt: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *GenerateInsightsMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// GenerateInsightsMessageFromJSON decodes a trigger and rejects one without
// a user.
func GenerateInsightsMessageFromJSON(data []byte) (*GenerateInsightsMessage, error) {
	var msg GenerateInsightsMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.UserID == "" {
		return nil, ErrMissingUserID
	}
	return &msg, nil
}
