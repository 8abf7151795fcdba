package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Record kinds carried by import messages.
const (
	KindExpense = "expense"
	KindRevenue = "revenue"
)

// RecordImportMessage carries one raw record from an upstream exporter.
// Payload keeps the exporter's original (possibly aliased) field names;
// normalization happens in the worker, not at the queue boundary.
type RecordImportMessage struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewRecordImportMessage wraps a raw payload for publishing.
func NewRecordImportMessage(kind string, payload json.RawMessage) *RecordImportMessage {
	return &RecordImportMessage{
		ID:        uuid.NewString(),
		Kind:      kind,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *RecordImportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordImportMessageFromJSON decodes a message from JSON bytes.
func RecordImportMessageFromJSON(data []byte) (*RecordImportMessage, error) {
	var msg RecordImportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
