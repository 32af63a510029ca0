// Package protocol defines the JSON message envelope for the dashboard
// websocket streams and the review-server uplink.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of websocket message
type MessageType string

const (
	// Engine → dashboard/uplink messages
	TypeMetrics MessageType = "metrics" // Per-frame inference result
	TypeAlert   MessageType = "alert"   // Violation event
	TypeSummary MessageType = "summary" // Session summary snapshot

	// Dashboard → engine messages
	TypeCalibrate MessageType = "calibrate" // Commit current gaze as center

	// Bidirectional
	TypePing MessageType = "ping" // Health check
	TypePong MessageType = "pong" // Health check response
)

// Message is the base wrapper for all websocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes serializes the message to JSON
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// Parse deserializes a message from JSON
func Parse(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// AlertData is the payload of a TypeAlert message.
type AlertData struct {
	SessionID string  `json:"session_id"`
	Kind      string  `json:"kind"`
	Detail    string  `json:"detail"`
	Score     float64 `json:"attention_score"`
}
