package protocol

import (
	"testing"
)

func TestNewMessage(t *testing.T) {
	tests := []struct {
		name    string
		msgType MessageType
		data    interface{}
		wantErr bool
	}{
		{
			name:    "alert message",
			msgType: TypeAlert,
			data:    AlertData{SessionID: "abc", Kind: "looking_away", Score: 70},
			wantErr: false,
		},
		{
			name:    "nil data",
			msgType: TypePing,
			data:    nil,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewMessage(tt.msgType, tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMessage() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if msg == nil && !tt.wantErr {
				t.Error("NewMessage() returned nil message")
				return
			}
			if msg.Type != tt.msgType {
				t.Errorf("NewMessage() type = %v, want %v", msg.Type, tt.msgType)
			}
			if msg.Timestamp == 0 {
				t.Error("NewMessage() timestamp should be set")
			}
		})
	}
}

func TestMessageRoundTrip(t *testing.T) {
	original := AlertData{
		SessionID: "session-1",
		Kind:      "suspicious_movement",
		Detail:    "magnitude 31.2 px",
		Score:     45,
	}

	msg, err := NewMessage(TypeAlert, original)
	if err != nil {
		t.Fatalf("NewMessage() error = %v", err)
	}

	data, err := msg.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if parsed.Type != TypeAlert {
		t.Errorf("Parsed type = %v, want %v", parsed.Type, TypeAlert)
	}

	var got AlertData
	if err := parsed.ParseData(&got); err != nil {
		t.Fatalf("ParseData() error = %v", err)
	}
	if got != original {
		t.Errorf("Round trip = %+v, want %+v", got, original)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
