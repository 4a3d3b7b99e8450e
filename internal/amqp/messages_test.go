package amqp

import (
	"testing"

	"smartbudget/internal/core"
)

func TestRecordChangeMessage_RoundTrip(t *testing.T) {
	msg := NewRecordChangeMessage(42, core.KindExpense)

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := RecordChangeMessageFromJSON(data)
	if err != nil {
		t.Fatalf("RecordChangeMessageFromJSON: %v", err)
	}
	if got.UserID != 42 {
		t.Errorf("UserID = %d, want 42", got.UserID)
	}
	if got.Kind != core.KindExpense {
		t.Errorf("Kind = %q, want %q", got.Kind, core.KindExpense)
	}
	if got.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestRecordChangeMessageFromJSON_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{{"},
		{"missing user id", `{"kind":"expense"}`},
		{"zero user id", `{"user_id":0,"kind":"expense"}`},
		{"unknown kind", `{"user_id":1,"kind":"mystery"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RecordChangeMessageFromJSON([]byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
