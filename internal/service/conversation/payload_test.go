package conversation

import (
	"testing"

	"github.com/goccy/go-json"
)

func decodeMeeting(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var out struct {
		ID      string         `json:"id"`
		Name    string         `json:"name"`
		Meeting map[string]any `json:"meeting"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid payload %s: %v", body, err)
	}
	if out.ID != "meeting" {
		t.Errorf("expected id 'meeting', got %s", out.ID)
	}
	return out.Meeting
}

func TestRecordFlag(t *testing.T) {
	tests := []struct {
		name     string
		props    map[string]any
		expected string
	}{
		{"on", map[string]any{"audiorecording": "on"}, "true"},
		{"off", map[string]any{"audiorecording": "off"}, "false"},
		{"upper case", map[string]any{"audiorecording": "ON"}, "false"},
		{"boolean true", map[string]any{"audiorecording": true}, "false"},
		{"absent", map[string]any{"other": "on"}, "false"},
		{"nil properties", nil, "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &ConversationInfo{ID: "c1", Properties: tt.props}
			body, err := EncodeSpeechEvent(info, CommandStart)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			meeting := decodeMeeting(t, body)
			record, ok := meeting["record"].(string)
			if !ok {
				t.Fatalf("expected record to be a string, got %T", meeting["record"])
			}
			if record != tt.expected {
				t.Errorf("expected record %q, got %q", tt.expected, record)
			}
		})
	}
}

func TestEncodeSpeechEvent_ExactWireShape(t *testing.T) {
	info := &ConversationInfo{
		ID:           "conv1",
		Participants: []Participant{{ID: "alice", PreferredLanguage: "en-US"}},
		Properties:   map[string]any{"audiorecording": "on", "topic": "standup"},
	}

	body, err := EncodeSpeechEvent(info, CommandStart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `{"id":"meeting","name":"start","meeting":{"attendees":[{"id":"alice","preferredLanguage":"en-US"}],"audiorecording":"on","id":"conv1","record":"true","topic":"standup"}}`
	if string(body) != expected {
		t.Errorf("unexpected payload:\n%s\nwant:\n%s", body, expected)
	}
}

func TestEncodeSpeechEvent_FixedKeysWin(t *testing.T) {
	info := &ConversationInfo{
		ID: "real-id",
		Properties: map[string]any{
			"id":        "spoofed",
			"record":    "true",
			"attendees": "nobody",
			"extra":     float64(7),
		},
	}

	body, err := EncodeSpeechEvent(info, CommandMute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meeting := decodeMeeting(t, body)
	if meeting["id"] != "real-id" {
		t.Errorf("expected id 'real-id', got %v", meeting["id"])
	}
	if meeting["record"] != "false" {
		t.Errorf("expected record 'false', got %v", meeting["record"])
	}
	if _, ok := meeting["attendees"].([]any); !ok {
		t.Errorf("expected attendees list, got %T", meeting["attendees"])
	}
	if meeting["extra"] != float64(7) {
		t.Errorf("expected inbound property to be copied, got %v", meeting["extra"])
	}
}

func TestEncodeSpeechEvent_DoesNotMutateInfo(t *testing.T) {
	props := map[string]any{"audiorecording": "on"}
	info := &ConversationInfo{ID: "c1", Properties: props}

	if _, err := EncodeSpeechEvent(info, CommandStart); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(props) != 1 {
		t.Errorf("expected properties to be untouched, got %v", props)
	}
}

func TestEncodeSpeechEvent_NilInfo(t *testing.T) {
	body, err := EncodeSpeechEvent(nil, CommandStart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(body) != 0 {
		t.Errorf("expected empty body, got %s", body)
	}
	if NewSpeechEventPayload(nil, CommandStart) != nil {
		t.Error("expected nil payload for nil info")
	}
}

func TestEncodeSpeechEvent_NilParticipantsEncodeAsEmptyList(t *testing.T) {
	body, err := EncodeSpeechEvent(&ConversationInfo{ID: "c1"}, CommandStart)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meeting := decodeMeeting(t, body)
	attendees, ok := meeting["attendees"].([]any)
	if !ok || len(attendees) != 0 {
		t.Errorf("expected empty attendees list, got %v", meeting["attendees"])
	}
}

func TestNewSpeechEventPayload_Fields(t *testing.T) {
	info := &ConversationInfo{
		ID:           "c1",
		Participants: []Participant{{ID: "bob"}},
		Properties:   map[string]any{"audiorecording": "on"},
	}

	p := NewSpeechEventPayload(info, "unmute")
	if p.ID != "meeting" || p.Name != "unmute" {
		t.Errorf("unexpected header fields: %+v", p)
	}
	if p.Meeting.ID != "c1" || p.Meeting.Record != "true" || len(p.Meeting.Attendees) != 1 {
		t.Errorf("unexpected meeting: %+v", p.Meeting)
	}
}
