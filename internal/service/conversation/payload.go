package conversation

import (
	"github.com/goccy/go-json"
)

// Speech event commands.
const (
	CommandStart  = "start"
	CommandMute   = "mute"
	CommandUnmute = "unmute"
)

// AudioRecordingProperty is the conversation property that requests audio
// recording when set to AudioRecordingOn.
const (
	AudioRecordingProperty = "audiorecording"
	AudioRecordingOn       = "on"
)

const (
	speechEventID           = "meeting"
	recordTrue, recordFalse = "true", "false"
)

// Participant is one conversation attendee.
type Participant struct {
	ID                string `json:"id"`
	PreferredLanguage string `json:"preferredLanguage,omitempty"`
	Voice             string `json:"voice,omitempty"`
}

// ConversationInfo is the conversation metadata supplied by the application.
// The adapter never modifies it.
type ConversationInfo struct {
	ID           string
	Participants []Participant
	Properties   map[string]any
}

// SpeechEventPayload is the body of a speech.event message.
type SpeechEventPayload struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Meeting Meeting `json:"meeting"`
}

// Meeting is the meeting section of a speech event. It is encoded as a single
// object holding every conversation property plus the id, attendees and
// record keys; the fixed keys win when a property uses the same name.
type Meeting struct {
	Properties map[string]any
	ID         string
	Attendees  []Participant
	Record     string
}

// MarshalJSON implements json.Marshaler.
func (m Meeting) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Properties)+3)
	for k, v := range m.Properties {
		out[k] = v
	}

	attendees := m.Attendees
	if attendees == nil {
		attendees = []Participant{}
	}
	out["id"] = m.ID
	out["attendees"] = attendees
	out["record"] = m.Record

	return json.Marshal(out)
}

// NewSpeechEventPayload builds the speech event for command from info.
// It returns nil when info is nil.
func NewSpeechEventPayload(info *ConversationInfo, command string) *SpeechEventPayload {
	if info == nil {
		return nil
	}
	return &SpeechEventPayload{
		ID:   speechEventID,
		Name: command,
		Meeting: Meeting{
			Properties: info.Properties,
			ID:         info.ID,
			Attendees:  info.Participants,
			Record:     recordFlag(info.Properties),
		},
	}
}

// EncodeSpeechEvent serializes the speech event for command. A nil info
// yields an empty body and no error.
func EncodeSpeechEvent(info *ConversationInfo, command string) ([]byte, error) {
	payload := NewSpeechEventPayload(info, command)
	if payload == nil {
		return nil, nil
	}
	return json.Marshal(payload)
}

// recordFlag is "true" only when the audiorecording property is the string "on".
func recordFlag(props map[string]any) string {
	if v, ok := props[AudioRecordingProperty].(string); ok && v == AudioRecordingOn {
		return recordTrue
	}
	return recordFalse
}
