// Package models defines the data structures for transcript events.
package models

// Event types carried in the eventType field and the Kafka header.
const (
	EventTypeRecognizing = "transcript.recognizing"
	EventTypeRecognized  = "transcript.recognized"
	EventTypeCanceled    = "transcript.canceled"
)

// TranscriptRecognizing represents an interim/partial recognition result.
type TranscriptRecognizing struct {
	EventType      string `json:"eventType"`
	ConversationID string `json:"conversationId"`
	SessionID      string `json:"sessionId"`
	Timestamp      int64  `json:"timestamp"`
	ResultID       string `json:"resultId"`
	Text           string `json:"text"`
	OffsetMs       int64  `json:"offsetMs"`
}

// TranscriptRecognized represents a final recognition result.
type TranscriptRecognized struct {
	EventType      string `json:"eventType"`
	ConversationID string `json:"conversationId"`
	SessionID      string `json:"sessionId"`
	Timestamp      int64  `json:"timestamp"`
	ResultID       string `json:"resultId"`
	Text           string `json:"text"`
	SpeakerID      string `json:"speakerId,omitempty"`
	Language       string `json:"language,omitempty"`
	OffsetMs       int64  `json:"offsetMs"`
	DurationMs     int64  `json:"durationMs"`
}

// TranscriptCanceled represents a terminal cancellation of the session.
type TranscriptCanceled struct {
	EventType      string `json:"eventType"`
	ConversationID string `json:"conversationId"`
	SessionID      string `json:"sessionId"`
	Timestamp      int64  `json:"timestamp"`
	Reason         string `json:"reason"`
	ErrorCode      string `json:"errorCode"`
	ErrorDetails   string `json:"errorDetails,omitempty"`
}
