// Package connection defines the contract for the streaming recognition
// service connection consumed by the conversation adapter.
package connection

import "context"

// MessageType discriminates text control messages from binary frames.
type MessageType int

const (
	TextMessage MessageType = iota
	BinaryMessage
)

// String returns the string representation of the message type.
func (t MessageType) String() string {
	if t == BinaryMessage {
		return "binary"
	}
	return "text"
}

// Well-known message paths and content types.
const (
	PathSpeechContext = "speech.context"
	PathSpeechEvent   = "speech.event"
	PathAudio         = "audio"

	ContentTypeJSON = "application/json"
	ContentTypeWave = "audio/x-wav"
)

// Message is one outbound service message.
type Message struct {
	Type        MessageType
	Path        string
	RequestID   string
	ContentType string
	Body        []byte
}

// NewTextMessage builds a text control message.
func NewTextMessage(path, requestID, contentType string, body []byte) *Message {
	return &Message{
		Type:        TextMessage,
		Path:        path,
		RequestID:   requestID,
		ContentType: contentType,
		Body:        body,
	}
}

// NewBinaryMessage builds a binary message.
func NewBinaryMessage(path, requestID, contentType string, body []byte) *Message {
	return &Message{
		Type:        BinaryMessage,
		Path:        path,
		RequestID:   requestID,
		ContentType: contentType,
		Body:        body,
	}
}

// Connection is a bidirectional streaming recognition service connection.
// Only the outbound half is needed by the adapter.
type Connection interface {
	// Send writes msg and returns once the transport accepted it.
	// Implementations do not retry.
	Send(ctx context.Context, msg *Message) error
}
