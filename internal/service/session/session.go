package session

import (
	"sync"

	"ai-conversation-transcriber/internal/service/recognition"
)

// SuccessCallback receives the terminal result of a recognition request.
// A returned error is forwarded to the ErrorCallback when one is attached.
type SuccessCallback func(result *recognition.Result) error

// ErrorCallback receives errors raised by the SuccessCallback.
type ErrorCallback func(err error)

// RequestSession is the state of one active recognition connection.
//
// It owns at most one outstanding success callback and one outstanding error
// callback. TakeCallbacks reads and clears both under the same lock, so two
// terminal events racing each other can never both observe a live callback.
type RequestSession struct {
	mu        sync.Mutex
	ids       *IDGenerator
	sessionID string
	requestID string
	lifecycle *Lifecycle

	onSuccess SuccessCallback
	onError   ErrorCallback
}

// New creates a session with fresh session and request identifiers.
func New(ids *IDGenerator) *RequestSession {
	if ids == nil {
		ids = NewIDGenerator()
	}
	return &RequestSession{
		ids:       ids,
		sessionID: ids.Next(),
		requestID: ids.Next(),
		lifecycle: NewLifecycle(),
	}
}

// SessionID returns the session identifier.
func (s *RequestSession) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// RequestID returns the current request identifier.
func (s *RequestSession) RequestID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestID
}

// NewRequest rotates the request identifier and returns the new value.
func (s *RequestSession) NewRequest() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requestID = s.ids.Next()
	return s.requestID
}

// Lifecycle returns the session state machine.
func (s *RequestSession) Lifecycle() *Lifecycle {
	return s.lifecycle
}

// IsRecognizing reports whether recognition is running.
func (s *RequestSession) IsRecognizing() bool {
	return s.lifecycle.IsRecognizing()
}

// SetCallbacks attaches the completion callback pair, replacing any pair
// still outstanding. Either callback may be nil.
func (s *RequestSession) SetCallbacks(success SuccessCallback, failure ErrorCallback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSuccess = success
	s.onError = failure
}

// HasSuccessCallback reports whether a success callback is outstanding.
func (s *RequestSession) HasSuccessCallback() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onSuccess != nil
}

// TakeCallbacks returns the outstanding callback pair and clears it.
// Subsequent calls return nils until SetCallbacks is called again.
func (s *RequestSession) TakeCallbacks() (SuccessCallback, ErrorCallback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	success, failure := s.onSuccess, s.onError
	s.onSuccess = nil
	s.onError = nil
	return success, failure
}

// Status is a point-in-time view of a session.
type Status struct {
	SessionID       string `json:"sessionId"`
	RequestID       string `json:"requestId"`
	State           string `json:"state"`
	CallbackPending bool   `json:"callbackPending"`
}

// Status returns a snapshot of the session.
func (s *RequestSession) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		SessionID:       s.sessionID,
		RequestID:       s.requestID,
		State:           s.lifecycle.State().String(),
		CallbackPending: s.onSuccess != nil,
	}
}
