// Package conversation implements the session protocol adapter for
// conversation transcription: the connection start sequence, speech events,
// and the translation of service results into application events.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"ai-conversation-transcriber/internal/observability/logging"
	"ai-conversation-transcriber/internal/observability/metrics"
	"ai-conversation-transcriber/internal/service/connection"
	"ai-conversation-transcriber/internal/service/recognition"
	"ai-conversation-transcriber/internal/service/session"
)

var (
	ErrSessionAlreadyStarted = errors.New("session start sequence already sent")
	ErrNoConnection          = errors.New("no service connection")
)

// Observers are the multi-shot application event handlers. Any of them may
// be nil.
type Observers struct {
	Recognizing func(recognition.TranscriptionEventArgs)
	Recognized  func(recognition.TranscriptionEventArgs)
	Canceled    func(recognition.CanceledEventArgs)
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithMetrics sets the metrics sink. Defaults to metrics.DefaultMetrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Adapter) { a.metrics = m }
}

// WithLogger sets the adapter logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Adapter) { a.log = l }
}

// Adapter is the protocol adapter for one recognition session.
//
// All entry points are expected to be driven from a single logical sequence
// (the connection receive loop and the application call site). The only state
// shared between them is the session's callback pair, which is taken with
// read-and-clear semantics.
type Adapter struct {
	source  Source
	session *session.RequestSession
	metrics *metrics.Metrics
	log     zerolog.Logger

	mu        sync.Mutex
	conn      connection.Connection
	started   bool
	observers Observers
}

// NewAdapter creates an adapter for sess reading start data from source.
func NewAdapter(source Source, sess *session.RequestSession, opts ...Option) *Adapter {
	a := &Adapter{
		source:  source,
		session: sess,
		metrics: metrics.DefaultMetrics,
		log: logging.WithComponent("conversation-adapter").With().
			Str("sessionId", sess.SessionID()).
			Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Session returns the request session driven by this adapter.
func (a *Adapter) Session() *session.RequestSession {
	return a.session
}

// SetObservers replaces all observers.
func (a *Adapter) SetObservers(o Observers) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers = o
}

// SetRecognizingHandler sets the partial result observer.
func (a *Adapter) SetRecognizingHandler(fn func(recognition.TranscriptionEventArgs)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers.Recognizing = fn
}

// SetRecognizedHandler sets the final result observer.
func (a *Adapter) SetRecognizedHandler(fn func(recognition.TranscriptionEventArgs)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers.Recognized = fn
}

// SetCanceledHandler sets the cancellation observer.
func (a *Adapter) SetCanceledHandler(fn func(recognition.CanceledEventArgs)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers.Canceled = fn
}

func (a *Adapter) currentObservers() Observers {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.observers
}

func (a *Adapter) connection() connection.Connection {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.conn
}

// StartSession sends the pre-audio messages on conn, in order, waiting for
// each send before the next: the initial speech context, the "start" speech
// event and the audio format header. It must be called once per connection
// before any audio is sent.
//
// A send error is returned as is and the remaining messages are not sent.
// The caller must tear the session down.
func (a *Adapter) StartSession(ctx context.Context, conn connection.Connection) (err error) {
	if conn == nil {
		return ErrNoConnection
	}

	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return ErrSessionAlreadyStarted
	}
	a.started = true
	a.conn = conn
	a.mu.Unlock()

	start := time.Now()
	requestID := a.session.RequestID()
	log := a.log.With().Str("requestId", requestID).Logger()
	defer func() {
		a.metrics.RecordStartSequence(err, time.Since(start).Seconds())
		if err != nil {
			log.Error().Err(err).Msg("Session start sequence failed")
			return
		}
		log.Info().Dur("duration", time.Since(start)).Msg("Session start sequence sent")
	}()

	speechContext, err := a.source.SpeechContext(true)
	if err != nil {
		return fmt.Errorf("build speech context: %w", err)
	}
	if len(speechContext) > 0 {
		msg := connection.NewTextMessage(connection.PathSpeechContext, requestID, connection.ContentTypeJSON, speechContext)
		if err := a.send(ctx, conn, msg); err != nil {
			return err
		}
	}

	event, err := EncodeSpeechEvent(a.source.ConversationInfo(), CommandStart)
	if err != nil {
		return fmt.Errorf("build start speech event: %w", err)
	}
	if len(event) > 0 {
		msg := connection.NewTextMessage(connection.PathSpeechEvent, requestID, connection.ContentTypeJSON, event)
		if err := a.send(ctx, conn, msg); err != nil {
			return err
		}
		a.metrics.RecordSpeechEvent(CommandStart, "sent")
	}

	header, err := a.source.AudioFormatHeader()
	if err != nil {
		return fmt.Errorf("build audio format header: %w", err)
	}
	msg := connection.NewBinaryMessage(connection.PathAudio, requestID, connection.ContentTypeWave, header)
	return a.send(ctx, conn, msg)
}

// SendSpeechEvent relays conversation metadata to the service mid-session,
// e.g. a mute or unmute command. It does nothing unless the session is
// recognizing, and nothing when info yields an empty payload.
func (a *Adapter) SendSpeechEvent(ctx context.Context, info *ConversationInfo, command string) error {
	if !a.session.IsRecognizing() {
		a.metrics.RecordSpeechEvent(command, "skipped")
		return nil
	}

	body, err := EncodeSpeechEvent(info, command)
	if err != nil {
		a.metrics.RecordSpeechEvent(command, "failed")
		return fmt.Errorf("build %s speech event: %w", command, err)
	}
	if len(body) == 0 {
		a.metrics.RecordSpeechEvent(command, "skipped")
		return nil
	}

	conn := a.connection()
	if conn == nil {
		a.metrics.RecordSpeechEvent(command, "failed")
		return ErrNoConnection
	}

	msg := connection.NewTextMessage(connection.PathSpeechEvent, a.session.RequestID(), connection.ContentTypeJSON, body)
	if err := a.send(ctx, conn, msg); err != nil {
		a.metrics.RecordSpeechEvent(command, "failed")
		return err
	}

	a.metrics.RecordSpeechEvent(command, "sent")
	a.log.Debug().Str("command", command).Msg("Speech event sent")
	return nil
}

// StopSession stops the session lifecycle; later speech events are no-ops.
func (a *Adapter) StopSession() {
	if a.session.Lifecycle().Stop() {
		a.log.Info().Msg("Session stopped")
	}
}

func (a *Adapter) send(ctx context.Context, conn connection.Connection, msg *connection.Message) error {
	err := conn.Send(ctx, msg)
	a.metrics.RecordControlMessage(msg.Path, err)
	return err
}
