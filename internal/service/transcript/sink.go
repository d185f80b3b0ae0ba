// Package transcript turns recognition events into transcript events and
// publishes them.
package transcript

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"ai-conversation-transcriber/internal/models"
	"ai-conversation-transcriber/internal/observability/logging"
	"ai-conversation-transcriber/internal/service/conversation"
	"ai-conversation-transcriber/internal/service/recognition"
)

// Publisher publishes transcript events. *events.Publisher implements it.
type Publisher interface {
	PublishRecognizing(ctx context.Context, key string, event models.TranscriptRecognizing) error
	PublishRecognized(ctx context.Context, key string, event models.TranscriptRecognized) error
	PublishCanceled(ctx context.Context, key string, event models.TranscriptCanceled) error
}

// Limits bounds the events a sink publishes.
type Limits struct {
	MaxPartials    int           // Max partial results per utterance; 0 disables
	PublishTimeout time.Duration // Per-event publish timeout; 0 disables
}

// DefaultLimits returns sensible default limits.
func DefaultLimits() Limits {
	return Limits{
		MaxPartials:    500,
		PublishTimeout: 5 * time.Second,
	}
}

// Stats holds sink counters for observability.
type Stats struct {
	Recognizing     int
	Recognized      int
	Canceled        int
	DroppedPartials int
	PublishFailures int
}

// Sink receives adapter events and publishes them keyed by conversation id.
// Publish failures are logged and counted, never returned.
type Sink struct {
	publisher      Publisher
	conversationID string
	limits         Limits
	now            func() time.Time
	log            zerolog.Logger

	mu       sync.Mutex
	stats    Stats
	partials int // Partials since the last final result
}

// NewSink creates a sink for conversationID with default limits.
func NewSink(publisher Publisher, conversationID string) *Sink {
	return NewSinkWithLimits(publisher, conversationID, DefaultLimits())
}

// NewSinkWithLimits creates a sink with custom limits.
func NewSinkWithLimits(publisher Publisher, conversationID string, limits Limits) *Sink {
	return &Sink{
		publisher:      publisher,
		conversationID: conversationID,
		limits:         limits,
		now:            time.Now,
		log:            logging.WithConversation(conversationID).With().Str("component", "transcript-sink").Logger(),
	}
}

// Observers returns adapter observers bound to this sink.
func (s *Sink) Observers() conversation.Observers {
	return conversation.Observers{
		Recognizing: s.OnRecognizing,
		Recognized:  s.OnRecognized,
		Canceled:    s.OnCanceled,
	}
}

// Stats returns a snapshot of the sink counters.
func (s *Sink) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// OnRecognizing publishes a partial result. Partials beyond the limit are
// dropped until the next final result.
func (s *Sink) OnRecognizing(e recognition.TranscriptionEventArgs) {
	s.mu.Lock()
	s.stats.Recognizing++
	s.partials++
	over := s.limits.MaxPartials > 0 && s.partials > s.limits.MaxPartials
	if over {
		s.stats.DroppedPartials++
	}
	s.mu.Unlock()

	if over {
		s.log.Debug().Str("sessionId", e.SessionID).Msg("Partial dropped, utterance limit reached")
		return
	}

	ev := models.TranscriptRecognizing{
		EventType:      models.EventTypeRecognizing,
		ConversationID: s.conversationID,
		SessionID:      e.SessionID,
		Timestamp:      s.now().UnixMilli(),
		OffsetMs:       e.Offset.Milliseconds(),
	}
	if e.Result != nil {
		ev.ResultID = e.Result.ResultID()
		ev.Text = e.Result.Text()
	}

	ctx, cancel := s.publishContext()
	defer cancel()
	s.check(s.publisher.PublishRecognizing(ctx, s.conversationID, ev), models.EventTypeRecognizing)
}

// OnRecognized publishes a final result and starts a new utterance.
func (s *Sink) OnRecognized(e recognition.TranscriptionEventArgs) {
	s.mu.Lock()
	s.stats.Recognized++
	s.partials = 0
	s.mu.Unlock()

	ev := models.TranscriptRecognized{
		EventType:      models.EventTypeRecognized,
		ConversationID: s.conversationID,
		SessionID:      e.SessionID,
		Timestamp:      s.now().UnixMilli(),
		OffsetMs:       e.Offset.Milliseconds(),
	}
	if r := e.Result; r != nil {
		ev.ResultID = r.ResultID()
		ev.Text = r.Text()
		ev.SpeakerID = r.SpeakerID()
		ev.Language = r.Language()
		ev.DurationMs = r.Duration().Milliseconds()
	}

	ctx, cancel := s.publishContext()
	defer cancel()
	s.check(s.publisher.PublishRecognized(ctx, s.conversationID, ev), models.EventTypeRecognized)
}

// OnCanceled publishes the cancellation.
func (s *Sink) OnCanceled(e recognition.CanceledEventArgs) {
	s.mu.Lock()
	s.stats.Canceled++
	s.mu.Unlock()

	ev := models.TranscriptCanceled{
		EventType:      models.EventTypeCanceled,
		ConversationID: s.conversationID,
		SessionID:      e.SessionID,
		Timestamp:      s.now().UnixMilli(),
		Reason:         e.Reason.String(),
		ErrorCode:      recognition.ErrorCodeFromProperties(e.Properties).String(),
		ErrorDetails:   e.ErrorDetails,
	}

	ctx, cancel := s.publishContext()
	defer cancel()
	s.check(s.publisher.PublishCanceled(ctx, s.conversationID, ev), models.EventTypeCanceled)
}

func (s *Sink) publishContext() (context.Context, context.CancelFunc) {
	if s.limits.PublishTimeout > 0 {
		return context.WithTimeout(context.Background(), s.limits.PublishTimeout)
	}
	return context.WithCancel(context.Background())
}

func (s *Sink) check(err error, eventType string) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.stats.PublishFailures++
	s.mu.Unlock()
	s.log.Error().Err(err).Str("eventType", eventType).Msg("Failed to publish transcript event")
}
