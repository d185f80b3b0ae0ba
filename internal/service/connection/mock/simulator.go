package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ai-conversation-transcriber/internal/service/connection"
	"ai-conversation-transcriber/internal/service/recognition"
)

// ResultHandler receives simulated recognition results.
// *conversation.Adapter implements it.
type ResultHandler interface {
	OnRecognizing(result *recognition.Result, duration time.Duration, sessionID string)
	OnRecognized(result *recognition.Result, offset time.Duration, sessionID string)
}

// SimulatedUtterance represents a mock utterance with progressive transcripts.
type SimulatedUtterance struct {
	Speaker  string
	Partials []string // Progressive partial transcripts
	Final    string
}

// DefaultUtterances provides sample utterances for simulation.
var DefaultUtterances = []SimulatedUtterance{
	{
		Speaker:  "Guest-1",
		Partials: []string{"Good", "Good morning", "Good morning everyone"},
		Final:    "Good morning everyone, let's get started.",
	},
	{
		Speaker:  "Guest-2",
		Partials: []string{"I finished", "I finished the release"},
		Final:    "I finished the release notes yesterday.",
	},
	{
		Speaker:  "Guest-1",
		Partials: []string{"Any", "Any blockers"},
		Final:    "Any blockers?",
	},
}

// Simulator is a recording Connection that answers audio frames with
// simulated results: one partial per frame until the utterance's partials
// are exhausted, then one final result. Utterances are used in order and
// cycle. The first audio message is the format header and yields nothing.
//
// Results are delivered synchronously from Send.
type Simulator struct {
	*Connection

	handler       ResultHandler
	sessionID     string
	frameDuration time.Duration

	mu         sync.Mutex
	utterances []SimulatedUtterance
	current    int
	partial    int
	frames     int
	offset     time.Duration // Audio position of the current utterance start
	headerSeen bool
}

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithUtterances replaces the simulated utterances.
func WithUtterances(u ...SimulatedUtterance) SimulatorOption {
	return func(s *Simulator) { s.utterances = u }
}

// WithFrameDuration sets the audio duration attributed to each frame.
func WithFrameDuration(d time.Duration) SimulatorOption {
	return func(s *Simulator) { s.frameDuration = d }
}

// WithConnectionOptions configures the underlying recording connection.
func WithConnectionOptions(opts ...Option) SimulatorOption {
	return func(s *Simulator) { s.Connection = New(opts...) }
}

// NewSimulator creates a simulator delivering results for sessionID to handler.
func NewSimulator(handler ResultHandler, sessionID string, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		Connection:    New(),
		handler:       handler,
		sessionID:     sessionID,
		frameDuration: 100 * time.Millisecond,
		utterances:    DefaultUtterances,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send records msg and, for audio frames, delivers the next simulated result.
func (s *Simulator) Send(ctx context.Context, msg *connection.Message) error {
	if err := s.Connection.Send(ctx, msg); err != nil {
		return err
	}
	if msg.Path != connection.PathAudio || msg.Type != connection.BinaryMessage {
		return nil
	}

	s.mu.Lock()
	if !s.headerSeen {
		s.headerSeen = true
		s.mu.Unlock()
		return nil
	}
	if len(s.utterances) == 0 {
		s.mu.Unlock()
		return nil
	}

	s.frames++
	utt := s.utterances[s.current%len(s.utterances)]
	elapsed := time.Duration(s.frames) * s.frameDuration
	offset := s.offset

	var (
		result *recognition.Result
		final  bool
	)
	if s.partial < len(utt.Partials) {
		result = recognition.NewResult(recognition.ResultOptions{
			ResultID:  fmt.Sprintf("sim-%d-%d", s.current, s.partial),
			Reason:    recognition.RecognizingSpeech,
			Text:      utt.Partials[s.partial],
			Duration:  elapsed,
			Offset:    offset,
			SpeakerID: utt.Speaker,
		})
		s.partial++
	} else {
		result = recognition.NewResult(recognition.ResultOptions{
			ResultID:  fmt.Sprintf("sim-%d", s.current),
			Reason:    recognition.RecognizedSpeech,
			Text:      utt.Final,
			Duration:  elapsed,
			Offset:    offset,
			SpeakerID: utt.Speaker,
		})
		final = true
		s.current++
		s.partial = 0
		s.frames = 0
		s.offset += elapsed
	}
	s.mu.Unlock()

	if s.handler == nil {
		return nil
	}
	if final {
		s.handler.OnRecognized(result, offset, s.sessionID)
	} else {
		s.handler.OnRecognizing(result, elapsed, s.sessionID)
	}
	return nil
}
