package conversation

import (
	"github.com/goccy/go-json"

	"ai-conversation-transcriber/internal/service/audio"
)

// Source supplies the data sent during the session start sequence.
type Source interface {
	// SpeechContext returns the speech.context body. initial is true for
	// the context sent at connection start. An empty body is not sent.
	SpeechContext(initial bool) ([]byte, error)

	// AudioFormatHeader returns the header sent before raw audio frames.
	AudioFormatHeader() ([]byte, error)

	// ConversationInfo returns the current conversation snapshot.
	ConversationInfo() *ConversationInfo
}

// StaticSource is a Source with fixed conversation metadata and audio format.
type StaticSource struct {
	info     *ConversationInfo
	format   audio.Format
	language string
}

// NewStaticSource creates a Source for info streaming audio in format.
func NewStaticSource(info *ConversationInfo, format audio.Format, language string) *StaticSource {
	return &StaticSource{
		info:     info,
		format:   format,
		language: language,
	}
}

type speechContext struct {
	PhraseDetection phraseDetection `json:"phraseDetection"`
	PhraseOutput    phraseOutput    `json:"phraseOutput"`
}

type phraseDetection struct {
	Mode     string `json:"mode"`
	Language string `json:"language,omitempty"`
}

type phraseOutput struct {
	Format string `json:"format"`
}

// SpeechContext returns a conversation-mode speech context.
func (s *StaticSource) SpeechContext(initial bool) ([]byte, error) {
	return json.Marshal(speechContext{
		PhraseDetection: phraseDetection{Mode: "CONVERSATION", Language: s.language},
		PhraseOutput:    phraseOutput{Format: "Detailed"},
	})
}

// AudioFormatHeader returns a PCM WAV header for the configured format.
func (s *StaticSource) AudioFormatHeader() ([]byte, error) {
	if err := s.format.Validate(); err != nil {
		return nil, err
	}
	return audio.WaveHeader(s.format), nil
}

// ConversationInfo returns the fixed conversation metadata.
func (s *StaticSource) ConversationInfo() *ConversationInfo {
	return s.info
}
