package conversation

import (
	"bytes"
	"errors"
	"testing"

	"github.com/goccy/go-json"

	"ai-conversation-transcriber/internal/service/audio"
)

func TestStaticSource_SpeechContext(t *testing.T) {
	s := NewStaticSource(nil, audio.DefaultFormat(), "de-DE")

	body, err := s.SpeechContext(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ctx speechContext
	if err := json.Unmarshal(body, &ctx); err != nil {
		t.Fatalf("invalid speech context: %v", err)
	}
	if ctx.PhraseDetection.Mode != "CONVERSATION" || ctx.PhraseDetection.Language != "de-DE" {
		t.Errorf("unexpected phrase detection %+v", ctx.PhraseDetection)
	}
	if ctx.PhraseOutput.Format != "Detailed" {
		t.Errorf("unexpected phrase output %+v", ctx.PhraseOutput)
	}
}

func TestStaticSource_AudioFormatHeader(t *testing.T) {
	s := NewStaticSource(nil, audio.DefaultFormat(), "")

	header, err := s.AudioFormatHeader()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(header, audio.WaveHeader(audio.DefaultFormat())) {
		t.Error("expected a WAV header for the configured format")
	}

	bad := NewStaticSource(nil, audio.Format{SampleRate: 16000, BitsPerSample: 12, Channels: 1}, "")
	if _, err := bad.AudioFormatHeader(); !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestStaticSource_ConversationInfo(t *testing.T) {
	info := &ConversationInfo{ID: "c1"}
	if got := NewStaticSource(info, audio.DefaultFormat(), "").ConversationInfo(); got != info {
		t.Error("expected the configured conversation info")
	}
}
