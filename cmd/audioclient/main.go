package main

import (
	"context"
	"flag"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"ai-conversation-transcriber/internal/observability/logging"
	"ai-conversation-transcriber/internal/service/audio"
	"ai-conversation-transcriber/internal/service/connection"
	"ai-conversation-transcriber/internal/service/connection/mock"
	"ai-conversation-transcriber/internal/service/connection/websocket"
	"ai-conversation-transcriber/internal/service/conversation"
	"ai-conversation-transcriber/internal/service/recognition"
	"ai-conversation-transcriber/internal/service/session"
)

// Stream audio in chunks to simulate real-time streaming
const chunkInterval = 100 * time.Millisecond

func main() {
	audioFile := flag.String("audio", "testdata/sample-16khz.wav", "Path to PCM WAV file")
	endpoint := flag.String("endpoint", "", "Speech service websocket endpoint; empty simulates results locally")
	key := flag.String("key", os.Getenv("SPEECH_SUBSCRIPTION_KEY"), "Speech service subscription key")
	conversationID := flag.String("conversation", "test-conversation-"+time.Now().Format("150405"), "Conversation ID")
	language := flag.String("language", "en-US", "Recognition language")
	record := flag.Bool("record", false, "Request audio recording")
	flag.Parse()

	logging.Init(logging.Config{Level: "debug", Format: "console"})

	f, err := os.Open(*audioFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open audio file")
	}
	defer f.Close()

	format, _, err := audio.ReadWaveHeader(f)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid WAV file")
	}
	log.Info().
		Uint32("sampleRate", format.SampleRate).
		Uint16("bitsPerSample", format.BitsPerSample).
		Uint16("channels", format.Channels).
		Msg("WAV file")

	recording := "off"
	if *record {
		recording = conversation.AudioRecordingOn
	}
	info := &conversation.ConversationInfo{
		ID:         *conversationID,
		Properties: map[string]any{conversation.AudioRecordingProperty: recording},
	}

	sess := session.New(nil)
	adapter := conversation.NewAdapter(conversation.NewStaticSource(info, format, *language), sess)
	adapter.SetObservers(conversation.Observers{
		Recognizing: func(e recognition.TranscriptionEventArgs) {
			log.Debug().Str("text", e.Result.Text()).Msg("Recognizing")
		},
		Recognized: func(e recognition.TranscriptionEventArgs) {
			log.Info().
				Str("speaker", e.Result.SpeakerID()).
				Dur("offset", e.Offset).
				Str("text", e.Result.Text()).
				Msg("Recognized")
		},
		Canceled: func(e recognition.CanceledEventArgs) {
			log.Warn().
				Str("reason", e.Reason.String()).
				Str("errorCode", e.ErrorCode.String()).
				Str("errorDetails", e.ErrorDetails).
				Msg("Canceled")
		},
	})

	conn, err := dial(*endpoint, *key, adapter, sess.SessionID())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect")
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := sess.Lifecycle().Begin(); err != nil {
		log.Fatal().Err(err).Msg("Failed to begin recognition")
	}
	if err := adapter.StartSession(ctx, conn); err != nil {
		log.Fatal().Err(err).Msg("Session start failed")
	}

	log.Info().
		Str("conversationId", *conversationID).
		Str("sessionId", sess.SessionID()).
		Str("requestId", sess.RequestID()).
		Msg("Streaming audio")

	// One chunk per interval keeps the stream at real-time speed
	chunkSize := int(format.ByteRate()) * int(chunkInterval/time.Millisecond) / 1000
	audioChunk := make([]byte, chunkSize)
	var totalBytes int64
	var chunkNum int
	startTime := time.Now()

	for {
		n, err := f.Read(audioChunk)
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read audio")
		}

		chunkNum++
		totalBytes += int64(n)

		msg := connection.NewBinaryMessage(connection.PathAudio, sess.RequestID(), "", audioChunk[:n])
		if err := conn.Send(ctx, msg); err != nil {
			adapter.Cancel(sess.SessionID(), sess.RequestID(), recognition.Error, recognition.ConnectionFailure, err.Error())
			log.Fatal().Err(err).Int("chunk", chunkNum).Msg("Failed to send audio chunk")
		}

		if chunkNum%10 == 0 {
			log.Debug().Int("chunk", chunkNum).Int64("bytes", totalBytes).Msg("Sent audio")
		}

		time.Sleep(chunkInterval)
	}

	adapter.Cancel(sess.SessionID(), sess.RequestID(), recognition.EndOfStream, recognition.NoError, "")
	adapter.StopSession()
	log.Info().
		Int("chunks", chunkNum).
		Int64("bytes", totalBytes).
		Dur("elapsed", time.Since(startTime)).
		Msg("Finished streaming")
}

type closableConnection interface {
	connection.Connection
	Close() error
}

func dial(endpoint, key string, handler mock.ResultHandler, sessionID string) (closableConnection, error) {
	if endpoint == "" {
		return mock.NewSimulator(handler, sessionID), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return websocket.Dial(ctx, websocket.Config{
		Endpoint:        endpoint,
		SubscriptionKey: key,
		ConnectionID:    uuid.NewString(),
		DialTimeout:     10 * time.Second,
	})
}
