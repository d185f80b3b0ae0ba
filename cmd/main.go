package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"ai-conversation-transcriber/internal/app"
	"ai-conversation-transcriber/internal/config"
	"ai-conversation-transcriber/internal/events"
	httpapi "ai-conversation-transcriber/internal/http"
	"ai-conversation-transcriber/internal/observability"
	"ai-conversation-transcriber/internal/observability/metrics"
	"ai-conversation-transcriber/internal/service/audio"
	"ai-conversation-transcriber/internal/service/connection"
	"ai-conversation-transcriber/internal/service/connection/mock"
	"ai-conversation-transcriber/internal/service/connection/websocket"
	"ai-conversation-transcriber/internal/service/conversation"
	"ai-conversation-transcriber/internal/service/recognition"
	"ai-conversation-transcriber/internal/service/session"
	"ai-conversation-transcriber/internal/service/transcript"
)

const healthServiceName = "ai.conversation.transcriber.Session"

// closableConnection is a connection that must be closed on shutdown.
type closableConnection interface {
	connection.Connection
	Close() error
}

func main() {
	cfg := config.Load()

	application := app.New(cfg)
	if err := application.Start(); err != nil {
		log.Fatal().Err(err).Msg("Application start failed")
	}
	defer application.Shutdown()

	if cfg.Conversation.ID == "" {
		cfg.Conversation.ID = uuid.NewString()
	}

	// Kafka publisher with one topic per transcript event type
	publisher := events.New(&events.Config{
		Enabled:          cfg.Kafka.Enabled,
		Brokers:          cfg.Kafka.Brokers,
		TopicRecognizing: cfg.Kafka.TopicRecognizing,
		TopicRecognized:  cfg.Kafka.TopicRecognized,
		TopicCanceled:    cfg.Kafka.TopicCanceled,
		Principal:        cfg.Kafka.Principal,
	})
	defer publisher.Close()

	sink := transcript.NewSinkWithLimits(publisher, cfg.Conversation.ID, transcript.Limits{
		MaxPartials:    cfg.Transcript.MaxPartials,
		PublishTimeout: cfg.Transcript.PublishTimeout,
	})

	format := audio.Format{
		SampleRate:    uint32(cfg.Audio.SampleRateHz),
		BitsPerSample: uint16(cfg.Audio.BitsPerSample),
		Channels:      uint16(cfg.Audio.Channels),
	}
	info := conversationInfo(cfg.Conversation)
	source := conversation.NewStaticSource(info, format, cfg.Speech.Language)

	sess := session.New(nil)
	adapter := conversation.NewAdapter(source, sess, conversation.WithMetrics(metrics.DefaultMetrics))
	adapter.SetObservers(sink.Observers())

	logger := application.Logger.With().
		Str("conversationId", cfg.Conversation.ID).
		Str("sessionId", sess.SessionID()).
		Logger()

	// Observability HTTP server: metrics, health, session status
	httpServer := observability.NewServer(cfg.Service.HTTPAddr, httpapi.NewRouter(application, sess))
	httpServer.Start()

	// gRPC health service
	lis, err := net.Listen("tcp", ":"+cfg.Service.GRPCPort)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to listen")
	}

	server := grpc.NewServer(
		grpc.UnaryInterceptor(observability.UnaryServerInterceptor(metrics.DefaultMetrics)),
		grpc.StreamInterceptor(observability.StreamServerInterceptor(metrics.DefaultMetrics)),
	)
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(healthServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	// Enable gRPC reflection for debugging tools like grpcurl
	reflection.Register(server)

	go func() {
		logger.Info().Str("port", cfg.Service.GRPCPort).Msg("gRPC server started")
		if err := server.Serve(lis); err != nil {
			logger.Fatal().Err(err).Msg("gRPC serve failed")
		}
	}()

	conn, err := dial(cfg.Speech, adapter, sess.SessionID())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to speech service")
	}
	defer conn.Close()

	if err := sess.Lifecycle().Begin(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to begin recognition")
	}
	sess.SetCallbacks(
		func(r *recognition.Result) error {
			logger.Info().
				Str("reason", r.Reason().String()).
				Str("text", r.Text()).
				Str("errorDetails", r.ErrorDetails()).
				Msg("Recognition request completed")
			return nil
		},
		func(err error) {
			logger.Error().Err(err).Msg("Recognition completion handler failed")
		},
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), cfg.Speech.SendTimeout)
	err = adapter.StartSession(startCtx, conn)
	cancelStart()
	if err != nil {
		adapter.Cancel(sess.SessionID(), sess.RequestID(), recognition.Error, recognition.ConnectionFailure, err.Error())
		adapter.StopSession()
		logger.Fatal().Err(err).Msg("Session start failed")
	}
	healthServer.SetServingStatus(healthServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info().Msg("Shutting down")
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(healthServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	adapter.Cancel(sess.SessionID(), sess.RequestID(), recognition.EndOfStream, recognition.NoError, "")
	adapter.StopSession()

	stats := sink.Stats()
	logger.Info().
		Int("recognizing", stats.Recognizing).
		Int("recognized", stats.Recognized).
		Int("canceled", stats.Canceled).
		Int("publishFailures", stats.PublishFailures).
		Msg("Transcript sink stats")

	server.GracefulStop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
}

// dial connects to the configured speech provider. The mock provider answers
// audio with simulated results delivered to handler.
func dial(cfg config.SpeechConfig, handler mock.ResultHandler, sessionID string) (closableConnection, error) {
	if cfg.Provider != "websocket" {
		log.Info().Str("provider", cfg.Provider).Msg("Using simulated speech connection")
		return mock.NewSimulator(handler, sessionID), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()
	return websocket.Dial(ctx, websocket.Config{
		Endpoint:        cfg.Endpoint,
		SubscriptionKey: cfg.SubscriptionKey,
		ConnectionID:    uuid.NewString(),
		DialTimeout:     cfg.ConnectTimeout,
	})
}

func conversationInfo(cfg config.ConversationConfig) *conversation.ConversationInfo {
	participants := make([]conversation.Participant, 0, len(cfg.Participants))
	for _, id := range cfg.Participants {
		participants = append(participants, conversation.Participant{ID: id})
	}

	recording := "off"
	if cfg.AudioRecording {
		recording = conversation.AudioRecordingOn
	}

	return &conversation.ConversationInfo{
		ID:           cfg.ID,
		Participants: participants,
		Properties:   map[string]any{conversation.AudioRecordingProperty: recording},
	}
}
