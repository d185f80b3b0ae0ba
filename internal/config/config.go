package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Configuration holds all service configuration, loaded from the environment.
type Configuration struct {
	Service       ServiceConfig
	Speech        SpeechConfig
	Conversation  ConversationConfig
	Audio         AudioConfig
	Transcript    TranscriptConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
}

type ServiceConfig struct {
	Name      string
	Principal string
	GRPCPort  string
	HTTPAddr  string
}

// SpeechConfig configures the speech service connection.
type SpeechConfig struct {
	Provider        string // mock, websocket
	Endpoint        string
	SubscriptionKey string
	Language        string
	ConnectTimeout  time.Duration
	SendTimeout     time.Duration
}

// ConversationConfig describes the conversation being transcribed.
type ConversationConfig struct {
	ID             string
	Participants   []string
	AudioRecording bool
}

type AudioConfig struct {
	SampleRateHz  int
	BitsPerSample int
	Channels      int
}

type TranscriptConfig struct {
	MaxPartials    int
	PublishTimeout time.Duration
}

type KafkaConfig struct {
	Enabled          bool
	Brokers          []string
	TopicRecognizing string
	TopicRecognized  string
	TopicCanceled    string
	Principal        string
}

type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables. Invalid values fall
// back to defaults.
func Load() *Configuration {
	principal := envOrDefault("SERVICE_PRINCIPAL", "svc-conversation-transcriber")

	return &Configuration{
		Service: ServiceConfig{
			Name:      envOrDefault("SERVICE_NAME", "ai-conversation-transcriber"),
			Principal: principal,
			GRPCPort:  envOrDefault("GRPC_PORT", "50051"),
			HTTPAddr:  envOrDefault("HTTP_ADDR", ":8080"),
		},
		Speech: SpeechConfig{
			Provider:        envOrDefault("SPEECH_PROVIDER", "mock"),
			Endpoint:        envOrDefault("SPEECH_ENDPOINT", ""),
			SubscriptionKey: envOrDefault("SPEECH_SUBSCRIPTION_KEY", ""),
			Language:        envOrDefault("SPEECH_LANGUAGE", "en-US"),
			ConnectTimeout:  envOrDefaultDuration("SPEECH_CONNECT_TIMEOUT", 10*time.Second),
			SendTimeout:     envOrDefaultDuration("SPEECH_SEND_TIMEOUT", 5*time.Second),
		},
		Conversation: ConversationConfig{
			ID:             envOrDefault("CONVERSATION_ID", ""),
			Participants:   envOrDefaultList("CONVERSATION_PARTICIPANTS", nil),
			AudioRecording: envOrDefaultBool("CONVERSATION_AUDIO_RECORDING", false),
		},
		Audio: AudioConfig{
			SampleRateHz:  envOrDefaultInt("AUDIO_SAMPLE_RATE_HZ", 16000),
			BitsPerSample: envOrDefaultInt("AUDIO_BITS_PER_SAMPLE", 16),
			Channels:      envOrDefaultInt("AUDIO_CHANNELS", 1),
		},
		Transcript: TranscriptConfig{
			MaxPartials:    envOrDefaultInt("TRANSCRIPT_MAX_PARTIALS", 500),
			PublishTimeout: envOrDefaultDuration("TRANSCRIPT_PUBLISH_TIMEOUT", 5*time.Second),
		},
		Kafka: KafkaConfig{
			Enabled:          envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:          envOrDefaultList("KAFKA_BROKERS", nil),
			TopicRecognizing: envOrDefault("KAFKA_TOPIC_RECOGNIZING", "conversation.transcript.recognizing"),
			TopicRecognized:  envOrDefault("KAFKA_TOPIC_RECOGNIZED", "conversation.transcript.recognized"),
			TopicCanceled:    envOrDefault("KAFKA_TOPIC_CANCELED", "conversation.transcript.canceled"),
			Principal:        envOrDefault("KAFKA_PRINCIPAL", principal),
		},
		Observability: ObservabilityConfig{
			LogLevel:  envOrDefault("LOG_LEVEL", "info"),
			LogFormat: envOrDefault("LOG_FORMAT", "json"),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// envOrDefaultList splits a comma-separated value, dropping empty entries.
func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
