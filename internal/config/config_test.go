package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear relevant env vars
	envVars := []string{
		"SERVICE_PRINCIPAL", "GRPC_PORT", "HTTP_ADDR", "LOG_LEVEL", "LOG_FORMAT",
		"SPEECH_PROVIDER", "SPEECH_LANGUAGE", "SPEECH_CONNECT_TIMEOUT",
		"CONVERSATION_ID", "CONVERSATION_PARTICIPANTS", "CONVERSATION_AUDIO_RECORDING",
		"AUDIO_SAMPLE_RATE_HZ", "AUDIO_BITS_PER_SAMPLE", "AUDIO_CHANNELS",
		"TRANSCRIPT_MAX_PARTIALS", "KAFKA_ENABLED", "KAFKA_BROKERS", "KAFKA_PRINCIPAL",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}

	cfg := Load()

	// Service defaults
	if cfg.Service.Principal != "svc-conversation-transcriber" {
		t.Errorf("expected default principal 'svc-conversation-transcriber', got %s", cfg.Service.Principal)
	}
	if cfg.Service.GRPCPort != "50051" {
		t.Errorf("expected default port '50051', got %s", cfg.Service.GRPCPort)
	}
	if cfg.Service.HTTPAddr != ":8080" {
		t.Errorf("expected default HTTP addr ':8080', got %s", cfg.Service.HTTPAddr)
	}

	// Speech defaults
	if cfg.Speech.Provider != "mock" {
		t.Errorf("expected default speech provider 'mock', got %s", cfg.Speech.Provider)
	}
	if cfg.Speech.Language != "en-US" {
		t.Errorf("expected default language 'en-US', got %s", cfg.Speech.Language)
	}
	if cfg.Speech.ConnectTimeout != 10*time.Second {
		t.Errorf("expected default connect timeout 10s, got %v", cfg.Speech.ConnectTimeout)
	}

	// Conversation defaults
	if cfg.Conversation.AudioRecording {
		t.Error("expected audio recording off by default")
	}
	if len(cfg.Conversation.Participants) != 0 {
		t.Errorf("expected no participants, got %v", cfg.Conversation.Participants)
	}

	// Audio defaults
	if cfg.Audio.SampleRateHz != 16000 || cfg.Audio.BitsPerSample != 16 || cfg.Audio.Channels != 1 {
		t.Errorf("unexpected audio defaults %+v", cfg.Audio)
	}

	if cfg.Transcript.MaxPartials != 500 {
		t.Errorf("expected default max partials 500, got %d", cfg.Transcript.MaxPartials)
	}

	// Kafka defaults
	if cfg.Kafka.Enabled {
		t.Error("expected Kafka disabled by default")
	}
	if cfg.Kafka.TopicRecognized != "conversation.transcript.recognized" {
		t.Errorf("unexpected recognized topic %s", cfg.Kafka.TopicRecognized)
	}

	// Observability defaults
	if cfg.Observability.LogLevel != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Observability.LogLevel)
	}
	if cfg.Observability.LogFormat != "json" {
		t.Errorf("expected default log format 'json', got %s", cfg.Observability.LogFormat)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	vars := map[string]string{
		"SERVICE_PRINCIPAL":            "custom-principal",
		"GRPC_PORT":                    "9999",
		"LOG_LEVEL":                    "debug",
		"SPEECH_PROVIDER":              "websocket",
		"SPEECH_ENDPOINT":              "wss://speech.example.com/conversation",
		"SPEECH_LANGUAGE":              "es-ES",
		"SPEECH_SEND_TIMEOUT":          "2s",
		"CONVERSATION_ID":              "standup",
		"CONVERSATION_PARTICIPANTS":    "alice, bob,,carol",
		"CONVERSATION_AUDIO_RECORDING": "true",
		"AUDIO_SAMPLE_RATE_HZ":         "8000",
		"KAFKA_ENABLED":                "1",
		"KAFKA_BROKERS":                "k1:9092,k2:9092",
		"KAFKA_PRINCIPAL":              "kafka-user",
	}
	for k, v := range vars {
		os.Setenv(k, v)
	}
	defer func() {
		// Clean up
		for k := range vars {
			os.Unsetenv(k)
		}
	}()

	cfg := Load()

	if cfg.Service.Principal != "custom-principal" {
		t.Errorf("expected principal 'custom-principal', got %s", cfg.Service.Principal)
	}
	if cfg.Service.GRPCPort != "9999" {
		t.Errorf("expected port '9999', got %s", cfg.Service.GRPCPort)
	}
	if cfg.Speech.Provider != "websocket" {
		t.Errorf("expected speech provider 'websocket', got %s", cfg.Speech.Provider)
	}
	if cfg.Speech.Endpoint != "wss://speech.example.com/conversation" {
		t.Errorf("unexpected endpoint %s", cfg.Speech.Endpoint)
	}
	if cfg.Speech.Language != "es-ES" {
		t.Errorf("expected language 'es-ES', got %s", cfg.Speech.Language)
	}
	if cfg.Speech.SendTimeout != 2*time.Second {
		t.Errorf("expected send timeout 2s, got %v", cfg.Speech.SendTimeout)
	}
	if cfg.Conversation.ID != "standup" {
		t.Errorf("expected conversation 'standup', got %s", cfg.Conversation.ID)
	}
	if len(cfg.Conversation.Participants) != 3 || cfg.Conversation.Participants[1] != "bob" {
		t.Errorf("unexpected participants %v", cfg.Conversation.Participants)
	}
	if !cfg.Conversation.AudioRecording {
		t.Error("expected audio recording on")
	}
	if cfg.Audio.SampleRateHz != 8000 {
		t.Errorf("expected sample rate 8000, got %d", cfg.Audio.SampleRateHz)
	}
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("unexpected kafka config %+v", cfg.Kafka)
	}
	if cfg.Kafka.Principal != "kafka-user" {
		t.Errorf("expected Kafka principal 'kafka-user', got %s", cfg.Kafka.Principal)
	}
	if cfg.Observability.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Observability.LogLevel)
	}
}

func TestLoad_InvalidValues_FallbackToDefaults(t *testing.T) {
	// Set invalid env vars
	os.Setenv("AUDIO_SAMPLE_RATE_HZ", "not-a-number")
	os.Setenv("CONVERSATION_AUDIO_RECORDING", "invalid")
	os.Setenv("SPEECH_CONNECT_TIMEOUT", "invalid")
	os.Setenv("TRANSCRIPT_MAX_PARTIALS", "invalid")

	defer func() {
		os.Unsetenv("AUDIO_SAMPLE_RATE_HZ")
		os.Unsetenv("CONVERSATION_AUDIO_RECORDING")
		os.Unsetenv("SPEECH_CONNECT_TIMEOUT")
		os.Unsetenv("TRANSCRIPT_MAX_PARTIALS")
	}()

	cfg := Load()

	// Should fall back to defaults on parse errors
	if cfg.Audio.SampleRateHz != 16000 {
		t.Errorf("expected default sample rate on invalid input, got %d", cfg.Audio.SampleRateHz)
	}
	if cfg.Conversation.AudioRecording {
		t.Error("expected default audio recording on invalid input")
	}
	if cfg.Speech.ConnectTimeout != 10*time.Second {
		t.Errorf("expected default connect timeout on invalid input, got %v", cfg.Speech.ConnectTimeout)
	}
	if cfg.Transcript.MaxPartials != 500 {
		t.Errorf("expected default max partials on invalid input, got %d", cfg.Transcript.MaxPartials)
	}
}

func TestLoad_KafkaPrincipal_FallsBackToServicePrincipal(t *testing.T) {
	os.Setenv("SERVICE_PRINCIPAL", "my-service")
	os.Unsetenv("KAFKA_PRINCIPAL")

	defer os.Unsetenv("SERVICE_PRINCIPAL")

	cfg := Load()

	if cfg.Kafka.Principal != "my-service" {
		t.Errorf("expected Kafka principal to fall back to service principal, got %s", cfg.Kafka.Principal)
	}
}

func TestEnvOrDefaultBool(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		def      bool
		expected bool
	}{
		{"true string", "true", false, true},
		{"false string", "false", true, false},
		{"1", "1", false, true},
		{"0", "0", true, false},
		{"TRUE uppercase", "TRUE", false, true},
		{"invalid", "invalid", true, true},
		{"empty", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_BOOL_VAR"
			if tt.envValue != "" {
				os.Setenv(key, tt.envValue)
			} else {
				os.Unsetenv(key)
			}
			defer os.Unsetenv(key)

			got := envOrDefaultBool(key, tt.def)
			if got != tt.expected {
				t.Errorf("envOrDefaultBool(%s, %v) = %v, want %v", tt.envValue, tt.def, got, tt.expected)
			}
		})
	}
}

func TestEnvOrDefaultList(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected []string
	}{
		{"single", "a", []string{"a"}},
		{"trimmed", " a , b ", []string{"a", "b"}},
		{"only separators", ",,", []string{"default"}},
		{"empty", "", []string{"default"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_LIST_VAR"
			os.Setenv(key, tt.envValue)
			defer os.Unsetenv(key)

			got := envOrDefaultList(key, []string{"default"})
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("expected %v, got %v", tt.expected, got)
				}
			}
		})
	}
}
