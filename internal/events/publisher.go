// Package events provides event publishing functionality.
package events

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"ai-conversation-transcriber/internal/models"
	"ai-conversation-transcriber/internal/observability/metrics"
	"ai-conversation-transcriber/internal/schema"
)

// messageWriter is the subset of *kafka.Writer used by the publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher publishes transcript events to separate Kafka topics.
type Publisher struct {
	writerRecognizing messageWriter
	writerRecognized  messageWriter
	writerCanceled    messageWriter
	principal         string
	topicRecognizing  string
	topicRecognized   string
	topicCanceled     string
	enabled           bool
	metrics           *metrics.Metrics
	validator         *schema.Validator
}

// Config holds Kafka publisher configuration.
type Config struct {
	Brokers          []string
	TopicRecognizing string
	TopicRecognized  string
	TopicCanceled    string
	Principal        string
	Enabled          bool
	Metrics          *metrics.Metrics // Defaults to metrics.DefaultMetrics
}

// New creates a new Kafka event publisher with one topic per transcript event type.
func New(cfg *Config) *Publisher {
	if cfg == nil {
		log.Info().Msg("Kafka disabled (nil config), using log-only mode")
		return &Publisher{
			enabled:   false,
			metrics:   metrics.DefaultMetrics,
			validator: schema.New(),
		}
	}

	m := cfg.Metrics
	if m == nil {
		m = metrics.DefaultMetrics
	}

	p := &Publisher{
		principal:        cfg.Principal,
		topicRecognizing: cfg.TopicRecognizing,
		topicRecognized:  cfg.TopicRecognized,
		topicCanceled:    cfg.TopicCanceled,
		metrics:          m,
		validator:        schema.New(),
	}

	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, using log-only mode")
		return p
	}

	// Longer dial timeout for DNS resolution in Kubernetes
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	transport := &kafka.Transport{
		Dial: dialer.DialFunc,
	}

	newWriter := func(topic string) *kafka.Writer {
		return &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			WriteTimeout: 10 * time.Second,
			RequiredAcks: kafka.RequireOne,
			Transport:    transport,
		}
	}

	p.writerRecognizing = newWriter(cfg.TopicRecognizing)
	p.writerRecognized = newWriter(cfg.TopicRecognized)
	p.writerCanceled = newWriter(cfg.TopicCanceled)
	p.enabled = true

	log.Info().
		Strs("brokers", cfg.Brokers).
		Str("topicRecognizing", cfg.TopicRecognizing).
		Str("topicRecognized", cfg.TopicRecognized).
		Str("topicCanceled", cfg.TopicCanceled).
		Str("principal", cfg.Principal).
		Msg("Kafka publisher initialized")

	return p
}

// Enabled reports whether events are written to Kafka.
func (p *Publisher) Enabled() bool {
	return p.enabled
}

// PublishRecognizing publishes a partial transcript to the recognizing topic.
func (p *Publisher) PublishRecognizing(ctx context.Context, key string, event models.TranscriptRecognizing) error {
	return p.publish(ctx, p.writerRecognizing, p.topicRecognizing, models.EventTypeRecognizing, key, event)
}

// PublishRecognized publishes a final transcript to the recognized topic.
func (p *Publisher) PublishRecognized(ctx context.Context, key string, event models.TranscriptRecognized) error {
	return p.publish(ctx, p.writerRecognized, p.topicRecognized, models.EventTypeRecognized, key, event)
}

// PublishCanceled publishes a cancellation to the canceled topic.
func (p *Publisher) PublishCanceled(ctx context.Context, key string, event models.TranscriptCanceled) error {
	return p.publish(ctx, p.writerCanceled, p.topicCanceled, models.EventTypeCanceled, key, event)
}

func (p *Publisher) publish(ctx context.Context, writer messageWriter, topic, eventType, key string, event any) error {
	start := time.Now()

	if err := p.validator.Validate(event); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Invalid event")
		p.metrics.RecordKafkaPublish(topic, eventType, err, time.Since(start).Seconds())
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to marshal event")
		p.metrics.RecordKafkaPublish(topic, eventType, err, time.Since(start).Seconds())
		return err
	}

	log.Debug().
		Str("principal", p.principal).
		Str("topic", topic).
		Str("key", key).
		RawJSON("payload", payload).
		Msg("Publishing event")

	// If Kafka is disabled, just log
	if !p.enabled || writer == nil {
		p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
		return nil
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(eventType)},
			{Key: "principal", Value: []byte(p.principal)},
		},
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("Failed to write to Kafka")
		p.metrics.RecordKafkaPublish(topic, eventType, err, time.Since(start).Seconds())
		return err
	}

	p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
	return nil
}

// Close closes all Kafka writers.
func (p *Publisher) Close() error {
	var err error
	for name, w := range map[string]messageWriter{
		"recognizing": p.writerRecognizing,
		"recognized":  p.writerRecognized,
		"canceled":    p.writerCanceled,
	} {
		if w == nil {
			continue
		}
		if e := w.Close(); e != nil {
			log.Error().Err(e).Str("writer", name).Msg("Error closing writer")
			err = e
		}
	}
	return err
}
