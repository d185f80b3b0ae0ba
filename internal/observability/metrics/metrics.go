// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ai_conversation_transcriber"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Start sequence metrics
	StartSequenceTotal    prometheus.Counter
	StartSequenceFailures prometheus.Counter
	StartSequenceLatency  prometheus.Histogram

	// Control message metrics
	ControlMessagesSent  *prometheus.CounterVec
	ControlMessageErrors *prometheus.CounterVec

	// Speech event metrics
	SpeechEvents *prometheus.CounterVec

	// Recognition metrics
	RecognitionEvents *prometheus.CounterVec
	Cancellations     *prometheus.CounterVec
	CallbackDelivered *prometheus.CounterVec
	HandlerFailures   *prometheus.CounterVec

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec

	// gRPC metrics
	RPCTotal      *prometheus.CounterVec
	RPCDuration   *prometheus.HistogramVec
	StreamsActive prometheus.Gauge
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics(prometheus.DefaultRegisterer)

// NewMetrics creates all metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		// Start sequence metrics
		StartSequenceTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "start_sequence_total",
			Help:      "Total number of session start sequences attempted",
		}),
		StartSequenceFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "start_sequence_failures_total",
			Help:      "Total number of session start sequences that failed",
		}),
		StartSequenceLatency: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "start_sequence_latency_seconds",
			Help:      "Time to send the full session start sequence",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
		}),

		// Control message metrics
		ControlMessagesSent: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "control_messages_sent_total",
			Help:      "Total number of control messages sent to the service",
		}, []string{"path"}),
		ControlMessageErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "control_message_errors_total",
			Help:      "Total number of control message send failures",
		}, []string{"path"}),

		// Speech event metrics
		SpeechEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "speech_events_total",
			Help:      "Total number of speech events by command and outcome",
		}, []string{"command", "outcome"}),

		// Recognition metrics
		RecognitionEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recognition_events_total",
			Help:      "Total number of recognition events dispatched",
		}, []string{"kind"}),
		Cancellations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancellations_total",
			Help:      "Total number of cancellations by reason and error code",
		}, []string{"reason", "error_code"}),
		CallbackDelivered: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callback_deliveries_total",
			Help:      "Total number of completion callback deliveries by outcome",
		}, []string{"outcome"}),
		HandlerFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_failures_total",
			Help:      "Total number of failures raised by application handlers",
		}, []string{"handler"}),

		// Kafka publish metrics
		KafkaPublishTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),

		// gRPC metrics
		RPCTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grpc_calls_total",
			Help:      "Total number of gRPC calls by method and status code",
		}, []string{"method", "code"}),
		RPCDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grpc_call_duration_seconds",
			Help:      "Duration of gRPC calls in seconds",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
		}, []string{"method"}),
		StreamsActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "grpc_streams_active",
			Help:      "Number of currently active gRPC streams",
		}),
	}
}

// RecordStartSequence records a completed start sequence attempt.
func (m *Metrics) RecordStartSequence(err error, latencySeconds float64) {
	m.StartSequenceTotal.Inc()
	m.StartSequenceLatency.Observe(latencySeconds)
	if err != nil {
		m.StartSequenceFailures.Inc()
	}
}

// RecordControlMessage records a control message send attempt.
func (m *Metrics) RecordControlMessage(path string, err error) {
	if err != nil {
		m.ControlMessageErrors.WithLabelValues(path).Inc()
		return
	}
	m.ControlMessagesSent.WithLabelValues(path).Inc()
}

// RecordSpeechEvent records a speech event outcome (sent, skipped, failed).
func (m *Metrics) RecordSpeechEvent(command, outcome string) {
	m.SpeechEvents.WithLabelValues(command, outcome).Inc()
}

// RecordRecognitionEvent records a dispatched recognition event.
func (m *Metrics) RecordRecognitionEvent(kind string) {
	m.RecognitionEvents.WithLabelValues(kind).Inc()
}

// RecordCancellation records a cancellation.
func (m *Metrics) RecordCancellation(reason, errorCode string) {
	m.Cancellations.WithLabelValues(reason, errorCode).Inc()
}

// RecordCallback records a completion callback outcome.
func (m *Metrics) RecordCallback(outcome string) {
	m.CallbackDelivered.WithLabelValues(outcome).Inc()
}

// RecordHandlerFailure records a failure raised by an application handler.
func (m *Metrics) RecordHandlerFailure(handler string) {
	m.HandlerFailures.WithLabelValues(handler).Inc()
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}

// RecordRPC records a completed gRPC call.
func (m *Metrics) RecordRPC(method, code string, durationSeconds float64) {
	m.RPCTotal.WithLabelValues(method, code).Inc()
	m.RPCDuration.WithLabelValues(method).Observe(durationSeconds)
}
