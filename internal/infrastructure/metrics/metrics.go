package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Messaging Service Metrics
var (
	// Messages written to the store, by direction and channel
	MessagesIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messaging",
			Subsystem: "engine",
			Name:      "messages_ingested_total",
			Help:      "Total messages persisted",
		},
		[]string{"direction", "channel"},
	)

	// Webhook deliveries rejected by the idempotency check
	DuplicateWebhooksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "messaging",
			Subsystem: "engine",
			Name:      "duplicate_webhooks_total",
			Help:      "Total inbound webhook deliveries ignored as replays",
		},
	)

	// New conversation threads
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "messaging",
			Subsystem: "engine",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	// Provider send outcomes, by channel and outcome status
	ProviderSendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messaging",
			Subsystem: "provider",
			Name:      "sends_total",
			Help:      "Total outbound provider send attempts",
		},
		[]string{"channel", "status"},
	)

	// Provider send duration
	ProviderSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "messaging",
			Subsystem: "provider",
			Name:      "send_duration_seconds",
			Help:      "Outbound provider send duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"channel"},
	)
)

// Handler returns the Prometheus metrics handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordMessageIngested records a persisted message
func RecordMessageIngested(direction, channel string) {
	MessagesIngestedTotal.WithLabelValues(direction, channel).Inc()
}

// RecordDuplicateWebhook records a webhook replay rejected by idempotency
func RecordDuplicateWebhook() {
	DuplicateWebhooksTotal.Inc()
}

// RecordConversationCreated records a new conversation thread
func RecordConversationCreated() {
	ConversationsCreatedTotal.Inc()
}

// RecordProviderSend records one outbound send attempt
func RecordProviderSend(channel, status string, durationSec float64) {
	ProviderSendsTotal.WithLabelValues(channel, status).Inc()
	ProviderSendDuration.WithLabelValues(channel).Observe(durationSec)
}
