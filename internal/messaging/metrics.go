// internal/messaging/metrics.go
package messaging

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var messagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "messaging_messages_total",
		Help: "Messages processed, labelled by outcome.",
	},
	[]string{"status"},
)

// RecordMessage increments the message counter for the given outcome.
func RecordMessage(status string) {
	messagesTotal.WithLabelValues(status).Inc()
}
