package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// WebhookRequests counts incoming notifications, labeled by outcome.
	WebhookRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "router_webhook_requests_total",
		Help: "The total number of received notification payloads",
	}, []string{"status"}) // status: delivered, unmatched, suppressed, invalid, failed

	// PayloadMatches counts how often each destination matched a payload.
	PayloadMatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "router_payload_matches_total",
		Help: "The total number of payload matches per destination",
	}, []string{"webhook"})

	// MatchDuration measures FilterPayload evaluation time.
	MatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "router_match_duration_seconds",
		Help:    "Time taken to evaluate a payload against all destinations",
		Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01},
	})

	// Deliveries counts delivery attempts per destination.
	Deliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "router_deliveries_total",
		Help: "The total number of delivery attempts",
	}, []string{"webhook", "hook_type", "status"}) // status: success, error

	// DeliveryDuration measures the time taken by one delivery.
	DeliveryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "router_delivery_duration_seconds",
		Help:    "Time taken to deliver a payload to a destination",
		Buckets: prometheus.DefBuckets,
	}, []string{"hook_type"})
)

// Handler serves the default prometheus registry
func Handler() http.Handler {
	return promhttp.Handler()
}
