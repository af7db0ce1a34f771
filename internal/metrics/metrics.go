package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InvocationsTotal counts gateway tool invocations by tool and outcome.
	// Outcome is "success" for delivered notifications, otherwise the error
	// tag carried in the envelope.
	InvocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feishu_relay_invocations_total",
		Help: "Total number of gateway tool invocations",
	}, []string{"tool", "outcome"})

	// SendAttemptsTotal counts individual webhook POST attempts by result.
	SendAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feishu_relay_send_attempts_total",
		Help: "Total number of webhook delivery attempts",
	}, []string{"result"})

	// RetriesTotal counts backoff sleeps taken between attempts.
	RetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feishu_relay_retries_total",
		Help: "Total number of retries after failed attempts",
	}, []string{"rate_limited"})

	// SendDuration observes the duration of complete send operations,
	// including retries and backoff.
	SendDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "feishu_relay_send_duration_seconds",
		Help:    "Duration of notification sends in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

// Attempt result label values.
const (
	ResultOK         = "ok"
	ResultRejected   = "rejected"
	ResultNetwork    = "network"
	ResultValidation = "validation"
)
