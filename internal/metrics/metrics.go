package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ShipmentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freight_shipments_created_total",
		Help: "Total number of shipments successfully created.",
	})

	OffersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freight_offers_created_total",
		Help: "Total number of offers submitted by transporters.",
	})

	OffersAcceptedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freight_offers_accepted_total",
		Help: "Total number of offers accepted by clients.",
	})

	QuotesRequestedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freight_quotes_requested_total",
		Help: "Total number of quote requests sent to transporters.",
	})

	QuotesExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freight_quotes_expired_total",
		Help: "Total number of quote requests expired by the scheduler.",
	})

	ReviewsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freight_reviews_created_total",
		Help: "Total number of transporter reviews left by clients.",
	})

	IdempotentReplaysTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freight_idempotent_replays_total",
		Help: "Total number of responses replayed for a repeated Idempotency-Key.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freight_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	OutboxPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freight_outbox_published_total",
		Help: "Total number of outbox events delivered to all sinks.",
	})

	OutboxFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freight_outbox_failed_total",
		Help: "Total number of failed outbox delivery attempts.",
	})

	OutboxBacklog = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "freight_outbox_backlog",
		Help: "Current number of outbox events waiting for delivery.",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "freight_http_request_duration_seconds",
		Help:    "HTTP request latency by route, method and status.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"route", "method", "status"},
	)
)
