// Package metrics holds the Prometheus collectors of the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriscan_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nutriscan_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	grpcRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriscan_grpc_requests_total",
			Help: "Total number of gRPC calls",
		},
		[]string{"method", "code"},
	)

	// Domain metrics
	registrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutriscan_registrations_total",
			Help: "Total number of accounts registered",
		},
	)

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriscan_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	productsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutriscan_products_created_total",
			Help: "Total number of product records created",
		},
	)

	duplicateRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nutriscan_duplicate_rejections_total",
			Help: "Product creations rejected because the owner already has the catalog id",
		},
	)

	rateLimitHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriscan_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)
)

// Login outcomes.
const (
	LoginSuccess      = "success"
	LoginUnknownEmail = "unknown_email"
	LoginBadPassword  = "bad_password"
	LoginError        = "error"
)

func ObserveHTTPRequest(method, path, status string, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

func ObserveGRPCRequest(method, code string) {
	grpcRequestsTotal.WithLabelValues(method, code).Inc()
}

func IncRegistrations() { registrationsTotal.Inc() }

func IncLogins(outcome string) { loginsTotal.WithLabelValues(outcome).Inc() }

func IncProductsCreated() { productsCreatedTotal.Inc() }

func IncDuplicateRejections() { duplicateRejectionsTotal.Inc() }

func IncRateLimitHits(route string) { rateLimitHitsTotal.WithLabelValues(route).Inc() }
