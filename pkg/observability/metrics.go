package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Authorization outcome metrics
	authorizationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_authorizations_total",
		Help: "Total number of payment authorization requests",
	}, []string{
		"partner_id", // Which partner
		"outcome",    // approved, rejected, routing_failed, error
	})

	// Per-gateway failover attempt metrics
	gatewayAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_gateway_attempts_total",
		Help: "Total gateway authorization attempts, including failover retries",
	}, []string{
		"gateway", // MOCKPAY, TESTPAY, DUMMYPAY
		"result",  // success, error, no_implementation
	})

	// Gateway call latency
	gatewayAuthorizeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "payment_gateway_authorize_duration_seconds",
		Help: "Latency of a single gateway authorization attempt",
		// Buckets: 10ms to 30s (typical gateway round-trip times)
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{
		"gateway",
		"result",
	})

	// Ledger query metrics
	ledgerQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_ledger_queries_total",
		Help: "Total ledger query requests",
	}, []string{
		"outcome", // success, error
	})

	ledgerQueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "payment_ledger_query_duration_seconds",
		Help:    "End-to-end latency of a ledger query (page + summary)",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})
)

// RecordAuthorization records the final outcome of an authorization request
func RecordAuthorization(partnerID int64, outcome string) {
	authorizationsTotal.WithLabelValues(strconv.FormatInt(partnerID, 10), outcome).Inc()
}

// RecordGatewayAttempt records one gateway attempt inside the failover loop
func RecordGatewayAttempt(gateway, result string, duration time.Duration) {
	gatewayAttemptsTotal.WithLabelValues(gateway, result).Inc()
	gatewayAuthorizeDuration.WithLabelValues(gateway, result).Observe(duration.Seconds())
}

// RecordLedgerQuery records a ledger query outcome with its latency
func RecordLedgerQuery(outcome string, duration time.Duration) {
	ledgerQueriesTotal.WithLabelValues(outcome).Inc()
	ledgerQueryDuration.Observe(duration.Seconds())
}
