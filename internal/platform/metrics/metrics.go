package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequests counts handled HTTP requests by method, route and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration observes request handling time by route.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// LedgerTransactions counts posted balance mutations by type and outcome.
	LedgerTransactions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_transactions_total",
			Help: "Total number of ledger transactions posted",
		},
		[]string{"type", "outcome"},
	)

	// CreditDecisions counts credit application decisions by outcome.
	CreditDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_decisions_total",
			Help: "Total number of credit application decisions",
		},
		[]string{"outcome"},
	)

	// SubsidyDecisions counts subsidy and fund request decisions by kind and outcome.
	SubsidyDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subsidy_decisions_total",
			Help: "Total number of subsidy and fund request decisions",
		},
		[]string{"kind", "outcome"},
	)
)

// Register installs all collectors on the default registry. Call once at startup.
func Register() {
	prometheus.MustRegister(
		HTTPRequests,
		HTTPDuration,
		LedgerTransactions,
		CreditDecisions,
		SubsidyDecisions,
	)
}
