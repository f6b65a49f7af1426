// Package metrics exposes Prometheus counters for the financial core.
// internal/* packages never import prometheus directly — they call the
// Record* functions below, so the core stays decoupled from any particular
// metrics backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ledgerAppends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_appends_total",
		Help: "Ledger append attempts by result.",
	}, []string{"result"})

	settlements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlements_total",
		Help: "Settlement attempts by result.",
	}, []string{"result"})

	webhookDedupHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhook_dedup_hits_total",
		Help: "Webhooks recognized as duplicates at ingress.",
	})

	chainVerifyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chain_verify_failures_total",
		Help: "Chain verifications that found a broken hash or linkage.",
	})
)

// RecordLedgerAppend increments ledger_appends_total for the given result
// ("ok", "idempotent_hit", "insufficient_balance", "debit_on_non_existent_wallet", "error").
func RecordLedgerAppend(result string) {
	ledgerAppends.WithLabelValues(result).Inc()
}

// RecordSettlement increments settlements_total for the given result
// ("settled", "already_settled", "invalid_status", "error").
func RecordSettlement(result string) {
	settlements.WithLabelValues(result).Inc()
}

// RecordWebhookDedupHit increments webhook_dedup_hits_total.
func RecordWebhookDedupHit() {
	webhookDedupHits.Inc()
}

// RecordChainVerifyFailure increments chain_verify_failures_total.
func RecordChainVerifyFailure() {
	chainVerifyFailures.Inc()
}

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
