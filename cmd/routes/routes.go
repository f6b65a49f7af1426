package routes

import (
	"net/http"

	"github.com/flowsettle/ledgercore/internal/audit"
	"github.com/flowsettle/ledgercore/internal/ledger"
	"github.com/flowsettle/ledgercore/internal/middleware"
	"github.com/flowsettle/ledgercore/internal/paymentintent"
	"github.com/flowsettle/ledgercore/internal/refundintent"
	"github.com/flowsettle/ledgercore/internal/settlement"
	"github.com/flowsettle/ledgercore/internal/webhook"
	"github.com/flowsettle/ledgercore/pkg/config"
	"github.com/flowsettle/ledgercore/pkg/database"
	"github.com/flowsettle/ledgercore/pkg/events"
	"github.com/flowsettle/ledgercore/pkg/metrics"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// RegisterRoutes wires the HTTP surface for the financial core and returns
// the fully-wrapped handler (logging, CORS) ready to serve. No auth
// middleware is applied here — authenticating callers is the embedding
// service's job.
func RegisterRoutes(r *mux.Router, cfg config.Config, redisClient *events.RedisClient) (http.Handler, *webhook.Worker) {
	recorder := audit.NewRecorder(database.DB)
	orchestrator := settlement.NewOrchestrator(database.DB, recorder)
	settler := orchestratorSettler{orchestrator: orchestrator}

	paymentRepo := paymentintent.NewRepository(database.DB)
	paymentSvc := paymentintent.NewService(paymentRepo)
	paymentHandler := paymentintent.NewHandler(paymentSvc)

	refundRepo := refundintent.NewRepository(database.DB)
	refundSvc := refundintent.NewService(refundRepo)
	refundHandler := refundintent.NewHandler(refundSvc, paymentSvc)

	ledgerReader := ledger.NewReader(database.DB)
	ledgerHandler := ledger.NewHandler(ledgerReader)

	webhookRepo := webhook.NewRepository(database.DB)
	verifiers := webhook.Registry{
		"flutterwave": webhook.NewFlutterwaveVerifier(cfg.FlutterwaveSecretHash),
	}
	webhookSvc := webhook.NewService(webhookRepo, verifiers, settler, redisClient, cfg.IsDevelopment())
	webhookHandler := webhook.NewHandler(webhookSvc)

	worker := webhook.NewWorker(redisClient, settler, webhookRepo)

	r.Use(middleware.LoggingMiddleware)

	rateLimiter := middleware.NewRateLimiter(rate.Limit(5), 10)

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/intents/payments", paymentHandler.Create).Methods("POST")
	v1.HandleFunc("/intents/payments/{id}", paymentHandler.Get).Methods("GET")
	v1.HandleFunc("/intents/refunds", refundHandler.Create).Methods("POST")

	webhookR := v1.PathPrefix("/webhooks/{provider}").Subrouter()
	webhookR.Use(rateLimiter.Limit)
	webhookR.HandleFunc("", webhookHandler.Ingest).Methods("POST")

	v1.HandleFunc("/ledger/entries", ledgerHandler.ListEntries).Methods("GET")
	v1.HandleFunc("/ledger/verify-chain", ledgerHandler.VerifyChain).Methods("POST")
	v1.HandleFunc("/wallets/{accountId}/balance", ledgerHandler.GetBalance).Methods("GET")
	v1.HandleFunc("/ops/replay-webhook", webhookHandler.Replay).Methods("POST")

	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	corsObj := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	return corsObj(r), worker
}
