package routes

import (
	"context"

	"github.com/flowsettle/ledgercore/internal/settlement"
)

// orchestratorSettler adapts settlement.Orchestrator's
// (ctx, reference) (*Result, error) signature to the narrower
// (ctx, reference) error shape webhook.Settler expects, so webhook ingress
// never needs to know about settlement results.
type orchestratorSettler struct {
	orchestrator *settlement.Orchestrator
}

func (s orchestratorSettler) SettlePaymentByReference(ctx context.Context, reference string) error {
	_, err := s.orchestrator.SettlePaymentByReference(ctx, reference)
	return err
}
