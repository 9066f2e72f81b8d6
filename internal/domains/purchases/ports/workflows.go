package ports

import (
	"context"

	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
)

// WorkflowOrchestrator runs purchase creation, either durably on a workflow
// engine or inline against the service. Implementations must not report
// success before the purchase and the stock decrement are durable.
type WorkflowOrchestrator interface {
	CreatePurchase(ctx context.Context, input CreatePurchaseInput) (*domain.Purchase, error)
}
