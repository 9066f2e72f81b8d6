package purchases

import (
	"go.temporal.io/sdk/workflow"

	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"
	"github.com/avalder/go-bookstore-api/internal/platform/temporal/sequences"
)

const (
	// PurchaseCreationWorkflowName is the public identifier for registering the workflow.
	PurchaseCreationWorkflowName = "purchases.workflows.Creation"
	// PurchaseCreationTaskQueue is the queue consumed by the worker processing purchase workflows.
	PurchaseCreationTaskQueue = "PURCHASE_CREATION"
)

// PurchaseCreationWorkflowInput captures the payload required to record a sale.
type PurchaseCreationWorkflowInput struct {
	Command ports.CreatePurchaseInput
	TraceID string
}

// PurchaseCreationWorkflow orchestrates the activities needed to persist a
// purchase together with its stock decrement.
func PurchaseCreationWorkflow(ctx workflow.Context, input PurchaseCreationWorkflowInput) (*domain.Purchase, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("PurchaseCreationWorkflow started",
		withTraceID(input.TraceID, "customerId", input.Command.CustomerID, "bookId", input.Command.BookID)...)
	purchase, err := sequences.RunPurchasePersistenceSequence(ctx, input.Command)
	if err != nil {
		logger.Error("PurchaseCreationWorkflow failed",
			withTraceID(input.TraceID, "customerId", input.Command.CustomerID, "bookId", input.Command.BookID, "error", err)...)
		return nil, err
	}
	if purchase != nil {
		logger.Info("PurchaseCreationWorkflow completed", withTraceID(input.TraceID, "purchaseId", purchase.ID)...)
	} else {
		logger.Info("PurchaseCreationWorkflow completed", withTraceID(input.TraceID)...)
	}
	return purchase, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
