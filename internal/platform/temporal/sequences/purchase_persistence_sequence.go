package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"
	purchaseactivities "github.com/avalder/go-bookstore-api/internal/platform/temporal/activities/purchases"
)

// RunPurchasePersistenceSequence executes the activity that records the
// purchase and decrements stock atomically. Transient store failures are
// retried; request errors (invalid id, unknown entity, out of stock) come
// back non-retryable so the workflow fails fast with the original reason.
func RunPurchasePersistenceSequence(ctx workflow.Context, input ports.CreatePurchaseInput) (*domain.Purchase, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("purchase persistence sequence started", "customerId", input.CustomerID, "bookId", input.BookID)
	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}

	var purchase domain.Purchase
	err := workflow.ExecuteActivity(
		workflow.WithActivityOptions(ctx, persistOptions),
		purchaseactivities.PersistPurchaseActivityName,
		input,
	).Get(ctx, &purchase)
	if err != nil {
		logger.Error("purchase persistence sequence failed", "customerId", input.CustomerID, "bookId", input.BookID, "error", err)
		return nil, err
	}
	logger.Info("purchase persistence sequence persisted", "purchaseId", purchase.ID)
	return &purchase, nil
}
