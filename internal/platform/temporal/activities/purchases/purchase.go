package purchases

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
	purchasesports "github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"
	"github.com/avalder/go-bookstore-api/internal/shared/apperror"
)

const (
	// PersistPurchaseActivityName records the purchase and decrements stock in
	// one transactional unit.
	PersistPurchaseActivityName = "purchases.activities.PersistPurchase"
	// RequestErrorTypePrefix marks activity failures that carry a request
	// error kind, letting the API side restore the original classification.
	RequestErrorTypePrefix = "request-error:"
)

// Activities groups activities that operate on the purchases bounded context.
type Activities struct {
	service purchasesports.Service
}

// NewActivities wires the purchase service into the Temporal activities bundle.
func NewActivities(service purchasesports.Service) *Activities {
	return &Activities{service: service}
}

// PersistPurchase runs the transactional purchase creation. Request errors
// are marked non-retryable with their kind encoded in the error type, so
// retries only happen for transient store failures.
func (a *Activities) PersistPurchase(ctx context.Context, input purchasesports.CreatePurchaseInput) (*domain.Purchase, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("purchase persist activity not initialized")
		return nil, errors.New("purchase persist activity not initialized")
	}
	logger.Info("PersistPurchase activity started", "customerId", input.CustomerID, "bookId", input.BookID)
	purchase, err := a.service.CreatePurchase(ctx, input)
	if err != nil {
		logger.Error("PersistPurchase activity failed", "customerId", input.CustomerID, "bookId", input.BookID, "error", err)
		var appErr *apperror.Error
		if errors.As(err, &appErr) && appErr.Kind != apperror.KindInternal {
			return nil, temporal.NewNonRetryableApplicationError(
				appErr.Message,
				RequestErrorTypePrefix+string(appErr.Kind),
				err,
			)
		}
		return nil, err
	}
	logger.Info("PersistPurchase activity completed", "purchaseId", purchase.ID)
	return purchase, nil
}
