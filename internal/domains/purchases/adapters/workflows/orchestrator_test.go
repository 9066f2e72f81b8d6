package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"
	purchaseactivities "github.com/avalder/go-bookstore-api/internal/platform/temporal/activities/purchases"
	"github.com/avalder/go-bookstore-api/internal/shared/apperror"
)

type stubPurchaseService struct {
	created  *domain.Purchase
	err      error
	received ports.CreatePurchaseInput
}

func (s *stubPurchaseService) CreatePurchase(ctx context.Context, input ports.CreatePurchaseInput) (*domain.Purchase, error) {
	s.received = input
	return s.created, s.err
}

func (s *stubPurchaseService) ListPurchases(ctx context.Context) ([]*domain.Purchase, error) {
	return nil, nil
}

func TestRestoreRequestError_RecoversKind(t *testing.T) {
	cause := apperror.New(apperror.KindOutOfStock, "Book is out of stock.")
	wireErr := temporal.NewNonRetryableApplicationError(
		apperror.MessageOf(cause),
		purchaseactivities.RequestErrorTypePrefix+string(apperror.KindOf(cause)),
		cause,
	)

	restored := restoreRequestError(wireErr)

	assert.Equal(t, apperror.KindOutOfStock, apperror.KindOf(restored))
	assert.Equal(t, "Book is out of stock.", apperror.MessageOf(restored))
}

func TestRestoreRequestError_PassesThroughOtherErrors(t *testing.T) {
	plain := errors.New("connection refused")
	assert.Same(t, plain, restoreRequestError(plain))

	untagged := temporal.NewApplicationError("boom", "StoreFailure")
	assert.Equal(t, untagged, restoreRequestError(untagged))
}

func TestInlinePurchaseWorkflows_Delegates(t *testing.T) {
	want := &domain.Purchase{ID: "p-1"}
	service := &stubPurchaseService{created: want}
	orchestrator := NewInlinePurchaseWorkflows(service)

	input := ports.CreatePurchaseInput{CustomerID: "c-1", BookID: "b-1"}
	got, err := orchestrator.CreatePurchase(context.Background(), input)

	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, input, service.received)
}
