package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"
	purchaseactivities "github.com/avalder/go-bookstore-api/internal/platform/temporal/activities/purchases"
	purchaseworkflows "github.com/avalder/go-bookstore-api/internal/platform/temporal/workflows/purchases"
	"github.com/avalder/go-bookstore-api/internal/shared/apperror"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalPurchaseWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlinePurchaseWorkflows)(nil)
)

// TemporalPurchaseWorkflows starts purchase workflows on a Temporal cluster.
// The call blocks until the workflow reports durable completion, so callers
// never observe success before the purchase and the stock decrement landed.
type TemporalPurchaseWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalPurchaseWorkflows wires a Temporal client into the orchestrator.
func NewTemporalPurchaseWorkflows(c client.Client) *TemporalPurchaseWorkflows {
	return &TemporalPurchaseWorkflows{client: c, taskQueue: purchaseworkflows.PurchaseCreationTaskQueue}
}

// CreatePurchase runs the durable purchase-creation workflow to completion.
func (o *TemporalPurchaseWorkflows) CreatePurchase(ctx context.Context, input ports.CreatePurchaseInput) (*domain.Purchase, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal purchase workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        buildPurchaseCreationWorkflowID(input, traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		purchaseworkflows.PurchaseCreationWorkflow,
		purchaseworkflows.PurchaseCreationWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		return nil, err
	}
	var purchase domain.Purchase
	if err := run.Get(ctx, &purchase); err != nil {
		return nil, restoreRequestError(err)
	}
	return &purchase, nil
}

// restoreRequestError rebuilds the tagged error kind that the activity
// encoded into the application error type, so the HTTP layer still maps
// domain failures to the right status.
func restoreRequestError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	kind, ok := strings.CutPrefix(appErr.Type(), purchaseactivities.RequestErrorTypePrefix)
	if !ok {
		return err
	}
	return apperror.Wrap(apperror.Kind(kind), appErr.Message(), err)
}

// InlinePurchaseWorkflows executes the service directly without Temporal,
// useful for tests or dev fallbacks. The service's transactional repository
// already guarantees the all-or-nothing contract.
type InlinePurchaseWorkflows struct {
	service ports.Service
}

// NewInlinePurchaseWorkflows wraps the purchase service for synchronous execution.
func NewInlinePurchaseWorkflows(service ports.Service) *InlinePurchaseWorkflows {
	return &InlinePurchaseWorkflows{service: service}
}

// CreatePurchase delegates to the application service without durable orchestration.
func (o *InlinePurchaseWorkflows) CreatePurchase(ctx context.Context, input ports.CreatePurchaseInput) (*domain.Purchase, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline purchase workflows not configured")
	}
	return o.service.CreatePurchase(ctx, input)
}

func buildPurchaseCreationWorkflowID(input ports.CreatePurchaseInput, traceComponent string) string {
	return fmt.Sprintf("purchase-creation-%s-%s-%s", input.CustomerID, input.BookID, traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
