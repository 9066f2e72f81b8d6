package bookstoreserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	purchasehttpmapper "github.com/avalder/go-bookstore-api/internal/domains/purchases/adapters/http/mapper"
	purchasesdomain "github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
	purchasesports "github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"
)

// PurchasesAPI wires HTTP transport with the purchase orchestrator. When a
// workflow orchestrator is configured, creation runs through it; the handler
// blocks until the durable result is known either way.
type PurchasesAPI struct {
	service   purchasesports.Service
	workflows purchasesports.WorkflowOrchestrator
}

// NewPurchasesAPI creates a PurchasesAPI backed by the provided service.
func NewPurchasesAPI(service purchasesports.Service, workflows purchasesports.WorkflowOrchestrator) PurchasesAPI {
	return PurchasesAPI{service: service, workflows: workflows}
}

// Get /api/purchases
func (api *PurchasesAPI) ListPurchases(c *gin.Context) {
	purchases, err := api.service.ListPurchases(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchasehttpmapper.FromDomainPurchases(purchases))
}

// Post /api/purchases
func (api *PurchasesAPI) CreatePurchase(c *gin.Context) {
	var payload purchasehttpmapper.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := purchasesports.CreatePurchaseInput{
		CustomerID: payload.CustomerID,
		BookID:     payload.BookID,
	}
	saved, err := api.createPurchase(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchasehttpmapper.FromDomainPurchase(saved))
}

func (api *PurchasesAPI) createPurchase(ctx context.Context, input purchasesports.CreatePurchaseInput) (*purchasesdomain.Purchase, error) {
	if api.workflows != nil {
		return api.workflows.CreatePurchase(ctx, input)
	}
	return api.service.CreatePurchase(ctx, input)
}
