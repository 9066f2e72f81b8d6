package ports

import (
	"context"

	catalogdomain "github.com/avalder/go-bookstore-api/internal/domains/catalog/domain"
	customersdomain "github.com/avalder/go-bookstore-api/internal/domains/customers/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
)

// CreatePurchaseInput identifies the parties of a sale.
type CreatePurchaseInput struct {
	CustomerID string
	BookID     string
}

// Service exposes the purchase orchestrator to adapters.
type Service interface {
	CreatePurchase(ctx context.Context, input CreatePurchaseInput) (*domain.Purchase, error)
	ListPurchases(ctx context.Context) ([]*domain.Purchase, error)
}

// BookSource resolves the referenced book; satisfied by the catalog service.
type BookSource interface {
	GetBook(ctx context.Context, id string) (*catalogdomain.Book, error)
}

// CustomerSource resolves the referenced customer; satisfied by the
// customers service.
type CustomerSource interface {
	GetCustomer(ctx context.Context, id string) (*customersdomain.Customer, error)
}
