package ports

import (
	"context"

	"github.com/avalder/go-bookstore-api/internal/domains/customers/domain"
)

// CustomerUpdate carries the optional fields of a customer update. Nil
// fields keep their current value.
type CustomerUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	IsGold    *bool
}

// Service exposes customer use cases to adapters.
type Service interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id string, update CustomerUpdate) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) (*domain.Customer, error)
}
