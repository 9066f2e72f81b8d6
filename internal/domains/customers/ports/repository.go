package ports

import (
	"context"
	"errors"

	"github.com/avalder/go-bookstore-api/internal/domains/customers/domain"
)

var ErrNotFound = errors.New("customer not found")

// Repository persists customer records.
type Repository interface {
	Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Customer, error)
}
