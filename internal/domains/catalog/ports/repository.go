package ports

import (
	"context"
	"errors"

	"github.com/avalder/go-bookstore-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound = errors.New("book not found")
	// ErrOutOfStock signals a conditional decrement found no remaining stock.
	ErrOutOfStock = errors.New("book out of stock")
)

// Repository persists catalog entries.
//
// DecrementStock must be atomic: it reduces numberInStock by one only when
// the current value is positive, so concurrent purchases can never drive
// stock negative.
type Repository interface {
	Save(ctx context.Context, book *domain.Book) (*domain.Book, error)
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Book, error)
	DecrementStock(ctx context.Context, id string) error
}
