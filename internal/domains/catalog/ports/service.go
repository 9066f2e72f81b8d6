package ports

import (
	"context"

	"github.com/avalder/go-bookstore-api/internal/domains/catalog/domain"
)

// BookUpdate carries the optional fields of a catalog update. Nil fields
// keep their current value, matching the API's merge semantics.
type BookUpdate struct {
	Title         *string
	Author        *string
	Price         *float64
	NumberInStock *int
}

// Service exposes catalog use cases to adapters.
type Service interface {
	CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	UpdateBook(ctx context.Context, id string, update BookUpdate) (*domain.Book, error)
	DeleteBook(ctx context.Context, id string) (*domain.Book, error)
}
