package ports

import (
	"context"
	"errors"

	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
)

var (
	// ErrOutOfStock signals the atomic stock decrement found no remaining
	// copies; the purchase insert must not be committed.
	ErrOutOfStock = errors.New("book out of stock")
	// ErrBookGone signals the referenced book vanished between lookup and
	// commit.
	ErrBookGone = errors.New("book no longer exists")
)

// Repository persists purchases.
//
// Create is the system's consistency anchor: it inserts the purchase AND
// decrements the referenced book's stock as one all-or-nothing unit.
// Implementations must guarantee that either both effects are durable or
// neither is, and that the decrement is conditional so stock never goes
// negative under concurrent purchases.
type Repository interface {
	Create(ctx context.Context, purchase *domain.Purchase) (*domain.Purchase, error)
	List(ctx context.Context) ([]*domain.Purchase, error)
}
