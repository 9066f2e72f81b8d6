package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	catalogmemory "github.com/avalder/go-bookstore-api/internal/domains/catalog/adapters/memory"
	catalogports "github.com/avalder/go-bookstore-api/internal/domains/catalog/ports"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory purchase persistence adapter. It reserves
// stock through the catalog repository's atomic decrement before recording
// the purchase, restoring the unit on a failed insert.
type Repository struct {
	mu        sync.RWMutex
	purchases map[string]*domain.Purchase
	books     *catalogmemory.Repository
}

func NewRepository(books *catalogmemory.Repository) *Repository {
	return &Repository{purchases: map[string]*domain.Purchase{}, books: books}
}

func (r *Repository) Create(ctx context.Context, purchase *domain.Purchase) (*domain.Purchase, error) {
	if purchase == nil {
		return nil, errors.New("purchase is nil")
	}
	if r.books == nil {
		return nil, errors.New("memory purchase repository not configured with a catalog")
	}
	if err := r.books.DecrementStock(ctx, purchase.Book.ID); err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, ports.ErrBookGone
		}
		if errors.Is(err, catalogports.ErrOutOfStock) {
			return nil, ports.ErrOutOfStock
		}
		return nil, err
	}
	clone := *purchase
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	r.mu.Lock()
	if _, exists := r.purchases[clone.ID]; exists {
		r.mu.Unlock()
		// Undo the reservation: the pair must land together or not at all.
		_ = r.books.IncrementStock(ctx, purchase.Book.ID)
		return nil, errors.New("duplicate purchase id")
	}
	stored := clone
	r.purchases[stored.ID] = &stored
	r.mu.Unlock()
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Purchase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Purchase, 0, len(r.purchases))
	for _, purchase := range r.purchases {
		clone := *purchase
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, nil
}
