package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/avalder/go-bookstore-api/internal/domains/catalog/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog persistence adapter.
type Repository struct {
	mu    sync.RWMutex
	books map[string]*domain.Book
}

func NewRepository() *Repository {
	return &Repository{books: map[string]*domain.Book{}}
}

func (r *Repository) Save(_ context.Context, book *domain.Book) (*domain.Book, error) {
	if book == nil {
		return nil, errors.New("book is nil")
	}
	clone := *book
	if err := clone.Validate().Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	stored := clone
	r.books[stored.ID] = &stored
	return &clone, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	book, ok := r.books[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *book
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Book, 0, len(r.books))
	for _, book := range r.books {
		clone := *book
		list = append(list, &clone)
	}
	return list, nil
}

// DecrementStock applies the check and the decrement under one lock, so
// concurrent purchases observe a consistent counter.
func (r *Repository) DecrementStock(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	book, ok := r.books[id]
	if !ok {
		return ports.ErrNotFound
	}
	if book.NumberInStock <= 0 {
		return ports.ErrOutOfStock
	}
	book.NumberInStock--
	return nil
}

// IncrementStock restores one unit; used to roll back a failed purchase write.
func (r *Repository) IncrementStock(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	book, ok := r.books[id]
	if !ok {
		return ports.ErrNotFound
	}
	book.NumberInStock++
	return nil
}
