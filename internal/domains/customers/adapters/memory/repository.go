package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/avalder/go-bookstore-api/internal/domains/customers/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/customers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory customer persistence adapter.
type Repository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

func NewRepository() *Repository {
	return &Repository{customers: map[string]*domain.Customer{}}
}

func (r *Repository) Save(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	clone := *customer
	if err := clone.Validate().Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	stored := clone
	r.customers[stored.ID] = &stored
	return &clone, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customer, ok := r.customers[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *customer
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		clone := *customer
		list = append(list, &clone)
	}
	return list, nil
}
