package ports

import (
	"context"
	"errors"

	"github.com/avalder/go-bookstore-api/internal/domains/users/domain"
)

var ErrNotFound = errors.New("user not found")

// Repository persists user accounts. Email is the unique lookup key for
// authentication.
type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
