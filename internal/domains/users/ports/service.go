package ports

import (
	"context"

	"github.com/avalder/go-bookstore-api/internal/domains/users/domain"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

// AuthResult couples the signed token with the authenticated account.
type AuthResult struct {
	Token string
	User  *domain.User
}

// Service exposes user and authentication use cases to adapters.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
}
