package mapper

import (
	"github.com/avalder/go-bookstore-api/internal/domains/users/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/users/ports"
)

// User is the transport-layer account shape. The password hash never
// crosses this boundary.
type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// RegisterRequest carries the payload for account creation.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// LoginRequest carries the credentials for authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToRegisterInput converts the transport payload into the service input.
func ToRegisterInput(req RegisterRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	}
}

// FromDomainUser converts a domain user to the transport representation.
func FromDomainUser(user *domain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
}
