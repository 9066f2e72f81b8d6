package application

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/avalder/go-bookstore-api/internal/domains/users/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/users/ports"
	"github.com/avalder/go-bookstore-api/internal/shared/apperror"
	"github.com/avalder/go-bookstore-api/internal/shared/validator"
)

const invalidEmailOrPassword = "Invalid email or password."

// Service exposes the users bounded context use cases: registration,
// profile lookup, and credential authentication.
type Service struct {
	repo   ports.Repository
	tokens ports.TokenIssuer
}

func NewService(repo ports.Repository, tokens ports.TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register validates the input, rejects taken emails, hashes the password,
// and persists the account.
func (s *Service) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if err := domain.ValidatePassword(input.Password).Err(); err != nil {
		return nil, mapError(err)
	}
	email := strings.TrimSpace(input.Email)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.New(apperror.KindInvalidArgument, "Email is already taken.")
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      input.IsAdmin,
	}
	if err := user.Validate().Err(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads an account profile.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperror.Wrap(apperror.KindNotFound, "User with id:"+id+" was not found.", err)
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the credentials and issues a signed token.
// Lookup and comparison failures share one message so the response does
// not reveal which half was wrong.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, apperror.Wrap(apperror.KindInvalidArgument, invalidEmailOrPassword, err)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.Wrap(apperror.KindInvalidArgument, invalidEmailOrPassword, err)
	}
	token, err := s.tokens.Issue(ports.Identity{UserID: user.ID, IsAdmin: user.IsAdmin})
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		return apperror.Wrap(apperror.KindInvalidArgument, ve.First, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
