package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avalder/go-bookstore-api/internal/domains/customers/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/customers/ports"
	"github.com/avalder/go-bookstore-api/internal/shared/apperror"
	"github.com/avalder/go-bookstore-api/internal/shared/validator"
)

// Service orchestrates customer use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, apperror.New(apperror.KindInvalidArgument, "Customer is required.")
	}
	if err := customer.Validate().Err(); err != nil {
		return nil, mapError(err, "")
	}
	saved, err := s.repo.Save(ctx, customer)
	if err != nil {
		return nil, mapError(err, customer.ID)
	}
	return saved, nil
}

func (s *Service) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err, id)
	}
	return customer, nil
}

// ListCustomers returns every customer; an empty collection is reported as
// not found, preserving the API's original contract.
func (s *Service) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err, "")
	}
	if len(customers) == 0 {
		return nil, apperror.New(apperror.KindNotFound, "There are no customers in the database.")
	}
	return customers, nil
}

// UpdateCustomer merges the provided fields into the stored record and
// re-validates before persisting.
func (s *Service) UpdateCustomer(ctx context.Context, id string, update ports.CustomerUpdate) (*domain.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.FirstName != nil {
		customer.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		customer.LastName = *update.LastName
	}
	if update.Email != nil {
		customer.Email = *update.Email
	}
	if update.Phone != nil {
		customer.Phone = *update.Phone
	}
	if update.IsGold != nil {
		customer.IsGold = *update.IsGold
	}
	if err := customer.Validate().Err(); err != nil {
		return nil, mapError(err, id)
	}
	saved, err := s.repo.Save(ctx, customer)
	if err != nil {
		return nil, mapError(err, id)
	}
	return saved, nil
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, mapError(err, id)
	}
	return customer, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.New(apperror.KindInvalidArgument, "Invalid customer id.")
	}
	return nil
}

func mapError(err error, id string) error {
	if err == nil {
		return nil
	}
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		return apperror.Wrap(apperror.KindInvalidArgument, ve.First, err)
	}
	if errors.Is(err, ports.ErrNotFound) {
		return apperror.Wrap(apperror.KindNotFound, fmt.Sprintf("Customer with id: %s was not found.", id), err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
