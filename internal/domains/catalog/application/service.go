package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/avalder/go-bookstore-api/internal/domains/catalog/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/catalog/ports"
	"github.com/avalder/go-bookstore-api/internal/shared/apperror"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateBook validates and persists a new catalog entry.
func (s *Service) CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if book == nil {
		return nil, apperror.New(apperror.KindInvalidArgument, "Book is required.")
	}
	if err := book.Validate().Err(); err != nil {
		return nil, mapError(err, "")
	}
	saved, err := s.repo.Save(ctx, book)
	if err != nil {
		return nil, mapError(err, book.ID)
	}
	return saved, nil
}

// GetBook loads a single catalog entry by identifier.
func (s *Service) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err, id)
	}
	return book, nil
}

// ListBooks returns every catalog entry. An empty catalog is reported as
// not found, preserving the API's original contract.
func (s *Service) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err, "")
	}
	if len(books) == 0 {
		return nil, apperror.New(apperror.KindNotFound, "There are no books in the database.")
	}
	return books, nil
}

// UpdateBook merges the provided fields into the stored entry, re-validates,
// and persists the result. Absent fields keep their current values.
func (s *Service) UpdateBook(ctx context.Context, id string, update ports.BookUpdate) (*domain.Book, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Title != nil {
		book.Title = *update.Title
	}
	if update.Author != nil {
		book.Author = *update.Author
	}
	if update.Price != nil {
		book.Price = *update.Price
	}
	if update.NumberInStock != nil {
		book.NumberInStock = *update.NumberInStock
	}
	if err := book.Validate().Err(); err != nil {
		return nil, mapError(err, id)
	}
	saved, err := s.repo.Save(ctx, book)
	if err != nil {
		return nil, mapError(err, id)
	}
	return saved, nil
}

// DeleteBook removes a catalog entry and returns the removed record.
func (s *Service) DeleteBook(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, mapError(err, id)
	}
	return book, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.New(apperror.KindInvalidArgument, "Invalid book id.")
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
