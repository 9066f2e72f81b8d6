package application

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	catalogdomain "github.com/avalder/go-bookstore-api/internal/domains/catalog/domain"
	customersdomain "github.com/avalder/go-bookstore-api/internal/domains/customers/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"
	"github.com/avalder/go-bookstore-api/internal/shared/apperror"
)

// Service is the purchase orchestrator. It resolves the referenced customer
// and book, applies loyalty pricing, and persists the purchase together with
// the stock decrement as one atomic unit.
type Service struct {
	repo      ports.Repository
	books     ports.BookSource
	customers ports.CustomerSource
	now       func() time.Time
}

func NewService(repo ports.Repository, books ports.BookSource, customers ports.CustomerSource) *Service {
	return &Service{repo: repo, books: books, customers: customers, now: time.Now}
}

// CreatePurchase creates an immutable purchase snapshot and decrements the
// book's stock. Success is reported only after both effects are durable;
// on any failure neither takes effect.
func (s *Service) CreatePurchase(ctx context.Context, input ports.CreatePurchaseInput) (*domain.Purchase, error) {
	// The two lookups are independent reads; run them concurrently. The
	// sources reject malformed identifiers before touching the store.
	var (
		customer *customersdomain.Customer
		book     *catalogdomain.Book
		custErr  error
		bookErr  error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		customer, custErr = s.customers.GetCustomer(gctx, input.CustomerID)
		return custErr
	})
	g.Go(func() error {
		book, bookErr = s.books.GetBook(gctx, input.BookID)
		return bookErr
	})
	_ = g.Wait()
	if err := pickLookupError(custErr, bookErr); err != nil {
		return nil, err
	}

	if !book.InStock() {
		return nil, apperror.New(apperror.KindOutOfStock, "Book is out of stock.")
	}

	purchase := domain.NewPurchase(customer, book, s.now().UTC())
	saved, err := s.repo.Create(ctx, purchase)
	if err != nil {
		return nil, mapError(err, input.BookID)
	}
	return saved, nil
}

// ListPurchases returns the purchase history. An empty history is reported
// as not found, preserving the API's original contract.
func (s *Service) ListPurchases(ctx context.Context) ([]*domain.Purchase, error) {
	purchases, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(purchases) == 0 {
		return nil, apperror.New(apperror.KindNotFound, "There are no saved purchases in the database.")
	}
	return purchases, nil
}

// pickLookupError chooses the failure to surface when either lookup fails.
// Customer failures take precedence, but a sibling lookup that only died of
// the group cancellation must not mask the request error that caused it.
func pickLookupError(custErr, bookErr error) error {
	if custErr != nil && apperror.KindOf(custErr) != apperror.KindInternal {
		return custErr
	}
	if bookErr != nil && apperror.KindOf(bookErr) != apperror.KindInternal {
		return bookErr
	}
	if custErr != nil {
		return custErr
	}
	return bookErr
}

var _ ports.Service = (*Service)(nil)
