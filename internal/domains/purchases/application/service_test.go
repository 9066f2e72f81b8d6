package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/avalder/go-bookstore-api/internal/domains/catalog/domain"
	customersdomain "github.com/avalder/go-bookstore-api/internal/domains/customers/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"
	"github.com/avalder/go-bookstore-api/internal/shared/apperror"
)

const (
	customerID = "0e2c2a42-9125-4ad4-8f4e-1be59bbf5d8e"
	bookID     = "6e6f3ffb-83d8-45c9-a9e8-47ba29ad5fbb"
)

type fakePurchaseRepo struct {
	created   []*domain.Purchase
	createErr error
	listErr   error
}

func (f *fakePurchaseRepo) Create(_ context.Context, purchase *domain.Purchase) (*domain.Purchase, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	clone := *purchase
	if clone.ID == "" {
		clone.ID = "purchase-1"
	}
	f.created = append(f.created, &clone)
	return &clone, nil
}

func (f *fakePurchaseRepo) List(_ context.Context) ([]*domain.Purchase, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.created, nil
}

type fakeBookSource struct {
	book *catalogdomain.Book
	err  error
}

func (f *fakeBookSource) GetBook(_ context.Context, _ string) (*catalogdomain.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	clone := *f.book
	return &clone, nil
}

type fakeCustomerSource struct {
	customer *customersdomain.Customer
	err      error
}

func (f *fakeCustomerSource) GetCustomer(_ context.Context, _ string) (*customersdomain.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	clone := *f.customer
	return &clone, nil
}

func regularCustomer() *customersdomain.Customer {
	return &customersdomain.Customer{ID: customerID, FirstName: "John", LastName: "Smith", Phone: "123456"}
}

func goldCustomer() *customersdomain.Customer {
	c := regularCustomer()
	c.IsGold = true
	return c
}

func stockedBook() *catalogdomain.Book {
	return &catalogdomain.Book{ID: bookID, Title: "Clean Code", Author: "Robert Martin", Price: 20, NumberInStock: 5}
}

func newTestService(repo *fakePurchaseRepo, book *catalogdomain.Book, customer *customersdomain.Customer) *Service {
	return NewService(repo, &fakeBookSource{book: book}, &fakeCustomerSource{customer: customer})
}

func TestCreatePurchase_RegularPriceSnapshot(t *testing.T) {
	repo := &fakePurchaseRepo{}
	svc := newTestService(repo, stockedBook(), regularCustomer())

	purchase, err := svc.CreatePurchase(context.Background(), ports.CreatePurchaseInput{CustomerID: customerID, BookID: bookID})
	require.NoError(t, err)

	assert.Equal(t, 20.0, purchase.Book.Price)
	assert.Equal(t, "Clean Code", purchase.Book.Title)
	assert.Equal(t, bookID, purchase.Book.ID)
	assert.Equal(t, customerID, purchase.Customer.ID)
	assert.Equal(t, "John", purchase.Customer.FirstName)
	assert.Equal(t, "Smith", purchase.Customer.LastName)
	assert.Equal(t, "123456", purchase.Customer.Phone)
	require.Len(t, repo.created, 1)
}

func TestCreatePurchase_GoldDiscount(t *testing.T) {
	repo := &fakePurchaseRepo{}
	svc := newTestService(repo, stockedBook(), goldCustomer())

	purchase, err := svc.CreatePurchase(context.Background(), ports.CreatePurchaseInput{CustomerID: customerID, BookID: bookID})
	require.NoError(t, err)

	assert.Equal(t, 16.0, purchase.Book.Price)
}

func TestCreatePurchase_DateIsUTC(t *testing.T) {
	repo := &fakePurchaseRepo{}
	svc := newTestService(repo, stockedBook(), regularCustomer())
	fixed := time.Date(2025, 3, 14, 15, 9, 26, 0, time.FixedZone("CET", 3600))
	svc.now = func() time.Time { return fixed }

	purchase, err := svc.CreatePurchase(context.Background(), ports.CreatePurchaseInput{CustomerID: customerID, BookID: bookID})
	require.NoError(t, err)

	assert.Equal(t, fixed.UTC(), purchase.Date)
	assert.Equal(t, time.UTC, purchase.Date.Location())
}

func TestCreatePurchase_OutOfStock(t *testing.T) {
	repo := &fakePurchaseRepo{}
	book := stockedBook()
	book.NumberInStock = 0
	svc := newTestService(repo, book, regularCustomer())

	_, err := svc.CreatePurchase(context.Background(), ports.CreatePurchaseInput{CustomerID: customerID, BookID: bookID})
	require.Error(t, err)

	assert.True(t, apperror.IsKind(err, apperror.KindOutOfStock))
	assert.Equal(t, "Book is out of stock.", apperror.MessageOf(err))
	assert.Empty(t, repo.created, "no purchase may be recorded for an out-of-stock book")
}

func TestCreatePurchase_CustomerErrorWinsWhenBothLookupsFail(t *testing.T) {
	repo := &fakePurchaseRepo{}
	svc := NewService(repo,
		&fakeBookSource{err: apperror.New(apperror.KindNotFound, "Book with id: "+bookID+" was not found.")},
		&fakeCustomerSource{err: apperror.New(apperror.KindNotFound, "Customer with id: "+customerID+" was not found.")},
	)

	_, err := svc.CreatePurchase(context.Background(), ports.CreatePurchaseInput{CustomerID: customerID, BookID: bookID})
	require.Error(t, err)

	assert.Equal(t, "Customer with id: "+customerID+" was not found.", apperror.MessageOf(err))
}

// blockingCustomerSource mimics a store-backed lookup that honors the request
// context: it only returns once the context is cancelled, with the context's
// error.
type blockingCustomerSource struct{}

func (f *blockingCustomerSource) GetCustomer(ctx context.Context, _ string) (*customersdomain.Customer, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestCreatePurchase_BookErrorNotMaskedByCancelledCustomerLookup(t *testing.T) {
	repo := &fakePurchaseRepo{}
	svc := NewService(repo,
		&fakeBookSource{err: apperror.New(apperror.KindNotFound, "Book with id: "+bookID+" was not found.")},
		&blockingCustomerSource{},
	)

	_, err := svc.CreatePurchase(context.Background(), ports.CreatePurchaseInput{CustomerID: customerID, BookID: bookID})
	require.Error(t, err)

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, "Book with id: "+bookID+" was not found.", apperror.MessageOf(err))
	assert.Empty(t, repo.created)
}

func TestCreatePurchase_BookLookupError(t *testing.T) {
	repo := &fakePurchaseRepo{}
	svc := NewService(repo,
		&fakeBookSource{err: apperror.New(apperror.KindInvalidArgument, "Invalid book id.")},
		&fakeCustomerSource{customer: regularCustomer()},
	)

	_, err := svc.CreatePurchase(context.Background(), ports.CreatePurchaseInput{CustomerID: customerID, BookID: "not-a-uuid"})
	require.Error(t, err)

	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))
	assert.Equal(t, "Invalid book id.", apperror.MessageOf(err))
	assert.Empty(t, repo.created)
}

func TestCreatePurchase_RepoOutOfStockRace(t *testing.T) {
	// The snapshot said one copy was left but the conditional decrement
	// lost the race; the store-level error keeps its classification.
	repo := &fakePurchaseRepo{createErr: ports.ErrOutOfStock}
	svc := newTestService(repo, stockedBook(), regularCustomer())

	_, err := svc.CreatePurchase(context.Background(), ports.CreatePurchaseInput{CustomerID: customerID, BookID: bookID})
	require.Error(t, err)

	assert.True(t, apperror.IsKind(err, apperror.KindOutOfStock))
	assert.Equal(t, "Book is out of stock.", apperror.MessageOf(err))
}

func TestCreatePurchase_BookDeletedBetweenReadAndWrite(t *testing.T) {
	repo := &fakePurchaseRepo{createErr: ports.ErrBookGone}
	svc := newTestService(repo, stockedBook(), regularCustomer())

	_, err := svc.CreatePurchase(context.Background(), ports.CreatePurchaseInput{CustomerID: customerID, BookID: bookID})
	require.Error(t, err)

	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.Equal(t, "Book with id: "+bookID+" was not found.", apperror.MessageOf(err))
}

func TestCreatePurchase_SuccessivePurchasesAreDistinct(t *testing.T) {
	repo := &fakePurchaseRepo{}
	svc := newTestService(repo, stockedBook(), regularCustomer())
	input := ports.CreatePurchaseInput{CustomerID: customerID, BookID: bookID}

	first, err := svc.CreatePurchase(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.CreatePurchase(context.Background(), input)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	require.Len(t, repo.created, 2)
}

func TestListPurchases_EmptyHistory(t *testing.T) {
	svc := newTestService(&fakePurchaseRepo{}, stockedBook(), regularCustomer())

	_, err := svc.ListPurchases(context.Background())
	require.Error(t, err)

	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.Equal(t, "There are no saved purchases in the database.", apperror.MessageOf(err))
}

func TestListPurchases_ReturnsHistory(t *testing.T) {
	repo := &fakePurchaseRepo{}
	svc := newTestService(repo, stockedBook(), goldCustomer())
	_, err := svc.CreatePurchase(context.Background(), ports.CreatePurchaseInput{CustomerID: customerID, BookID: bookID})
	require.NoError(t, err)

	purchases, err := svc.ListPurchases(context.Background())
	require.NoError(t, err)

	require.Len(t, purchases, 1)
	assert.Equal(t, 16.0, purchases[0].Book.Price)
}
