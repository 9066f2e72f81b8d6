package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/avalder/go-bookstore-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/avalder/go-bookstore-api/internal/domains/catalog/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"
)

func seedBook(t *testing.T, books *catalogmemory.Repository, stock int) *catalogdomain.Book {
	t.Helper()
	saved, err := books.Save(context.Background(), &catalogdomain.Book{
		Title:         "The Go Programming Language",
		Author:        "Alan Donovan",
		Price:         40,
		NumberInStock: stock,
	})
	require.NoError(t, err)
	return saved
}

func purchaseFor(book *catalogdomain.Book) *domain.Purchase {
	return &domain.Purchase{
		Customer: domain.CustomerSnapshot{ID: "c1", FirstName: "John", LastName: "Smith", Phone: "123456"},
		Book:     domain.BookSnapshot{ID: book.ID, Title: book.Title, Price: book.Price},
		Date:     time.Now().UTC(),
	}
}

func TestCreate_DecrementsStock(t *testing.T) {
	books := catalogmemory.NewRepository()
	book := seedBook(t, books, 2)
	repo := NewRepository(books)

	saved, err := repo.Create(context.Background(), purchaseFor(book))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	remaining, err := books.GetByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining.NumberInStock)
}

func TestCreate_OutOfStockLeavesNoRecord(t *testing.T) {
	books := catalogmemory.NewRepository()
	book := seedBook(t, books, 0)
	repo := NewRepository(books)

	_, err := repo.Create(context.Background(), purchaseFor(book))
	require.ErrorIs(t, err, ports.ErrOutOfStock)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_MissingBookReportsGone(t *testing.T) {
	books := catalogmemory.NewRepository()
	repo := NewRepository(books)
	purchase := purchaseFor(&catalogdomain.Book{ID: "b0f9c6f0-0000-4000-8000-000000000000", Title: "Gone", Price: 10})

	_, err := repo.Create(context.Background(), purchase)
	require.ErrorIs(t, err, ports.ErrBookGone)
}

func TestCreate_DuplicateIDRestoresStock(t *testing.T) {
	books := catalogmemory.NewRepository()
	book := seedBook(t, books, 2)
	repo := NewRepository(books)

	first := purchaseFor(book)
	first.ID = "fixed-id"
	_, err := repo.Create(context.Background(), first)
	require.NoError(t, err)

	second := purchaseFor(book)
	second.ID = "fixed-id"
	_, err = repo.Create(context.Background(), second)
	require.Error(t, err)

	remaining, err := books.GetByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining.NumberInStock, "failed insert must undo its reservation")
}

func TestCreate_ConcurrentBuyersNeverOversell(t *testing.T) {
	const buyers = 20
	const stock = 7

	books := catalogmemory.NewRepository()
	book := seedBook(t, books, stock)
	repo := NewRepository(books)

	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, errs[slot] = repo.Create(context.Background(), purchaseFor(book))
		}(i)
	}
	wg.Wait()

	var sold, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			sold++
		default:
			require.ErrorIs(t, err, ports.ErrOutOfStock)
			rejected++
		}
	}
	assert.Equal(t, stock, sold)
	assert.Equal(t, buyers-stock, rejected)

	remaining, err := books.GetByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining.NumberInStock)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, stock)
}

func TestList_OrderedByDate(t *testing.T) {
	books := catalogmemory.NewRepository()
	book := seedBook(t, books, 3)
	repo := NewRepository(books)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		p := purchaseFor(book)
		p.Date = base.Add(offset)
		_, err := repo.Create(context.Background(), p)
		require.NoError(t, err)
	}

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].Date.Before(list[1].Date))
	assert.True(t, list[1].Date.Before(list[2].Date))
}
