//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogpostgres "github.com/avalder/go-bookstore-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/avalder/go-bookstore-api/internal/domains/catalog/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"
	"github.com/avalder/go-bookstore-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("bookstore_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		_ = pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func seedBook(t *testing.T, db *gorm.DB, stock int) *catalogdomain.Book {
	t.Helper()
	books := catalogpostgres.NewRepository(db)
	saved, err := books.Save(context.Background(), &catalogdomain.Book{
		Title:         "The Pragmatic Programmer",
		Author:        "Andrew Hunt",
		Price:         30,
		NumberInStock: stock,
	})
	require.NoError(t, err)
	return saved
}

func purchaseFor(book *catalogdomain.Book) *domain.Purchase {
	return &domain.Purchase{
		Customer: domain.CustomerSnapshot{
			ID:        "7c3de3e5-6f0f-4708-a539-6558a4b63c2a",
			FirstName: "John",
			LastName:  "Smith",
			Phone:     "123456",
		},
		Book: domain.BookSnapshot{ID: book.ID, Title: book.Title, Price: book.Price},
		Date: time.Now().UTC(),
	}
}

func stockOf(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	book, err := catalogpostgres.NewRepository(db).GetByID(context.Background(), id)
	require.NoError(t, err)
	return book.NumberInStock
}

func TestCreate_CommitsPurchaseAndDecrement(t *testing.T) {
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	book := seedBook(t, db, 3)
	repo := NewRepository(db)

	saved, err := repo.Create(context.Background(), purchaseFor(book))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, 2, stockOf(t, db, book.ID))
}

func TestCreate_OutOfStockRollsBack(t *testing.T) {
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	book := seedBook(t, db, 0)
	repo := NewRepository(db)

	_, err := repo.Create(context.Background(), purchaseFor(book))
	require.ErrorIs(t, err, ports.ErrOutOfStock)

	assert.Equal(t, 0, stockOf(t, db, book.ID))
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list, "a rejected purchase must leave no row behind")
}

func TestCreate_MissingBookRollsBack(t *testing.T) {
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ghost := &catalogdomain.Book{ID: "5e0bc7fa-228e-4cd4-9a93-6e4f6b7ff999", Title: "Ghost", Price: 10}

	_, err := repo.Create(context.Background(), purchaseFor(ghost))
	require.ErrorIs(t, err, ports.ErrBookGone)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_ConcurrentBuyersNeverOversell(t *testing.T) {
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	const buyers = 12
	const stock = 5
	book := seedBook(t, db, stock)
	repo := NewRepository(db)

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

	var sold int
	for _, err := range errs {
		if err == nil {
			sold++
		} else {
			require.ErrorIs(t, err, ports.ErrOutOfStock)
		}
	}
	assert.Equal(t, stock, sold)
	assert.Equal(t, 0, stockOf(t, db, book.ID))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, stock)
}

func TestList_OrderedByDate(t *testing.T) {
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	book := seedBook(t, db, 3)
	repo := NewRepository(db)

	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{48 * time.Hour, 0, 24 * time.Hour} {
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
