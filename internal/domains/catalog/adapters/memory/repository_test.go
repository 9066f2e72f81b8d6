package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avalder/go-bookstore-api/internal/domains/catalog/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/catalog/ports"
)

func seed(t *testing.T, repo *Repository, stock int) *domain.Book {
	t.Helper()
	saved, err := repo.Save(context.Background(), &domain.Book{
		Title:         "Effective Go",
		Author:        "Rob Pike",
		Price:         25,
		NumberInStock: stock,
	})
	require.NoError(t, err)
	return saved
}

func TestSave_AssignsID(t *testing.T) {
	repo := NewRepository()
	saved := seed(t, repo, 1)
	assert.NotEmpty(t, saved.ID)
}

func TestDecrementStock_Boundaries(t *testing.T) {
	repo := NewRepository()
	book := seed(t, repo, 1)

	require.NoError(t, repo.DecrementStock(context.Background(), book.ID))
	err := repo.DecrementStock(context.Background(), book.ID)
	assert.ErrorIs(t, err, ports.ErrOutOfStock)

	err = repo.DecrementStock(context.Background(), "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDecrementStock_ConcurrentNeverNegative(t *testing.T) {
	const workers = 50
	const stock = 10

	repo := NewRepository()
	book := seed(t, repo, stock)

	var wg sync.WaitGroup
	var succeeded int32
	var mu sync.Mutex
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.DecrementStock(context.Background(), book.ID); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, stock, succeeded)
	remaining, err := repo.GetByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining.NumberInStock)
}

func TestIncrementStock_RestoresUnit(t *testing.T) {
	repo := NewRepository()
	book := seed(t, repo, 1)

	require.NoError(t, repo.DecrementStock(context.Background(), book.ID))
	require.NoError(t, repo.IncrementStock(context.Background(), book.ID))

	restored, err := repo.GetByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, restored.NumberInStock)
}

func TestGetByID_ReturnsCopy(t *testing.T) {
	repo := NewRepository()
	book := seed(t, repo, 5)

	loaded, err := repo.GetByID(context.Background(), book.ID)
	require.NoError(t, err)
	loaded.NumberInStock = 0

	again, err := repo.GetByID(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, again.NumberInStock)
}
