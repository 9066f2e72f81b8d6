package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avalder/go-bookstore-api/internal/shared/validator"
)

func TestNewBook_Valid(t *testing.T) {
	book, err := NewBook("", "  Refactoring ", " Martin Fowler ", 45, 10)
	require.NoError(t, err)
	assert.Equal(t, "Refactoring", book.Title)
	assert.Equal(t, "Martin Fowler", book.Author)
}

func TestNewBook_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		author  string
		price   float64
		stock   int
		message string
	}{
		{"short title", "A", "Martin Fowler", 45, 10, "Title must be between 2 and 255 characters."},
		{"author digits", "Refactoring", "Fowler99", 45, 10, "Invalid author name."},
		{"author three words", "Refactoring", "Martin Big Fowler", 45, 10, "Invalid author name."},
		{"negative price", "Refactoring", "Martin Fowler", -1, 10, "Price must be between 0 and 200."},
		{"price too high", "Refactoring", "Martin Fowler", 201, 10, "Price must be between 0 and 200."},
		{"negative stock", "Refactoring", "Martin Fowler", 45, -1, "Number in stock must be between 0 and 300."},
		{"stock too high", "Refactoring", "Martin Fowler", 45, 301, "Number in stock must be between 0 and 300."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBook("", tc.title, tc.author, tc.price, tc.stock)
			require.Error(t, err)
			var ve *validator.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.message, ve.First)
		})
	}
}

func TestInStock(t *testing.T) {
	assert.True(t, (&Book{NumberInStock: 1}).InStock())
	assert.False(t, (&Book{NumberInStock: 0}).InStock())
}
