package domain

import (
	"strings"

	"github.com/avalder/go-bookstore-api/internal/shared/validator"
)

// Catalog field constraints.
const (
	MinTitleLen  = 2
	MaxTitleLen  = 255
	MinAuthorLen = 2
	MaxAuthorLen = 255
	MaxPrice     = 200.0
	MaxStock     = 300
)

// Book is the catalog aggregate. NumberInStock is decremented by purchase
// creation and must never go negative.
type Book struct {
	ID            string
	Title         string
	Author        string
	Price         float64
	NumberInStock int
}

// NewBook trims and validates a catalog entry.
func NewBook(id, title, author string, price float64, numberInStock int) (*Book, error) {
	book := &Book{
		ID:            id,
		Title:         strings.TrimSpace(title),
		Author:        strings.TrimSpace(author),
		Price:         price,
		NumberInStock: numberInStock,
	}
	if err := book.Validate().Err(); err != nil {
		return nil, err
	}
	return book, nil
}

// InStock reports whether at least one copy can still be sold.
func (b *Book) InStock() bool {
	return b.NumberInStock > 0
}

// Validate checks the catalog invariants and returns the accumulated result.
func (b *Book) Validate() *validator.Validator {
	v := validator.New()
	v.Check(len(b.Title) >= MinTitleLen && len(b.Title) <= MaxTitleLen,
		"title", "Title must be between 2 and 255 characters.")
	v.Check(len(b.Author) >= MinAuthorLen && len(b.Author) <= MaxAuthorLen,
		"author", "Author must be between 2 and 255 characters.")
	v.Check(validator.Matches(b.Author, validator.FullNameRX),
		"author", "Invalid author name.")
	v.Check(b.Price >= 0 && b.Price <= MaxPrice,
		"price", "Price must be between 0 and 200.")
	v.Check(b.NumberInStock >= 0 && b.NumberInStock <= MaxStock,
		"numberInStock", "Number in stock must be between 0 and 300.")
	return v
}
