package mapper

import (
	"github.com/avalder/go-bookstore-api/internal/domains/catalog/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/catalog/ports"
)

// Book is the transport-layer catalog shape. The `_id` key matches the
// wire format clients have always consumed.
type Book struct {
	ID            string  `json:"_id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Price         float64 `json:"price"`
	NumberInStock int     `json:"numberInStock"`
}

// CreateBookRequest carries the payload for catalog creation.
type CreateBookRequest struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Price         float64 `json:"price"`
	NumberInStock int     `json:"numberInStock"`
}

// UpdateBookRequest carries a partial catalog update; absent fields keep
// their stored values.
type UpdateBookRequest struct {
	Title         *string  `json:"title"`
	Author        *string  `json:"author"`
	Price         *float64 `json:"price"`
	NumberInStock *int     `json:"numberInStock"`
}

// ToDomainBook builds an unvalidated domain book from a create payload.
// Validation happens in the application layer.
func ToDomainBook(req CreateBookRequest) *domain.Book {
	return &domain.Book{
		Title:         req.Title,
		Author:        req.Author,
		Price:         req.Price,
		NumberInStock: req.NumberInStock,
	}
}

// ToBookUpdate converts the partial payload into the service update shape.
func ToBookUpdate(req UpdateBookRequest) ports.BookUpdate {
	return ports.BookUpdate{
		Title:         req.Title,
		Author:        req.Author,
		Price:         req.Price,
		NumberInStock: req.NumberInStock,
	}
}

// FromDomainBook converts a domain book to the transport representation.
func FromDomainBook(book *domain.Book) Book {
	if book == nil {
		return Book{}
	}
	return Book{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		Price:         book.Price,
		NumberInStock: book.NumberInStock,
	}
}

// FromDomainBooks converts a list of domain books.
func FromDomainBooks(books []*domain.Book) []Book {
	result := make([]Book, 0, len(books))
	for _, book := range books {
		result = append(result, FromDomainBook(book))
	}
	return result
}
