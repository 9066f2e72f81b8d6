package mapper

import (
	"time"

	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
)

// Purchase is the transport-layer purchase shape, matching the wire format
// clients have always consumed.
type Purchase struct {
	ID       string           `json:"_id"`
	Customer CustomerSnapshot `json:"customer"`
	Book     BookSnapshot     `json:"book"`
	Date     time.Time        `json:"date"`
}

// CustomerSnapshot is the embedded customer copy.
type CustomerSnapshot struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// BookSnapshot is the embedded book copy; Price is the effective price at
// purchase time.
type BookSnapshot struct {
	ID    string  `json:"_id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// CreatePurchaseRequest carries the ids of the parties to a sale.
type CreatePurchaseRequest struct {
	CustomerID string `json:"customerId"`
	BookID     string `json:"bookId"`
}

// FromDomainPurchase converts a domain purchase to the transport representation.
func FromDomainPurchase(purchase *domain.Purchase) Purchase {
	if purchase == nil {
		return Purchase{}
	}
	return Purchase{
		ID: purchase.ID,
		Customer: CustomerSnapshot{
			ID:        purchase.Customer.ID,
			FirstName: purchase.Customer.FirstName,
			LastName:  purchase.Customer.LastName,
			Phone:     purchase.Customer.Phone,
		},
		Book: BookSnapshot{
			ID:    purchase.Book.ID,
			Title: purchase.Book.Title,
			Price: purchase.Book.Price,
		},
		Date: purchase.Date,
	}
}

// FromDomainPurchases converts a list of domain purchases.
func FromDomainPurchases(purchases []*domain.Purchase) []Purchase {
	result := make([]Purchase, 0, len(purchases))
	for _, purchase := range purchases {
		result = append(result, FromDomainPurchase(purchase))
	}
	return result
}
