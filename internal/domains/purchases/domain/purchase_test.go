package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	catalogdomain "github.com/avalder/go-bookstore-api/internal/domains/catalog/domain"
	customersdomain "github.com/avalder/go-bookstore-api/internal/domains/customers/domain"
)

func TestNewPurchase_SnapshotsPartiesAndPrice(t *testing.T) {
	customer := &customersdomain.Customer{ID: "c1", FirstName: "Jane", LastName: "Doe", Phone: "654321"}
	book := &catalogdomain.Book{ID: "b1", Title: "SICP", Author: "Harold Abelson", Price: 50, NumberInStock: 3}
	date := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	purchase := NewPurchase(customer, book, date)

	assert.Equal(t, "c1", purchase.Customer.ID)
	assert.Equal(t, "Jane", purchase.Customer.FirstName)
	assert.Equal(t, "Doe", purchase.Customer.LastName)
	assert.Equal(t, "654321", purchase.Customer.Phone)
	assert.Equal(t, "b1", purchase.Book.ID)
	assert.Equal(t, "SICP", purchase.Book.Title)
	assert.Equal(t, 50.0, purchase.Book.Price)
	assert.Equal(t, date, purchase.Date)
}

func TestNewPurchase_GoldCustomerPaysEightyPercent(t *testing.T) {
	customer := &customersdomain.Customer{ID: "c1", FirstName: "Jane", LastName: "Doe", Phone: "654321", IsGold: true}
	book := &catalogdomain.Book{ID: "b1", Title: "SICP", Price: 50}

	purchase := NewPurchase(customer, book, time.Now())

	assert.Equal(t, 40.0, purchase.Book.Price)
	// The catalog price itself is untouched.
	assert.Equal(t, 50.0, book.Price)
}

func TestNewPurchase_SnapshotSurvivesLaterEdits(t *testing.T) {
	customer := &customersdomain.Customer{ID: "c1", FirstName: "Jane", LastName: "Doe", Phone: "654321"}
	book := &catalogdomain.Book{ID: "b1", Title: "SICP", Price: 50}

	purchase := NewPurchase(customer, book, time.Now())
	customer.FirstName = "Janet"
	book.Price = 99

	assert.Equal(t, "Jane", purchase.Customer.FirstName)
	assert.Equal(t, 50.0, purchase.Book.Price)
}
