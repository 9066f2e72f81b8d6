package domain

import (
	"time"

	catalogdomain "github.com/avalder/go-bookstore-api/internal/domains/catalog/domain"
	customersdomain "github.com/avalder/go-bookstore-api/internal/domains/customers/domain"
)

// GoldDiscountRate is the multiplier applied to the book price for gold
// customers. The discounted price is kept at full float precision;
// currency rounding is a presentation concern.
const GoldDiscountRate = 0.8

// CustomerSnapshot is the customer identity embedded in a purchase. It is
// a denormalized copy, not a live reference: later customer edits never
// touch it.
type CustomerSnapshot struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
}

// BookSnapshot is the book identity embedded in a purchase. Price is the
// effective price at purchase time, discount included, and never changes
// even when the catalog price does.
type BookSnapshot struct {
	ID    string
	Title string
	Price float64
}

// Purchase is the immutable record of a completed sale. It is created
// exactly once and kept for audit history; there is no update or delete.
type Purchase struct {
	ID       string
	Customer CustomerSnapshot
	Book     BookSnapshot
	Date     time.Time
}

// NewPurchase snapshots the customer and book into a purchase, applying
// the gold discount to the embedded price.
func NewPurchase(customer *customersdomain.Customer, book *catalogdomain.Book, date time.Time) *Purchase {
	price := book.Price
	if customer.IsGold {
		price = book.Price * GoldDiscountRate
	}
	return &Purchase{
		Customer: CustomerSnapshot{
			ID:        customer.ID,
			FirstName: customer.FirstName,
			LastName:  customer.LastName,
			Phone:     customer.Phone,
		},
		Book: BookSnapshot{
			ID:    book.ID,
			Title: book.Title,
			Price: price,
		},
		Date: date,
	}
}
