package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogports "github.com/avalder/go-bookstore-api/internal/domains/catalog/ports"
	catalogpostgres "github.com/avalder/go-bookstore-api/internal/domains/catalog/adapters/persistence/postgres"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/purchases/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists purchases in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// purchaseRecord flattens the purchase snapshot into a relational row. The
// embedded customer and book fields are denormalized copies frozen at
// purchase time.
type purchaseRecord struct {
	ID                string    `gorm:"primaryKey;column:id;type:uuid"`
	CustomerID        string    `gorm:"column:customer_id;type:uuid;index"`
	CustomerFirstName string    `gorm:"column:customer_first_name;type:varchar(100)"`
	CustomerLastName  string    `gorm:"column:customer_last_name;type:varchar(100)"`
	CustomerPhone     string    `gorm:"column:customer_phone;type:varchar(8)"`
	BookID            string    `gorm:"column:book_id;type:uuid;index"`
	BookTitle         string    `gorm:"column:book_title;type:varchar(255)"`
	BookPrice         float64   `gorm:"column:book_price"`
	Date              time.Time `gorm:"column:date;index"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

func (purchaseRecord) TableName() string { return "purchases" }

// Create inserts the purchase and decrements the book's stock inside one
// database transaction. The decrement is a conditional single-row update,
// so a concurrent purchase that drains the stock rolls this one back with
// ErrOutOfStock and no visible side effect.
func (r *Repository) Create(ctx context.Context, purchase *domain.Purchase) (*domain.Purchase, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, errors.New("purchase is nil")
	}
	record := toRecord(purchase)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := catalogpostgres.DecrementStockTx(tx, record.BookID); err != nil {
			if errors.Is(err, catalogports.ErrNotFound) {
				return ports.ErrBookGone
			}
			if errors.Is(err, catalogports.ErrOutOfStock) {
				return ports.ErrOutOfStock
			}
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns the purchase history, oldest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Purchase, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []purchaseRecord
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	purchases := make([]*domain.Purchase, 0, len(records))
	for i := range records {
		purchases = append(purchases, records[i].toDomain())
	}
	return purchases, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres purchase repository not configured")
	}
	return nil
}

func toRecord(purchase *domain.Purchase) purchaseRecord {
	return purchaseRecord{
		ID:                purchase.ID,
		CustomerID:        purchase.Customer.ID,
		CustomerFirstName: purchase.Customer.FirstName,
		CustomerLastName:  purchase.Customer.LastName,
		CustomerPhone:     purchase.Customer.Phone,
		BookID:            purchase.Book.ID,
		BookTitle:         purchase.Book.Title,
		BookPrice:         purchase.Book.Price,
		Date:              purchase.Date,
	}
}

func (r purchaseRecord) toDomain() *domain.Purchase {
	return &domain.Purchase{
		ID: r.ID,
		Customer: domain.CustomerSnapshot{
			ID:        r.CustomerID,
			FirstName: r.CustomerFirstName,
			LastName:  r.CustomerLastName,
			Phone:     r.CustomerPhone,
		},
		Book: domain.BookSnapshot{
			ID:    r.BookID,
			Title: r.BookTitle,
			Price: r.BookPrice,
		},
		Date: r.Date,
	}
}
