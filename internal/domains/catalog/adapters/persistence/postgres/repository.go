package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/avalder/go-bookstore-api/internal/domains/catalog/domain"
	"github.com/avalder/go-bookstore-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists catalog entries in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// bookRecord maps the catalog aggregate to a relational table.
type bookRecord struct {
	ID            string    `gorm:"primaryKey;column:id;type:uuid"`
	Title         string    `gorm:"column:title;type:varchar(255)"`
	Author        string    `gorm:"column:author;type:varchar(255);index"`
	Price         float64   `gorm:"column:price"`
	NumberInStock int       `gorm:"column:number_in_stock"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (bookRecord) TableName() string { return "books" }

// Save inserts or updates a catalog entry.
func (r *Repository) Save(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errors.New("book is nil")
	}
	record := toRecord(book)
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"title":           record.Title,
				"author":          record.Author,
				"price":           record.Price,
				"number_in_stock": record.NumberInStock,
				"updated_at":      gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a catalog entry by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record bookRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes a catalog entry by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&bookRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all catalog entries.
func (r *Repository) List(ctx context.Context) ([]*domain.Book, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []bookRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	books := make([]*domain.Book, 0, len(records))
	for i := range records {
		books = append(books, records[i].toDomain())
	}
	return books, nil
}

// DecrementStock issues a single conditional update so the stock check and
// the decrement cannot interleave with a concurrent purchase.
func (r *Repository) DecrementStock(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return decrementStock(r.db.WithContext(ctx), id)
}

// decrementStock is shared with the purchases adapter so the same conditional
// update runs inside the purchase transaction.
func decrementStock(tx *gorm.DB, id string) error {
	result := tx.Model(&bookRecord{}).
		Where("id = ? AND number_in_stock > 0", id).
		UpdateColumn("number_in_stock", gorm.Expr("number_in_stock - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&bookRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ports.ErrNotFound
		}
		return ports.ErrOutOfStock
	}
	return nil
}

// DecrementStockTx runs the conditional decrement on an existing transaction.
func DecrementStockTx(tx *gorm.DB, id string) error {
	return decrementStock(tx, id)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toRecord(book *domain.Book) bookRecord {
	return bookRecord{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		Price:         book.Price,
		NumberInStock: book.NumberInStock,
	}
}

func (r bookRecord) toDomain() *domain.Book {
	return &domain.Book{
		ID:            r.ID,
		Title:         r.Title,
		Author:        r.Author,
		Price:         r.Price,
		NumberInStock: r.NumberInStock,
	}
}
