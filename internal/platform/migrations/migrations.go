package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&bookRecord{},
		&customerRecord{},
		&userRecord{},
		&purchaseRecord{},
	)
}

// Book schema mirrors the catalog Postgres adapter.
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

// Customer schema mirrors the customers Postgres adapter.
type customerRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:uuid"`
	FirstName string    `gorm:"column:first_name;type:varchar(100)"`
	LastName  string    `gorm:"column:last_name;type:varchar(100)"`
	Email     string    `gorm:"column:email;type:varchar(255)"`
	Phone     string    `gorm:"column:phone;type:varchar(8)"`
	IsGold    bool      `gorm:"column:is_gold;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;type:uuid"`
	Name         string    `gorm:"column:name;type:varchar(255)"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(1024)"`
	IsAdmin      bool      `gorm:"column:is_admin"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Purchase schema mirrors the purchases Postgres adapter. Customer and book
// details are denormalized into the row so past purchases keep the values in
// effect at checkout time.
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
