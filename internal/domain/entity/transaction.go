package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// POSSalesCategory is the ledger category that POS-derived income is booked
// against. Seeded at startup.
const POSSalesCategory = "POS Sales"

// Category groups ledger transactions for reporting
type Category struct {
	ID        uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Name      string               `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Type      enum.TransactionType `gorm:"default:0" json:"type"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	DeletedAt gorm.DeletedAt       `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Transaction is one ledger entry. POS sales project exactly one income
// transaction per sale (SaleID back-reference); bookkeeping entries recorded
// by hand leave SaleID nil.
type Transaction struct {
	ID          uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	SaleID      *uuid.UUID           `gorm:"type:uuid;uniqueIndex" json:"sale_id,omitempty"`
	CategoryID  uuid.UUID            `gorm:"type:uuid;not null;index" json:"category_id"`
	Type        enum.TransactionType `gorm:"default:0" json:"type"`
	Amount      int64                `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Quantity    int                  `gorm:"default:1" json:"quantity"`
	Description string               `gorm:"type:text" json:"description,omitempty"`
	Date        time.Time            `gorm:"type:date;not null" json:"date"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	DeletedAt   gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(t),
		Amount: float64(t.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
