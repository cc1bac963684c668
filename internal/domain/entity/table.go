package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Table represents a physical seating unit. A table hosts at most one open
// sale at a time: CurrentSaleID is non-nil iff Status is occupied.
type Table struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name          string           `gorm:"size:100;not null" json:"name"`
	IsActive      bool             `gorm:"default:true" json:"is_active"`
	Status        enum.TableStatus `gorm:"default:0" json:"status"`
	CurrentSaleID *uuid.UUID       `gorm:"type:uuid;index" json:"current_sale_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	CurrentSale *Sale `gorm:"foreignKey:CurrentSaleID" json:"current_sale,omitempty"`
}

// BeforeCreate generates a UUID before creating a new table
func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Table model
func (Table) TableName() string {
	return "tables"
}

// IsOccupied reports whether the table currently hosts a sale
func (t *Table) IsOccupied() bool {
	return t.CurrentSaleID != nil
}
