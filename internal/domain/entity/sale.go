package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents one customer order, dine-in or takeaway
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	OrderNo       string          `gorm:"size:100;unique;not null" json:"order_no"`
	TableID       *uuid.UUID      `gorm:"type:uuid;index" json:"table_id,omitempty"`
	OrderType     enum.OrderType  `gorm:"default:1" json:"order_type"`
	Status        enum.SaleStatus `gorm:"default:0" json:"status"`
	TotalAmount   int64           `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	PaymentMethod string          `gorm:"size:50" json:"payment_method"`
	CustomerName  string          `gorm:"size:255" json:"customer_name,omitempty"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	SaleDate      time.Time       `gorm:"type:date;not null" json:"sale_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	User  User       `gorm:"foreignKey:UserID" json:"-"`
	Table *Table     `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(s),
		TotalAmount: float64(s.TotalAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// ActiveTotal sums total_price over the non-cancelled items of the sale.
// The stored TotalAmount must always equal this value.
func (s *Sale) ActiveTotal() int64 {
	var total int64
	for _, item := range s.Items {
		if !item.IsCancelled {
			total += item.TotalPrice
		}
	}
	return total
}

// ActiveItemCount counts the non-cancelled items of the sale
func (s *Sale) ActiveItemCount() int {
	count := 0
	for _, item := range s.Items {
		if !item.IsCancelled {
			count++
		}
	}
	return count
}

// SaleItemOption is the snapshot of one selected option at the time the line
// was entered. Price adjustments are never re-read from the catalog.
type SaleItemOption struct {
	GroupName       string `json:"group_name,omitempty"`
	Name            string `json:"name"`
	PriceAdjustment int64  `json:"price_adjustment"` // cents
}

// SaleItem represents one line within a sale
type SaleItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	MenuItemID  *uuid.UUID     `gorm:"type:uuid;index" json:"menu_item_id,omitempty"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	UnitPrice   int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	TotalPrice  int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Options     string         `gorm:"type:text" json:"-"` // Serialized option snapshot
	Notes       string         `gorm:"type:text" json:"notes,omitempty"`
	IsCancelled bool           `gorm:"default:false" json:"is_cancelled"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice  float64          `json:"unit_price"`
		TotalPrice float64          `json:"total_price"`
		Options    []SaleItemOption `json:"options,omitempty"`
	}{
		Alias:      Alias(si),
		UnitPrice:  float64(si.UnitPrice) / 100,
		TotalPrice: float64(si.TotalPrice) / 100,
		Options:    si.SelectedOptions(),
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// SetSelectedOptions serializes the option snapshot onto the line
func (si *SaleItem) SetSelectedOptions(options []SaleItemOption) error {
	if len(options) == 0 {
		si.Options = ""
		return nil
	}
	data, err := json.Marshal(options)
	if err != nil {
		return err
	}
	si.Options = string(data)
	return nil
}

// SelectedOptions deserializes the option snapshot stored on the line
func (si *SaleItem) SelectedOptions() []SaleItemOption {
	if si.Options == "" {
		return nil
	}
	var options []SaleItemOption
	if err := json.Unmarshal([]byte(si.Options), &options); err != nil {
		return nil
	}
	return options
}
