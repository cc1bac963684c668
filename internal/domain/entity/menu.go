package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuCategory groups menu items on the order-entry screen
type MenuCategory struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new menu category
func (mc *MenuCategory) BeforeCreate(tx *gorm.DB) error {
	if mc.ID == uuid.Nil {
		mc.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuCategory model
func (MenuCategory) TableName() string {
	return "menu_categories"
}

// MenuItem is one orderable dish or drink with a base price
type MenuItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Price      int64          `gorm:"not null" json:"-"` // Base price in cents, excluded from JSON
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category     MenuCategory  `gorm:"foreignKey:CategoryID" json:"-"`
	OptionGroups []OptionGroup `gorm:"foreignKey:MenuItemID" json:"option_groups,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (mi MenuItem) MarshalJSON() ([]byte, error) {
	type Alias MenuItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(mi),
		Price: float64(mi.Price) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new menu item
func (mi *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if mi.ID == uuid.Nil {
		mi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}

// OptionGroup is a configurable set of choices on a menu item
// (e.g. "Size", "Extras")
type OptionGroup struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	MenuItemID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	IsRequired  bool           `gorm:"default:false" json:"is_required"`
	MultiSelect bool           `gorm:"default:false" json:"multi_select"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	MenuItem MenuItem     `gorm:"foreignKey:MenuItemID" json:"-"`
	Options  []MenuOption `gorm:"foreignKey:GroupID" json:"options,omitempty"`
}

// BeforeCreate generates a UUID before creating a new option group
func (og *OptionGroup) BeforeCreate(tx *gorm.DB) error {
	if og.ID == uuid.Nil {
		og.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OptionGroup model
func (OptionGroup) TableName() string {
	return "option_groups"
}

// MenuOption is one choice within an option group, carrying its price
// adjustment relative to the item's base price
type MenuOption struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	GroupID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"group_id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	PriceAdjustment int64          `gorm:"default:0" json:"-"` // Cents, may be negative
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Group OptionGroup `gorm:"foreignKey:GroupID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (mo MenuOption) MarshalJSON() ([]byte, error) {
	type Alias MenuOption
	return json.Marshal(&struct {
		Alias
		PriceAdjustment float64 `json:"price_adjustment"`
	}{
		Alias:           Alias(mo),
		PriceAdjustment: float64(mo.PriceAdjustment) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new menu option
func (mo *MenuOption) BeforeCreate(tx *gorm.DB) error {
	if mo.ID == uuid.Nil {
		mo.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuOption model
func (MenuOption) TableName() string {
	return "menu_options"
}
