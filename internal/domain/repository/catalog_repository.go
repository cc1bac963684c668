package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/domain/entity"
)

// CatalogRepository defines the interface for menu catalog operations.
// The POS core only reads item base prices and option adjustments from it;
// the write side serves catalog administration.
type CatalogRepository interface {
	// Read side consumed by order entry
	GetMenuItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)
	GetOptions(ctx context.Context, optionIDs []uuid.UUID) ([]entity.MenuOption, error)
	GetMenuTree(ctx context.Context, activeOnly bool) ([]entity.MenuCategory, error)

	// Menu categories
	CreateCategory(ctx context.Context, category *entity.MenuCategory) error
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.MenuCategory, error)
	UpdateCategory(ctx context.Context, category *entity.MenuCategory) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]entity.MenuCategory, error)

	// Menu items
	CreateMenuItem(ctx context.Context, item *entity.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *entity.MenuItem) error
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
	ListMenuItems(ctx context.Context, categoryID *uuid.UUID) ([]entity.MenuItem, error)

	// Option groups and options
	CreateOptionGroup(ctx context.Context, group *entity.OptionGroup) error
	GetOptionGroup(ctx context.Context, id uuid.UUID) (*entity.OptionGroup, error)
	UpdateOptionGroup(ctx context.Context, group *entity.OptionGroup) error
	DeleteOptionGroup(ctx context.Context, id uuid.UUID) error
	CreateOption(ctx context.Context, option *entity.MenuOption) error
	UpdateOption(ctx context.Context, option *entity.MenuOption) error
	DeleteOption(ctx context.Context, id uuid.UUID) error
}
