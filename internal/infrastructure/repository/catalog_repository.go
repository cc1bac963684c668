package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/domain/entity"
	domainRepo "github.com/minthuka/bookpos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new menu catalog repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetMenuItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *catalogRepository) GetOptions(ctx context.Context, optionIDs []uuid.UUID) ([]entity.MenuOption, error) {
	if len(optionIDs) == 0 {
		return nil, nil
	}
	var options []entity.MenuOption
	err := r.db.WithContext(ctx).
		Preload("Group").
		Where("id IN ?", optionIDs).
		Find(&options).Error
	return options, err
}

func (r *catalogRepository) GetMenuTree(ctx context.Context, activeOnly bool) ([]entity.MenuCategory, error) {
	var categories []entity.MenuCategory
	query := r.db.WithContext(ctx).
		Preload("Items.OptionGroups.Options")
	if activeOnly {
		query = query.Where("is_active = ?", true).
			Preload("Items", "is_active = ?", true)
	} else {
		query = query.Preload("Items")
	}
	err := query.Order("sort_order ASC, name ASC").Find(&categories).Error
	return categories, err
}

func (r *catalogRepository) CreateCategory(ctx context.Context, category *entity.MenuCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *catalogRepository) GetCategory(ctx context.Context, id uuid.UUID) (*entity.MenuCategory, error) {
	var category entity.MenuCategory
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *catalogRepository) UpdateCategory(ctx context.Context, category *entity.MenuCategory) error {
	return r.db.WithContext(ctx).Omit("Items").Save(category).Error
}

func (r *catalogRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.MenuCategory{}, "id = ?", id).Error
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]entity.MenuCategory, error) {
	var categories []entity.MenuCategory
	err := r.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&categories).Error
	return categories, err
}

func (r *catalogRepository) CreateMenuItem(ctx context.Context, item *entity.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *catalogRepository) UpdateMenuItem(ctx context.Context, item *entity.MenuItem) error {
	return r.db.WithContext(ctx).Omit("Category", "OptionGroups").Save(item).Error
}

func (r *catalogRepository) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.MenuItem{}, "id = ?", id).Error
}

func (r *catalogRepository) ListMenuItems(ctx context.Context, categoryID *uuid.UUID) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	query := r.db.WithContext(ctx).Preload("OptionGroups.Options")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	err := query.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *catalogRepository) CreateOptionGroup(ctx context.Context, group *entity.OptionGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *catalogRepository) GetOptionGroup(ctx context.Context, id uuid.UUID) (*entity.OptionGroup, error) {
	var group entity.OptionGroup
	err := r.db.WithContext(ctx).Preload("Options").First(&group, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &group, err
}

func (r *catalogRepository) UpdateOptionGroup(ctx context.Context, group *entity.OptionGroup) error {
	return r.db.WithContext(ctx).Omit("MenuItem", "Options").Save(group).Error
}

func (r *catalogRepository) DeleteOptionGroup(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.OptionGroup{}, "id = ?", id).Error
}

func (r *catalogRepository) CreateOption(ctx context.Context, option *entity.MenuOption) error {
	return r.db.WithContext(ctx).Create(option).Error
}

func (r *catalogRepository) UpdateOption(ctx context.Context, option *entity.MenuOption) error {
	return r.db.WithContext(ctx).Omit("Group").Save(option).Error
}

func (r *catalogRepository) DeleteOption(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.MenuOption{}, "id = ?", id).Error
}
