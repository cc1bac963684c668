package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/domain/entity"
	"github.com/minthuka/bookpos-api/internal/domain/repository"
	"github.com/minthuka/bookpos-api/pkg/apperror"
	"go.uber.org/zap"
)

// MenuService manages the menu catalog: categories, items, option groups and
// options. Order entry reads the catalog through GetMenuTree.
type MenuService struct {
	catalogRepo repository.CatalogRepository
	logger      *zap.Logger
}

// NewMenuService creates a new menu service
func NewMenuService(catalogRepo repository.CatalogRepository, logger *zap.Logger) *MenuService {
	return &MenuService{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// MenuCategoryInput represents menu category creation/update data
type MenuCategoryInput struct {
	Name      string
	SortOrder *int
	IsActive  *bool
}

// MenuItemInput represents menu item creation/update data
type MenuItemInput struct {
	CategoryID uuid.UUID
	Name       string
	Price      float64
	IsActive   *bool
}

// OptionGroupInput represents option group creation/update data
type OptionGroupInput struct {
	MenuItemID  uuid.UUID
	Name        string
	IsRequired  *bool
	MultiSelect *bool
}

// MenuOptionInput represents menu option creation/update data
type MenuOptionInput struct {
	GroupID         uuid.UUID
	Name            string
	PriceAdjustment float64
}

// GetMenuTree returns the full catalog: categories with their items, option
// groups and options, ordered for the order-entry screen.
func (s *MenuService) GetMenuTree(ctx context.Context, activeOnly bool) ([]entity.MenuCategory, error) {
	tree, err := s.catalogRepo.GetMenuTree(ctx, activeOnly)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	return tree, nil
}

// CreateCategory creates a new menu category
func (s *MenuService) CreateCategory(ctx context.Context, input *MenuCategoryInput) (*entity.MenuCategory, error) {
	if input.Name == "" {
		return nil, apperror.NewInvalidInputError("Category name is required")
	}
	category := &entity.MenuCategory{
		Name:     input.Name,
		IsActive: true,
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.catalogRepo.CreateCategory(ctx, category); err != nil {
		return nil, apperror.NewStorageError()
	}
	return category, nil
}

// UpdateCategory updates a menu category
func (s *MenuService) UpdateCategory(ctx context.Context, id uuid.UUID, input *MenuCategoryInput) (*entity.MenuCategory, error) {
	category, err := s.catalogRepo.GetCategory(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Menu category")
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.catalogRepo.UpdateCategory(ctx, category); err != nil {
		return nil, apperror.NewStorageError()
	}
	return category, nil
}

// DeleteCategory removes a menu category
func (s *MenuService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.catalogRepo.GetCategory(ctx, id)
	if err != nil {
		return apperror.NewStorageError()
	}
	if category == nil {
		return apperror.NewNotFoundError("Menu category")
	}
	if err := s.catalogRepo.DeleteCategory(ctx, id); err != nil {
		return apperror.NewStorageError()
	}
	return nil
}

// ListCategories lists menu categories without their items
func (s *MenuService) ListCategories(ctx context.Context) ([]entity.MenuCategory, error) {
	categories, err := s.catalogRepo.ListCategories(ctx)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	return categories, nil
}

// CreateMenuItem creates a new menu item under a category
func (s *MenuService) CreateMenuItem(ctx context.Context, input *MenuItemInput) (*entity.MenuItem, error) {
	if input.Name == "" {
		return nil, apperror.NewInvalidInputError("Item name is required")
	}
	if input.Price < 0 {
		return nil, apperror.NewInvalidInputError("Item price cannot be negative")
	}
	category, err := s.catalogRepo.GetCategory(ctx, input.CategoryID)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Menu category")
	}

	item := &entity.MenuItem{
		CategoryID: input.CategoryID,
		Name:       input.Name,
		Price:      int64(input.Price * 100),
		IsActive:   true,
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if err := s.catalogRepo.CreateMenuItem(ctx, item); err != nil {
		return nil, apperror.NewStorageError()
	}
	return item, nil
}

// UpdateMenuItem updates a menu item. Price changes only affect future
// orders; existing sale lines keep their snapshots.
func (s *MenuService) UpdateMenuItem(ctx context.Context, id uuid.UUID, input *MenuItemInput) (*entity.MenuItem, error) {
	item, err := s.catalogRepo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}

	if input.Name != "" {
		item.Name = input.Name
	}
	if input.Price < 0 {
		return nil, apperror.NewInvalidInputError("Item price cannot be negative")
	}
	if input.Price > 0 {
		item.Price = int64(input.Price * 100)
	}
	if input.CategoryID != uuid.Nil {
		item.CategoryID = input.CategoryID
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if err := s.catalogRepo.UpdateMenuItem(ctx, item); err != nil {
		return nil, apperror.NewStorageError()
	}
	return item, nil
}

// DeleteMenuItem removes a menu item
func (s *MenuService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.catalogRepo.GetMenuItem(ctx, id)
	if err != nil {
		return apperror.NewStorageError()
	}
	if item == nil {
		return apperror.NewNotFoundError("Menu item")
	}
	if err := s.catalogRepo.DeleteMenuItem(ctx, id); err != nil {
		return apperror.NewStorageError()
	}
	return nil
}

// ListMenuItems lists menu items, optionally filtered by category
func (s *MenuService) ListMenuItems(ctx context.Context, categoryID *uuid.UUID) ([]entity.MenuItem, error) {
	items, err := s.catalogRepo.ListMenuItems(ctx, categoryID)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	return items, nil
}

// CreateOptionGroup creates an option group on a menu item
func (s *MenuService) CreateOptionGroup(ctx context.Context, input *OptionGroupInput) (*entity.OptionGroup, error) {
	if input.Name == "" {
		return nil, apperror.NewInvalidInputError("Option group name is required")
	}
	item, err := s.catalogRepo.GetMenuItem(ctx, input.MenuItemID)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}

	group := &entity.OptionGroup{
		MenuItemID: input.MenuItemID,
		Name:       input.Name,
	}
	if input.IsRequired != nil {
		group.IsRequired = *input.IsRequired
	}
	if input.MultiSelect != nil {
		group.MultiSelect = *input.MultiSelect
	}
	if err := s.catalogRepo.CreateOptionGroup(ctx, group); err != nil {
		return nil, apperror.NewStorageError()
	}
	return group, nil
}

// UpdateOptionGroup updates an option group
func (s *MenuService) UpdateOptionGroup(ctx context.Context, id uuid.UUID, input *OptionGroupInput) (*entity.OptionGroup, error) {
	group, err := s.catalogRepo.GetOptionGroup(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	if group == nil {
		return nil, apperror.NewNotFoundError("Option group")
	}

	if input.Name != "" {
		group.Name = input.Name
	}
	if input.IsRequired != nil {
		group.IsRequired = *input.IsRequired
	}
	if input.MultiSelect != nil {
		group.MultiSelect = *input.MultiSelect
	}
	if err := s.catalogRepo.UpdateOptionGroup(ctx, group); err != nil {
		return nil, apperror.NewStorageError()
	}
	return group, nil
}

// DeleteOptionGroup removes an option group and its options
func (s *MenuService) DeleteOptionGroup(ctx context.Context, id uuid.UUID) error {
	group, err := s.catalogRepo.GetOptionGroup(ctx, id)
	if err != nil {
		return apperror.NewStorageError()
	}
	if group == nil {
		return apperror.NewNotFoundError("Option group")
	}
	if err := s.catalogRepo.DeleteOptionGroup(ctx, id); err != nil {
		return apperror.NewStorageError()
	}
	return nil
}

// CreateOption creates a menu option within a group
func (s *MenuService) CreateOption(ctx context.Context, input *MenuOptionInput) (*entity.MenuOption, error) {
	if input.Name == "" {
		return nil, apperror.NewInvalidInputError("Option name is required")
	}
	group, err := s.catalogRepo.GetOptionGroup(ctx, input.GroupID)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	if group == nil {
		return nil, apperror.NewNotFoundError("Option group")
	}

	option := &entity.MenuOption{
		GroupID:         input.GroupID,
		Name:            input.Name,
		PriceAdjustment: int64(input.PriceAdjustment * 100),
	}
	if err := s.catalogRepo.CreateOption(ctx, option); err != nil {
		return nil, apperror.NewStorageError()
	}
	return option, nil
}

// UpdateOption updates a menu option
func (s *MenuService) UpdateOption(ctx context.Context, id uuid.UUID, input *MenuOptionInput) (*entity.MenuOption, error) {
	options, err := s.catalogRepo.GetOptions(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	if len(options) == 0 {
		return nil, apperror.NewNotFoundError("Menu option")
	}

	option := options[0]
	if input.Name != "" {
		option.Name = input.Name
	}
	option.PriceAdjustment = int64(input.PriceAdjustment * 100)
	if err := s.catalogRepo.UpdateOption(ctx, &option); err != nil {
		return nil, apperror.NewStorageError()
	}
	return &option, nil
}

// DeleteOption removes a menu option
func (s *MenuService) DeleteOption(ctx context.Context, id uuid.UUID) error {
	if err := s.catalogRepo.DeleteOption(ctx, id); err != nil {
		return apperror.NewStorageError()
	}
	return nil
}
