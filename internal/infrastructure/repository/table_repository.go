package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/domain/entity"
	"github.com/minthuka/bookpos-api/internal/domain/enum"
	domainRepo "github.com/minthuka/bookpos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tableRepository struct {
	db *gorm.DB
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *gorm.DB) domainRepo.TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(ctx context.Context, table *entity.Table) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *tableRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	var table entity.Table
	err := r.db.WithContext(ctx).First(&table, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *tableRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	var table entity.Table
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.First(&table, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *tableRepository) Update(ctx context.Context, table *entity.Table) error {
	return r.db.WithContext(ctx).Omit("CurrentSale").Save(table).Error
}

func (r *tableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Table{}, "id = ?", id).Error
}

func (r *tableRepository) List(ctx context.Context, activeOnly bool) ([]entity.Table, error) {
	var tables []entity.Table
	query := r.db.WithContext(ctx).Preload("CurrentSale")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("name ASC").Find(&tables).Error
	return tables, err
}

func (r *tableRepository) Occupy(ctx context.Context, tableID, saleID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Table{}).
		Where("id = ?", tableID).
		Updates(map[string]interface{}{
			"current_sale_id": saleID,
			"status":          enum.TableStatusOccupied,
		}).Error
}

func (r *tableRepository) Free(ctx context.Context, tableID, expectedSaleID uuid.UUID) (bool, error) {
	// Conditional update: only clears if the table still points at the
	// expected sale, tolerating a concurrent move.
	result := r.db.WithContext(ctx).Model(&entity.Table{}).
		Where("id = ? AND current_sale_id = ?", tableID, expectedSaleID).
		Updates(map[string]interface{}{
			"current_sale_id": nil,
			"status":          enum.TableStatusAvailable,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *tableRepository) MarkPaid(ctx context.Context, tableID, expectedSaleID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.Table{}).
		Where("id = ? AND current_sale_id = ?", tableID, expectedSaleID).
		Updates(map[string]interface{}{
			"current_sale_id": nil,
			"status":          enum.TableStatusPaid,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *tableRepository) Clear(ctx context.Context, tableID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Table{}).
		Where("id = ?", tableID).
		Updates(map[string]interface{}{
			"current_sale_id": nil,
			"status":          enum.TableStatusAvailable,
		}).Error
}
