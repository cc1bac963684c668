package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/domain/entity"
	"github.com/minthuka/bookpos-api/internal/domain/enum"
	"github.com/minthuka/bookpos-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// GetForUpdate loads the sale with its items under a row lock so that
	// concurrent appends, cancellations and checkouts on the same sale
	// serialize. Must be called inside a unit of work.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	TableID    *uuid.UUID
	Status     *enum.SaleStatus
	OrderType  *enum.OrderType
	Search     string
	StartDate  *time.Time
	EndDate    *time.Time
}

// SaleItemRepository defines the interface for sale line item operations
type SaleItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.SaleItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleItem, error)
	Update(ctx context.Context, item *entity.SaleItem) error
}
