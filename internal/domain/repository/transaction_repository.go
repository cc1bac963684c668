package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/domain/entity"
	"github.com/minthuka/bookpos-api/internal/domain/enum"
	"github.com/minthuka/bookpos-api/pkg/pagination"
)

// TransactionRepository defines the interface for ledger transaction
// operations. Correspondence between a sale and its derived income record is
// by the SaleID back-reference only.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	GetBySaleID(ctx context.Context, saleID uuid.UUID) (*entity.Transaction, error)
	Update(ctx context.Context, txn *entity.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
}

// TransactionFilterParams contains filtering parameters for ledger queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	CategoryID *uuid.UUID
	Type       *enum.TransactionType
	Search     string
	StartDate  *time.Time
	EndDate    *time.Time
}

// CategoryRepository defines the interface for ledger category operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Category, error)
}
