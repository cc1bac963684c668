package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/domain/entity"
)

// TableRepository defines the interface for dining table operations
type TableRepository interface {
	Create(ctx context.Context, table *entity.Table) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error)
	// GetForUpdate loads the table under a row lock. Must be called inside a
	// unit of work.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*entity.Table, error)
	Update(ctx context.Context, table *entity.Table) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]entity.Table, error)
	// Occupy points the table at the given sale and marks it occupied.
	Occupy(ctx context.Context, tableID, saleID uuid.UUID) error
	// Free clears the table only if it still points at expectedSaleID, so a
	// cancellation racing a table move cannot free the wrong occupancy.
	// Returns true when the table was actually cleared.
	Free(ctx context.Context, tableID, expectedSaleID uuid.UUID) (bool, error)
	// MarkPaid releases the sale reference and marks the table paid, only if
	// it still points at expectedSaleID. Returns true when the row changed.
	MarkPaid(ctx context.Context, tableID, expectedSaleID uuid.UUID) (bool, error)
	// Clear frees the table unconditionally (admin fix-up).
	Clear(ctx context.Context, tableID uuid.UUID) error
}
