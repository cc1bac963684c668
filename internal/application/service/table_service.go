package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/domain/entity"
	"github.com/minthuka/bookpos-api/internal/domain/enum"
	"github.com/minthuka/bookpos-api/internal/domain/repository"
	"github.com/minthuka/bookpos-api/pkg/apperror"
	"go.uber.org/zap"
)

// TableService manages the dining table registry and occupancy fix-ups
type TableService struct {
	uow       repository.UnitOfWork
	tableRepo repository.TableRepository
	logger    *zap.Logger
}

// NewTableService creates a new table service
func NewTableService(uow repository.UnitOfWork, tableRepo repository.TableRepository, logger *zap.Logger) *TableService {
	return &TableService{
		uow:       uow,
		tableRepo: tableRepo,
		logger:    logger,
	}
}

// CreateTableInput represents table creation data
type CreateTableInput struct {
	Name     string
	IsActive *bool
}

// UpdateTableInput represents table update data
type UpdateTableInput struct {
	Name     *string
	IsActive *bool
}

// CreateTable creates a new dining table
func (s *TableService) CreateTable(ctx context.Context, input *CreateTableInput) (*entity.Table, error) {
	if input.Name == "" {
		return nil, apperror.NewInvalidInputError("Table name is required")
	}

	table := &entity.Table{
		Name:     input.Name,
		IsActive: true,
		Status:   enum.TableStatusAvailable,
	}
	if input.IsActive != nil {
		table.IsActive = *input.IsActive
	}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, apperror.NewStorageError()
	}
	return table, nil
}

// GetTable retrieves a table by ID
func (s *TableService) GetTable(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	return table, nil
}

// UpdateTable updates a table's name or active flag
func (s *TableService) UpdateTable(ctx context.Context, id uuid.UUID, input *UpdateTableInput) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}

	if input.Name != nil {
		table.Name = *input.Name
	}
	if input.IsActive != nil {
		table.IsActive = *input.IsActive
	}
	if err := s.tableRepo.Update(ctx, table); err != nil {
		return nil, apperror.NewStorageError()
	}
	return table, nil
}

// DeleteTable removes a table. A table hosting an open sale cannot be
// deleted.
func (s *TableService) DeleteTable(ctx context.Context, id uuid.UUID) error {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewStorageError()
	}
	if table == nil {
		return apperror.NewNotFoundError("Table")
	}
	if table.IsOccupied() {
		return apperror.NewInvalidStateError("Cannot delete a table with an open sale")
	}
	if err := s.tableRepo.Delete(ctx, id); err != nil {
		return apperror.NewStorageError()
	}
	return nil
}

// ListTables lists tables with their current sale preloaded
func (s *TableService) ListTables(ctx context.Context, activeOnly bool) ([]entity.Table, error) {
	tables, err := s.tableRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	return tables, nil
}

// MoveSale relocates the open sale on one table to another. Both tables are
// locked in a single transaction; the source must host a sale and the target
// must be free.
func (s *TableService) MoveSale(ctx context.Context, fromID, toID uuid.UUID) error {
	if fromID == toID {
		return apperror.NewInvalidInputError("Source and target tables must differ")
	}
	return s.uow.Do(ctx, func(r *repository.Repositories) error {
		from, err := r.Tables.GetForUpdate(ctx, fromID)
		if err != nil {
			return err
		}
		if from == nil {
			return apperror.NewNotFoundError("Source table")
		}
		if from.CurrentSaleID == nil {
			return apperror.NewInvalidStateError("Source table has no open sale")
		}

		to, err := r.Tables.GetForUpdate(ctx, toID)
		if err != nil {
			return err
		}
		if to == nil {
			return apperror.NewNotFoundError("Target table")
		}
		if !to.IsActive {
			return apperror.NewInvalidStateError("Target table is not active")
		}
		if to.IsOccupied() {
			return apperror.NewConflictError("Target table is occupied")
		}

		saleID := *from.CurrentSaleID
		sale, err := r.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}

		if err := r.Tables.Occupy(ctx, to.ID, saleID); err != nil {
			return err
		}
		sale.TableID = &to.ID
		if err := r.Sales.Update(ctx, sale); err != nil {
			return err
		}
		if _, err := r.Tables.Free(ctx, from.ID, saleID); err != nil {
			return err
		}
		return nil
	})
}

// ClearTable unconditionally frees a table. This is the admin fix-up for a
// table stuck in paid or occupied after out-of-band changes; the sale itself
// is not touched.
func (s *TableService) ClearTable(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(r *repository.Repositories) error {
		table, err := r.Tables.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if table == nil {
			return apperror.NewNotFoundError("Table")
		}
		return r.Tables.Clear(ctx, table.ID)
	})
}
