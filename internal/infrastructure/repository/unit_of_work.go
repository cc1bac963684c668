package repository

import (
	"context"

	domainRepo "github.com/minthuka/bookpos-api/internal/domain/repository"
	"github.com/minthuka/bookpos-api/pkg/apperror"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type unitOfWork struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewUnitOfWork creates a gorm-backed unit of work. Each Do call opens one
// database transaction and hands the closure repositories bound to it.
func NewUnitOfWork(db *gorm.DB, logger *zap.Logger) domainRepo.UnitOfWork {
	return &unitOfWork{db: db, logger: logger}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(r *domainRepo.Repositories) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&domainRepo.Repositories{
			Sales:        NewSaleRepository(tx),
			SaleItems:    NewSaleItemRepository(tx),
			Tables:       NewTableRepository(tx),
			Transactions: NewTransactionRepository(tx),
			Categories:   NewCategoryRepository(tx),
		})
	})
	if err == nil {
		return nil
	}
	// Application errors carry their own kind; anything else is a storage
	// failure that has already been rolled back.
	if apperror.IsAppError(err) {
		return err
	}
	u.logger.Error("unit of work rolled back", zap.Error(err))
	return apperror.NewStorageError()
}
