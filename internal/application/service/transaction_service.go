package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/domain/entity"
	"github.com/minthuka/bookpos-api/internal/domain/enum"
	"github.com/minthuka/bookpos-api/internal/domain/repository"
	"github.com/minthuka/bookpos-api/pkg/apperror"
	"github.com/minthuka/bookpos-api/pkg/pagination"
	"go.uber.org/zap"
)

// TransactionService manages the bookkeeping ledger. Hand-recorded entries
// have full CRUD; entries derived from POS sales (SaleID set) are read-only
// here and change only through the sale lifecycle.
type TransactionService struct {
	txnRepo      repository.TransactionRepository
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	txnRepo repository.TransactionRepository,
	categoryRepo repository.CategoryRepository,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// TransactionInput represents ledger entry creation/update data
type TransactionInput struct {
	CategoryID  uuid.UUID
	Type        enum.TransactionType
	Amount      float64
	Quantity    int
	Description string
	Date        time.Time
}

// CategoryInput represents ledger category creation/update data
type CategoryInput struct {
	Name string
	Type enum.TransactionType
}

// CreateTransaction records a hand-entered ledger transaction
func (s *TransactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, input *TransactionInput) (*entity.Transaction, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewInvalidInputError("Amount must be positive")
	}
	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	txn := &entity.Transaction{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Type:        input.Type,
		Amount:      int64(input.Amount * 100),
		Quantity:    input.Quantity,
		Description: input.Description,
		Date:        input.Date,
	}
	if txn.Quantity < 1 {
		txn.Quantity = 1
	}
	if txn.Date.IsZero() {
		txn.Date = time.Now()
	}
	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, apperror.NewStorageError()
	}
	return txn, nil
}

// GetTransaction retrieves a ledger transaction by ID
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return txn, nil
}

// UpdateTransaction updates a hand-entered transaction. Sale-derived entries
// are rejected: their amounts mirror the sale and must change through it.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, input *TransactionInput) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	if txn.SaleID != nil {
		return nil, apperror.NewInvalidStateError("Sale-derived transactions change through the sale")
	}
	if input.Amount <= 0 {
		return nil, apperror.NewInvalidInputError("Amount must be positive")
	}

	if input.CategoryID != uuid.Nil {
		category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
		if err != nil {
			return nil, apperror.NewStorageError()
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		txn.CategoryID = input.CategoryID
	}
	txn.Type = input.Type
	txn.Amount = int64(input.Amount * 100)
	if input.Quantity > 0 {
		txn.Quantity = input.Quantity
	}
	txn.Description = input.Description
	if !input.Date.IsZero() {
		txn.Date = input.Date
	}
	if err := s.txnRepo.Update(ctx, txn); err != nil {
		return nil, apperror.NewStorageError()
	}
	return txn, nil
}

// DeleteTransaction deletes a hand-entered transaction. Sale-derived entries
// are rejected; cancel the sale instead.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	txn, err := s.txnRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewStorageError()
	}
	if txn == nil {
		return apperror.NewNotFoundError("Transaction")
	}
	if txn.SaleID != nil {
		return apperror.NewInvalidStateError("Sale-derived transactions are deleted by cancelling the sale")
	}
	if err := s.txnRepo.Delete(ctx, id); err != nil {
		return apperror.NewStorageError()
	}
	return nil
}

// ListTransactions lists ledger transactions with filtering
func (s *TransactionService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	txns, total, err := s.txnRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewStorageError()
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txns, pag), nil
}

// CreateCategory creates a ledger category
func (s *TransactionService) CreateCategory(ctx context.Context, input *CategoryInput) (*entity.Category, error) {
	if input.Name == "" {
		return nil, apperror.NewInvalidInputError("Category name is required")
	}
	existing, err := s.categoryRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category name already exists")
	}

	category := &entity.Category{
		Name: input.Name,
		Type: input.Type,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, apperror.NewStorageError()
	}
	return category, nil
}

// UpdateCategory renames or retypes a category. The built-in POS sales
// category is protected.
func (s *TransactionService) UpdateCategory(ctx context.Context, id uuid.UUID, input *CategoryInput) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	if category.Name == entity.POSSalesCategory {
		return nil, apperror.NewInvalidStateError("The POS sales category cannot be modified")
	}
	if input.Name == "" {
		return nil, apperror.NewInvalidInputError("Category name is required")
	}
	if input.Name != category.Name {
		existing, err := s.categoryRepo.GetByName(ctx, input.Name)
		if err != nil {
			return nil, apperror.NewStorageError()
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Category name already exists")
		}
	}

	category.Name = input.Name
	category.Type = input.Type
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, apperror.NewStorageError()
	}
	return category, nil
}

// DeleteCategory removes a category. The built-in POS sales category is
// protected.
func (s *TransactionService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewStorageError()
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	if category.Name == entity.POSSalesCategory {
		return apperror.NewInvalidStateError("The POS sales category cannot be deleted")
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return apperror.NewStorageError()
	}
	return nil
}

// ListCategories lists ledger categories
func (s *TransactionService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewStorageError()
	}
	return categories, nil
}
