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
	"github.com/minthuka/bookpos-api/pkg/utils"
	"go.uber.org/zap"
)

// SaleService handles the POS order lifecycle: resolving whether a submission
// opens a new sale or appends to an existing one, appending priced line
// items, checkout, and cancellation/restoration of items and whole sales.
// Every mutation runs inside a single unit of work; the derived ledger
// transaction and the table occupancy are kept consistent within the same
// transaction.
type SaleService struct {
	uow         repository.UnitOfWork
	saleRepo    repository.SaleRepository
	catalogRepo repository.CatalogRepository
	logger      *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(
	uow repository.UnitOfWork,
	saleRepo repository.SaleRepository,
	catalogRepo repository.CatalogRepository,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		uow:         uow,
		saleRepo:    saleRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// OrderItemOptionInput is one selected option on a submitted line
type OrderItemOptionInput struct {
	OptionID        *uuid.UUID
	GroupName       string
	Name            string
	PriceAdjustment float64
}

// OrderItemInput represents one line of an order submission
type OrderItemInput struct {
	MenuItemID *uuid.UUID
	Name       string
	Quantity   int
	UnitPrice  float64
	Options    []OrderItemOptionInput
	Notes      string
}

// SubmitOrderInput represents an order submission. TableID and SaleID steer
// session resolution: a table submission appends to the table's open sale or
// opens one, an explicit sale id appends to that sale, and neither opens a
// standalone takeaway sale.
type SubmitOrderInput struct {
	UserID       uuid.UUID
	TableID      *uuid.UUID
	SaleID       *uuid.UUID
	OrderType    *enum.OrderType
	CustomerName string
	Notes        string
	Items        []OrderItemInput
}

// SubmitOrderResult reports the resolved sale and its new running total
type SubmitOrderResult struct {
	SaleID  uuid.UUID       `json:"sale_id"`
	OrderNo string          `json:"order_no"`
	Created bool            `json:"created"`
	Total   float64         `json:"total"`
	Status  enum.SaleStatus `json:"status"`
}

// ItemStateResult reports the sale state after an item cancel/restore
type ItemStateResult struct {
	NewTotal   float64         `json:"new_total"`
	SaleStatus enum.SaleStatus `json:"sale_status"`
}

// SubmitOrder resolves the target sale and appends the submitted items to it.
// Validation happens before the transaction opens; price snapshots are taken
// once at append time and never recomputed from the catalog.
func (s *SaleService) SubmitOrder(ctx context.Context, input *SubmitOrderInput) (*SubmitOrderResult, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewInvalidInputError("Order must contain at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewInvalidInputError("Item quantity must be a positive integer")
		}
		if item.Name == "" && item.MenuItemID == nil {
			return nil, apperror.NewInvalidInputError("Item must carry a name or a menu item reference")
		}
	}

	// Catalog lookups are read-only and tolerate missing references: a line
	// keeps whatever name and prices the caller supplied.
	newItems, err := s.buildSaleItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	var appended int64
	for _, item := range newItems {
		appended += item.TotalPrice
	}

	result := &SubmitOrderResult{}
	err = s.uow.Do(ctx, func(r *repository.Repositories) error {
		sale, created, err := s.resolveSession(ctx, r, input)
		if err != nil {
			return err
		}

		for i := range newItems {
			newItems[i].SaleID = sale.ID
		}
		if err := r.SaleItems.CreateBatch(ctx, newItems); err != nil {
			return err
		}

		if created {
			sale.TotalAmount = appended
		} else {
			sale.TotalAmount += appended
		}
		if err := r.Sales.Update(ctx, sale); err != nil {
			return err
		}

		// Mirror the running total into the ledger when a derived
		// transaction already exists for this sale.
		txn, err := r.Transactions.GetBySaleID(ctx, sale.ID)
		if err != nil {
			return err
		}
		if txn != nil {
			txn.Amount = sale.TotalAmount
			txn.Quantity = sale.ActiveItemCount() + len(newItems)
			if err := r.Transactions.Update(ctx, txn); err != nil {
				return err
			}
		}

		result.SaleID = sale.ID
		result.OrderNo = sale.OrderNo
		result.Created = created
		result.Total = float64(sale.TotalAmount) / 100
		result.Status = sale.Status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveSession locks and returns the sale targeted by the submission,
// creating one (and occupying the table) when needed. The returned sale's
// Items hold the lines that existed before this submission.
func (s *SaleService) resolveSession(ctx context.Context, r *repository.Repositories, input *SubmitOrderInput) (*entity.Sale, bool, error) {
	switch {
	case input.TableID != nil:
		table, err := r.Tables.GetForUpdate(ctx, *input.TableID)
		if err != nil {
			return nil, false, err
		}
		if table == nil {
			return nil, false, apperror.NewNotFoundError("Table")
		}
		if table.CurrentSaleID != nil {
			sale, err := s.lockOpenSale(ctx, r, *table.CurrentSaleID)
			if err != nil {
				return nil, false, err
			}
			return sale, false, nil
		}
		sale, err := s.createSale(ctx, r, input, enum.OrderTypeDineIn, input.TableID)
		if err != nil {
			return nil, false, err
		}
		if err := r.Tables.Occupy(ctx, table.ID, sale.ID); err != nil {
			return nil, false, err
		}
		return sale, true, nil

	case input.SaleID != nil:
		sale, err := s.lockOpenSale(ctx, r, *input.SaleID)
		if err != nil {
			return nil, false, err
		}
		return sale, false, nil

	default:
		orderType := enum.OrderTypeTakeAway
		if input.OrderType != nil {
			orderType = *input.OrderType
		}
		sale, err := s.createSale(ctx, r, input, orderType, nil)
		if err != nil {
			return nil, false, err
		}
		return sale, true, nil
	}
}

func (s *SaleService) lockOpenSale(ctx context.Context, r *repository.Repositories, saleID uuid.UUID) (*entity.Sale, error) {
	sale, err := r.Sales.GetForUpdate(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status != enum.SaleStatusOpen {
		return nil, apperror.NewInvalidStateError("Cannot add items to a " + sale.Status.String() + " sale")
	}
	return sale, nil
}

func (s *SaleService) createSale(ctx context.Context, r *repository.Repositories, input *SubmitOrderInput, orderType enum.OrderType, tableID *uuid.UUID) (*entity.Sale, error) {
	sale := &entity.Sale{
		UserID:       input.UserID,
		OrderNo:      utils.GenerateOrderNo(),
		TableID:      tableID,
		OrderType:    orderType,
		Status:       enum.SaleStatusOpen,
		CustomerName: input.CustomerName,
		Notes:        input.Notes,
		SaleDate:     time.Now(),
	}
	if err := r.Sales.Create(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// buildSaleItems prices the submitted lines. A line total is
// quantity x (unit price + sum of option adjustments), computed exactly once
// here; supplied prices win over the catalog, and zero-priced lines with a
// menu reference are filled in from it.
func (s *SaleService) buildSaleItems(ctx context.Context, inputs []OrderItemInput) ([]entity.SaleItem, error) {
	items := make([]entity.SaleItem, 0, len(inputs))
	for _, input := range inputs {
		unitPrice := int64(input.UnitPrice * 100)
		name := input.Name

		if input.MenuItemID != nil && (unitPrice == 0 || name == "") {
			menuItem, err := s.catalogRepo.GetMenuItem(ctx, *input.MenuItemID)
			if err != nil {
				return nil, err
			}
			if menuItem != nil {
				if unitPrice == 0 {
					unitPrice = menuItem.Price
				}
				if name == "" {
					name = menuItem.Name
				}
			}
		}
		if name == "" {
			return nil, apperror.NewInvalidInputError("Item must carry a name or a menu item reference")
		}

		options, optionTotal, err := s.resolveOptions(ctx, input.Options)
		if err != nil {
			return nil, err
		}

		item := entity.SaleItem{
			MenuItemID: input.MenuItemID,
			Name:       name,
			Quantity:   input.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: int64(input.Quantity) * (unitPrice + optionTotal),
			Notes:      input.Notes,
		}
		if err := item.SetSelectedOptions(options); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *SaleService) resolveOptions(ctx context.Context, inputs []OrderItemOptionInput) ([]entity.SaleItemOption, int64, error) {
	if len(inputs) == 0 {
		return nil, 0, nil
	}

	// Batch the catalog lookup for options the caller did not price.
	var lookupIDs []uuid.UUID
	for _, input := range inputs {
		if input.OptionID != nil && input.PriceAdjustment == 0 {
			lookupIDs = append(lookupIDs, *input.OptionID)
		}
	}
	catalog := make(map[uuid.UUID]entity.MenuOption, len(lookupIDs))
	if len(lookupIDs) > 0 {
		found, err := s.catalogRepo.GetOptions(ctx, lookupIDs)
		if err != nil {
			return nil, 0, err
		}
		for _, option := range found {
			catalog[option.ID] = option
		}
	}

	options := make([]entity.SaleItemOption, 0, len(inputs))
	var total int64
	for _, input := range inputs {
		adjustment := int64(input.PriceAdjustment * 100)
		name := input.Name
		groupName := input.GroupName
		if input.OptionID != nil {
			if option, ok := catalog[*input.OptionID]; ok {
				if adjustment == 0 {
					adjustment = option.PriceAdjustment
				}
				if name == "" {
					name = option.Name
				}
				if groupName == "" {
					groupName = option.Group.Name
				}
			}
		}
		options = append(options, entity.SaleItemOption{
			GroupName:       groupName,
			Name:            name,
			PriceAdjustment: adjustment,
		})
		total += adjustment
	}
	return options, total, nil
}

// Pay checks out an open sale: it transitions to completed and exactly one
// income transaction is written for it. Paying an already completed sale is
// a no-op success.
func (s *SaleService) Pay(ctx context.Context, saleID uuid.UUID, paymentMethod string) error {
	if paymentMethod == "" {
		paymentMethod = "cash"
	}
	return s.uow.Do(ctx, func(r *repository.Repositories) error {
		sale, err := r.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}
		switch sale.Status {
		case enum.SaleStatusCancelled:
			return apperror.NewInvalidStateError("Cannot pay a cancelled sale")
		case enum.SaleStatusCompleted:
			return nil
		}

		sale.Status = enum.SaleStatusCompleted
		sale.PaymentMethod = paymentMethod
		if err := r.Sales.Update(ctx, sale); err != nil {
			return err
		}

		if err := s.syncTransaction(ctx, r, sale, len(sale.Items)); err != nil {
			return err
		}

		if sale.TableID != nil {
			if _, err := r.Tables.MarkPaid(ctx, *sale.TableID, sale.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

// syncTransaction updates the sale's derived income transaction or creates
// it when absent. Correspondence is by the SaleID back-reference only.
func (s *SaleService) syncTransaction(ctx context.Context, r *repository.Repositories, sale *entity.Sale, quantity int) error {
	txn, err := r.Transactions.GetBySaleID(ctx, sale.ID)
	if err != nil {
		return err
	}
	if txn != nil {
		txn.Amount = sale.TotalAmount
		txn.Quantity = quantity
		return r.Transactions.Update(ctx, txn)
	}

	category, err := r.Categories.GetByName(ctx, entity.POSSalesCategory)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewInvalidStateError("Ledger category " + entity.POSSalesCategory + " is missing")
	}
	saleID := sale.ID
	return r.Transactions.Create(ctx, &entity.Transaction{
		UserID:      sale.UserID,
		SaleID:      &saleID,
		CategoryID:  category.ID,
		Type:        enum.TransactionTypeIncome,
		Amount:      sale.TotalAmount,
		Quantity:    quantity,
		Description: "POS sale " + sale.OrderNo,
		Date:        sale.SaleDate,
	})
}

// CancelItem cancels one line and recomputes the sale. Cancelling the last
// active item cascades: the sale is cancelled, its table freed (if it still
// points at this sale), and the ledger transaction deleted. Cancelling an
// already-cancelled item is a no-op.
func (s *SaleService) CancelItem(ctx context.Context, saleID, itemID uuid.UUID) (*ItemStateResult, error) {
	result := &ItemStateResult{}
	err := s.uow.Do(ctx, func(r *repository.Repositories) error {
		sale, item, err := s.lockSaleItem(ctx, r, saleID, itemID)
		if err != nil {
			return err
		}
		if item.IsCancelled {
			result.NewTotal = float64(sale.TotalAmount) / 100
			result.SaleStatus = sale.Status
			return nil
		}

		item.IsCancelled = true
		if err := r.SaleItems.Update(ctx, item); err != nil {
			return err
		}

		total := sale.ActiveTotal()
		activeCount := sale.ActiveItemCount()
		sale.TotalAmount = total

		if activeCount == 0 {
			// No meaningful order remains.
			sale.Status = enum.SaleStatusCancelled
			if err := r.Sales.Update(ctx, sale); err != nil {
				return err
			}
			if sale.TableID != nil {
				if _, err := r.Tables.Free(ctx, *sale.TableID, sale.ID); err != nil {
					return err
				}
			}
			if err := r.Transactions.DeleteBySaleID(ctx, sale.ID); err != nil {
				return err
			}
		} else {
			if err := r.Sales.Update(ctx, sale); err != nil {
				return err
			}
			txn, err := r.Transactions.GetBySaleID(ctx, sale.ID)
			if err != nil {
				return err
			}
			if txn != nil {
				txn.Amount = total
				txn.Quantity = activeCount
				if err := r.Transactions.Update(ctx, txn); err != nil {
					return err
				}
			}
		}

		result.NewTotal = float64(total) / 100
		result.SaleStatus = sale.Status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UncancelItem restores a cancelled line. A sale that had been cancelled by
// the cascade flips back to completed and its ledger transaction is updated
// or recreated. Restoring an active item is a no-op.
func (s *SaleService) UncancelItem(ctx context.Context, saleID, itemID uuid.UUID) (*ItemStateResult, error) {
	result := &ItemStateResult{}
	err := s.uow.Do(ctx, func(r *repository.Repositories) error {
		sale, item, err := s.lockSaleItem(ctx, r, saleID, itemID)
		if err != nil {
			return err
		}
		if !item.IsCancelled {
			result.NewTotal = float64(sale.TotalAmount) / 100
			result.SaleStatus = sale.Status
			return nil
		}

		item.IsCancelled = false
		if err := r.SaleItems.Update(ctx, item); err != nil {
			return err
		}

		sale.TotalAmount = sale.ActiveTotal()
		if sale.Status == enum.SaleStatusCancelled {
			sale.Status = enum.SaleStatusCompleted
		}
		if err := r.Sales.Update(ctx, sale); err != nil {
			return err
		}

		// Open sales only get their ledger record at checkout; completed
		// ones are resynchronized (recreated if the cascade deleted it).
		if sale.Status == enum.SaleStatusCompleted {
			if err := s.syncTransaction(ctx, r, sale, sale.ActiveItemCount()); err != nil {
				return err
			}
		} else {
			txn, err := r.Transactions.GetBySaleID(ctx, sale.ID)
			if err != nil {
				return err
			}
			if txn != nil {
				txn.Amount = sale.TotalAmount
				txn.Quantity = sale.ActiveItemCount()
				if err := r.Transactions.Update(ctx, txn); err != nil {
					return err
				}
			}
		}

		result.NewTotal = float64(sale.TotalAmount) / 100
		result.SaleStatus = sale.Status
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *SaleService) lockSaleItem(ctx context.Context, r *repository.Repositories, saleID, itemID uuid.UUID) (*entity.Sale, *entity.SaleItem, error) {
	sale, err := r.Sales.GetForUpdate(ctx, saleID)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, apperror.NewNotFoundError("Sale")
	}
	for i := range sale.Items {
		if sale.Items[i].ID == itemID {
			return sale, &sale.Items[i], nil
		}
	}
	return nil, nil, apperror.NewNotFoundError("Sale item")
}

// CancelSale cancels the whole order regardless of remaining active items,
// deletes its ledger transaction, and frees its table under the ownership
// guard. Cancelling an already-cancelled sale is a no-op.
func (s *SaleService) CancelSale(ctx context.Context, saleID uuid.UUID) error {
	return s.uow.Do(ctx, func(r *repository.Repositories) error {
		sale, err := r.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}
		if sale.Status == enum.SaleStatusCancelled {
			return nil
		}

		sale.Status = enum.SaleStatusCancelled
		if err := r.Sales.Update(ctx, sale); err != nil {
			return err
		}
		if err := r.Transactions.DeleteBySaleID(ctx, sale.ID); err != nil {
			return err
		}
		if sale.TableID != nil {
			if _, err := r.Tables.Free(ctx, *sale.TableID, sale.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

// UncancelSale restores a cancelled sale to completed and recreates its
// ledger transaction from the live non-cancelled item count. Restoring a
// sale that is not cancelled is a no-op.
func (s *SaleService) UncancelSale(ctx context.Context, saleID uuid.UUID) error {
	return s.uow.Do(ctx, func(r *repository.Repositories) error {
		sale, err := r.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}
		if sale.Status != enum.SaleStatusCancelled {
			return nil
		}

		sale.Status = enum.SaleStatusCompleted
		sale.TotalAmount = sale.ActiveTotal()
		if err := r.Sales.Update(ctx, sale); err != nil {
			return err
		}

		// A sale whose items are all individually cancelled carries no
		// ledger record until an item is restored.
		if count := sale.ActiveItemCount(); count > 0 {
			return s.syncTransaction(ctx, r, sale, count)
		}
		return nil
	})
}

// GetSale retrieves a sale with its items and table
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}
