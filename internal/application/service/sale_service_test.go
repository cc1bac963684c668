package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/domain/entity"
	"github.com/minthuka/bookpos-api/internal/domain/enum"
	"github.com/minthuka/bookpos-api/internal/infrastructure/database"
	"github.com/minthuka/bookpos-api/internal/infrastructure/repository"
	"github.com/minthuka/bookpos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db     *gorm.DB
	sales  *SaleService
	tables *TableService
	txns   *TransactionService

	userID uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, db.Create(&entity.Category{
		Name: entity.POSSalesCategory,
		Type: enum.TransactionTypeIncome,
	}).Error)

	user := entity.User{
		Name:     "Test Cashier",
		Email:    "cashier@example.com",
		Password: "hashed",
		Role:     entity.RoleStaff,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)

	log := zap.NewNop()
	uow := repository.NewUnitOfWork(db, log)
	saleRepo := repository.NewSaleRepository(db)
	tableRepo := repository.NewTableRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	return &testEnv{
		db:     db,
		sales:  NewSaleService(uow, saleRepo, catalogRepo, log),
		tables: NewTableService(uow, tableRepo, log),
		txns:   NewTransactionService(txnRepo, categoryRepo, log),
		userID: user.ID,
	}
}

func (e *testEnv) seedTable(t *testing.T, name string) entity.Table {
	t.Helper()
	table := entity.Table{Name: name, IsActive: true, Status: enum.TableStatusAvailable}
	require.NoError(t, e.db.Create(&table).Error)
	return table
}

func (e *testEnv) seedMenuItem(t *testing.T, name string, priceCents int64) entity.MenuItem {
	t.Helper()
	category := entity.MenuCategory{Name: "Mains", IsActive: true}
	require.NoError(t, e.db.Create(&category).Error)
	item := entity.MenuItem{CategoryID: category.ID, Name: name, Price: priceCents, IsActive: true}
	require.NoError(t, e.db.Create(&item).Error)
	return item
}

func (e *testEnv) seedOption(t *testing.T, item entity.MenuItem, groupName, name string, adjCents int64) entity.MenuOption {
	t.Helper()
	group := entity.OptionGroup{MenuItemID: item.ID, Name: groupName}
	require.NoError(t, e.db.Create(&group).Error)
	option := entity.MenuOption{GroupID: group.ID, Name: name, PriceAdjustment: adjCents}
	require.NoError(t, e.db.Create(&option).Error)
	return option
}

func (e *testEnv) loadTable(t *testing.T, id uuid.UUID) entity.Table {
	t.Helper()
	var table entity.Table
	require.NoError(t, e.db.First(&table, "id = ?", id).Error)
	return table
}

func (e *testEnv) loadSale(t *testing.T, id uuid.UUID) entity.Sale {
	t.Helper()
	var sale entity.Sale
	require.NoError(t, e.db.Preload("Items").First(&sale, "id = ?", id).Error)
	return sale
}

func (e *testEnv) saleTransaction(t *testing.T, saleID uuid.UUID) *entity.Transaction {
	t.Helper()
	txn, err := repository.NewTransactionRepository(e.db).GetBySaleID(context.Background(), saleID)
	require.NoError(t, err)
	return txn
}

func lineItem(name string, qty int, price float64) OrderItemInput {
	return OrderItemInput{Name: name, Quantity: qty, UnitPrice: price}
}

func TestSubmitOrderOpensSaleOnFreeTable(t *testing.T) {
	env := newTestEnv(t)
	table := env.seedTable(t, "T1")

	result, err := env.sales.SubmitOrder(context.Background(), &SubmitOrderInput{
		UserID:  env.userID,
		TableID: &table.ID,
		Items:   []OrderItemInput{lineItem("Noodles", 2, 3.50)},
	})
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.Equal(t, enum.SaleStatusOpen, result.Status)
	assert.Equal(t, 7.00, result.Total)
	assert.NotEmpty(t, result.OrderNo)

	got := env.loadTable(t, table.ID)
	assert.Equal(t, enum.TableStatusOccupied, got.Status)
	require.NotNil(t, got.CurrentSaleID)
	assert.Equal(t, result.SaleID, *got.CurrentSaleID)

	sale := env.loadSale(t, result.SaleID)
	assert.Equal(t, enum.OrderTypeDineIn, sale.OrderType)
	assert.Equal(t, int64(700), sale.TotalAmount)
	assert.Len(t, sale.Items, 1)
}

func TestSubmitOrderAppendsToOccupiedTable(t *testing.T) {
	env := newTestEnv(t)
	table := env.seedTable(t, "T1")
	ctx := context.Background()

	first, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID:  env.userID,
		TableID: &table.ID,
		Items:   []OrderItemInput{lineItem("Noodles", 1, 3.50)},
	})
	require.NoError(t, err)

	second, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID:  env.userID,
		TableID: &table.ID,
		Items:   []OrderItemInput{lineItem("Tea", 2, 1.00)},
	})
	require.NoError(t, err)

	assert.False(t, second.Created)
	assert.Equal(t, first.SaleID, second.SaleID)
	assert.Equal(t, 5.50, second.Total)

	sale := env.loadSale(t, first.SaleID)
	assert.Len(t, sale.Items, 2)
	assert.Equal(t, sale.ActiveTotal(), sale.TotalAmount)
}

func TestSubmitOrderStandaloneTakeaway(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.sales.SubmitOrder(context.Background(), &SubmitOrderInput{
		UserID: env.userID,
		Items:  []OrderItemInput{lineItem("Coffee", 1, 2.00)},
	})
	require.NoError(t, err)

	assert.True(t, result.Created)
	sale := env.loadSale(t, result.SaleID)
	assert.Equal(t, enum.OrderTypeTakeAway, sale.OrderType)
	assert.Nil(t, sale.TableID)
}

func TestSubmitOrderResolvesPricesFromCatalog(t *testing.T) {
	env := newTestEnv(t)
	item := env.seedMenuItem(t, "Burger", 500)
	option := env.seedOption(t, item, "Extras", "Cheese", 50)

	result, err := env.sales.SubmitOrder(context.Background(), &SubmitOrderInput{
		UserID: env.userID,
		Items: []OrderItemInput{{
			MenuItemID: &item.ID,
			Quantity:   2,
			Options:    []OrderItemOptionInput{{OptionID: &option.ID}},
		}},
	})
	require.NoError(t, err)

	// 2 x (5.00 + 0.50)
	assert.Equal(t, 11.00, result.Total)

	sale := env.loadSale(t, result.SaleID)
	require.Len(t, sale.Items, 1)
	line := sale.Items[0]
	assert.Equal(t, "Burger", line.Name)
	assert.Equal(t, int64(500), line.UnitPrice)
	assert.Equal(t, int64(1100), line.TotalPrice)

	options := line.SelectedOptions()
	require.Len(t, options, 1)
	assert.Equal(t, "Cheese", options[0].Name)
	assert.Equal(t, "Extras", options[0].GroupName)
	assert.Equal(t, int64(50), options[0].PriceAdjustment)
}

func TestSubmitOrderSuppliedPriceWinsOverCatalog(t *testing.T) {
	env := newTestEnv(t)
	item := env.seedMenuItem(t, "Burger", 500)

	result, err := env.sales.SubmitOrder(context.Background(), &SubmitOrderInput{
		UserID: env.userID,
		Items: []OrderItemInput{{
			MenuItemID: &item.ID,
			Quantity:   1,
			UnitPrice:  4.00,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 4.00, result.Total)
}

func TestSubmitOrderRejectsClosedSale(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID: env.userID,
		Items:  []OrderItemInput{lineItem("Coffee", 1, 2.00)},
	})
	require.NoError(t, err)
	require.NoError(t, env.sales.Pay(ctx, result.SaleID, "cash"))

	_, err = env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID: env.userID,
		SaleID: &result.SaleID,
		Items:  []OrderItemInput{lineItem("Tea", 1, 1.00)},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestSubmitOrderValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{UserID: env.userID})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))

	_, err = env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID: env.userID,
		Items:  []OrderItemInput{lineItem("Tea", 0, 1.00)},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))

	_, err = env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID: env.userID,
		Items:  []OrderItemInput{{Quantity: 1}},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
}

func TestSubmitOrderUnknownTable(t *testing.T) {
	env := newTestEnv(t)
	missing := uuid.New()

	_, err := env.sales.SubmitOrder(context.Background(), &SubmitOrderInput{
		UserID:  env.userID,
		TableID: &missing,
		Items:   []OrderItemInput{lineItem("Tea", 1, 1.00)},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestPayCompletesSaleAndBooksTransaction(t *testing.T) {
	env := newTestEnv(t)
	table := env.seedTable(t, "T1")
	ctx := context.Background()

	result, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID:  env.userID,
		TableID: &table.ID,
		Items:   []OrderItemInput{lineItem("Noodles", 2, 3.50)},
	})
	require.NoError(t, err)

	require.NoError(t, env.sales.Pay(ctx, result.SaleID, "cash"))

	sale := env.loadSale(t, result.SaleID)
	assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
	assert.Equal(t, "cash", sale.PaymentMethod)

	txn := env.saleTransaction(t, result.SaleID)
	require.NotNil(t, txn)
	assert.Equal(t, enum.TransactionTypeIncome, txn.Type)
	assert.Equal(t, int64(700), txn.Amount)
	assert.Equal(t, 1, txn.Quantity)

	got := env.loadTable(t, table.ID)
	assert.Equal(t, enum.TableStatusPaid, got.Status)
	assert.Nil(t, got.CurrentSaleID)
}

func TestPayIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID: env.userID,
		Items:  []OrderItemInput{lineItem("Coffee", 1, 2.00)},
	})
	require.NoError(t, err)

	require.NoError(t, env.sales.Pay(ctx, result.SaleID, "cash"))
	require.NoError(t, env.sales.Pay(ctx, result.SaleID, "card"))

	var count int64
	require.NoError(t, env.db.Model(&entity.Transaction{}).
		Where("sale_id = ?", result.SaleID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The second pay must not overwrite the payment method
	sale := env.loadSale(t, result.SaleID)
	assert.Equal(t, "cash", sale.PaymentMethod)
}

func TestPayCancelledSaleRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID: env.userID,
		Items:  []OrderItemInput{lineItem("Coffee", 1, 2.00)},
	})
	require.NoError(t, err)
	require.NoError(t, env.sales.CancelSale(ctx, result.SaleID))

	err = env.sales.Pay(ctx, result.SaleID, "cash")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestCancelItemRecomputesTotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID: env.userID,
		Items: []OrderItemInput{
			lineItem("Noodles", 1, 3.50),
			lineItem("Tea", 2, 1.00),
		},
	})
	require.NoError(t, err)

	sale := env.loadSale(t, result.SaleID)
	require.Len(t, sale.Items, 2)
	var teaID uuid.UUID
	for _, item := range sale.Items {
		if item.Name == "Tea" {
			teaID = item.ID
		}
	}

	state, err := env.sales.CancelItem(ctx, result.SaleID, teaID)
	require.NoError(t, err)
	assert.Equal(t, 3.50, state.NewTotal)
	assert.Equal(t, enum.SaleStatusOpen, state.SaleStatus)

	sale = env.loadSale(t, result.SaleID)
	assert.Equal(t, int64(350), sale.TotalAmount)
	assert.Equal(t, 1, sale.ActiveItemCount())

	// Cancelling again is a no-op
	state, err = env.sales.CancelItem(ctx, result.SaleID, teaID)
	require.NoError(t, err)
	assert.Equal(t, 3.50, state.NewTotal)
}

func TestCancelLastItemCascades(t *testing.T) {
	env := newTestEnv(t)
	table := env.seedTable(t, "T1")
	ctx := context.Background()

	result, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID:  env.userID,
		TableID: &table.ID,
		Items:   []OrderItemInput{lineItem("Noodles", 1, 3.50)},
	})
	require.NoError(t, err)

	sale := env.loadSale(t, result.SaleID)
	require.Len(t, sale.Items, 1)

	state, err := env.sales.CancelItem(ctx, result.SaleID, sale.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, state.NewTotal)
	assert.Equal(t, enum.SaleStatusCancelled, state.SaleStatus)

	got := env.loadTable(t, table.ID)
	assert.Equal(t, enum.TableStatusAvailable, got.Status)
	assert.Nil(t, got.CurrentSaleID)
	assert.Nil(t, env.saleTransaction(t, result.SaleID))
}

func TestCancelItemAfterPayUpdatesLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID: env.userID,
		Items: []OrderItemInput{
			lineItem("Noodles", 1, 3.50),
			lineItem("Tea", 1, 1.00),
		},
	})
	require.NoError(t, err)
	require.NoError(t, env.sales.Pay(ctx, result.SaleID, "cash"))

	sale := env.loadSale(t, result.SaleID)
	var teaID uuid.UUID
	for _, item := range sale.Items {
		if item.Name == "Tea" {
			teaID = item.ID
		}
	}

	state, err := env.sales.CancelItem(ctx, result.SaleID, teaID)
	require.NoError(t, err)
	assert.Equal(t, 3.50, state.NewTotal)
	assert.Equal(t, enum.SaleStatusCompleted, state.SaleStatus)

	txn := env.saleTransaction(t, result.SaleID)
	require.NotNil(t, txn)
	assert.Equal(t, int64(350), txn.Amount)
	assert.Equal(t, 1, txn.Quantity)
}

func TestUncancelItemRestoresCascadedSale(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID: env.userID,
		Items:  []OrderItemInput{lineItem("Noodles", 1, 3.50)},
	})
	require.NoError(t, err)
	require.NoError(t, env.sales.Pay(ctx, result.SaleID, "cash"))

	sale := env.loadSale(t, result.SaleID)
	itemID := sale.Items[0].ID

	// Last active item: the sale cancels and the ledger entry goes away
	state, err := env.sales.CancelItem(ctx, result.SaleID, itemID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusCancelled, state.SaleStatus)
	assert.Nil(t, env.saleTransaction(t, result.SaleID))

	// Restoring the item brings the sale back to completed with its ledger
	state, err = env.sales.UncancelItem(ctx, result.SaleID, itemID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusCompleted, state.SaleStatus)
	assert.Equal(t, 3.50, state.NewTotal)

	txn := env.saleTransaction(t, result.SaleID)
	require.NotNil(t, txn)
	assert.Equal(t, int64(350), txn.Amount)
}

func TestCancelSaleFreesTableAndDeletesLedger(t *testing.T) {
	env := newTestEnv(t)
	table := env.seedTable(t, "T1")
	ctx := context.Background()

	result, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID:  env.userID,
		TableID: &table.ID,
		Items:   []OrderItemInput{lineItem("Noodles", 1, 3.50)},
	})
	require.NoError(t, err)

	require.NoError(t, env.sales.CancelSale(ctx, result.SaleID))
	// Idempotent
	require.NoError(t, env.sales.CancelSale(ctx, result.SaleID))

	sale := env.loadSale(t, result.SaleID)
	assert.Equal(t, enum.SaleStatusCancelled, sale.Status)

	got := env.loadTable(t, table.ID)
	assert.Equal(t, enum.TableStatusAvailable, got.Status)
	assert.Nil(t, got.CurrentSaleID)
	assert.Nil(t, env.saleTransaction(t, result.SaleID))
}

func TestUncancelSaleRestoresLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID: env.userID,
		Items:  []OrderItemInput{lineItem("Noodles", 2, 3.50)},
	})
	require.NoError(t, err)
	require.NoError(t, env.sales.Pay(ctx, result.SaleID, "cash"))
	require.NoError(t, env.sales.CancelSale(ctx, result.SaleID))

	require.NoError(t, env.sales.UncancelSale(ctx, result.SaleID))
	// Restoring a sale that is not cancelled is a no-op
	require.NoError(t, env.sales.UncancelSale(ctx, result.SaleID))

	sale := env.loadSale(t, result.SaleID)
	assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
	assert.Equal(t, int64(700), sale.TotalAmount)

	txn := env.saleTransaction(t, result.SaleID)
	require.NotNil(t, txn)
	assert.Equal(t, int64(700), txn.Amount)
}

func TestUncancelSaleWithAllItemsCancelledHasNoLedger(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID: env.userID,
		Items:  []OrderItemInput{lineItem("Noodles", 1, 3.50)},
	})
	require.NoError(t, err)

	sale := env.loadSale(t, result.SaleID)
	_, err = env.sales.CancelItem(ctx, result.SaleID, sale.Items[0].ID)
	require.NoError(t, err)

	require.NoError(t, env.sales.UncancelSale(ctx, result.SaleID))

	sale = env.loadSale(t, result.SaleID)
	assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
	assert.Equal(t, int64(0), sale.TotalAmount)
	assert.Nil(t, env.saleTransaction(t, result.SaleID))
}

func TestCancelItemUnknownSaleOrItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.sales.CancelItem(ctx, uuid.New(), uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	result, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID: env.userID,
		Items:  []OrderItemInput{lineItem("Tea", 1, 1.00)},
	})
	require.NoError(t, err)

	_, err = env.sales.CancelItem(ctx, result.SaleID, uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
