package service

import (
	"context"
	"testing"

	"github.com/minthuka/bookpos-api/internal/domain/entity"
	"github.com/minthuka/bookpos-api/internal/domain/enum"
	"github.com/minthuka/bookpos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) posSalesCategory(t *testing.T) entity.Category {
	t.Helper()
	var category entity.Category
	require.NoError(t, e.db.First(&category, "name = ?", entity.POSSalesCategory).Error)
	return category
}

func TestCreateTransaction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	category, err := env.txns.CreateCategory(ctx, &CategoryInput{
		Name: "Rent",
		Type: enum.TransactionTypeExpense,
	})
	require.NoError(t, err)

	txn, err := env.txns.CreateTransaction(ctx, env.userID, &TransactionInput{
		CategoryID:  category.ID,
		Type:        enum.TransactionTypeExpense,
		Amount:      120.50,
		Description: "August rent",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12050), txn.Amount)
	assert.Equal(t, 1, txn.Quantity)
	assert.Nil(t, txn.SaleID)
	assert.False(t, txn.Date.IsZero())

	_, err = env.txns.CreateTransaction(ctx, env.userID, &TransactionInput{
		CategoryID: category.ID,
		Amount:     0,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
}

func TestSaleDerivedTransactionsAreReadOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID: env.userID,
		Items:  []OrderItemInput{lineItem("Coffee", 1, 2.00)},
	})
	require.NoError(t, err)
	require.NoError(t, env.sales.Pay(ctx, result.SaleID, "cash"))

	txn := env.saleTransaction(t, result.SaleID)
	require.NotNil(t, txn)

	_, err = env.txns.UpdateTransaction(ctx, txn.ID, &TransactionInput{
		CategoryID: txn.CategoryID,
		Amount:     999,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))

	err = env.txns.DeleteTransaction(ctx, txn.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestUpdateAndDeleteManualTransaction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	category, err := env.txns.CreateCategory(ctx, &CategoryInput{
		Name: "Supplies",
		Type: enum.TransactionTypeExpense,
	})
	require.NoError(t, err)

	txn, err := env.txns.CreateTransaction(ctx, env.userID, &TransactionInput{
		CategoryID: category.ID,
		Type:       enum.TransactionTypeExpense,
		Amount:     10,
	})
	require.NoError(t, err)

	updated, err := env.txns.UpdateTransaction(ctx, txn.ID, &TransactionInput{
		Type:        enum.TransactionTypeExpense,
		Amount:      12.25,
		Description: "Napkins",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1225), updated.Amount)
	assert.Equal(t, category.ID, updated.CategoryID)

	require.NoError(t, env.txns.DeleteTransaction(ctx, txn.ID))

	_, err = env.txns.GetTransaction(ctx, txn.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestCategoryNameConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.txns.CreateCategory(ctx, &CategoryInput{Name: "Rent"})
	require.NoError(t, err)

	_, err = env.txns.CreateCategory(ctx, &CategoryInput{Name: "Rent"})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestPOSSalesCategoryIsProtected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	category := env.posSalesCategory(t)

	_, err := env.txns.UpdateCategory(ctx, category.ID, &CategoryInput{Name: "Renamed"})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))

	err = env.txns.DeleteCategory(ctx, category.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}
