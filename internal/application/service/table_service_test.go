package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/minthuka/bookpos-api/internal/domain/enum"
	"github.com/minthuka/bookpos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListTables(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	table, err := env.tables.CreateTable(ctx, &CreateTableInput{Name: "Window 1"})
	require.NoError(t, err)
	assert.Equal(t, "Window 1", table.Name)
	assert.True(t, table.IsActive)
	assert.Equal(t, enum.TableStatusAvailable, table.Status)

	_, err = env.tables.CreateTable(ctx, &CreateTableInput{})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))

	tables, err := env.tables.ListTables(ctx, true)
	require.NoError(t, err)
	assert.Len(t, tables, 1)
}

func TestDeleteOccupiedTableRejected(t *testing.T) {
	env := newTestEnv(t)
	table := env.seedTable(t, "T1")
	ctx := context.Background()

	_, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID:  env.userID,
		TableID: &table.ID,
		Items:   []OrderItemInput{lineItem("Tea", 1, 1.00)},
	})
	require.NoError(t, err)

	err = env.tables.DeleteTable(ctx, table.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestMoveSale(t *testing.T) {
	env := newTestEnv(t)
	source := env.seedTable(t, "T1")
	target := env.seedTable(t, "T2")
	ctx := context.Background()

	result, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID:  env.userID,
		TableID: &source.ID,
		Items:   []OrderItemInput{lineItem("Noodles", 1, 3.50)},
	})
	require.NoError(t, err)

	require.NoError(t, env.tables.MoveSale(ctx, source.ID, target.ID))

	from := env.loadTable(t, source.ID)
	assert.Equal(t, enum.TableStatusAvailable, from.Status)
	assert.Nil(t, from.CurrentSaleID)

	to := env.loadTable(t, target.ID)
	assert.Equal(t, enum.TableStatusOccupied, to.Status)
	require.NotNil(t, to.CurrentSaleID)
	assert.Equal(t, result.SaleID, *to.CurrentSaleID)

	sale := env.loadSale(t, result.SaleID)
	require.NotNil(t, sale.TableID)
	assert.Equal(t, target.ID, *sale.TableID)

	// Later submissions for the target table land on the moved sale
	followUp, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID:  env.userID,
		TableID: &target.ID,
		Items:   []OrderItemInput{lineItem("Tea", 1, 1.00)},
	})
	require.NoError(t, err)
	assert.Equal(t, result.SaleID, followUp.SaleID)
}

func TestMoveSaleRejections(t *testing.T) {
	env := newTestEnv(t)
	source := env.seedTable(t, "T1")
	target := env.seedTable(t, "T2")
	ctx := context.Background()

	// Same table
	err := env.tables.MoveSale(ctx, source.ID, source.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))

	// Source has no sale
	err = env.tables.MoveSale(ctx, source.ID, target.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))

	// Target occupied
	_, err = env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID:  env.userID,
		TableID: &source.ID,
		Items:   []OrderItemInput{lineItem("Tea", 1, 1.00)},
	})
	require.NoError(t, err)
	_, err = env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID:  env.userID,
		TableID: &target.ID,
		Items:   []OrderItemInput{lineItem("Tea", 1, 1.00)},
	})
	require.NoError(t, err)

	err = env.tables.MoveSale(ctx, source.ID, target.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	// Unknown target
	missing := uuid.New()
	err = env.tables.MoveSale(ctx, source.ID, missing)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestMoveSaleToInactiveTableRejected(t *testing.T) {
	env := newTestEnv(t)
	source := env.seedTable(t, "T1")
	target := env.seedTable(t, "T2")
	ctx := context.Background()

	inactive := false
	_, err := env.tables.UpdateTable(ctx, target.ID, &UpdateTableInput{IsActive: &inactive})
	require.NoError(t, err)

	_, err = env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID:  env.userID,
		TableID: &source.ID,
		Items:   []OrderItemInput{lineItem("Tea", 1, 1.00)},
	})
	require.NoError(t, err)

	err = env.tables.MoveSale(ctx, source.ID, target.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidState))
}

func TestClearTable(t *testing.T) {
	env := newTestEnv(t)
	table := env.seedTable(t, "T1")
	ctx := context.Background()

	result, err := env.sales.SubmitOrder(ctx, &SubmitOrderInput{
		UserID:  env.userID,
		TableID: &table.ID,
		Items:   []OrderItemInput{lineItem("Tea", 1, 1.00)},
	})
	require.NoError(t, err)

	require.NoError(t, env.tables.ClearTable(ctx, table.ID))

	got := env.loadTable(t, table.ID)
	assert.Equal(t, enum.TableStatusAvailable, got.Status)
	assert.Nil(t, got.CurrentSaleID)

	// The sale itself is untouched
	sale := env.loadSale(t, result.SaleID)
	assert.Equal(t, enum.SaleStatusOpen, sale.Status)
}
