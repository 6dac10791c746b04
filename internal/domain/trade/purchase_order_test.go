package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers for PurchaseOrder
func createTestOrder(t *testing.T) *PurchaseOrder {
	supplierID := uuid.New()
	orderDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	deliveryDate := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	order, err := NewPurchaseOrder(supplierID, orderDate, deliveryDate, decimal.NewFromInt(20), "Ração Premium", "pendente")
	require.NoError(t, err)
	return order
}

func addTestItem(t *testing.T, order *PurchaseOrder, quantity int64, price int64) *LineItem {
	item, err := order.AddItem(uuid.New(), quantity, decimal.NewFromInt(price))
	require.NoError(t, err)
	return item
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("creates order with normalized status", func(t *testing.T) {
		order := createTestOrder(t)

		assert.NotEqual(t, uuid.Nil, order.ID)
		assert.Equal(t, StatusPending, order.Status)
		assert.Equal(t, "pendente", order.RawStatus)
		assert.True(t, order.GoodsCost.IsZero())
		assert.True(t, order.TotalValue.Equal(decimal.NewFromInt(20)))
		assert.Empty(t, order.Items)
	})

	t.Run("fails with nil supplier", func(t *testing.T) {
		_, err := NewPurchaseOrder(uuid.Nil, time.Now(), time.Now(), decimal.Zero, "", "")
		assert.Error(t, err)
	})

	t.Run("fails with negative freight", func(t *testing.T) {
		_, err := NewPurchaseOrder(uuid.New(), time.Now(), time.Now(), decimal.NewFromInt(-1), "", "")
		assert.Error(t, err)
	})

	t.Run("truncates dates to calendar days", func(t *testing.T) {
		orderDate := time.Date(2026, 3, 10, 14, 35, 12, 0, time.UTC)
		order, err := NewPurchaseOrder(uuid.New(), orderDate, time.Time{}, decimal.Zero, "", "")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), order.OrderDate)
		assert.True(t, order.DeliveryDate.IsZero())
	})
}

func TestPurchaseOrder_AddItem(t *testing.T) {
	t.Run("adds item and recalculates totals", func(t *testing.T) {
		order := createTestOrder(t)

		addTestItem(t, order, 5, 10) // subtotal 50
		addTestItem(t, order, 2, 25) // subtotal 50

		assert.Equal(t, 2, order.ItemCount())
		assert.True(t, order.GoodsCost.Equal(decimal.NewFromInt(100)))
		// Invariant: total = goods cost + freight
		assert.True(t, order.TotalValue.Equal(decimal.NewFromInt(120)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		order := createTestOrder(t)
		_, err := order.AddItem(uuid.New(), 0, decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		order := createTestOrder(t)
		_, err := order.AddItem(uuid.New(), 1, decimal.NewFromInt(-5))
		assert.Error(t, err)
	})

	t.Run("rejects nil product", func(t *testing.T) {
		order := createTestOrder(t)
		_, err := order.AddItem(uuid.Nil, 1, decimal.NewFromInt(5))
		assert.Error(t, err)
	})
}

func TestPurchaseOrder_UpdateItem(t *testing.T) {
	order := createTestOrder(t)
	item := addTestItem(t, order, 5, 10)

	err := order.UpdateItem(item.ID, 3, decimal.NewFromInt(20))
	require.NoError(t, err)

	updated := order.GetItem(item.ID)
	require.NotNil(t, updated)
	assert.Equal(t, int64(3), updated.Quantity)
	assert.True(t, updated.Subtotal.Equal(decimal.NewFromInt(60)))
	assert.True(t, order.GoodsCost.Equal(decimal.NewFromInt(60)))
	assert.True(t, order.TotalValue.Equal(decimal.NewFromInt(80)))

	err = order.UpdateItem(uuid.New(), 1, decimal.NewFromInt(1))
	assert.Error(t, err)
}

func TestPurchaseOrder_RemoveItem(t *testing.T) {
	order := createTestOrder(t)
	item := addTestItem(t, order, 5, 10)
	addTestItem(t, order, 1, 30)

	err := order.RemoveItem(item.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, order.ItemCount())
	assert.True(t, order.GoodsCost.Equal(decimal.NewFromInt(30)))
	assert.True(t, order.TotalValue.Equal(decimal.NewFromInt(50)))

	err = order.RemoveItem(item.ID)
	assert.Error(t, err)
}

func TestPurchaseOrder_SetFreight(t *testing.T) {
	order := createTestOrder(t)
	addTestItem(t, order, 10, 10) // goods 100

	require.NoError(t, order.SetFreight(decimal.NewFromInt(35)))
	assert.True(t, order.TotalValue.Equal(decimal.NewFromInt(135)))

	assert.Error(t, order.SetFreight(decimal.NewFromInt(-1)))
}

func TestPurchaseOrder_SetStatus(t *testing.T) {
	order := createTestOrder(t)

	order.SetStatus("ENTREGUE")
	assert.Equal(t, StatusDelivered, order.Status)
	assert.Equal(t, "ENTREGUE", order.RawStatus)
	assert.Equal(t, "Entregue", order.StatusLabel())

	order.SetStatus("algo estranho")
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, "algo estranho", order.StatusLabel())
}

func TestPurchaseOrder_HasProduct(t *testing.T) {
	order := createTestOrder(t)
	productID := uuid.New()
	_, err := order.AddItem(productID, 1, decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.True(t, order.HasProduct(productID))
	assert.False(t, order.HasProduct(uuid.New()))
}
