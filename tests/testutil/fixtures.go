// Package testutil provides shared fixtures for integration tests.
package testutil

import (
	"testing"
	"time"

	"github.com/gestor/backend/internal/domain/catalog"
	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// NewSupplier builds a supplier with a generated code
func NewSupplier(t *testing.T, name string) *partner.Supplier {
	t.Helper()
	supplier, err := partner.NewSupplier(name, "SUP-"+uuid.NewString()[:8])
	require.NoError(t, err)
	return supplier
}

// NewProduct builds a product priced at the given value
func NewProduct(t *testing.T, name string, price int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "PRD-"+uuid.NewString()[:8], "un", decimal.NewFromInt(price))
	require.NoError(t, err)
	return product
}

// OrderOption mutates a purchase order under construction
type OrderOption func(t *testing.T, o *trade.PurchaseOrder)

// WithItem adds a line item to the order
func WithItem(productID uuid.UUID, quantity int64, unitPrice int64) OrderOption {
	return func(t *testing.T, o *trade.PurchaseOrder) {
		t.Helper()
		_, err := o.AddItem(productID, quantity, decimal.NewFromInt(unitPrice))
		require.NoError(t, err)
	}
}

// NewOrder builds a purchase order for the given supplier
func NewOrder(t *testing.T, supplierID uuid.UUID, orderDate, deliveryDate time.Time, status, description string, opts ...OrderOption) *trade.PurchaseOrder {
	t.Helper()
	order, err := trade.NewPurchaseOrder(supplierID, orderDate, deliveryDate, decimal.Zero, description, status)
	require.NoError(t, err)
	for _, opt := range opts {
		opt(t, order)
	}
	return order
}

// Date builds a UTC calendar date
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
