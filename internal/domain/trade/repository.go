package trade

import (
	"context"

	"github.com/google/uuid"
)

// PurchaseOrderRepository defines the persistence interface for purchase
// orders. FindAll returns the full collection in insertion order: the query
// engine filters, sorts and paginates in memory over that snapshot.
type PurchaseOrderRepository interface {
	FindAll(ctx context.Context) ([]PurchaseOrder, error)
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
