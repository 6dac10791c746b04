package partner

import (
	"context"

	"github.com/google/uuid"
)

// SupplierRepository defines the persistence interface for suppliers
type SupplierRepository interface {
	FindAll(ctx context.Context) ([]Supplier, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
}
