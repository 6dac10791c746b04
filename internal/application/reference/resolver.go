package reference

import (
	"context"
	"errors"
	"time"

	"github.com/gestor/backend/internal/domain/catalog"
	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/trade"
	"github.com/gestor/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Resolver resolves supplier and product ids to display names through a
// cache-then-repository lookup. Resolution is total: a missing or failing
// lookup yields a placeholder built from the id, never an error, so callers
// can render listings even when references are broken.
type Resolver struct {
	suppliers partner.SupplierRepository
	products  catalog.ProductRepository
	cache     cache.NameCache
	ttl       time.Duration
	logger    *zap.Logger
}

// NewResolver creates a new Resolver
func NewResolver(suppliers partner.SupplierRepository, products catalog.ProductRepository, nameCache cache.NameCache, ttl time.Duration, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		suppliers: suppliers,
		products:  products,
		cache:     nameCache,
		ttl:       ttl,
		logger:    logger,
	}
}

// SupplierName resolves a supplier id to its display name
func (r *Resolver) SupplierName(ctx context.Context, id uuid.UUID) string {
	key := "supplier:" + id.String()
	if name, ok := r.cache.Get(ctx, key); ok {
		return name
	}

	supplier, err := r.suppliers.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			r.logger.Warn("supplier lookup failed", zap.String("supplier_id", id.String()), zap.Error(err))
		}
		return "Fornecedor " + id.String()
	}

	r.cache.Set(ctx, key, supplier.Name, r.ttl)
	return supplier.Name
}

// ProductName resolves a product id to its display name
func (r *Resolver) ProductName(ctx context.Context, id uuid.UUID) string {
	key := "product:" + id.String()
	if name, ok := r.cache.Get(ctx, key); ok {
		return name
	}

	product, err := r.products.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			r.logger.Warn("product lookup failed", zap.String("product_id", id.String()), zap.Error(err))
		}
		return "Produto " + id.String()
	}

	r.cache.Set(ctx, key, product.Name, r.ttl)
	return product.Name
}

// Ensure Resolver implements trade.NameResolver
var _ trade.NameResolver = (*Resolver)(nil)

