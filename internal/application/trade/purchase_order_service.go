package trade

import (
	"context"
	"errors"
	"time"

	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseOrderService handles purchase-order business operations. Listing
// and summary read the full order snapshot from the repository and run the
// in-memory query engine over it, so filters, sorts and metrics always agree
// with each other within a single request.
type PurchaseOrderService struct {
	orders    trade.PurchaseOrderRepository
	suppliers partner.SupplierRepository
	resolver  trade.NameResolver
	now       func() time.Time
	logger    *zap.Logger
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(orders trade.PurchaseOrderRepository, suppliers partner.SupplierRepository, resolver trade.NameResolver, logger *zap.Logger) *PurchaseOrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseOrderService{
		orders:    orders,
		suppliers: suppliers,
		resolver:  resolver,
		now:       time.Now,
		logger:    logger,
	}
}

// Create creates a new purchase order with its items
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	if _, err := s.suppliers.FindByID(ctx, req.SupplierID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SUPPLIER_NOT_FOUND", "Supplier does not exist")
		}
		return nil, err
	}

	freight := decimal.Zero
	if req.FreightValue != nil {
		freight = *req.FreightValue
	}

	order, err := trade.NewPurchaseOrder(
		req.SupplierID,
		parseLooseDate(req.OrderDate),
		parseLooseDate(req.DeliveryDate),
		freight,
		req.Description,
		req.Status,
	)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		if _, err := order.AddItem(item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("purchase order created",
		zap.String("order_id", order.ID.String()),
		zap.String("supplier_id", order.SupplierID.String()),
		zap.Int("items", order.ItemCount()),
	)

	return s.toResponse(ctx, order), nil
}

// GetByID returns a single purchase order
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, order), nil
}

// Update applies a partial update to a purchase order
func (s *PurchaseOrderService) Update(ctx context.Context, id uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SupplierID != nil {
		if _, err := s.suppliers.FindByID(ctx, *req.SupplierID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("SUPPLIER_NOT_FOUND", "Supplier does not exist")
			}
			return nil, err
		}
		order.SupplierID = *req.SupplierID
		order.Touch()
	}

	if req.OrderDate != nil || req.DeliveryDate != nil {
		orderDate := order.OrderDate
		deliveryDate := order.DeliveryDate
		if req.OrderDate != nil {
			orderDate = parseLooseDate(*req.OrderDate)
		}
		if req.DeliveryDate != nil {
			deliveryDate = parseLooseDate(*req.DeliveryDate)
		}
		order.SetDates(orderDate, deliveryDate)
	}

	if req.FreightValue != nil {
		if err := order.SetFreight(*req.FreightValue); err != nil {
			return nil, err
		}
	}

	if req.Description != nil {
		order.SetDescription(*req.Description)
	}

	if req.Status != nil {
		order.SetStatus(*req.Status)
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, order), nil
}

// Delete removes a purchase order and its items
func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("purchase order deleted", zap.String("order_id", id.String()))
	return nil
}

// AddItem adds a line item to an order
func (s *PurchaseOrderService) AddItem(ctx context.Context, orderID uuid.UUID, req OrderItemRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if _, err := order.AddItem(req.ProductID, req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, order), nil
}

// UpdateItem updates an existing line item
func (s *PurchaseOrderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req OrderItemRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.UpdateItem(itemID, req.Quantity, req.UnitPrice); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, order), nil
}

// RemoveItem removes a line item from an order
func (s *PurchaseOrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, order), nil
}

// List returns the requested page of filtered and sorted purchase orders
func (s *PurchaseOrderService) List(ctx context.Context, req ListPurchaseOrdersRequest) (*ListPurchaseOrdersResponse, error) {
	snapshot, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := trade.Query(ctx, snapshot, s.resolver, req.ToQuerySpec())

	page, err := trade.Paginate(filtered, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	items := make([]PurchaseOrderResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *s.toResponse(ctx, &page.Items[i])
	}

	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// Summary computes dashboard metrics over the unfiltered order set
func (s *PurchaseOrderService) Summary(ctx context.Context) (*OrderSummaryResponse, error) {
	snapshot, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	metrics := trade.ComputeOrderMetrics(snapshot, s.now())
	return &OrderSummaryResponse{
		TotalOrders:    metrics.TotalOrders,
		DeliveredCount: metrics.DeliveredCount,
		PendingCount:   metrics.PendingCount,
		TotalValue:     metrics.TotalValue,
		AverageTicket:  metrics.AverageTicket,
	}, nil
}

// toResponse maps a domain order to its API representation, resolving
// supplier and product names through the resolver
func (s *PurchaseOrderService) toResponse(ctx context.Context, order *trade.PurchaseOrder) *PurchaseOrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: s.resolver.ProductName(ctx, item.ProductID),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		}
	}

	return &PurchaseOrderResponse{
		ID:           order.ID,
		SupplierID:   order.SupplierID,
		SupplierName: s.resolver.SupplierName(ctx, order.SupplierID),
		OrderDate:    formatDate(order.OrderDate),
		DeliveryDate: formatDate(order.DeliveryDate),
		FreightValue: order.FreightValue,
		GoodsCost:    order.GoodsCost,
		TotalValue:   order.TotalValue,
		Description:  order.Description,
		Status:       string(order.Status),
		StatusLabel:  order.StatusLabel(),
		Items:        items,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}
