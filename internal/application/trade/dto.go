package trade

import (
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// dateLayout is the wire format for calendar dates
const dateLayout = "2006-01-02"

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID   uuid.UUID          `json:"supplier_id" binding:"required"`
	OrderDate    string             `json:"order_date"`
	DeliveryDate string             `json:"delivery_date"`
	FreightValue *decimal.Decimal   `json:"freight_value"`
	Description  string             `json:"description" binding:"max=2000"`
	Status       string             `json:"status" binding:"max=50"`
	Items        []OrderItemRequest `json:"items" binding:"dive"`
}

// OrderItemRequest represents a line item in a create or update request
type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// UpdatePurchaseOrderRequest represents a request to update a purchase order.
// Nil fields are left untouched.
type UpdatePurchaseOrderRequest struct {
	SupplierID   *uuid.UUID       `json:"supplier_id"`
	OrderDate    *string          `json:"order_date"`
	DeliveryDate *string          `json:"delivery_date"`
	FreightValue *decimal.Decimal `json:"freight_value"`
	Description  *string          `json:"description" binding:"omitempty,max=2000"`
	Status       *string          `json:"status" binding:"omitempty,max=50"`
}

// ListPurchaseOrdersRequest carries the filter, sort and pagination query
// parameters of a listing request. All filter fields arrive as strings and
// are parsed forgivingly: a malformed date, number or id simply deactivates
// that filter instead of failing the request.
type ListPurchaseOrdersRequest struct {
	Search        string   `form:"search"`
	SupplierID    string   `form:"supplier_id"`
	Status        string   `form:"status"`
	ProductIDs    []string `form:"product_ids"`
	DateField     string   `form:"date_field"`
	DateFrom      string   `form:"date_from"`
	DateTo        string   `form:"date_to"`
	ValueMin      string   `form:"value_min"`
	ValueMax      string   `form:"value_max"`
	SortBy        string   `form:"sort_by"`
	SortDateField string   `form:"sort_date_field"`
	SortDir       string   `form:"sort_dir"`
	Page          int      `form:"page,default=1"`
	PageSize      int      `form:"page_size,default=20"`
}

// ToQuerySpec converts the request into a domain query specification
func (r ListPurchaseOrdersRequest) ToQuerySpec() trade.QuerySpec {
	spec := trade.QuerySpec{
		Search:        r.Search,
		DateField:     parseDateField(r.DateField),
		SortDateField: parseDateField(r.SortDateField),
	}

	if id, err := uuid.Parse(r.SupplierID); err == nil && id != uuid.Nil {
		spec.SupplierID = &id
	}

	if r.Status != "" {
		status := trade.DeliveryStatus(r.Status)
		if !status.IsValid() {
			status = trade.NormalizeDeliveryStatus(r.Status)
		}
		spec.Status = &status
	}

	for _, raw := range r.ProductIDs {
		if id, err := uuid.Parse(raw); err == nil && id != uuid.Nil {
			spec.ProductIDs = append(spec.ProductIDs, id)
		}
	}

	spec.DateFrom = parseOptionalDate(r.DateFrom)
	spec.DateTo = parseOptionalDate(r.DateTo)
	spec.ValueMin = parseOptionalDecimal(r.ValueMin)
	spec.ValueMax = parseOptionalDecimal(r.ValueMax)

	switch trade.SortKind(r.SortBy) {
	case trade.SortKindDate, trade.SortKindValue, trade.SortKindSupplier, trade.SortKindStatus:
		spec.SortKind = trade.SortKind(r.SortBy)
	}
	if r.SortDir == string(trade.SortDesc) {
		spec.SortDirection = trade.SortDesc
	} else {
		spec.SortDirection = trade.SortAsc
	}

	return spec
}

func parseDateField(raw string) trade.DateField {
	if raw == string(trade.DateFieldDelivery) {
		return trade.DateFieldDelivery
	}
	return trade.DateFieldOrder
}

func parseOptionalDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	return &parsed
}

func parseOptionalDecimal(raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &parsed
}

// parseLooseDate parses a calendar date for create and update requests,
// treating empty or malformed input as unknown (zero time).
func parseLooseDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// OrderItemResponse represents a line item in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	SupplierID   uuid.UUID           `json:"supplier_id"`
	SupplierName string              `json:"supplier_name"`
	OrderDate    string              `json:"order_date"`
	DeliveryDate string              `json:"delivery_date"`
	FreightValue decimal.Decimal     `json:"freight_value"`
	GoodsCost    decimal.Decimal     `json:"goods_cost"`
	TotalValue   decimal.Decimal     `json:"total_value"`
	Description  string              `json:"description"`
	Status       string              `json:"status"`
	StatusLabel  string              `json:"status_label"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// ListPurchaseOrdersResponse is a paginated page of purchase orders
type ListPurchaseOrdersResponse = shared.Paginated[PurchaseOrderResponse]

// OrderSummaryResponse carries dashboard metrics over the full order set
type OrderSummaryResponse struct {
	TotalOrders    int64           `json:"total_orders"`
	DeliveredCount int64           `json:"delivered_count"`
	PendingCount   int64           `json:"pending_count"`
	TotalValue     decimal.Decimal `json:"total_value"`
	AverageTicket  decimal.Decimal `json:"average_ticket"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
