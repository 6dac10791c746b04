package trade

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// searchDateLayout is the layout used when matching free-text search
// against order and delivery dates.
const searchDateLayout = "2006-01-02"

// DateField selects which of the two order dates a filter or sort applies to
type DateField string

const (
	DateFieldOrder    DateField = "order"
	DateFieldDelivery DateField = "delivery"
)

// SortKind identifies the sortable dimension of a query
type SortKind string

const (
	SortKindNone     SortKind = ""
	SortKindDate     SortKind = "date"
	SortKindValue    SortKind = "value"
	SortKindSupplier SortKind = "supplier"
	SortKindStatus   SortKind = "status"
)

// SortDirection is the sort direction of a query
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// NameResolver maps supplier and product ids to display names. Both methods
// are total: unknown ids resolve to a placeholder, never an error.
type NameResolver interface {
	SupplierName(ctx context.Context, id uuid.UUID) string
	ProductName(ctx context.Context, id uuid.UUID) string
}

// QuerySpec is an immutable filter and sort specification for the purchase
// order query engine. Nil pointer fields and empty slices mean "no
// constraint"; all active filters combine with logical AND.
type QuerySpec struct {
	Search     string
	SupplierID *uuid.UUID
	Status     *DeliveryStatus
	ProductIDs []uuid.UUID
	DateField  DateField // date-range filter target, defaults to order date
	DateFrom   *time.Time
	DateTo     *time.Time
	ValueMin   *decimal.Decimal
	ValueMax   *decimal.Decimal

	SortKind      SortKind
	SortDateField DateField // sort target when SortKind is date, defaults to order date
	SortDirection SortDirection
}

// Query filters and sorts the given order set per the QuerySpec, returning a new
// slice. The input is never mutated; with no sort kind the repository order
// is preserved, and all sorts are stable with ties kept in repository order.
func Query(ctx context.Context, orders []PurchaseOrder, resolver NameResolver, spec QuerySpec) []PurchaseOrder {
	result := make([]PurchaseOrder, 0, len(orders))
	for _, order := range orders {
		if spec.matches(order) {
			result = append(result, order)
		}
	}

	if spec.SortKind == SortKindNone {
		return result
	}

	less := spec.comparator(ctx, result, resolver)
	if less == nil {
		return result
	}
	sort.SliceStable(result, func(i, j int) bool {
		if spec.SortDirection == SortDesc {
			return less(j, i)
		}
		return less(i, j)
	})

	return result
}

// matches reports whether an order satisfies every active filter
func (s QuerySpec) matches(o PurchaseOrder) bool {
	if !s.matchesSearch(o) {
		return false
	}
	if s.SupplierID != nil && o.SupplierID != *s.SupplierID {
		return false
	}
	if s.Status != nil && o.Status != *s.Status {
		return false
	}
	if !s.matchesProducts(o) {
		return false
	}
	if !s.matchesDateRange(o) {
		return false
	}
	if !s.matchesValueRange(o) {
		return false
	}
	return true
}

func (s QuerySpec) matchesSearch(o PurchaseOrder) bool {
	if s.Search == "" {
		return true
	}
	needle := strings.ToLower(s.Search)
	if strings.Contains(strings.ToLower(o.Description), needle) {
		return true
	}
	if !o.OrderDate.IsZero() && strings.Contains(o.OrderDate.Format(searchDateLayout), needle) {
		return true
	}
	if !o.DeliveryDate.IsZero() && strings.Contains(o.DeliveryDate.Format(searchDateLayout), needle) {
		return true
	}
	return false
}

// matchesProducts matches when any line item references a selected product
func (s QuerySpec) matchesProducts(o PurchaseOrder) bool {
	if len(s.ProductIDs) == 0 {
		return true
	}
	for _, productID := range s.ProductIDs {
		if o.HasProduct(productID) {
			return true
		}
	}
	return false
}

// matchesDateRange compares the selected date field against the inclusive
// bounds as calendar dates. An order whose selected date is unknown (zero)
// fails any active range filter rather than silently passing.
func (s QuerySpec) matchesDateRange(o PurchaseOrder) bool {
	if s.DateFrom == nil && s.DateTo == nil {
		return true
	}

	date := o.OrderDate
	if s.DateField == DateFieldDelivery {
		date = o.DeliveryDate
	}
	if date.IsZero() {
		return false
	}

	if s.DateFrom != nil && date.Before(truncateToDay(*s.DateFrom)) {
		return false
	}
	if s.DateTo != nil && date.After(truncateToDay(*s.DateTo)) {
		return false
	}
	return true
}

func (s QuerySpec) matchesValueRange(o PurchaseOrder) bool {
	if s.ValueMin != nil && o.TotalValue.LessThan(*s.ValueMin) {
		return false
	}
	if s.ValueMax != nil && o.TotalValue.GreaterThan(*s.ValueMax) {
		return false
	}
	return true
}

// comparator builds the ascending less function for the selected sort kind.
// Supplier names are resolved once per order and compared with Brazilian
// Portuguese collation rather than by id or byte order.
func (s QuerySpec) comparator(ctx context.Context, orders []PurchaseOrder, resolver NameResolver) func(i, j int) bool {
	switch s.SortKind {
	case SortKindDate:
		field := s.SortDateField
		return func(i, j int) bool {
			a, b := orders[i].OrderDate, orders[j].OrderDate
			if field == DateFieldDelivery {
				a, b = orders[i].DeliveryDate, orders[j].DeliveryDate
			}
			// Unknown dates sort before any known date
			if a.IsZero() || b.IsZero() {
				return a.IsZero() && !b.IsZero()
			}
			return a.Before(b)
		}
	case SortKindValue:
		return func(i, j int) bool {
			return orders[i].TotalValue.LessThan(orders[j].TotalValue)
		}
	case SortKindSupplier:
		names := make(map[uuid.UUID]string)
		for _, order := range orders {
			if _, ok := names[order.SupplierID]; !ok {
				names[order.SupplierID] = resolver.SupplierName(ctx, order.SupplierID)
			}
		}
		collator := collate.New(language.BrazilianPortuguese)
		return func(i, j int) bool {
			return collator.CompareString(names[orders[i].SupplierID], names[orders[j].SupplierID]) < 0
		}
	case SortKindStatus:
		return func(i, j int) bool {
			return orders[i].Status < orders[j].Status
		}
	}
	return nil
}

// Paginate slices a filtered, sorted order sequence into the 1-based page of
// the given size. A page past the end yields an empty slice with the counts
// intact; callers are responsible for clamping the requested page.
func Paginate(orders []PurchaseOrder, page, pageSize int) (shared.Paginated[PurchaseOrder], error) {
	if page < 1 {
		return shared.Paginated[PurchaseOrder]{}, shared.NewDomainError("INVALID_INPUT", "Page must be at least 1")
	}
	if pageSize < 1 {
		return shared.Paginated[PurchaseOrder]{}, shared.NewDomainError("INVALID_INPUT", "Page size must be positive")
	}

	total := len(orders)
	start := (page - 1) * pageSize
	items := make([]PurchaseOrder, 0, pageSize)
	if start < total {
		end := start + pageSize
		if end > total {
			end = total
		}
		items = append(items, orders[start:end]...)
	}

	return shared.NewPaginated(items, int64(total), page, pageSize), nil
}

// OrderMetrics holds dashboard summary statistics over the full order set
type OrderMetrics struct {
	TotalOrders    int64
	DeliveredCount int64
	PendingCount   int64
	TotalValue     decimal.Decimal
	AverageTicket  decimal.Decimal
}

// ComputeOrderMetrics computes summary statistics over the unfiltered order
// set. An order counts as delivered when its delivery date lies strictly
// before now; this date heuristic is deliberately independent of the status
// field and the two can disagree for an order still marked pending.
func ComputeOrderMetrics(orders []PurchaseOrder, now time.Time) OrderMetrics {
	metrics := OrderMetrics{
		TotalValue:    decimal.Zero,
		AverageTicket: decimal.Zero,
	}

	for _, order := range orders {
		metrics.TotalOrders++
		if !order.DeliveryDate.IsZero() && order.DeliveryDate.Before(now) {
			metrics.DeliveredCount++
		}
		metrics.TotalValue = metrics.TotalValue.Add(order.TotalValue)
	}
	metrics.PendingCount = metrics.TotalOrders - metrics.DeliveredCount

	if metrics.TotalOrders > 0 {
		metrics.AverageTicket = metrics.TotalValue.Div(decimal.NewFromInt(metrics.TotalOrders)).Round(2)
	}

	return metrics
}
