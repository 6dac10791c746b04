package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver resolves names from fixed maps, falling back to placeholders
// the way the real resolver does
type stubResolver struct {
	suppliers map[uuid.UUID]string
	products  map[uuid.UUID]string
}

func (r stubResolver) SupplierName(_ context.Context, id uuid.UUID) string {
	if name, ok := r.suppliers[id]; ok {
		return name
	}
	return "Fornecedor " + id.String()
}

func (r stubResolver) ProductName(_ context.Context, id uuid.UUID) string {
	if name, ok := r.products[id]; ok {
		return name
	}
	return "Produto " + id.String()
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

// makeOrder builds an order whose total value comes entirely from freight,
// which keeps the total invariant without needing items
func makeOrder(t *testing.T, supplierID uuid.UUID, orderDate, deliveryDate string, total int64, description, status string) PurchaseOrder {
	t.Helper()
	order, err := NewPurchaseOrder(supplierID, mustDate(t, orderDate), mustDate(t, deliveryDate), decimal.NewFromInt(total), description, status)
	require.NoError(t, err)
	return *order
}

func orderIDs(orders []PurchaseOrder) []uuid.UUID {
	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	return ids
}

func TestQuery_EmptySpecPreservesRepositoryOrder(t *testing.T) {
	supplierID := uuid.New()
	orders := []PurchaseOrder{
		makeOrder(t, supplierID, "2026-03-01", "2026-03-10", 100, "primeiro", "pendente"),
		makeOrder(t, supplierID, "2026-01-01", "2026-01-10", 300, "segundo", "entregue"),
		makeOrder(t, supplierID, "2026-02-01", "2026-02-10", 200, "terceiro", "cancelado"),
	}

	result := Query(context.Background(), orders, stubResolver{}, QuerySpec{})

	require.Len(t, result, 3)
	assert.Equal(t, orderIDs(orders), orderIDs(result))
}

func TestQuery_SearchIsCaseInsensitive(t *testing.T) {
	supplierID := uuid.New()
	orders := []PurchaseOrder{
		makeOrder(t, supplierID, "2026-03-01", "2026-03-10", 100, "Ração Premium", "pendente"),
		makeOrder(t, supplierID, "2026-03-02", "2026-03-11", 200, "Adubo", "pendente"),
	}

	for _, search := range []string{"ração", "RAÇÃO", "Ração"} {
		result := Query(context.Background(), orders, stubResolver{}, QuerySpec{Search: search})
		assert.Len(t, result, 1, "search %q", search)
	}
}

func TestQuery_SearchMatchesDateStrings(t *testing.T) {
	supplierID := uuid.New()
	orders := []PurchaseOrder{
		makeOrder(t, supplierID, "2026-03-01", "2026-04-15", 100, "sem data no texto", "pendente"),
		makeOrder(t, supplierID, "2026-05-01", "2026-05-15", 200, "outro", "pendente"),
	}

	result := Query(context.Background(), orders, stubResolver{}, QuerySpec{Search: "2026-04"})
	require.Len(t, result, 1)
	assert.Equal(t, orders[0].ID, result[0].ID)
}

func TestQuery_SupplierFilter(t *testing.T) {
	supplierA := uuid.New()
	supplierB := uuid.New()
	orders := []PurchaseOrder{
		makeOrder(t, supplierA, "2026-03-01", "", 100, "", "pendente"),
		makeOrder(t, supplierB, "2026-03-02", "", 200, "", "pendente"),
	}

	result := Query(context.Background(), orders, stubResolver{}, QuerySpec{SupplierID: &supplierB})
	require.Len(t, result, 1)
	assert.Equal(t, supplierB, result[0].SupplierID)
}

func TestQuery_StatusFilterUsesCanonicalValue(t *testing.T) {
	supplierID := uuid.New()
	orders := []PurchaseOrder{
		makeOrder(t, supplierID, "2026-03-01", "", 100, "", "ENTREGUE"),
		makeOrder(t, supplierID, "2026-03-02", "", 200, "", "entregue"),
		makeOrder(t, supplierID, "2026-03-03", "", 300, "", "pendente"),
	}

	status := StatusDelivered
	result := Query(context.Background(), orders, stubResolver{}, QuerySpec{Status: &status})
	assert.Len(t, result, 2)
}

func TestQuery_ProductFilterMatchesAnyItem(t *testing.T) {
	supplierID := uuid.New()
	p1, p2, p3, p4 := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	orderA := makeOrder(t, supplierID, "2026-03-01", "", 0, "A", "pendente")
	_, err := orderA.AddItem(p1, 1, decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = orderA.AddItem(p2, 1, decimal.NewFromInt(10))
	require.NoError(t, err)

	orderB := makeOrder(t, supplierID, "2026-03-02", "", 0, "B", "pendente")
	_, err = orderB.AddItem(p3, 1, decimal.NewFromInt(10))
	require.NoError(t, err)

	orders := []PurchaseOrder{orderA, orderB}

	result := Query(context.Background(), orders, stubResolver{}, QuerySpec{ProductIDs: []uuid.UUID{p2, p3}})
	assert.Len(t, result, 2)

	result = Query(context.Background(), orders, stubResolver{}, QuerySpec{ProductIDs: []uuid.UUID{p4}})
	assert.Empty(t, result)
}

func TestQuery_DateRangeBoundsAreInclusive(t *testing.T) {
	supplierID := uuid.New()
	orders := []PurchaseOrder{
		makeOrder(t, supplierID, "2026-03-09", "", 100, "um dia antes", "pendente"),
		makeOrder(t, supplierID, "2026-03-10", "", 200, "no limite inferior", "pendente"),
		makeOrder(t, supplierID, "2026-03-15", "", 300, "no meio", "pendente"),
		makeOrder(t, supplierID, "2026-03-20", "", 400, "no limite superior", "pendente"),
		makeOrder(t, supplierID, "2026-03-21", "", 500, "um dia depois", "pendente"),
	}

	from := mustDate(t, "2026-03-10")
	to := mustDate(t, "2026-03-20")
	result := Query(context.Background(), orders, stubResolver{}, QuerySpec{DateFrom: &from, DateTo: &to})

	require.Len(t, result, 3)
	assert.Equal(t, orders[1].ID, result[0].ID)
	assert.Equal(t, orders[3].ID, result[2].ID)
}

func TestQuery_DateRangeOnDeliveryDate(t *testing.T) {
	supplierID := uuid.New()
	orders := []PurchaseOrder{
		makeOrder(t, supplierID, "2026-03-01", "2026-03-15", 100, "", "pendente"),
		makeOrder(t, supplierID, "2026-03-15", "2026-04-20", 200, "", "pendente"),
	}

	from := mustDate(t, "2026-03-10")
	to := mustDate(t, "2026-03-20")
	result := Query(context.Background(), orders, stubResolver{}, QuerySpec{
		DateField: DateFieldDelivery,
		DateFrom:  &from,
		DateTo:    &to,
	})

	require.Len(t, result, 1)
	assert.Equal(t, orders[0].ID, result[0].ID)
}

func TestQuery_UnknownDateFailsActiveRangeFilter(t *testing.T) {
	supplierID := uuid.New()
	orders := []PurchaseOrder{
		makeOrder(t, supplierID, "", "", 100, "sem datas", "pendente"),
		makeOrder(t, supplierID, "2026-03-15", "", 200, "", "pendente"),
	}

	from := mustDate(t, "2026-03-01")
	result := Query(context.Background(), orders, stubResolver{}, QuerySpec{DateFrom: &from})
	require.Len(t, result, 1)
	assert.Equal(t, orders[1].ID, result[0].ID)

	// Without an active range filter the order with unknown dates is kept
	result = Query(context.Background(), orders, stubResolver{}, QuerySpec{})
	assert.Len(t, result, 2)
}

func TestQuery_ValueRangeBoundsAreInclusive(t *testing.T) {
	supplierID := uuid.New()
	orders := []PurchaseOrder{
		makeOrder(t, supplierID, "2026-03-01", "", 99, "", "pendente"),
		makeOrder(t, supplierID, "2026-03-02", "", 100, "", "pendente"),
		makeOrder(t, supplierID, "2026-03-03", "", 150, "", "pendente"),
		makeOrder(t, supplierID, "2026-03-04", "", 200, "", "pendente"),
		makeOrder(t, supplierID, "2026-03-05", "", 201, "", "pendente"),
	}

	min := decimal.NewFromInt(100)
	max := decimal.NewFromInt(200)
	result := Query(context.Background(), orders, stubResolver{}, QuerySpec{ValueMin: &min, ValueMax: &max})
	assert.Len(t, result, 3)

	// Unbounded lower side
	result = Query(context.Background(), orders, stubResolver{}, QuerySpec{ValueMax: &max})
	assert.Len(t, result, 4)
}

func TestQuery_SortByDateParsesCalendarDates(t *testing.T) {
	supplierID := uuid.New()
	orders := []PurchaseOrder{
		makeOrder(t, supplierID, "2026-01-05", "", 100, "", "pendente"),
		makeOrder(t, supplierID, "2025-12-31", "", 200, "", "pendente"),
		makeOrder(t, supplierID, "2026-02-01", "", 300, "", "pendente"),
	}

	result := Query(context.Background(), orders, stubResolver{}, QuerySpec{
		SortKind:      SortKindDate,
		SortDateField: DateFieldOrder,
		SortDirection: SortAsc,
	})

	require.Len(t, result, 3)
	assert.Equal(t, orders[1].ID, result[0].ID)
	assert.Equal(t, orders[0].ID, result[1].ID)
	assert.Equal(t, orders[2].ID, result[2].ID)

	desc := Query(context.Background(), orders, stubResolver{}, QuerySpec{
		SortKind:      SortKindDate,
		SortDateField: DateFieldOrder,
		SortDirection: SortDesc,
	})
	assert.Equal(t, orders[2].ID, desc[0].ID)
	assert.Equal(t, orders[1].ID, desc[2].ID)
}

func TestQuery_SortByValue(t *testing.T) {
	supplierID := uuid.New()
	orders := []PurchaseOrder{
		makeOrder(t, supplierID, "2026-03-01", "", 300, "", "pendente"),
		makeOrder(t, supplierID, "2026-03-02", "", 100, "", "pendente"),
		makeOrder(t, supplierID, "2026-03-03", "", 200, "", "pendente"),
	}

	result := Query(context.Background(), orders, stubResolver{}, QuerySpec{
		SortKind:      SortKindValue,
		SortDirection: SortAsc,
	})

	require.Len(t, result, 3)
	assert.True(t, result[0].TotalValue.Equal(decimal.NewFromInt(100)))
	assert.True(t, result[2].TotalValue.Equal(decimal.NewFromInt(300)))
}

func TestQuery_SortBySupplierUsesCollatedNames(t *testing.T) {
	alvaro := uuid.New()
	beto := uuid.New()
	resolver := stubResolver{suppliers: map[uuid.UUID]string{
		// Byte-wise "Álvaro" sorts after "Beto"; pt-BR collation puts it first
		alvaro: "Álvaro Insumos",
		beto:   "Beto Distribuidora",
	}}
	orders := []PurchaseOrder{
		makeOrder(t, beto, "2026-03-01", "", 100, "", "pendente"),
		makeOrder(t, alvaro, "2026-03-02", "", 200, "", "pendente"),
	}

	result := Query(context.Background(), orders, resolver, QuerySpec{
		SortKind:      SortKindSupplier,
		SortDirection: SortAsc,
	})

	require.Len(t, result, 2)
	assert.Equal(t, alvaro, result[0].SupplierID)
	assert.Equal(t, beto, result[1].SupplierID)
}

func TestQuery_SortByStatusIsStable(t *testing.T) {
	supplierID := uuid.New()
	orders := []PurchaseOrder{
		makeOrder(t, supplierID, "2026-03-01", "", 100, "p1", "pendente"),
		makeOrder(t, supplierID, "2026-03-02", "", 200, "e1", "entregue"),
		makeOrder(t, supplierID, "2026-03-03", "", 300, "p2", "pendente"),
		makeOrder(t, supplierID, "2026-03-04", "", 400, "e2", "ENTREGUE"),
	}

	result := Query(context.Background(), orders, stubResolver{}, QuerySpec{
		SortKind:      SortKindStatus,
		SortDirection: SortAsc,
	})

	require.Len(t, result, 4)
	// Delivered orders come first, ties broken by repository order
	assert.Equal(t, "e1", result[0].Description)
	assert.Equal(t, "e2", result[1].Description)
	assert.Equal(t, "p1", result[2].Description)
	assert.Equal(t, "p2", result[3].Description)
}

func TestPaginate(t *testing.T) {
	supplierID := uuid.New()
	orders := make([]PurchaseOrder, 0, 23)
	for i := 0; i < 23; i++ {
		orders = append(orders, makeOrder(t, supplierID, "2026-03-01", "", int64(i), "", "pendente"))
	}

	t.Run("pagination math", func(t *testing.T) {
		page1, err := Paginate(orders, 1, 8)
		require.NoError(t, err)
		assert.Len(t, page1.Items, 8)
		assert.Equal(t, int64(23), page1.Total)
		assert.Equal(t, 3, page1.TotalPages)

		page3, err := Paginate(orders, 3, 8)
		require.NoError(t, err)
		assert.Len(t, page3.Items, 7)
	})

	t.Run("page past the end is empty not an error", func(t *testing.T) {
		page4, err := Paginate(orders, 4, 8)
		require.NoError(t, err)
		assert.Empty(t, page4.Items)
		assert.Equal(t, int64(23), page4.Total)
		assert.Equal(t, 3, page4.TotalPages)
	})

	t.Run("invalid page and size are rejected", func(t *testing.T) {
		_, err := Paginate(orders, 0, 8)
		assert.Error(t, err)
		_, err = Paginate(orders, 1, 0)
		assert.Error(t, err)
	})
}

func TestComputeOrderMetrics(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	supplierID := uuid.New()

	t.Run("zero orders yields zero average ticket", func(t *testing.T) {
		metrics := ComputeOrderMetrics(nil, now)
		assert.Equal(t, int64(0), metrics.TotalOrders)
		assert.True(t, metrics.AverageTicket.IsZero())
		assert.True(t, metrics.TotalValue.IsZero())
	})

	t.Run("delivered count uses the date heuristic", func(t *testing.T) {
		orders := []PurchaseOrder{
			// Past delivery date counts as delivered even though status says pending
			makeOrder(t, supplierID, "2026-03-01", "2026-03-10", 100, "", "pendente"),
			makeOrder(t, supplierID, "2026-03-01", "2026-03-20", 200, "", "entregue"),
			makeOrder(t, supplierID, "2026-03-01", "", 300, "", "pendente"),
		}

		metrics := ComputeOrderMetrics(orders, now)
		assert.Equal(t, int64(3), metrics.TotalOrders)
		assert.Equal(t, int64(1), metrics.DeliveredCount)
		assert.Equal(t, int64(2), metrics.PendingCount)
		assert.True(t, metrics.TotalValue.Equal(decimal.NewFromInt(600)))
		assert.True(t, metrics.AverageTicket.Equal(decimal.NewFromInt(200)))
	})

	t.Run("average ticket is rounded to cents", func(t *testing.T) {
		orders := []PurchaseOrder{
			makeOrder(t, supplierID, "2026-03-01", "", 100, "", "pendente"),
			makeOrder(t, supplierID, "2026-03-01", "", 101, "", "pendente"),
			makeOrder(t, supplierID, "2026-03-01", "", 101, "", "pendente"),
		}

		metrics := ComputeOrderMetrics(orders, now)
		assert.True(t, metrics.AverageTicket.Equal(decimal.RequireFromString("100.67")))
	})
}
