package trade

import (
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem represents a single product/quantity/price entry within a
// purchase order. Items are created and edited only through their owning
// order and are removed when the order is deleted.
type LineItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int64           `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(18,2);not null"` // Quantity * UnitPrice
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "purchase_order_items"
}

// NewLineItem creates a new line item
func NewLineItem(orderID, productID uuid.UUID, quantity int64, unitPrice decimal.Decimal) (*LineItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &LineItem{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  unitPrice.Mul(decimal.NewFromInt(quantity)),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update changes quantity and unit price, recalculating the subtotal
func (i *LineItem) Update(quantity int64, unitPrice decimal.Decimal) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	i.Quantity = quantity
	i.UnitPrice = unitPrice
	i.Subtotal = unitPrice.Mul(decimal.NewFromInt(quantity))
	i.UpdatedAt = time.Now()

	return nil
}

// PurchaseOrder represents a purchase order placed with a supplier.
// It owns its line items; GoodsCost is derived from item subtotals and
// TotalValue is always GoodsCost + FreightValue at save time.
type PurchaseOrder struct {
	shared.BaseEntity
	SupplierID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderDate    time.Time       `gorm:"type:date;index"`
	DeliveryDate time.Time       `gorm:"type:date;index"`
	FreightValue decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	GoodsCost    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // Sum of item subtotals
	TotalValue   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // GoodsCost + FreightValue
	Description  string          `gorm:"type:text"`
	RawStatus    string          `gorm:"type:varchar(50)"` // Original status string, kept for display
	Status       DeliveryStatus  `gorm:"type:varchar(20);not null;default:'pending';index"`
	Items        []LineItem      `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order. The raw status string is
// normalized once here; dates may be zero when unknown.
func NewPurchaseOrder(supplierID uuid.UUID, orderDate, deliveryDate time.Time, freight decimal.Decimal, description, rawStatus string) (*PurchaseOrder, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if freight.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FREIGHT", "Freight value cannot be negative")
	}

	return &PurchaseOrder{
		BaseEntity:   shared.NewBaseEntity(),
		SupplierID:   supplierID,
		OrderDate:    truncateToDay(orderDate),
		DeliveryDate: truncateToDay(deliveryDate),
		FreightValue: freight,
		GoodsCost:    decimal.Zero,
		TotalValue:   freight,
		Description:  description,
		RawStatus:    rawStatus,
		Status:       NormalizeDeliveryStatus(rawStatus),
		Items:        make([]LineItem, 0),
	}, nil
}

// AddItem adds a new line item for a product and recalculates totals
func (o *PurchaseOrder) AddItem(productID uuid.UUID, quantity int64, unitPrice decimal.Decimal) (*LineItem, error) {
	item, err := NewLineItem(o.ID, productID, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.Touch()

	return item, nil
}

// UpdateItem updates an existing line item and recalculates totals
func (o *PurchaseOrder) UpdateItem(itemID uuid.UUID, quantity int64, unitPrice decimal.Decimal) error {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].Update(quantity, unitPrice); err != nil {
				return err
			}
			o.recalculateTotals()
			o.Touch()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes a line item and recalculates totals
func (o *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotals()
			o.Touch()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// SetFreight updates the freight value and the order total
func (o *PurchaseOrder) SetFreight(freight decimal.Decimal) error {
	if freight.IsNegative() {
		return shared.NewDomainError("INVALID_FREIGHT", "Freight value cannot be negative")
	}
	o.FreightValue = freight
	o.recalculateTotals()
	o.Touch()
	return nil
}

// SetDescription sets the order description
func (o *PurchaseOrder) SetDescription(description string) {
	o.Description = description
	o.Touch()
}

// SetStatus normalizes and sets the delivery status from a raw string
func (o *PurchaseOrder) SetStatus(rawStatus string) {
	o.RawStatus = rawStatus
	o.Status = NormalizeDeliveryStatus(rawStatus)
	o.Touch()
}

// SetDates updates order and delivery dates (zero time = unknown)
func (o *PurchaseOrder) SetDates(orderDate, deliveryDate time.Time) {
	o.OrderDate = truncateToDay(orderDate)
	o.DeliveryDate = truncateToDay(deliveryDate)
	o.Touch()
}

// StatusLabel returns the display label derived from the original status string
func (o *PurchaseOrder) StatusLabel() string {
	return DeliveryStatusLabel(o.RawStatus)
}

// HasProduct returns true if any line item references the given product
func (o *PurchaseOrder) HasProduct(productID uuid.UUID) bool {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// ItemCount returns the number of line items in the order
func (o *PurchaseOrder) ItemCount() int {
	return len(o.Items)
}

// GetItem returns an item by its ID
func (o *PurchaseOrder) GetItem(itemID uuid.UUID) *LineItem {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// recalculateTotals rederives GoodsCost and TotalValue from the items
func (o *PurchaseOrder) recalculateTotals() {
	goods := decimal.Zero
	for _, item := range o.Items {
		goods = goods.Add(item.Subtotal)
	}
	o.GoodsCost = goods
	o.TotalValue = goods.Add(o.FreightValue)
}

// truncateToDay strips the time component, keeping only the calendar date
func truncateToDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
