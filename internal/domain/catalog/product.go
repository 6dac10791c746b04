package catalog

import (
	"strings"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a product referenced by purchase order line items.
// The order query engine consumes only the id and name.
type Product struct {
	shared.BaseEntity
	Name      string          `gorm:"type:varchar(200);not null;index"`
	Code      string          `gorm:"type:varchar(50);uniqueIndex"`
	Unit      string          `gorm:"type:varchar(20)"`
	SalePrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Active    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, code, unit string, salePrice decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if salePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Code:       strings.TrimSpace(code),
		Unit:       unit,
		SalePrice:  salePrice,
		Active:     true,
	}, nil
}

// Rename changes the product display name
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Touch()
	return nil
}

// SetSalePrice updates the sale price
func (p *Product) SetSalePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}
	p.SalePrice = price
	p.Touch()
	return nil
}
