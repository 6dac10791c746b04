package partner

import (
	"strings"

	"github.com/gestor/backend/internal/domain/shared"
)

// Supplier represents a supplier referenced by purchase orders. Only the id
// and name are consumed by the order query engine; the remaining fields
// exist for the CRUD screens.
type Supplier struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(200);not null;index"`
	Code        string `gorm:"type:varchar(50);uniqueIndex"`
	ContactName string `gorm:"type:varchar(100)"`
	Phone       string `gorm:"type:varchar(50)"`
	Email       string `gorm:"type:varchar(200)"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, code string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}

	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Code:       strings.TrimSpace(code),
		Active:     true,
	}, nil
}

// Rename changes the supplier display name
func (s *Supplier) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	s.Name = name
	s.Touch()
	return nil
}

// SetContact updates the contact fields
func (s *Supplier) SetContact(contactName, phone, email string) {
	s.ContactName = contactName
	s.Phone = phone
	s.Email = email
	s.Touch()
}

// Deactivate marks the supplier as inactive
func (s *Supplier) Deactivate() {
	s.Active = false
	s.Touch()
}

// Activate marks the supplier as active
func (s *Supplier) Activate() {
	s.Active = true
	s.Touch()
}
