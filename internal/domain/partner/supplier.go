package partner

import (
	"strings"

	"github.com/boutikla/backend/internal/domain/shared"
)

// Supplier is a vendor the store purchases from, referenced by purchase orders.
type Supplier struct {
	shared.BaseEntity
	Name      string
	Emails    []string
	Phone     string
	Addresses []string
}

// NewSupplier creates a new supplier
func NewSupplier(name string, emails []string, phone string, addresses []string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if err := validateEmails(emails); err != nil {
		return nil, err
	}

	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Emails:     normalizeList(emails),
		Phone:      phone,
		Addresses:  normalizeList(addresses),
	}, nil
}

// Update changes the supplier's identity and contact fields
func (s *Supplier) Update(name string, emails []string, phone string, addresses []string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if err := validateEmails(emails); err != nil {
		return err
	}

	s.Name = name
	s.Emails = normalizeList(emails)
	s.Phone = phone
	s.Addresses = normalizeList(addresses)
	s.Touch()
	return nil
}
