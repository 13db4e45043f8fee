package models

import (
	"github.com/boutikla/backend/internal/domain/partner"
)

// ClientModel is the persistence model for the Client entity.
type ClientModel struct {
	BaseModel
	FirstName string   `gorm:"type:varchar(100);not null;index"`
	LastName  string   `gorm:"type:varchar(100);not null;index"`
	Emails    []string `gorm:"serializer:json;type:text"`
	Phone     string   `gorm:"type:varchar(32);index"`
	Addresses []string `gorm:"serializer:json;type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		BaseEntity: m.BaseModel.ToDomain(),
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Emails:     emptyIfNil(m.Emails),
		Phone:      m.Phone,
		Addresses:  emptyIfNil(m.Addresses),
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *partner.Client) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.Emails = c.Emails
	m.Phone = c.Phone
	m.Addresses = c.Addresses
}

// ClientModelFromDomain creates a new persistence model from a domain Client entity.
func ClientModelFromDomain(c *partner.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

// SupplierModel is the persistence model for the Supplier entity.
type SupplierModel struct {
	BaseModel
	Name      string   `gorm:"type:varchar(200);not null;index"`
	Emails    []string `gorm:"serializer:json;type:text"`
	Phone     string   `gorm:"type:varchar(32);index"`
	Addresses []string `gorm:"serializer:json;type:text"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier entity.
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Emails:     emptyIfNil(m.Emails),
		Phone:      m.Phone,
		Addresses:  emptyIfNil(m.Addresses),
	}
}

// FromDomain populates the persistence model from a domain Supplier entity.
func (m *SupplierModel) FromDomain(s *partner.Supplier) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	m.Emails = s.Emails
	m.Phone = s.Phone
	m.Addresses = s.Addresses
}

// SupplierModelFromDomain creates a new persistence model from a domain Supplier entity.
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{}
	m.FromDomain(s)
	return m
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return make([]string, 0)
	}
	return values
}
