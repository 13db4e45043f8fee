package partner

import (
	"time"

	"github.com/boutikla/backend/internal/domain/partner"
	"github.com/google/uuid"
)

// CreateClientRequest is the input for creating a client
type CreateClientRequest struct {
	FirstName string   `json:"first_name" binding:"required"`
	LastName  string   `json:"last_name" binding:"required"`
	Emails    []string `json:"emails"`
	Phone     string   `json:"phone"`
	Addresses []string `json:"addresses"`
}

// UpdateClientRequest is the input for updating a client
type UpdateClientRequest struct {
	FirstName string   `json:"first_name" binding:"required"`
	LastName  string   `json:"last_name" binding:"required"`
	Emails    []string `json:"emails"`
	Phone     string   `json:"phone"`
	Addresses []string `json:"addresses"`
}

// ClientResponse is the API representation of a client
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Emails    []string  `json:"emails"`
	Phone     string    `json:"phone,omitempty"`
	Addresses []string  `json:"addresses"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToClientResponse converts a domain client to its API representation
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		Emails:    c.Emails,
		Phone:     c.Phone,
		Addresses: c.Addresses,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CreateSupplierRequest is the input for creating a supplier
type CreateSupplierRequest struct {
	Name      string   `json:"name" binding:"required"`
	Emails    []string `json:"emails"`
	Phone     string   `json:"phone"`
	Addresses []string `json:"addresses"`
}

// UpdateSupplierRequest is the input for updating a supplier
type UpdateSupplierRequest struct {
	Name      string   `json:"name" binding:"required"`
	Emails    []string `json:"emails"`
	Phone     string   `json:"phone"`
	Addresses []string `json:"addresses"`
}

// SupplierResponse is the API representation of a supplier
type SupplierResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Emails    []string  `json:"emails"`
	Phone     string    `json:"phone,omitempty"`
	Addresses []string  `json:"addresses"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a domain supplier to its API representation
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Emails:    s.Emails,
		Phone:     s.Phone,
		Addresses: s.Addresses,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ListFilter carries pagination and search parameters from the API layer
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}
