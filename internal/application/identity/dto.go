package identity

import (
	"time"

	"github.com/boutikla/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginRequest is the input for authenticating a user
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// CreateUserRequest is the input for creating a user
type CreateUserRequest struct {
	FirstName string      `json:"first_name" binding:"required"`
	LastName  string      `json:"last_name" binding:"required"`
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required,min=8"`
	RoleIDs   []uuid.UUID `json:"role_ids"`
}

// UpdateUserRequest is the input for updating a user. Password is optional;
// when empty the current password is kept.
type UpdateUserRequest struct {
	FirstName string      `json:"first_name" binding:"required"`
	LastName  string      `json:"last_name" binding:"required"`
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password"`
	RoleIDs   []uuid.UUID `json:"role_ids"`
}

// UserResponse is the API representation of a user. The password hash is
// never exposed.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	FullName  string      `json:"full_name"`
	Email     string      `json:"email"`
	RoleIDs   []uuid.UUID `json:"role_ids"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ToUserResponse converts a domain user to its API representation
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Email:     u.Email,
		RoleIDs:   u.RoleIDs,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// CreateRoleRequest is the input for creating a role
type CreateRoleRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateRoleRequest is the input for renaming a role
type UpdateRoleRequest struct {
	Name string `json:"name" binding:"required"`
}

// RoleResponse is the API representation of a role
type RoleResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToRoleResponse converts a domain role to its API representation
func ToRoleResponse(r *identity.Role) RoleResponse {
	return RoleResponse{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
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
